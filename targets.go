package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martinle068/FitnnessApp/internal/domain"
	"github.com/martinle068/FitnnessApp/internal/planner"
)

// computeTargets runs the calculator and collects the intermediate values.
func computeTargets(p domain.Profile, g domain.Goals) (targetResponse, error) {
	target, err := planner.ComputeTarget(p, g)
	if err != nil {
		return targetResponse{}, err
	}
	bmr, err := planner.BMR(p)
	if err != nil {
		return targetResponse{}, err
	}
	tdee, err := planner.TDEE(p)
	if err != nil {
		return targetResponse{}, err
	}
	return targetResponse{
		BMR:           bmr,
		TDEE:          tdee,
		DailyCalories: target.Calories,
		Custom:        g.UseCustomCalories,
		Target:        target,
	}, nil
}

// getTargets returns the nutrient target for the stored profile.
// GET /api/targets.
func (h *Handler) getTargets(c *gin.Context) {
	p, g, err := h.db.LoadProfile(c)
	if err != nil {
		h.domainError(c, err, "profile")
		return
	}
	resp, err := computeTargets(p, g)
	if err != nil {
		h.domainError(c, err, "failed to compute targets")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// previewTargets computes a target for the profile in the body without
// touching the database.
// POST /api/targets/preview.
func (h *Handler) previewTargets(c *gin.Context) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	resp, err := computeTargets(body.Profile, body.Goals)
	if err != nil {
		h.domainError(c, err, "failed to compute targets")
		return
	}
	c.JSON(http.StatusOK, resp)
}
