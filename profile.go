package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martinle068/FitnnessApp/internal/domain"
	"github.com/martinle068/FitnnessApp/internal/planner"
)

// buildProfileResponse adds the derived fields. DailyCalories is left out
// when the stored profile cannot produce one.
func buildProfileResponse(p domain.Profile, g domain.Goals) profileResponse {
	resp := profileResponse{Profile: p, Goals: g, BMI: p.BMI()}
	if kcal, err := planner.DailyCalories(p, g); err == nil {
		resp.DailyCalories = &kcal
	}
	return resp
}

// getProfile returns the stored profile and goals.
// GET /api/profile. 404 until cmd/setup or PUT /api/profile has run.
func (h *Handler) getProfile(c *gin.Context) {
	p, g, err := h.db.LoadProfile(c)
	if err != nil {
		h.domainError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, buildProfileResponse(p, g))
}

// putProfile replaces the profile and goals.
// PUT /api/profile. Unknown enum names and invalid measurements are rejected
// with 400 before anything is written.
func (h *Handler) putProfile(c *gin.Context) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := body.Profile.Validate(); err != nil {
		h.domainError(c, err, "invalid profile")
		return
	}
	if err := body.Goals.Validate(); err != nil {
		h.domainError(c, err, "invalid goals")
		return
	}
	if err := h.db.SaveProfile(c, body.Profile, body.Goals); err != nil {
		h.domainError(c, err, "failed to save profile")
		return
	}
	c.JSON(http.StatusOK, buildProfileResponse(body.Profile, body.Goals))
}

// setCustomCalories pins the daily calorie target.
// POST /api/goals/custom-calories. Body: {"calories": 1800}.
func (h *Handler) setCustomCalories(c *gin.Context) {
	var body struct {
		Calories float64 `json:"calories"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	p, g, err := h.db.LoadProfile(c)
	if err != nil {
		h.domainError(c, err, "profile")
		return
	}
	if err := g.SetCustomCalories(body.Calories); err != nil {
		h.domainError(c, err, "invalid calories")
		return
	}
	if err := h.db.SaveProfile(c, p, g); err != nil {
		h.domainError(c, err, "failed to save goals")
		return
	}
	c.JSON(http.StatusOK, buildProfileResponse(p, g))
}

// resetCustomCalories returns to the calculated calorie target.
// DELETE /api/goals/custom-calories.
func (h *Handler) resetCustomCalories(c *gin.Context) {
	p, g, err := h.db.LoadProfile(c)
	if err != nil {
		h.domainError(c, err, "profile")
		return
	}
	g.ResetToCalculatedCalories()
	if err := h.db.SaveProfile(c, p, g); err != nil {
		h.domainError(c, err, "failed to save goals")
		return
	}
	c.JSON(http.StatusOK, buildProfileResponse(p, g))
}
