package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/martinle068/FitnnessApp/internal/domain"
	"github.com/martinle068/FitnnessApp/internal/export"
)

// generateWorkoutPlanHandler creates and stores the next weekly workout plan.
// POST /api/workout-plans/generate?name=...
func (h *Handler) generateWorkoutPlanHandler(c *gin.Context) {
	plan, err := h.generateWorkoutPlan(c, planRequest{Name: c.Query("name")})
	if err != nil {
		h.domainError(c, err, "failed to generate workout plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// listWorkoutPlans returns stored plans dated within [start, end].
// GET /api/workout-plans?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) listWorkoutPlans(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}
	plans, err := h.db.WorkoutPlans(c, start, end)
	if err != nil {
		h.domainError(c, err, "failed to fetch workout plans")
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

func (h *Handler) loadWorkoutPlan(c *gin.Context) (domain.WorkoutPlan, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid plan id")
		return domain.WorkoutPlan{}, false
	}
	plan, err := h.db.WorkoutPlan(c, id)
	if err != nil {
		h.domainError(c, err, "workout plan")
		return domain.WorkoutPlan{}, false
	}
	return plan, true
}

// getWorkoutPlan returns one plan.
// GET /api/workout-plans/:id.
func (h *Handler) getWorkoutPlan(c *gin.Context) {
	plan, ok := h.loadWorkoutPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan)
}

// exportWorkoutPlan returns the plan as an xlsx workbook. The workbook is
// rendered to a buffer first so a rendering error can still produce a 500.
// GET /api/workout-plans/:id/export.
func (h *Handler) exportWorkoutPlan(c *gin.Context) {
	plan, ok := h.loadWorkoutPlan(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkoutPlan(&buf, plan); err != nil {
		h.domainError(c, err, "failed to export workout plan")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="workout-plan-%s.xlsx"`, plan.ID))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
