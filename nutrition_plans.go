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

// generateNutritionPlanHandler creates and stores the next nutrition plan.
// POST /api/nutrition-plans/generate?categories=a,b&name=...
// 409 when the catalog (or the requested categories) has no foods.
func (h *Handler) generateNutritionPlanHandler(c *gin.Context) {
	req := planRequest{
		Name:       c.Query("name"),
		Categories: splitQueryList(c.Query("categories")),
	}
	plan, err := h.generateNutritionPlan(c, req)
	if err != nil {
		h.domainError(c, err, "failed to generate nutrition plan")
		return
	}
	c.JSON(http.StatusCreated, newNutritionPlanResponse(plan))
}

// listNutritionPlans returns stored plans dated within [start, end].
// GET /api/nutrition-plans?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) listNutritionPlans(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}
	plans, err := h.db.NutritionPlans(c, start, end)
	if err != nil {
		h.domainError(c, err, "failed to fetch nutrition plans")
		return
	}
	// Ensure empty array (not null) in JSON
	out := make([]nutritionPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, newNutritionPlanResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// loadNutritionPlan resolves the :id param, answering 400/404 itself.
func (h *Handler) loadNutritionPlan(c *gin.Context) (domain.NutritionPlan, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid plan id")
		return domain.NutritionPlan{}, false
	}
	plan, err := h.db.NutritionPlan(c, id)
	if err != nil {
		h.domainError(c, err, "nutrition plan")
		return domain.NutritionPlan{}, false
	}
	return plan, true
}

// getNutritionPlan returns one plan with its totals.
// GET /api/nutrition-plans/:id.
func (h *Handler) getNutritionPlan(c *gin.Context) {
	plan, ok := h.loadNutritionPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newNutritionPlanResponse(plan))
}

// exportNutritionPlan returns the plan as an xlsx workbook.
// GET /api/nutrition-plans/:id/export.
func (h *Handler) exportNutritionPlan(c *gin.Context) {
	plan, ok := h.loadNutritionPlan(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteNutritionPlan(&buf, plan); err != nil {
		h.domainError(c, err, "failed to export nutrition plan")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="nutrition-plan-%s.xlsx"`, plan.ID))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
