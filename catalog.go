package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/martinle068/FitnnessApp/internal/catalog"
	"github.com/martinle068/FitnnessApp/internal/csvio"
	"github.com/martinle068/FitnnessApp/internal/domain"
)

// maxImportBytes caps catalog uploads.
const maxImportBytes = 4 << 20

/* ─── Foods ──────────────────────────────────────────────────────────── */

// listFoods returns the food catalog, optionally narrowed to one category.
// GET /api/catalog/foods?category=protein
func (h *Handler) listFoods(c *gin.Context) {
	snap := h.catalog.Current()
	foods := snap.Foods
	if cat := c.Query("category"); cat != "" {
		foods = snap.FoodIndex.ItemsIn(cat)
	}
	if foods == nil {
		foods = []domain.FoodItem{}
	}
	c.JSON(http.StatusOK, foods)
}

// listFoodCategories returns the sorted distinct food categories.
// GET /api/catalog/foods/categories
func (h *Handler) listFoodCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Current().FoodIndex.Categories()})
}

// importFoods replaces the food catalog with the CSV body. Malformed rows are
// skipped and reported; a body with no valid row leaves the catalog as is.
// PUT /api/catalog/foods (Content-Type: text/csv)
func (h *Handler) importFoods(c *gin.Context) {
	res, err := csvio.Read(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes), csvio.ParseFoodItem)
	if err != nil {
		apiError(c, http.StatusBadRequest, "failed to read CSV body")
		return
	}
	summary := newImportSummary(len(res.Items), res.Rejected, res.Errors)
	if len(res.Items) == 0 {
		c.JSON(http.StatusBadRequest, summary)
		return
	}
	snap, err := h.catalog.ReplaceFoods(res.Items)
	if err != nil {
		h.domainError(c, err, "failed to replace food catalog")
		return
	}
	h.logger.Info("food catalog imported",
		zap.Int("accepted", summary.Accepted),
		zap.Int("rejected", summary.Rejected),
		zap.Int("categories", len(snap.FoodIndex.Categories())),
	)
	c.JSON(http.StatusOK, summary)
}

/* ─── Exercises ──────────────────────────────────────────────────────── */

// listExercises returns the exercise catalog filtered by muscle group and/or
// type. An unknown type is a 400.
// GET /api/catalog/exercises?muscle_group=legs&type=Strength
func (h *Handler) listExercises(c *gin.Context) {
	snap := h.catalog.Current()
	exercises := snap.Exercises
	if g := c.Query("muscle_group"); g != "" {
		exercises = snap.ExerciseIndex.ItemsIn(g)
	}
	if t := c.Query("type"); t != "" {
		typ, err := domain.ParseExerciseType(t)
		if err != nil {
			h.domainError(c, err, "invalid type")
			return
		}
		exercises = catalog.ExercisesOfType(exercises, typ)
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// listMuscleGroups returns the sorted distinct muscle groups.
// GET /api/catalog/exercises/muscle-groups
func (h *Handler) listMuscleGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"muscle_groups": h.catalog.Current().ExerciseIndex.Categories()})
}

// importExercises replaces the exercise catalog with the CSV body.
// PUT /api/catalog/exercises (Content-Type: text/csv)
func (h *Handler) importExercises(c *gin.Context) {
	res, err := csvio.Read(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes), csvio.ParseExercise)
	if err != nil {
		apiError(c, http.StatusBadRequest, "failed to read CSV body")
		return
	}
	summary := newImportSummary(len(res.Items), res.Rejected, res.Errors)
	if len(res.Items) == 0 {
		c.JSON(http.StatusBadRequest, summary)
		return
	}
	if _, err := h.catalog.ReplaceExercises(res.Items); err != nil {
		h.domainError(c, err, "failed to replace exercise catalog")
		return
	}
	h.logger.Info("exercise catalog imported",
		zap.Int("accepted", summary.Accepted),
		zap.Int("rejected", summary.Rejected),
	)
	c.JSON(http.StatusOK, summary)
}
