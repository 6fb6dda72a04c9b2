package main

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/martinle068/FitnnessApp/internal/cache"
	"github.com/martinle068/FitnnessApp/internal/catalogfs"
	"github.com/martinle068/FitnnessApp/internal/config"
	"github.com/martinle068/FitnnessApp/internal/domain"
)

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	db      planStore
	logger  *zap.Logger
	catalog *catalogfs.Store
	plans   cache.PlanCache
	cfg     *config.Config

	// tokenHash is the bcrypt hash of the API token; empty disables auth.
	tokenHash []byte

	// genMu serializes plan generation so two requests never read the same
	// previous plan and produce the same "next" plan.
	genMu sync.Mutex

	openAIAPIKey  string
	openAIBaseURL string // overridable for tests
}

func newHandler(db planStore, logger *zap.Logger, store *catalogfs.Store, plans cache.PlanCache, cfg *config.Config) *Handler {
	return &Handler{
		db:            db,
		logger:        logger,
		catalog:       store,
		plans:         plans,
		cfg:           cfg,
		tokenHash:     []byte(cfg.APITokenHash),
		openAIAPIKey:  cfg.OpenAIAPIKey,
		openAIBaseURL: cfg.OpenAIBaseURL,
	}
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// domainError answers with the status matching err's kind. Anything that is
// not a known domain error is logged and reported as fallback.
func (h *Handler) domainError(c *gin.Context, err error, fallback string) {
	var cfgErr *domain.ConfigurationError
	var valErr *domain.ValidationError
	var emptyErr *domain.EmptyCatalogError
	var parseErr *domain.ParseError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &valErr), errors.As(err, &parseErr):
		apiError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &emptyErr):
		apiError(c, http.StatusConflict, err.Error())
	case errors.Is(err, errNotFound):
		apiError(c, http.StatusNotFound, fallback+": not found")
	default:
		h.logger.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		apiError(c, http.StatusInternalServerError, fallback)
	}
}

// parseDateRange validates the start/end query params used by list endpoints.
func parseDateRange(c *gin.Context) (start, end string, ok bool) {
	start = c.Query("start")
	end = c.Query("end")
	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return "", "", false
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return "", "", false
	}
	return start, end, true
}

// splitQueryList splits a comma-separated query param, dropping blanks.
func splitQueryList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// zapLoggerMiddleware logs one line per request.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (h *Handler) healthz(c *gin.Context) {
	snap := h.catalog.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"foods":     len(snap.Foods),
		"exercises": len(snap.Exercises),
		"loaded_at": snap.LoadedAt,
	})
}

// newRouter builds the engine with middleware and every route.
func (h *Handler) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(zapLoggerMiddleware(h.logger), gin.Recovery())
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/healthz", h.healthz)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.POST("/goals/custom-calories", h.setCustomCalories)
	api.DELETE("/goals/custom-calories", h.resetCustomCalories)

	api.GET("/targets", h.getTargets)
	api.POST("/targets/preview", h.previewTargets)

	api.GET("/catalog/foods", h.listFoods)
	api.GET("/catalog/foods/categories", h.listFoodCategories)
	api.PUT("/catalog/foods", h.importFoods)
	api.POST("/catalog/foods/suggest", h.suggestFoodItem)
	api.GET("/catalog/exercises", h.listExercises)
	api.GET("/catalog/exercises/muscle-groups", h.listMuscleGroups)
	api.PUT("/catalog/exercises", h.importExercises)

	api.POST("/nutrition-plans/generate", h.generateNutritionPlanHandler)
	api.GET("/nutrition-plans", h.listNutritionPlans)
	api.GET("/nutrition-plans/:id", h.getNutritionPlan)
	api.GET("/nutrition-plans/:id/export", h.exportNutritionPlan)

	api.POST("/workout-plans/generate", h.generateWorkoutPlanHandler)
	api.GET("/workout-plans", h.listWorkoutPlans)
	api.GET("/workout-plans/:id", h.getWorkoutPlan)
	api.GET("/workout-plans/:id/export", h.exportWorkoutPlan)
}
