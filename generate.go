package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/martinle068/FitnnessApp/internal/domain"
	"github.com/martinle068/FitnnessApp/internal/planner"
)

// planRequest carries the optional knobs of a generation request.
type planRequest struct {
	Name       string
	Categories []string
}

func defaultPlanName(kind string) string {
	return kind + " " + today().Format("2006-01-02")
}

// previousNutritionPlan prefers the cache and falls back to the newest stored
// plan. Cache errors are logged and treated as a miss.
func (h *Handler) previousNutritionPlan(ctx context.Context) (*domain.NutritionPlan, error) {
	if h.plans != nil {
		prev, err := h.plans.LastNutritionPlan(ctx)
		if err != nil {
			h.logger.Warn("plan cache read failed", zap.String("kind", "nutrition"), zap.Error(err))
		} else if prev != nil {
			return prev, nil
		}
	}
	return h.db.LatestNutritionPlan(ctx)
}

func (h *Handler) previousWorkoutPlan(ctx context.Context) (*domain.WorkoutPlan, error) {
	if h.plans != nil {
		prev, err := h.plans.LastWorkoutPlan(ctx)
		if err != nil {
			h.logger.Warn("plan cache read failed", zap.String("kind", "workout"), zap.Error(err))
		} else if prev != nil {
			return prev, nil
		}
	}
	return h.db.LatestWorkoutPlan(ctx)
}

// generateNutritionPlan builds the next day's plan from the stored profile,
// the current catalog and the previous plan, then stores it. Generation is
// serialized across requests and the scheduler.
func (h *Handler) generateNutritionPlan(ctx context.Context, req planRequest) (domain.NutritionPlan, error) {
	h.genMu.Lock()
	defer h.genMu.Unlock()

	p, g, err := h.db.LoadProfile(ctx)
	if err != nil {
		return domain.NutritionPlan{}, fmt.Errorf("load profile: %w", err)
	}
	target, err := planner.ComputeTarget(p, g)
	if err != nil {
		return domain.NutritionPlan{}, err
	}
	prev, err := h.previousNutritionPlan(ctx)
	if err != nil {
		return domain.NutritionPlan{}, fmt.Errorf("load previous plan: %w", err)
	}

	builder := h.cfg.NutritionBuilder()
	builder.Categories = req.Categories
	plan, err := builder.Generate(target, h.catalog.Current().Foods, prev)
	if err != nil {
		return domain.NutritionPlan{}, err
	}
	plan.ID = uuid.New()
	plan.Date = today()
	plan.Name = req.Name
	if plan.Name == "" {
		plan.Name = defaultPlanName("Nutrition plan")
	}

	if err := h.db.InsertNutritionPlan(ctx, plan); err != nil {
		return domain.NutritionPlan{}, fmt.Errorf("store plan: %w", err)
	}
	if h.plans != nil {
		if err := h.plans.PutNutritionPlan(ctx, plan); err != nil {
			h.logger.Warn("plan cache write failed", zap.String("kind", "nutrition"), zap.Error(err))
		}
	}
	h.logger.Info("nutrition plan generated",
		zap.String("id", plan.ID.String()),
		zap.Int("items", len(plan.Items())),
		zap.Float64("final_adjustment", plan.FinalAdjustment),
	)
	return plan, nil
}

// generateWorkoutPlan builds the next week's plan from the stored goals, the
// current catalog and the previous plan, then stores it.
func (h *Handler) generateWorkoutPlan(ctx context.Context, req planRequest) (domain.WorkoutPlan, error) {
	h.genMu.Lock()
	defer h.genMu.Unlock()

	_, g, err := h.db.LoadProfile(ctx)
	if err != nil {
		return domain.WorkoutPlan{}, fmt.Errorf("load profile: %w", err)
	}
	prev, err := h.previousWorkoutPlan(ctx)
	if err != nil {
		return domain.WorkoutPlan{}, fmt.Errorf("load previous plan: %w", err)
	}
	builder, err := h.cfg.WorkoutBuilder()
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	plan, err := builder.Generate(g, h.catalog.Current().Exercises, prev)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	plan.ID = uuid.New()
	plan.Date = today()
	plan.Name = req.Name
	if plan.Name == "" {
		plan.Name = defaultPlanName("Workout plan")
	}

	if err := h.db.InsertWorkoutPlan(ctx, plan); err != nil {
		return domain.WorkoutPlan{}, fmt.Errorf("store plan: %w", err)
	}
	if h.plans != nil {
		if err := h.plans.PutWorkoutPlan(ctx, plan); err != nil {
			h.logger.Warn("plan cache write failed", zap.String("kind", "workout"), zap.Error(err))
		}
	}
	h.logger.Info("workout plan generated",
		zap.String("id", plan.ID.String()),
		zap.String("type", plan.Type.String()),
	)
	return plan, nil
}
