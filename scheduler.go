package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/zap"
)

// scheduledRunTimeout bounds one scheduled generation.
const scheduledRunTimeout = time.Minute

// validateSchedule reports whether spec is a cron expression the scheduler
// accepts: six fields with seconds first, or a descriptor such as "@daily".
func validateSchedule(spec string) error {
	if _, err := cron.Parse(spec); err != nil {
		return fmt.Errorf("PLAN_SCHEDULE %q: %w", spec, err)
	}
	return nil
}

// runScheduledGeneration generates the next nutrition and workout plan.
// Failures are logged; the next tick tries again.
func (h *Handler) runScheduledGeneration() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledRunTimeout)
	defer cancel()

	if _, err := h.generateNutritionPlan(ctx, planRequest{}); err != nil {
		h.logger.Error("scheduled nutrition plan failed", zap.Error(err))
	}
	if _, err := h.generateWorkoutPlan(ctx, planRequest{}); err != nil {
		h.logger.Error("scheduled workout plan failed", zap.Error(err))
	}
}

// startScheduler runs runScheduledGeneration on spec. The returned cron must
// be stopped on shutdown.
func (h *Handler) startScheduler(spec string) (*cron.Cron, error) {
	if err := validateSchedule(spec); err != nil {
		return nil, err
	}
	c := cron.New()
	if err := c.AddFunc(spec, h.runScheduledGeneration); err != nil {
		return nil, err
	}
	c.Start()
	h.logger.Info("plan scheduler started", zap.String("schedule", spec))
	return c, nil
}
