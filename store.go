package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

// errNotFound is returned by planStore lookups that match no row.
var errNotFound = errors.New("not found")

// planStore is the persistence the handlers need. Plans are append-only:
// generating a new plan never rewrites an old one.
type planStore interface {
	LoadProfile(ctx context.Context) (domain.Profile, domain.Goals, error)
	SaveProfile(ctx context.Context, p domain.Profile, g domain.Goals) error

	InsertNutritionPlan(ctx context.Context, plan domain.NutritionPlan) error
	LatestNutritionPlan(ctx context.Context) (*domain.NutritionPlan, error)
	NutritionPlan(ctx context.Context, id uuid.UUID) (domain.NutritionPlan, error)
	NutritionPlans(ctx context.Context, start, end string) ([]domain.NutritionPlan, error)

	InsertWorkoutPlan(ctx context.Context, plan domain.WorkoutPlan) error
	LatestWorkoutPlan(ctx context.Context) (*domain.WorkoutPlan, error)
	WorkoutPlan(ctx context.Context, id uuid.UUID) (domain.WorkoutPlan, error)
	WorkoutPlans(ctx context.Context, start, end string) ([]domain.WorkoutPlan, error)
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Query and scan errors are logged (struct/column mismatches show up here).
func queryOne[T any](pool *pgxpool.Pool, logger *zap.Logger, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		logger.Error("query failed", zap.String("fn", "queryOne"), zap.Error(err))
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error("scan failed", zap.String("fn", "queryOne"), zap.Error(err))
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, logger *zap.Logger, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		logger.Error("query failed", zap.String("fn", "queryMany"), zap.Error(err))
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		logger.Error("scan failed", zap.String("fn", "queryMany"), zap.Error(err))
	}
	return results, err
}

// getDBPool creates a connection pool. The simple query protocol avoids
// "cached plan must not change result type" errors from server-side prepared
// statement caches after schema changes.
func getDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

/* ─── Postgres store ─────────────────────────────────────────────────── */

type pgStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func newPGStore(pool *pgxpool.Pool, logger *zap.Logger) *pgStore {
	return &pgStore{pool: pool, logger: logger}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errNotFound
	}
	return err
}

func (s *pgStore) LoadProfile(ctx context.Context) (domain.Profile, domain.Goals, error) {
	row, err := queryOne[profileRow](s.pool, s.logger, ctx, "SELECT * FROM profile WHERE id = 1", nil)
	if err != nil {
		return domain.Profile{}, domain.Goals{}, notFound(err)
	}
	return row.toDomain()
}

func (s *pgStore) SaveProfile(ctx context.Context, p domain.Profile, g domain.Goals) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profile (id, name, gender, age, height_cm, weight_kg, activity_level,
			fitness_goal, target_weight_kg, body_fat_percentage, custom_calories, use_custom_calories)
		 VALUES (1, @name, @gender, @age, @heightCM, @weightKG, @activityLevel,
			@fitnessGoal, @targetWeightKG, @bodyFat, @customCalories, @useCustom)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			gender = EXCLUDED.gender,
			age = EXCLUDED.age,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			activity_level = EXCLUDED.activity_level,
			fitness_goal = EXCLUDED.fitness_goal,
			target_weight_kg = EXCLUDED.target_weight_kg,
			body_fat_percentage = EXCLUDED.body_fat_percentage,
			custom_calories = EXCLUDED.custom_calories,
			use_custom_calories = EXCLUDED.use_custom_calories,
			updated_at = now()`,
		pgx.NamedArgs{
			"name": p.Name, "gender": p.Gender.String(), "age": p.Age,
			"heightCM": p.HeightCM, "weightKG": p.WeightKG,
			"activityLevel": p.ActivityLevel.String(), "fitnessGoal": g.FitnessGoal.String(),
			"targetWeightKG": g.TargetWeightKG, "bodyFat": g.BodyFatPercentage,
			"customCalories": g.CustomCalories, "useCustom": g.UseCustomCalories,
		})
	return err
}

func (s *pgStore) InsertNutritionPlan(ctx context.Context, plan domain.NutritionPlan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode nutrition plan: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO nutrition_plans (id, name, plan_date, target_calories, planned_calories, final_adjustment, plan)
		 VALUES (@id, @name, @date, @target, @planned, @adjustment, @plan::jsonb)`,
		pgx.NamedArgs{
			"id": plan.ID, "name": plan.Name, "date": plan.Date.Format("2006-01-02"),
			"target": plan.Target.Calories, "planned": plan.Totals().Calories,
			"adjustment": plan.FinalAdjustment, "plan": string(body),
		})
	return err
}

func (s *pgStore) LatestNutritionPlan(ctx context.Context) (*domain.NutritionPlan, error) {
	row, err := queryOne[nutritionPlanRow](s.pool, s.logger, ctx,
		"SELECT * FROM nutrition_plans ORDER BY created_at DESC LIMIT 1", nil)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row.Plan, nil
}

func (s *pgStore) NutritionPlan(ctx context.Context, id uuid.UUID) (domain.NutritionPlan, error) {
	row, err := queryOne[nutritionPlanRow](s.pool, s.logger, ctx,
		"SELECT * FROM nutrition_plans WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.NutritionPlan{}, notFound(err)
	}
	return row.Plan, nil
}

func (s *pgStore) NutritionPlans(ctx context.Context, start, end string) ([]domain.NutritionPlan, error) {
	rows, err := queryMany[nutritionPlanRow](s.pool, s.logger, ctx,
		`SELECT * FROM nutrition_plans
		 WHERE plan_date >= @start AND plan_date <= @end
		 ORDER BY plan_date ASC, created_at ASC`,
		pgx.NamedArgs{"start": start, "end": end})
	if err != nil {
		return nil, err
	}
	plans := make([]domain.NutritionPlan, 0, len(rows))
	for _, r := range rows {
		plans = append(plans, r.Plan)
	}
	return plans, nil
}

func (s *pgStore) InsertWorkoutPlan(ctx context.Context, plan domain.WorkoutPlan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode workout plan: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO workout_plans (id, name, plan_date, plan_type, plan)
		 VALUES (@id, @name, @date, @type, @plan::jsonb)`,
		pgx.NamedArgs{
			"id": plan.ID, "name": plan.Name, "date": plan.Date.Format("2006-01-02"),
			"type": plan.Type.String(), "plan": string(body),
		})
	return err
}

func (s *pgStore) LatestWorkoutPlan(ctx context.Context) (*domain.WorkoutPlan, error) {
	row, err := queryOne[workoutPlanRow](s.pool, s.logger, ctx,
		"SELECT * FROM workout_plans ORDER BY created_at DESC LIMIT 1", nil)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row.Plan, nil
}

func (s *pgStore) WorkoutPlan(ctx context.Context, id uuid.UUID) (domain.WorkoutPlan, error) {
	row, err := queryOne[workoutPlanRow](s.pool, s.logger, ctx,
		"SELECT * FROM workout_plans WHERE id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.WorkoutPlan{}, notFound(err)
	}
	return row.Plan, nil
}

func (s *pgStore) WorkoutPlans(ctx context.Context, start, end string) ([]domain.WorkoutPlan, error) {
	rows, err := queryMany[workoutPlanRow](s.pool, s.logger, ctx,
		`SELECT * FROM workout_plans
		 WHERE plan_date >= @start AND plan_date <= @end
		 ORDER BY plan_date ASC, created_at ASC`,
		pgx.NamedArgs{"start": start, "end": end})
	if err != nil {
		return nil, err
	}
	plans := make([]domain.WorkoutPlan, 0, len(rows))
	for _, r := range rows {
		plans = append(plans, r.Plan)
	}
	return plans, nil
}
