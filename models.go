package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan date columns into
// DateOnly. NULL zeroes the time.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

// today returns the current UTC date at midnight.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

/* ─── Database rows ──────────────────────────────────────────────────── */

// profileRow maps to the single-row profile table. Enums are stored by their
// text form so the table stays readable from psql.
type profileRow struct {
	ID                int        `db:"id"`
	Name              string     `db:"name"`
	Gender            string     `db:"gender"`
	Age               int        `db:"age"`
	HeightCM          float64    `db:"height_cm"`
	WeightKG          float64    `db:"weight_kg"`
	ActivityLevel     string     `db:"activity_level"`
	FitnessGoal       string     `db:"fitness_goal"`
	TargetWeightKG    float64    `db:"target_weight_kg"`
	BodyFatPercentage *float64   `db:"body_fat_percentage"`
	CustomCalories    float64    `db:"custom_calories"`
	UseCustomCalories bool       `db:"use_custom_calories"`
	UpdatedAt         *time.Time `db:"updated_at"`
}

// toDomain converts the row, rejecting enum text the engine does not know.
func (r profileRow) toDomain() (domain.Profile, domain.Goals, error) {
	p := domain.Profile{Name: r.Name, Age: r.Age, HeightCM: r.HeightCM, WeightKG: r.WeightKG}
	var err error
	if p.Gender, err = domain.ParseGender(r.Gender); err != nil {
		return p, domain.Goals{}, err
	}
	if p.ActivityLevel, err = domain.ParseActivityLevel(r.ActivityLevel); err != nil {
		return p, domain.Goals{}, err
	}
	g := domain.Goals{
		TargetWeightKG:    r.TargetWeightKG,
		BodyFatPercentage: r.BodyFatPercentage,
		CustomCalories:    r.CustomCalories,
		UseCustomCalories: r.UseCustomCalories,
	}
	if g.FitnessGoal, err = domain.ParseFitnessGoal(r.FitnessGoal); err != nil {
		return p, g, err
	}
	return p, g, nil
}

// nutritionPlanRow maps to nutrition_plans. The full plan lives in the jsonb
// column; the scalar columns exist for listing and reporting queries.
type nutritionPlanRow struct {
	ID              uuid.UUID            `db:"id"`
	Name            string               `db:"name"`
	PlanDate        DateOnly             `db:"plan_date"`
	TargetCalories  float64              `db:"target_calories"`
	PlannedCalories float64              `db:"planned_calories"`
	FinalAdjustment float64              `db:"final_adjustment"`
	Plan            domain.NutritionPlan `db:"plan"`
	CreatedAt       *time.Time           `db:"created_at"`
}

// workoutPlanRow maps to workout_plans.
type workoutPlanRow struct {
	ID        uuid.UUID          `db:"id"`
	Name      string             `db:"name"`
	PlanDate  DateOnly           `db:"plan_date"`
	PlanType  string             `db:"plan_type"`
	Plan      domain.WorkoutPlan `db:"plan"`
	CreatedAt *time.Time         `db:"created_at"`
}

/* ─── Requests / responses ───────────────────────────────────────────── */

// profileRequest is the body of PUT /api/profile and POST /api/targets/preview.
// Enums are accepted by name ("female", "moderately_active", "muscle_gain").
type profileRequest struct {
	Profile domain.Profile `json:"profile"`
	Goals   domain.Goals   `json:"goals"`
}

// profileResponse is returned by GET/PUT /api/profile. The daily calories are
// computed on every read; they are never stored.
type profileResponse struct {
	Profile       domain.Profile `json:"profile"`
	Goals         domain.Goals   `json:"goals"`
	DailyCalories *float64       `json:"daily_calories,omitempty"`
	BMI           float64        `json:"bmi"`
}

// targetResponse is the response of the targets endpoints.
type targetResponse struct {
	BMR           float64               `json:"bmr"`
	TDEE          float64               `json:"tdee"`
	DailyCalories float64               `json:"daily_calories"`
	Custom        bool                  `json:"custom"`
	Target        domain.TotalNutrients `json:"target"`
}

// nutritionPlanResponse adds computed totals to a stored plan.
type nutritionPlanResponse struct {
	domain.NutritionPlan
	Totals     domain.TotalNutrients            `json:"totals"`
	MealTotals map[string]domain.TotalNutrients `json:"meal_totals"`
}

func newNutritionPlanResponse(p domain.NutritionPlan) nutritionPlanResponse {
	meals := make(map[string]domain.TotalNutrients, len(domain.Meals))
	for _, m := range domain.Meals {
		meals[m.String()] = p.MealTotals(m)
	}
	return nutritionPlanResponse{NutritionPlan: p, Totals: p.Totals(), MealTotals: meals}
}

// importSummary is the response of the catalog CSV import endpoints.
type importSummary struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors"`
}

func newImportSummary(accepted, rejected int, errs []*domain.ParseError) importSummary {
	s := importSummary{Accepted: accepted, Rejected: rejected, Errors: make([]string, 0, len(errs))}
	for _, e := range errs {
		s.Errors = append(s.Errors, e.Error())
	}
	return s
}
