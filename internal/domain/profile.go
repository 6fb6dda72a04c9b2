package domain

import (
	"math"
)

// Profile is the single user's body profile. Heights are centimetres and
// weights kilograms throughout the engine.
type Profile struct {
	Name          string        `json:"name"`
	Gender        Gender        `json:"gender"`
	Age           int           `json:"age"`
	HeightCM      float64       `json:"height_cm"`
	WeightKG      float64       `json:"weight_kg"`
	ActivityLevel ActivityLevel `json:"activity_level"`
}

// Validate fails fast on values the calculator cannot use. Unknown enum values
// are ConfigurationErrors; non-positive measurements are ValidationErrors.
func (p Profile) Validate() error {
	if !p.Gender.Valid() {
		return configErr("gender", p.Gender.String())
	}
	if !p.ActivityLevel.Valid() {
		return configErr("activity level", p.ActivityLevel.String())
	}
	if p.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be greater than 0"}
	}
	if p.HeightCM <= 0 || math.IsNaN(p.HeightCM) || math.IsInf(p.HeightCM, 0) {
		return &ValidationError{Field: "height_cm", Reason: "must be greater than 0"}
	}
	if p.WeightKG <= 0 || math.IsNaN(p.WeightKG) || math.IsInf(p.WeightKG, 0) {
		return &ValidationError{Field: "weight_kg", Reason: "must be greater than 0"}
	}
	return nil
}

// BMI returns weight / height² (kg/m²). Zero when height is unset.
func (p Profile) BMI() float64 {
	if p.HeightCM <= 0 {
		return 0
	}
	m := p.HeightCM / 100
	return p.WeightKG / (m * m)
}

// Goals holds the user's fitness goal. Daily calories are never stored here:
// they are derived from Profile + Goals on every read unless a custom
// override is active.
type Goals struct {
	FitnessGoal       FitnessGoal `json:"fitness_goal"`
	TargetWeightKG    float64     `json:"target_weight_kg"`
	BodyFatPercentage *float64    `json:"body_fat_percentage,omitempty"`
	CustomCalories    float64     `json:"custom_calories"`
	UseCustomCalories bool        `json:"use_custom_calories"`
}

// Validate checks the goal enum and the optional numeric fields.
func (g Goals) Validate() error {
	if !g.FitnessGoal.Valid() {
		return configErr("fitness goal", g.FitnessGoal.String())
	}
	if g.TargetWeightKG < 0 {
		return &ValidationError{Field: "target_weight_kg", Reason: "must not be negative"}
	}
	if g.BodyFatPercentage != nil && (*g.BodyFatPercentage < 0 || *g.BodyFatPercentage > 100) {
		return &ValidationError{Field: "body_fat_percentage", Reason: "must be between 0 and 100"}
	}
	if g.UseCustomCalories && g.CustomCalories <= 0 {
		return &ValidationError{Field: "custom_calories", Reason: "must be greater than 0 when enabled"}
	}
	return nil
}

// SetCustomCalories pins the daily calorie target to kcal, bypassing the
// calculator until ResetToCalculatedCalories is called.
func (g *Goals) SetCustomCalories(kcal float64) error {
	if kcal <= 0 || math.IsNaN(kcal) || math.IsInf(kcal, 0) {
		return &ValidationError{Field: "custom_calories", Reason: "must be greater than 0"}
	}
	g.CustomCalories = kcal
	g.UseCustomCalories = true
	return nil
}

// ResetToCalculatedCalories drops the custom override.
func (g *Goals) ResetToCalculatedCalories() {
	g.UseCustomCalories = false
}
