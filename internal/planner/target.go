// Package planner is the plan generation engine: nutrient targets, nutrition
// plans and workout plans. Every function here is pure and synchronous; the
// caller owns persistence and must serialize calls for a given profile.
package planner

import (
	"github.com/martinle068/FitnnessApp/internal/domain"
)

// Calorie adjustment applied on top of TDEE for the non-maintenance goals.
const goalAdjustmentKcal = 500.0

// MacroRatios is the share of daily calories supplied by each macro.
type MacroRatios struct {
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// BMR computes basal metabolic rate with Mifflin-St Jeor:
// 10·kg + 6.25·cm − 5·age, +5 for men and −161 for women.
func BMR(p domain.Profile) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	base := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	switch p.Gender {
	case domain.Male:
		return base + 5, nil
	case domain.Female:
		return base - 161, nil
	}
	return 0, &domain.ConfigurationError{Kind: "gender", Value: p.Gender.String()}
}

// ActivityMultiplier returns the TDEE factor for level. This is the single
// source of truth for the multipliers.
func ActivityMultiplier(level domain.ActivityLevel) (float64, error) {
	switch level {
	case domain.Sedentary:
		return 1.2, nil
	case domain.LightlyActive:
		return 1.375, nil
	case domain.ModeratelyActive:
		return 1.55, nil
	case domain.VeryActive:
		return 1.725, nil
	case domain.ExtraActive:
		return 1.9, nil
	}
	return 0, &domain.ConfigurationError{Kind: "activity level", Value: level.String()}
}

// TDEE is BMR scaled by the activity multiplier.
func TDEE(p domain.Profile) (float64, error) {
	bmr, err := BMR(p)
	if err != nil {
		return 0, err
	}
	mult, err := ActivityMultiplier(p.ActivityLevel)
	if err != nil {
		return 0, err
	}
	return bmr * mult, nil
}

// GoalAdjustment returns the kcal added to TDEE for goal.
func GoalAdjustment(goal domain.FitnessGoal) (float64, error) {
	switch goal {
	case domain.WeightLoss:
		return -goalAdjustmentKcal, nil
	case domain.MuscleGain:
		return goalAdjustmentKcal, nil
	case domain.Maintenance:
		return 0, nil
	}
	return 0, &domain.ConfigurationError{Kind: "fitness goal", Value: goal.String()}
}

// RatiosFor returns the macro split for goal.
func RatiosFor(goal domain.FitnessGoal) (MacroRatios, error) {
	switch goal {
	case domain.WeightLoss:
		return MacroRatios{Protein: 0.30, Carbohydrates: 0.40, Fats: 0.30}, nil
	case domain.MuscleGain:
		return MacroRatios{Protein: 0.30, Carbohydrates: 0.45, Fats: 0.25}, nil
	case domain.Maintenance:
		return MacroRatios{Protein: 0.25, Carbohydrates: 0.50, Fats: 0.25}, nil
	}
	return MacroRatios{}, &domain.ConfigurationError{Kind: "fitness goal", Value: goal.String()}
}

// DailyCalories derives the calorie target. A custom override wins over the
// calculated value; the profile is still validated so a broken profile is
// never masked by the override.
func DailyCalories(p domain.Profile, g domain.Goals) (float64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	tdee, err := TDEE(p)
	if err != nil {
		return 0, err
	}
	if g.UseCustomCalories {
		return g.CustomCalories, nil
	}
	adj, err := GoalAdjustment(g.FitnessGoal)
	if err != nil {
		return 0, err
	}
	kcal := tdee + adj
	if kcal <= 0 {
		return 0, &domain.ValidationError{Field: "daily_calories", Reason: "profile yields a non-positive calorie target"}
	}
	return kcal, nil
}

// ComputeTarget converts a profile and goals into the daily nutrient target:
// calories from DailyCalories, split into grams with RatiosFor and the
// 4/4/9 kcal-per-gram energy densities.
func ComputeTarget(p domain.Profile, g domain.Goals) (domain.TotalNutrients, error) {
	kcal, err := DailyCalories(p, g)
	if err != nil {
		return domain.TotalNutrients{}, err
	}
	ratios, err := RatiosFor(g.FitnessGoal)
	if err != nil {
		return domain.TotalNutrients{}, err
	}
	return domain.TotalNutrients{
		Calories:      kcal,
		Protein:       kcal * ratios.Protein / domain.KcalPerGramProtein,
		Carbohydrates: kcal * ratios.Carbohydrates / domain.KcalPerGramCarbohydrate,
		Fats:          kcal * ratios.Fats / domain.KcalPerGramFat,
	}, nil
}
