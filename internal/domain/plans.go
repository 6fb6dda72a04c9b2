package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WeekDays lists the days of a workout week, Monday first.
var WeekDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ParseWeekday accepts full English day names in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for _, d := range WeekDays {
		if strings.ToLower(d.String()) == n {
			return d, nil
		}
	}
	return 0, configErr("weekday", s)
}

/* ─── Nutrition plan ─────────────────────────────────────────────────── */

// PlanItem is a scaled copy of a catalog food.
type PlanItem struct {
	Food  FoodItem `json:"food"`
	Grams float64  `json:"grams"`
}

// Nutrients returns the item's contribution to its plan.
func (it PlanItem) Nutrients() TotalNutrients {
	return it.Food.NutrientsFor(it.Grams)
}

// MealPlan is the ordered list of items eaten at one meal.
type MealPlan struct {
	Meal  Meal       `json:"meal"`
	Items []PlanItem `json:"items"`
}

// NutritionPlan is one generated (or hand-written) day of eating. Meals are
// always present in Meals order, possibly empty. FinalAdjustment records
// Target.Calories minus the calories actually planned.
type NutritionPlan struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Date            time.Time      `json:"date"`
	Meals           []MealPlan     `json:"meals"`
	Target          TotalNutrients `json:"target"`
	FinalAdjustment float64        `json:"final_adjustment"`
}

// NewNutritionPlan returns a plan with every meal slot present and empty.
func NewNutritionPlan(name string) NutritionPlan {
	meals := make([]MealPlan, len(Meals))
	for i, m := range Meals {
		meals[i] = MealPlan{Meal: m, Items: []PlanItem{}}
	}
	return NutritionPlan{Name: name, Meals: meals}
}

// MealItems returns the items of meal m, or nil when the slot is absent.
func (p NutritionPlan) MealItems(m Meal) []PlanItem {
	for _, mp := range p.Meals {
		if mp.Meal == m {
			return mp.Items
		}
	}
	return nil
}

// AddItem appends item to meal m, creating the slot if needed.
func (p *NutritionPlan) AddItem(m Meal, item PlanItem) {
	for i := range p.Meals {
		if p.Meals[i].Meal == m {
			p.Meals[i].Items = append(p.Meals[i].Items, item)
			return
		}
	}
	p.Meals = append(p.Meals, MealPlan{Meal: m, Items: []PlanItem{item}})
}

// Items returns every item in meal order.
func (p NutritionPlan) Items() []PlanItem {
	var all []PlanItem
	for _, mp := range p.Meals {
		all = append(all, mp.Items...)
	}
	return all
}

// Totals sums every item's contribution in meal order.
func (p NutritionPlan) Totals() TotalNutrients {
	return SumOf(p.Items())
}

// MealTotals sums the contribution of one meal.
func (p NutritionPlan) MealTotals(m Meal) TotalNutrients {
	return SumOf(p.MealItems(m))
}

// Portions maps each food name to its total planned grams across meals.
func (p NutritionPlan) Portions() map[string]PlanItem {
	out := make(map[string]PlanItem)
	for _, it := range p.Items() {
		cur, ok := out[it.Food.Name]
		if !ok {
			out[it.Food.Name] = it
			continue
		}
		cur.Grams += it.Grams
		out[it.Food.Name] = cur
	}
	return out
}

// Contains reports whether the plan includes a food with the given name.
func (p NutritionPlan) Contains(foodName string) bool {
	for _, it := range p.Items() {
		if it.Food.Name == foodName {
			return true
		}
	}
	return false
}

/* ─── Workout plan ───────────────────────────────────────────────────── */

// PrescribedExercise is a copy of a catalog exercise with the volume chosen
// for this plan.
type PrescribedExercise struct {
	Exercise Exercise `json:"exercise"`
	Sets     int      `json:"sets"`
	Reps     int      `json:"reps"`
}

// Session is one training day.
type Session struct {
	Day       time.Weekday         `json:"day"`
	Exercises []PrescribedExercise `json:"exercises"`
}

// MuscleGroups returns the distinct muscle groups trained in the session.
func (s Session) MuscleGroups() map[string]bool {
	out := make(map[string]bool)
	for _, pe := range s.Exercises {
		for _, g := range pe.Exercise.MuscleGroups {
			out[strings.ToLower(g)] = true
		}
	}
	return out
}

// WorkoutPlan is a week of sessions ordered Monday to Sunday.
type WorkoutPlan struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Type     PlanType  `json:"type"`
	Sessions []Session `json:"sessions"`
}

// Session returns the session scheduled on day.
func (w WorkoutPlan) Session(day time.Weekday) (Session, bool) {
	for _, s := range w.Sessions {
		if s.Day == day {
			return s, true
		}
	}
	return Session{}, false
}

// LastSession returns the latest non-empty session of the week.
func (w WorkoutPlan) LastSession() (Session, bool) {
	for i := len(WeekDays) - 1; i >= 0; i-- {
		if s, ok := w.Session(WeekDays[i]); ok && len(s.Exercises) > 0 {
			return s, true
		}
	}
	return Session{}, false
}

// Contains reports whether any session includes the named exercise.
func (w WorkoutPlan) Contains(exerciseName string) bool {
	for _, s := range w.Sessions {
		for _, pe := range s.Exercises {
			if pe.Exercise.Name == exerciseName {
				return true
			}
		}
	}
	return false
}
