// Package csvio reads and writes the comma-separated files the console app
// keeps its catalog, profile and plan history in.
//
// Record layouts:
//
//	food_items.csv       name,cat1;cat2;,calories,protein,carbohydrates,fats,portion
//	exercises.csv        name,Type,group1;group2,repetitions,sets
//	nutrition_plans.csv  name,<Breakfast>,<Snack1>,<Lunch>,<Snack2>,<Dinner>,finalAdjustment
//	workout_plans.csv    name,PlanType,<Monday>,...,<Sunday>
//	profile.csv          name,age,Male|Female,heightCm,weightKg,activityIndex
//	goals.csv            targetWeight,bodyFat,goalIndex,customCalories,useCustom
//
// Meal cells hold `food=grams` pairs and day cells hold `exercise=SETSxREPS`
// pairs, both separated by ';'.
package csvio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

const listSep = ";"

func parseErr(reason string, err error) *domain.ParseError {
	return &domain.ParseError{Reason: reason, Err: err}
}

func wantFields(fields []string, n int, what string) error {
	if len(fields) != n {
		return parseErr(fmt.Sprintf("%s record has %d fields, want %d", what, len(fields), n), nil)
	}
	return nil
}

func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, parseErr("field "+field, err)
	}
	return v, nil
}

func parseInt(s, field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, parseErr("field "+field, err)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// splitList splits a ';' list, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

/* ─── Catalog ────────────────────────────────────────────────────────── */

// ParseFoodItem converts a food_items.csv record.
func ParseFoodItem(fields []string) (domain.FoodItem, error) {
	if err := wantFields(fields, 7, "food"); err != nil {
		return domain.FoodItem{}, err
	}
	f := domain.FoodItem{
		Name:       strings.TrimSpace(fields[0]),
		Categories: splitList(fields[1]),
	}
	var err error
	if f.Calories, err = parseInt(fields[2], "calories"); err != nil {
		return domain.FoodItem{}, err
	}
	if f.Protein, err = parseFloat(fields[3], "protein"); err != nil {
		return domain.FoodItem{}, err
	}
	if f.Carbohydrates, err = parseFloat(fields[4], "carbohydrates"); err != nil {
		return domain.FoodItem{}, err
	}
	if f.Fats, err = parseFloat(fields[5], "fats"); err != nil {
		return domain.FoodItem{}, err
	}
	if f.Portion, err = parseFloat(fields[6], "portion"); err != nil {
		return domain.FoodItem{}, err
	}
	if err := f.Validate(); err != nil {
		return domain.FoodItem{}, err
	}
	return f, nil
}

// FormatFoodItem is the inverse of ParseFoodItem. Every category is followed
// by ';', as the console app has always written them.
func FormatFoodItem(f domain.FoodItem) []string {
	var cats strings.Builder
	for _, c := range f.Categories {
		cats.WriteString(c)
		cats.WriteString(listSep)
	}
	return []string{
		f.Name,
		cats.String(),
		strconv.Itoa(f.Calories),
		formatFloat(f.Protein),
		formatFloat(f.Carbohydrates),
		formatFloat(f.Fats),
		formatFloat(f.Portion),
	}
}

// ParseExercise converts an exercises.csv record. An unknown type is a
// ConfigurationError wrapped in the returned ParseError.
func ParseExercise(fields []string) (domain.Exercise, error) {
	if err := wantFields(fields, 5, "exercise"); err != nil {
		return domain.Exercise{}, err
	}
	typ, err := domain.ParseExerciseType(fields[1])
	if err != nil {
		return domain.Exercise{}, parseErr("field type", err)
	}
	e := domain.Exercise{
		Name:         strings.TrimSpace(fields[0]),
		Type:         typ,
		MuscleGroups: splitList(fields[2]),
	}
	if e.Repetitions, err = parseInt(fields[3], "repetitions"); err != nil {
		return domain.Exercise{}, err
	}
	if e.Sets, err = parseInt(fields[4], "sets"); err != nil {
		return domain.Exercise{}, err
	}
	if err := e.Validate(); err != nil {
		return domain.Exercise{}, err
	}
	return e, nil
}

func FormatExercise(e domain.Exercise) []string {
	return []string{
		e.Name,
		e.Type.String(),
		strings.Join(e.MuscleGroups, listSep),
		strconv.Itoa(e.Repetitions),
		strconv.Itoa(e.Sets),
	}
}

/* ─── Profile and goals ──────────────────────────────────────────────── */

// ParseProfile converts the single profile.csv record. The activity level is
// stored as its index.
func ParseProfile(fields []string) (domain.Profile, error) {
	if err := wantFields(fields, 6, "profile"); err != nil {
		return domain.Profile{}, err
	}
	p := domain.Profile{Name: strings.TrimSpace(fields[0])}
	var err error
	if p.Age, err = parseInt(fields[1], "age"); err != nil {
		return domain.Profile{}, err
	}
	if p.Gender, err = domain.ParseGender(fields[2]); err != nil {
		return domain.Profile{}, parseErr("field gender", err)
	}
	if p.HeightCM, err = parseFloat(fields[3], "height"); err != nil {
		return domain.Profile{}, err
	}
	if p.WeightKG, err = parseFloat(fields[4], "weight"); err != nil {
		return domain.Profile{}, err
	}
	idx, err := parseInt(fields[5], "activity level")
	if err != nil {
		return domain.Profile{}, err
	}
	if p.ActivityLevel, err = domain.ActivityLevelFromIndex(idx); err != nil {
		return domain.Profile{}, parseErr("field activity level", err)
	}
	if err := p.Validate(); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

func FormatProfile(p domain.Profile) []string {
	return []string{
		p.Name,
		strconv.Itoa(p.Age),
		p.Gender.String(),
		formatFloat(p.HeightCM),
		formatFloat(p.WeightKG),
		strconv.Itoa(int(p.ActivityLevel)),
	}
}

// ParseGoals converts the single goals.csv record. An empty body fat field
// means "not recorded"; useCustom accepts 0/1 and true/false.
func ParseGoals(fields []string) (domain.Goals, error) {
	if err := wantFields(fields, 5, "goals"); err != nil {
		return domain.Goals{}, err
	}
	var g domain.Goals
	var err error
	if g.TargetWeightKG, err = parseFloat(fields[0], "target weight"); err != nil {
		return domain.Goals{}, err
	}
	if s := strings.TrimSpace(fields[1]); s != "" {
		bf, err := parseFloat(s, "body fat")
		if err != nil {
			return domain.Goals{}, err
		}
		g.BodyFatPercentage = &bf
	}
	idx, err := parseInt(fields[2], "fitness goal")
	if err != nil {
		return domain.Goals{}, err
	}
	if g.FitnessGoal, err = domain.FitnessGoalFromIndex(idx); err != nil {
		return domain.Goals{}, parseErr("field fitness goal", err)
	}
	if g.CustomCalories, err = parseFloat(fields[3], "custom calories"); err != nil {
		return domain.Goals{}, err
	}
	if g.UseCustomCalories, err = strconv.ParseBool(strings.TrimSpace(fields[4])); err != nil {
		return domain.Goals{}, parseErr("field use custom calories", err)
	}
	if err := g.Validate(); err != nil {
		return domain.Goals{}, err
	}
	return g, nil
}

func FormatGoals(g domain.Goals) []string {
	bf := ""
	if g.BodyFatPercentage != nil {
		bf = formatFloat(*g.BodyFatPercentage)
	}
	use := "0"
	if g.UseCustomCalories {
		use = "1"
	}
	return []string{
		formatFloat(g.TargetWeightKG),
		bf,
		strconv.Itoa(int(g.FitnessGoal)),
		formatFloat(g.CustomCalories),
		use,
	}
}

/* ─── Plans ──────────────────────────────────────────────────────────── */

// ParseNutritionPlan converts a nutrition_plans.csv record. Foods are
// resolved by name against foods; an unknown food rejects the record. A
// missing or empty final adjustment reads as 0.
func ParseNutritionPlan(fields []string, foods map[string]domain.FoodItem) (domain.NutritionPlan, error) {
	want := 1 + len(domain.Meals)
	if len(fields) != want && len(fields) != want+1 {
		return domain.NutritionPlan{}, parseErr(fmt.Sprintf("nutrition plan record has %d fields, want %d or %d", len(fields), want, want+1), nil)
	}
	plan := domain.NewNutritionPlan(strings.TrimSpace(fields[0]))
	for i, meal := range domain.Meals {
		for _, pair := range splitList(fields[1+i]) {
			name, grams, ok := strings.Cut(pair, "=")
			if !ok {
				return domain.NutritionPlan{}, parseErr(fmt.Sprintf("%s item %q: want food=grams", meal, pair), nil)
			}
			f, found := foods[strings.TrimSpace(name)]
			if !found {
				return domain.NutritionPlan{}, parseErr(fmt.Sprintf("%s item %q: unknown food", meal, name), nil)
			}
			g, err := parseFloat(grams, meal.String()+" grams")
			if err != nil {
				return domain.NutritionPlan{}, err
			}
			if g <= 0 {
				return domain.NutritionPlan{}, parseErr(fmt.Sprintf("%s item %q: grams must be positive", meal, name), nil)
			}
			plan.AddItem(meal, domain.PlanItem{Food: f, Grams: g})
		}
	}
	if len(fields) == want+1 {
		if s := strings.TrimSpace(fields[want]); s != "" {
			adj, err := parseFloat(s, "final adjustment")
			if err != nil {
				return domain.NutritionPlan{}, err
			}
			plan.FinalAdjustment = adj
		}
	}
	return plan, nil
}

func FormatNutritionPlan(p domain.NutritionPlan) []string {
	out := []string{p.Name}
	for _, meal := range domain.Meals {
		var pairs []string
		for _, it := range p.MealItems(meal) {
			pairs = append(pairs, it.Food.Name+"="+formatFloat(it.Grams))
		}
		out = append(out, strings.Join(pairs, listSep))
	}
	return append(out, formatFloat(p.FinalAdjustment))
}

// ParseWorkoutPlan converts a workout_plans.csv record. Exercises are
// resolved against exercises when present; names missing from the catalog
// are kept with only their name so history survives catalog edits. A
// trailing empty field is tolerated.
func ParseWorkoutPlan(fields []string, exercises map[string]domain.Exercise) (domain.WorkoutPlan, error) {
	want := 2 + len(domain.WeekDays)
	if len(fields) == want+1 && strings.TrimSpace(fields[want]) == "" {
		fields = fields[:want]
	}
	if err := wantFields(fields, want, "workout plan"); err != nil {
		return domain.WorkoutPlan{}, err
	}
	typ, err := domain.ParsePlanType(fields[1])
	if err != nil {
		return domain.WorkoutPlan{}, parseErr("field plan type", err)
	}
	plan := domain.WorkoutPlan{Name: strings.TrimSpace(fields[0]), Type: typ}
	for i, day := range domain.WeekDays {
		session := domain.Session{Day: day, Exercises: []domain.PrescribedExercise{}}
		for _, pair := range splitList(fields[2+i]) {
			pe, err := parsePrescription(pair, exercises)
			if err != nil {
				return domain.WorkoutPlan{}, parseErr(day.String(), err)
			}
			session.Exercises = append(session.Exercises, pe)
		}
		plan.Sessions = append(plan.Sessions, session)
	}
	return plan, nil
}

func parsePrescription(pair string, exercises map[string]domain.Exercise) (domain.PrescribedExercise, error) {
	name, volume, ok := strings.Cut(pair, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return domain.PrescribedExercise{}, fmt.Errorf("item %q: want exercise=SETSxREPS", pair)
	}
	setsStr, repsStr, ok := strings.Cut(strings.ToLower(volume), "x")
	if !ok {
		return domain.PrescribedExercise{}, fmt.Errorf("item %q: want SETSxREPS", pair)
	}
	sets, err := strconv.Atoi(strings.TrimSpace(setsStr))
	if err != nil {
		return domain.PrescribedExercise{}, fmt.Errorf("item %q sets: %w", pair, err)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(repsStr))
	if err != nil {
		return domain.PrescribedExercise{}, fmt.Errorf("item %q reps: %w", pair, err)
	}
	if sets <= 0 || reps <= 0 {
		return domain.PrescribedExercise{}, fmt.Errorf("item %q: sets and reps must be positive", pair)
	}
	ex, found := exercises[name]
	if !found {
		ex = domain.Exercise{Name: name}
	}
	return domain.PrescribedExercise{Exercise: ex, Sets: sets, Reps: reps}, nil
}

func FormatWorkoutPlan(p domain.WorkoutPlan) []string {
	out := []string{p.Name, p.Type.String()}
	for _, day := range domain.WeekDays {
		var pairs []string
		if s, ok := p.Session(day); ok {
			for _, pe := range s.Exercises {
				pairs = append(pairs, fmt.Sprintf("%s=%dx%d", pe.Exercise.Name, pe.Sets, pe.Reps))
			}
		}
		out = append(out, strings.Join(pairs, listSep))
	}
	return out
}
