package domain

import (
	"strconv"
	"strings"
)

// normalizeEnum lower-cases s and folds spaces and hyphens to underscores so
// "Moderately Active", "moderately-active" and "MODERATELY_ACTIVE" all match.
func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

/* ─── Gender ─────────────────────────────────────────────────────────── */

// Gender selects the constant term of the BMR formula.
type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	}
	return "Gender(" + strconv.Itoa(int(g)) + ")"
}

// Valid reports whether g is one of the declared genders.
func (g Gender) Valid() bool {
	switch g {
	case Male, Female:
		return true
	}
	return false
}

// ParseGender accepts "male"/"female" in any case.
func ParseGender(s string) (Gender, error) {
	switch normalizeEnum(s) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return 0, configErr("gender", s)
}

func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, configErr("gender", g.String())
	}
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(b []byte) error {
	v, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

/* ─── Activity level ─────────────────────────────────────────────────── */

// ActivityLevel is ordered from least to most active. The numeric value is the
// index stored in profile CSV files.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	LightlyActive
	ModeratelyActive
	VeryActive
	ExtraActive
)

// ActivityLevels lists every level in ascending order.
var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive}

func (a ActivityLevel) String() string {
	switch a {
	case Sedentary:
		return "sedentary"
	case LightlyActive:
		return "lightly_active"
	case ModeratelyActive:
		return "moderately_active"
	case VeryActive:
		return "very_active"
	case ExtraActive:
		return "extra_active"
	}
	return "ActivityLevel(" + strconv.Itoa(int(a)) + ")"
}

// Valid reports whether a is one of the declared levels.
func (a ActivityLevel) Valid() bool {
	switch a {
	case Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive:
		return true
	}
	return false
}

// ParseActivityLevel accepts the String() form in any case or spacing.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	n := normalizeEnum(s)
	for _, a := range ActivityLevels {
		if a.String() == n {
			return a, nil
		}
	}
	return 0, configErr("activity level", s)
}

// ActivityLevelFromIndex converts a stored CSV index into a level.
func ActivityLevelFromIndex(i int) (ActivityLevel, error) {
	a := ActivityLevel(i)
	if !a.Valid() {
		return 0, configErr("activity level", strconv.Itoa(i))
	}
	return a, nil
}

func (a ActivityLevel) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, configErr("activity level", a.String())
	}
	return []byte(a.String()), nil
}

func (a *ActivityLevel) UnmarshalText(b []byte) error {
	v, err := ParseActivityLevel(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

/* ─── Fitness goal ───────────────────────────────────────────────────── */

// FitnessGoal drives the calorie adjustment, the macro split and the workout
// type distribution. The numeric value is the index stored in goals CSV files.
type FitnessGoal int

const (
	WeightLoss FitnessGoal = iota
	MuscleGain
	Maintenance
)

// FitnessGoals lists every goal in index order.
var FitnessGoals = []FitnessGoal{WeightLoss, MuscleGain, Maintenance}

func (g FitnessGoal) String() string {
	switch g {
	case WeightLoss:
		return "weight_loss"
	case MuscleGain:
		return "muscle_gain"
	case Maintenance:
		return "maintenance"
	}
	return "FitnessGoal(" + strconv.Itoa(int(g)) + ")"
}

// Valid reports whether g is one of the declared goals.
func (g FitnessGoal) Valid() bool {
	switch g {
	case WeightLoss, MuscleGain, Maintenance:
		return true
	}
	return false
}

// ParseFitnessGoal accepts the String() form in any case or spacing.
func ParseFitnessGoal(s string) (FitnessGoal, error) {
	n := normalizeEnum(s)
	for _, g := range FitnessGoals {
		if g.String() == n {
			return g, nil
		}
	}
	return 0, configErr("fitness goal", s)
}

// FitnessGoalFromIndex converts a stored CSV index into a goal.
func FitnessGoalFromIndex(i int) (FitnessGoal, error) {
	g := FitnessGoal(i)
	if !g.Valid() {
		return 0, configErr("fitness goal", strconv.Itoa(i))
	}
	return g, nil
}

func (g FitnessGoal) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, configErr("fitness goal", g.String())
	}
	return []byte(g.String()), nil
}

func (g *FitnessGoal) UnmarshalText(b []byte) error {
	v, err := ParseFitnessGoal(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

/* ─── Exercise type ──────────────────────────────────────────────────── */

// ExerciseType classifies catalog exercises for the workout distribution.
type ExerciseType int

const (
	Strength ExerciseType = iota
	Hypertrophy
	Endurance
	Flexibility
	BalanceAndStability
	Power
	Functional
	Aerobic
	Anaerobic
	RecoveryAndRegeneration
)

// ExerciseTypes lists every exercise type in declaration order.
var ExerciseTypes = []ExerciseType{
	Strength, Hypertrophy, Endurance, Flexibility, BalanceAndStability,
	Power, Functional, Aerobic, Anaerobic, RecoveryAndRegeneration,
}

// String returns the catalog spelling ("Balance and Stability").
func (t ExerciseType) String() string {
	switch t {
	case Strength:
		return "Strength"
	case Hypertrophy:
		return "Hypertrophy"
	case Endurance:
		return "Endurance"
	case Flexibility:
		return "Flexibility"
	case BalanceAndStability:
		return "Balance and Stability"
	case Power:
		return "Power"
	case Functional:
		return "Functional"
	case Aerobic:
		return "Aerobic"
	case Anaerobic:
		return "Anaerobic"
	case RecoveryAndRegeneration:
		return "Recovery and Regeneration"
	}
	return "ExerciseType(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the declared types.
func (t ExerciseType) Valid() bool {
	return t >= Strength && t <= RecoveryAndRegeneration
}

// ParseExerciseType matches the catalog spelling case-insensitively. Unknown
// names are rejected rather than mapped to a catch-all type.
func ParseExerciseType(s string) (ExerciseType, error) {
	n := normalizeEnum(s)
	for _, t := range ExerciseTypes {
		if normalizeEnum(t.String()) == n {
			return t, nil
		}
	}
	return 0, configErr("exercise type", s)
}

func (t ExerciseType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, configErr("exercise type", t.String())
	}
	return []byte(t.String()), nil
}

func (t *ExerciseType) UnmarshalText(b []byte) error {
	v, err := ParseExerciseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

/* ─── Plan type ──────────────────────────────────────────────────────── */

// PlanType labels a weekly workout plan.
type PlanType int

const (
	PlanStrength PlanType = iota
	PlanPower
	PlanHypertrophy
	PlanConditioning
	PlanPush
	PlanPull
	PlanLegs
)

var planTypes = []PlanType{PlanStrength, PlanPower, PlanHypertrophy, PlanConditioning, PlanPush, PlanPull, PlanLegs}

func (p PlanType) String() string {
	switch p {
	case PlanStrength:
		return "Strength"
	case PlanPower:
		return "Power"
	case PlanHypertrophy:
		return "Hypertrophy"
	case PlanConditioning:
		return "Conditioning"
	case PlanPush:
		return "Push"
	case PlanPull:
		return "Pull"
	case PlanLegs:
		return "Legs"
	}
	return "PlanType(" + strconv.Itoa(int(p)) + ")"
}

func (p PlanType) Valid() bool {
	return p >= PlanStrength && p <= PlanLegs
}

// ParsePlanType matches case-insensitively and never defaults.
func ParsePlanType(s string) (PlanType, error) {
	n := normalizeEnum(s)
	for _, p := range planTypes {
		if normalizeEnum(p.String()) == n {
			return p, nil
		}
	}
	return 0, configErr("plan type", s)
}

func (p PlanType) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, configErr("plan type", p.String())
	}
	return []byte(p.String()), nil
}

func (p *PlanType) UnmarshalText(b []byte) error {
	v, err := ParsePlanType(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

/* ─── Meals ──────────────────────────────────────────────────────────── */

// Meal is one of the five daily meal slots, in eating order.
type Meal int

const (
	Breakfast Meal = iota
	Snack1
	Lunch
	Snack2
	Dinner
)

// Meals lists the meal slots in the order they appear in plans and CSV rows.
var Meals = []Meal{Breakfast, Snack1, Lunch, Snack2, Dinner}

func (m Meal) String() string {
	switch m {
	case Breakfast:
		return "Breakfast"
	case Snack1:
		return "Snack1"
	case Lunch:
		return "Lunch"
	case Snack2:
		return "Snack2"
	case Dinner:
		return "Dinner"
	}
	return "Meal(" + strconv.Itoa(int(m)) + ")"
}

func (m Meal) Valid() bool {
	return m >= Breakfast && m <= Dinner
}

func ParseMeal(s string) (Meal, error) {
	n := normalizeEnum(s)
	for _, m := range Meals {
		if normalizeEnum(m.String()) == n {
			return m, nil
		}
	}
	return 0, configErr("meal", s)
}

func (m Meal) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, configErr("meal", m.String())
	}
	return []byte(m.String()), nil
}

func (m *Meal) UnmarshalText(b []byte) error {
	v, err := ParseMeal(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
