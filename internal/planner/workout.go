package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/martinle068/FitnnessApp/internal/catalog"
	"github.com/martinle068/FitnnessApp/internal/domain"
)

// TypeSlot asks for Count exercises of Type in every session.
type TypeSlot struct {
	Type  domain.ExerciseType `json:"type"`
	Count int                 `json:"count"`
}

// Distribution maps a goal to the exercise types of one session.
func Distribution(goal domain.FitnessGoal) ([]TypeSlot, error) {
	switch goal {
	case domain.MuscleGain:
		return []TypeSlot{
			{domain.Strength, 2},
			{domain.Hypertrophy, 2},
			{domain.Power, 1},
		}, nil
	case domain.WeightLoss:
		return []TypeSlot{
			{domain.Aerobic, 2},
			{domain.Functional, 1},
			{domain.Anaerobic, 1},
			{domain.Endurance, 1},
		}, nil
	case domain.Maintenance:
		return []TypeSlot{
			{domain.Functional, 2},
			{domain.Strength, 1},
			{domain.Flexibility, 1},
			{domain.BalanceAndStability, 1},
		}, nil
	}
	return nil, &domain.ConfigurationError{Kind: "workout distribution for fitness goal", Value: goal.String()}
}

// PlanTypeFor labels the weekly plan generated for goal.
func PlanTypeFor(goal domain.FitnessGoal) (domain.PlanType, error) {
	switch goal {
	case domain.MuscleGain:
		return domain.PlanHypertrophy, nil
	case domain.WeightLoss:
		return domain.PlanConditioning, nil
	case domain.Maintenance:
		return domain.PlanStrength, nil
	}
	return 0, &domain.ConfigurationError{Kind: "fitness goal", Value: goal.String()}
}

// defaultVolume is used when a catalog entry carries no sets or reps.
func defaultVolume(goal domain.FitnessGoal) (sets, reps int, err error) {
	switch goal {
	case domain.MuscleGain:
		return 4, 8, nil
	case domain.WeightLoss:
		return 3, 15, nil
	case domain.Maintenance:
		return 3, 10, nil
	}
	return 0, 0, &domain.ConfigurationError{Kind: "fitness goal", Value: goal.String()}
}

// WorkoutBuilder assembles a weekly WorkoutPlan. Days not in TrainingDays get
// an empty session.
type WorkoutBuilder struct {
	TrainingDays []time.Weekday
}

// DefaultTrainingDays is Monday, Wednesday and Friday.
var DefaultTrainingDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

func DefaultWorkoutBuilder() WorkoutBuilder {
	return WorkoutBuilder{TrainingDays: DefaultTrainingDays}
}

// GenerateWorkoutPlan builds a plan with the default training days.
func GenerateWorkoutPlan(goals domain.Goals, exercises []domain.Exercise, previous *domain.WorkoutPlan) (domain.WorkoutPlan, error) {
	return DefaultWorkoutBuilder().Generate(goals, exercises, previous)
}

// exerciseCandidate is ranked by better; see Generate.
type exerciseCandidate struct {
	ex       domain.Exercise
	disjoint bool // shares no muscle group with the previous session
	novel    bool // absent from the previous plan
	fresh    bool // not yet used this week
	load     int  // times its muscle groups were trained this week
}

func (a exerciseCandidate) better(b exerciseCandidate) bool {
	if a.disjoint != b.disjoint {
		return a.disjoint
	}
	if a.novel != b.novel {
		return a.novel
	}
	if a.fresh != b.fresh {
		return a.fresh
	}
	if a.load != b.load {
		return a.load < b.load
	}
	return a.ex.Name < b.ex.Name
}

// weekState tracks what the plan has scheduled so far.
type weekState struct {
	prevPlan    map[string]bool
	lastGroups  map[string]bool
	usedInWeek  map[string]bool
	groupCounts map[string]int
}

// Generate fills every training day with the goal's type distribution.
// Exercises are ranked by: no muscle-group overlap with the previous session
// (the previous training day, or the last session of previous), absence from
// previous, not yet used this week, least-trained muscle groups, then name.
// A slot whose type has no remaining exercise is filled from the other types
// of the distribution; an exercise never repeats within a session.
func (b WorkoutBuilder) Generate(goals domain.Goals, exercises []domain.Exercise, previous *domain.WorkoutPlan) (domain.WorkoutPlan, error) {
	slots, err := Distribution(goals.FitnessGoal)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	planType, err := PlanTypeFor(goals.FitnessGoal)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	defSets, defReps, err := defaultVolume(goals.FitnessGoal)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	if len(exercises) == 0 {
		return domain.WorkoutPlan{}, &domain.EmptyCatalogError{Catalog: "exercise"}
	}

	days, err := trainingDaySet(b.TrainingDays)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}

	var mapped []domain.Exercise
	byType := make(map[domain.ExerciseType][]domain.Exercise, len(slots))
	for _, s := range slots {
		byType[s.Type] = catalog.ExercisesOfType(exercises, s.Type)
		mapped = append(mapped, byType[s.Type]...)
	}
	if len(mapped) == 0 {
		return domain.WorkoutPlan{}, &domain.EmptyCatalogError{
			Catalog: "exercise",
			Detail:  "no exercises of the types used for goal " + goals.FitnessGoal.String(),
		}
	}

	st := weekState{
		prevPlan:    make(map[string]bool),
		lastGroups:  map[string]bool{},
		usedInWeek:  make(map[string]bool),
		groupCounts: make(map[string]int),
	}
	if previous != nil {
		for _, s := range previous.Sessions {
			for _, pe := range s.Exercises {
				st.prevPlan[pe.Exercise.Name] = true
			}
		}
		if last, ok := previous.LastSession(); ok {
			st.lastGroups = last.MuscleGroups()
		}
	}

	plan := domain.WorkoutPlan{Type: planType}
	for _, day := range domain.WeekDays {
		session := domain.Session{Day: day, Exercises: []domain.PrescribedExercise{}}
		if !days[day] {
			plan.Sessions = append(plan.Sessions, session)
			continue
		}
		inSession := make(map[string]bool)
		for _, slot := range slots {
			for i := 0; i < slot.Count; i++ {
				ex, ok := pickExercise(byType[slot.Type], st, inSession)
				if !ok {
					ex, ok = pickExercise(mapped, st, inSession)
				}
				if !ok {
					continue
				}
				session.Exercises = append(session.Exercises, prescribe(ex, defSets, defReps))
				inSession[ex.Name] = true
				st.usedInWeek[ex.Name] = true
				for _, g := range ex.MuscleGroups {
					st.groupCounts[strings.ToLower(g)]++
				}
			}
		}
		st.lastGroups = session.MuscleGroups()
		plan.Sessions = append(plan.Sessions, session)
	}
	return plan, nil
}

func pickExercise(pool []domain.Exercise, st weekState, inSession map[string]bool) (domain.Exercise, bool) {
	var best exerciseCandidate
	found := false
	for _, ex := range pool {
		if inSession[ex.Name] {
			continue
		}
		c := exerciseCandidate{
			ex:       ex,
			disjoint: true,
			novel:    !st.prevPlan[ex.Name],
			fresh:    !st.usedInWeek[ex.Name],
		}
		for _, g := range ex.MuscleGroups {
			g = strings.ToLower(g)
			if st.lastGroups[g] {
				c.disjoint = false
			}
			c.load += st.groupCounts[g]
		}
		if !found || c.better(best) {
			best, found = c, true
		}
	}
	return best.ex, found
}

func prescribe(ex domain.Exercise, defSets, defReps int) domain.PrescribedExercise {
	pe := domain.PrescribedExercise{Exercise: ex, Sets: ex.Sets, Reps: ex.Repetitions}
	if pe.Sets <= 0 {
		pe.Sets = defSets
	}
	if pe.Reps <= 0 {
		pe.Reps = defReps
	}
	return pe
}

// trainingDaySet validates days; an empty list means the defaults.
func trainingDaySet(days []time.Weekday) (map[time.Weekday]bool, error) {
	if len(days) == 0 {
		days = DefaultTrainingDays
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return nil, &domain.ValidationError{Field: "training_days", Reason: "unknown weekday " + d.String()}
		}
		set[d] = true
	}
	return set, nil
}

// SortedTrainingDays returns days in Monday-first week order without
// duplicates.
func SortedTrainingDays(days []time.Weekday) []time.Weekday {
	rank := func(d time.Weekday) int { return (int(d) + 6) % 7 }
	seen := make(map[time.Weekday]bool)
	var out []time.Weekday
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}
