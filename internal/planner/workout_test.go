package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

func makeExercises() []domain.Exercise {
	return []domain.Exercise{
		{Name: "Back Squat", Type: domain.Strength, MuscleGroups: []string{"legs"}, Repetitions: 5, Sets: 5},
		{Name: "Bench Press", Type: domain.Strength, MuscleGroups: []string{"chest"}},
		{Name: "Deadlift", Type: domain.Strength, MuscleGroups: []string{"back", "legs"}},
		{Name: "Overhead Press", Type: domain.Strength, MuscleGroups: []string{"shoulders"}},
		{Name: "Bicep Curl", Type: domain.Hypertrophy, MuscleGroups: []string{"arms"}},
		{Name: "Leg Extension", Type: domain.Hypertrophy, MuscleGroups: []string{"legs"}},
		{Name: "Lateral Raise", Type: domain.Hypertrophy, MuscleGroups: []string{"shoulders"}},
		{Name: "Chest Fly", Type: domain.Hypertrophy, MuscleGroups: []string{"chest"}},
		{Name: "Box Jump", Type: domain.Power, MuscleGroups: []string{"legs"}},
		{Name: "Medicine Ball Slam", Type: domain.Power, MuscleGroups: []string{"core", "shoulders"}},
		{Name: "Yoga Flow", Type: domain.Flexibility, MuscleGroups: []string{"full body"}},
		{Name: "Running", Type: domain.Aerobic, MuscleGroups: []string{"legs"}},
	}
}

func firstExercise(t *testing.T, p domain.WorkoutPlan, day time.Weekday) string {
	t.Helper()
	s, ok := p.Session(day)
	if !ok || len(s.Exercises) == 0 {
		t.Fatalf("no exercises on %s", day)
	}
	return s.Exercises[0].Exercise.Name
}

/* ─── Shape ──────────────────────────────────────────────────────────── */

// TestGenerateWorkoutPlan_MuscleGainWeek checks the weekly layout for muscle
// gain: seven sessions, three training days of five exercises each drawn from
// the strength/hypertrophy/power types, and goal default volume.
func TestGenerateWorkoutPlan_MuscleGainWeek(t *testing.T) {
	plan, err := GenerateWorkoutPlan(domain.Goals{FitnessGoal: domain.MuscleGain}, makeExercises(), nil)
	if err != nil {
		t.Fatalf("GenerateWorkoutPlan: %v", err)
	}
	if plan.Type != domain.PlanHypertrophy {
		t.Errorf("plan type = %s, want Hypertrophy", plan.Type)
	}
	if len(plan.Sessions) != 7 {
		t.Fatalf("sessions = %d, want 7", len(plan.Sessions))
	}

	training := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
	allowed := map[domain.ExerciseType]bool{domain.Strength: true, domain.Hypertrophy: true, domain.Power: true}
	for i, s := range plan.Sessions {
		if s.Day != domain.WeekDays[i] {
			t.Errorf("session %d day = %s, want %s", i, s.Day, domain.WeekDays[i])
		}
		if !training[s.Day] {
			if len(s.Exercises) != 0 {
				t.Errorf("%s is a rest day but has %d exercises", s.Day, len(s.Exercises))
			}
			continue
		}
		if len(s.Exercises) != 5 {
			t.Errorf("%s: %d exercises, want 5", s.Day, len(s.Exercises))
		}
		seen := map[string]bool{}
		for _, pe := range s.Exercises {
			if seen[pe.Exercise.Name] {
				t.Errorf("%s: %s repeated within the session", s.Day, pe.Exercise.Name)
			}
			seen[pe.Exercise.Name] = true
			if !allowed[pe.Exercise.Type] {
				t.Errorf("%s: %s has unmapped type %s", s.Day, pe.Exercise.Name, pe.Exercise.Type)
			}
			if pe.Exercise.Name == "Back Squat" {
				if pe.Sets != 5 || pe.Reps != 5 {
					t.Errorf("Back Squat volume = %dx%d, want catalog 5x5", pe.Sets, pe.Reps)
				}
			} else if pe.Sets != 4 || pe.Reps != 8 {
				t.Errorf("%s volume = %dx%d, want default 4x8", pe.Exercise.Name, pe.Sets, pe.Reps)
			}
		}
	}
}

func TestGenerateWorkoutPlan_PlanTypeAndVolumePerGoal(t *testing.T) {
	cases := []struct {
		goal       domain.FitnessGoal
		exercise   domain.Exercise
		wantType   domain.PlanType
		sets, reps int
	}{
		{domain.WeightLoss, domain.Exercise{Name: "Rowing", Type: domain.Aerobic, MuscleGroups: []string{"back"}}, domain.PlanConditioning, 3, 15},
		{domain.Maintenance, domain.Exercise{Name: "Kettlebell Swing", Type: domain.Functional, MuscleGroups: []string{"hips"}}, domain.PlanStrength, 3, 10},
	}
	for _, tc := range cases {
		t.Run(tc.goal.String(), func(t *testing.T) {
			plan, err := GenerateWorkoutPlan(domain.Goals{FitnessGoal: tc.goal}, []domain.Exercise{tc.exercise}, nil)
			if err != nil {
				t.Fatalf("GenerateWorkoutPlan: %v", err)
			}
			if plan.Type != tc.wantType {
				t.Errorf("type = %s, want %s", plan.Type, tc.wantType)
			}
			s, _ := plan.Session(time.Monday)
			if len(s.Exercises) != 1 {
				t.Fatalf("monday exercises = %d, want 1", len(s.Exercises))
			}
			if pe := s.Exercises[0]; pe.Sets != tc.sets || pe.Reps != tc.reps {
				t.Errorf("volume = %dx%d, want %dx%d", pe.Sets, pe.Reps, tc.sets, tc.reps)
			}
		})
	}
}

/* ─── Rotation ───────────────────────────────────────────────────────── */

// TestGenerateWorkoutPlan_RotatesMuscleGroups verifies the first exercise of a
// session avoids the muscle groups of the previous plan's last session.
func TestGenerateWorkoutPlan_RotatesMuscleGroups(t *testing.T) {
	exercises := []domain.Exercise{
		{Name: "Back Squat", Type: domain.Strength, MuscleGroups: []string{"legs"}},
		{Name: "Bench Press", Type: domain.Strength, MuscleGroups: []string{"chest"}},
	}
	b := WorkoutBuilder{TrainingDays: []time.Weekday{time.Monday}}
	goals := domain.Goals{FitnessGoal: domain.MuscleGain}

	fresh, err := b.Generate(goals, exercises, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := firstExercise(t, fresh, time.Monday); got != "Back Squat" {
		t.Errorf("without history first = %s, want Back Squat (name order)", got)
	}

	previous := domain.WorkoutPlan{Sessions: []domain.Session{
		{Day: time.Friday, Exercises: []domain.PrescribedExercise{
			{Exercise: domain.Exercise{Name: "Lunge", Type: domain.Strength, MuscleGroups: []string{"Legs"}}, Sets: 3, Reps: 10},
		}},
	}}
	next, err := b.Generate(goals, exercises, &previous)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := firstExercise(t, next, time.Monday); got != "Bench Press" {
		t.Errorf("after a legs session first = %s, want Bench Press", got)
	}
}

// TestGenerateWorkoutPlan_PrefersNovelExercises verifies that, among exercises
// equally placed for rotation, those absent from the previous plan come first.
func TestGenerateWorkoutPlan_PrefersNovelExercises(t *testing.T) {
	exercises := []domain.Exercise{
		{Name: "Back Squat", Type: domain.Strength, MuscleGroups: []string{"legs"}},
		{Name: "Front Squat", Type: domain.Strength, MuscleGroups: []string{"legs"}},
	}
	b := WorkoutBuilder{TrainingDays: []time.Weekday{time.Monday}}
	goals := domain.Goals{FitnessGoal: domain.MuscleGain}

	previous, err := b.Generate(goals, exercises[:1], nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	next, err := b.Generate(goals, exercises, &previous)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := firstExercise(t, next, time.Monday); got != "Front Squat" {
		t.Errorf("first = %s, want Front Squat", got)
	}
}

func TestGenerateWorkoutPlan_Deterministic(t *testing.T) {
	goals := domain.Goals{FitnessGoal: domain.Maintenance}
	exercises := append(makeExercises(),
		domain.Exercise{Name: "Farmer Carry", Type: domain.Functional, MuscleGroups: []string{"grip", "core"}},
		domain.Exercise{Name: "Single Leg Stand", Type: domain.BalanceAndStability, MuscleGroups: []string{"ankles"}},
	)
	a, errA := GenerateWorkoutPlan(goals, exercises, nil)
	b, errB := GenerateWorkoutPlan(goals, exercises, nil)
	if errA != nil || errB != nil {
		t.Fatalf("GenerateWorkoutPlan: %v / %v", errA, errB)
	}
	for i := range a.Sessions {
		if len(a.Sessions[i].Exercises) != len(b.Sessions[i].Exercises) {
			t.Fatalf("session %d lengths differ", i)
		}
		for j := range a.Sessions[i].Exercises {
			if a.Sessions[i].Exercises[j].Exercise.Name != b.Sessions[i].Exercises[j].Exercise.Name {
				t.Errorf("session %d exercise %d differs", i, j)
			}
		}
	}
}

/* ─── Errors ─────────────────────────────────────────────────────────── */

func TestGenerateWorkoutPlan_Errors(t *testing.T) {
	cases := []struct {
		name      string
		goals     domain.Goals
		exercises []domain.Exercise
		days      []time.Weekday
		check     func(error) bool
	}{
		{
			name:      "empty catalog",
			goals:     domain.Goals{FitnessGoal: domain.MuscleGain},
			exercises: nil,
			check:     func(err error) bool { var e *domain.EmptyCatalogError; return errors.As(err, &e) },
		},
		{
			name:      "no exercises of mapped types",
			goals:     domain.Goals{FitnessGoal: domain.WeightLoss},
			exercises: []domain.Exercise{{Name: "Back Squat", Type: domain.Strength, MuscleGroups: []string{"legs"}}},
			check:     func(err error) bool { var e *domain.EmptyCatalogError; return errors.As(err, &e) },
		},
		{
			name:      "goal without distribution",
			goals:     domain.Goals{FitnessGoal: domain.FitnessGoal(7)},
			exercises: makeExercises(),
			check:     func(err error) bool { var e *domain.ConfigurationError; return errors.As(err, &e) },
		},
		{
			name:      "invalid training day",
			goals:     domain.Goals{FitnessGoal: domain.MuscleGain},
			exercises: makeExercises(),
			days:      []time.Weekday{time.Weekday(9)},
			check:     func(err error) bool { var e *domain.ValidationError; return errors.As(err, &e) },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := WorkoutBuilder{TrainingDays: tc.days}.Generate(tc.goals, tc.exercises, nil)
			if !tc.check(err) {
				t.Errorf("unexpected error %T: %v", err, err)
			}
			if len(plan.Sessions) != 0 {
				t.Errorf("expected no sessions on error, got %d", len(plan.Sessions))
			}
		})
	}
}

func TestSortedTrainingDays(t *testing.T) {
	got := SortedTrainingDays([]time.Weekday{time.Sunday, time.Friday, time.Monday, time.Friday})
	want := []time.Weekday{time.Monday, time.Friday, time.Sunday}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
