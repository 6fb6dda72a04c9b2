package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

// makeProfile returns the reference profile used across calculator tests:
// female, 30 years, 165 cm, 60 kg, moderately active.
func makeProfile() domain.Profile {
	return domain.Profile{
		Name:          "Ana",
		Gender:        domain.Female,
		Age:           30,
		HeightCM:      165,
		WeightKG:      60,
		ActivityLevel: domain.ModeratelyActive,
	}
}

/* ─── Pinned values ──────────────────────────────────────────────────── */

// TestComputeTarget_ReferenceFemaleMaintenance pins the calculator constants.
//
// BMR  = 10*60 + 6.25*165 - 5*30 - 161 = 1320.25
// TDEE = 1320.25 * 1.55                = 2046.3875
// Maintenance split 25/50/25: protein 127.8992 g, carbs 255.7984 g, fats 56.8441 g.
func TestComputeTarget_ReferenceFemaleMaintenance(t *testing.T) {
	p := makeProfile()

	bmr, err := BMR(p)
	if err != nil {
		t.Fatalf("BMR: %v", err)
	}
	if bmr != 1320.25 {
		t.Errorf("BMR = %f, want 1320.25", bmr)
	}

	got, err := ComputeTarget(p, domain.Goals{FitnessGoal: domain.Maintenance})
	if err != nil {
		t.Fatalf("ComputeTarget: %v", err)
	}
	if math.Abs(got.Calories-2046.3875) > 1e-9 {
		t.Errorf("calories = %.10f, want 2046.3875", got.Calories)
	}
	if math.Abs(got.Protein-127.89921875) > 1e-9 {
		t.Errorf("protein = %.10f, want 127.89921875", got.Protein)
	}
	if math.Abs(got.Carbohydrates-255.7984375) > 1e-9 {
		t.Errorf("carbohydrates = %.10f, want 255.7984375", got.Carbohydrates)
	}
	if math.Abs(got.Fats-56.8440972222) > 1e-6 {
		t.Errorf("fats = %.10f, want ~56.8441", got.Fats)
	}
}

// TestBMR_Male verifies the +5 constant: 10*80 + 6.25*180 - 5*25 + 5 = 1805,
// and TDEE at sedentary 1805*1.2 = 2166.
func TestBMR_Male(t *testing.T) {
	p := domain.Profile{Gender: domain.Male, Age: 25, HeightCM: 180, WeightKG: 80, ActivityLevel: domain.Sedentary}
	bmr, err := BMR(p)
	if err != nil {
		t.Fatalf("BMR: %v", err)
	}
	if bmr != 1805 {
		t.Errorf("male BMR = %f, want 1805", bmr)
	}
	tdee, err := TDEE(p)
	if err != nil {
		t.Fatalf("TDEE: %v", err)
	}
	if math.Abs(tdee-2166) > 1e-9 {
		t.Errorf("TDEE = %f, want 2166", tdee)
	}
}

func TestActivityMultiplier_AllLevels(t *testing.T) {
	want := map[domain.ActivityLevel]float64{
		domain.Sedentary:        1.2,
		domain.LightlyActive:    1.375,
		domain.ModeratelyActive: 1.55,
		domain.VeryActive:       1.725,
		domain.ExtraActive:      1.9,
	}
	prev := 1.0
	for _, level := range domain.ActivityLevels {
		got, err := ActivityMultiplier(level)
		if err != nil {
			t.Fatalf("ActivityMultiplier(%s): %v", level, err)
		}
		if got != want[level] {
			t.Errorf("ActivityMultiplier(%s) = %f, want %f", level, got, want[level])
		}
		if got <= prev {
			t.Errorf("multiplier for %s (%f) not above previous level (%f)", level, got, prev)
		}
		prev = got
	}
}

/* ─── Properties ─────────────────────────────────────────────────────── */

// TestComputeTarget_Deterministic verifies two calls with identical inputs
// return bit-identical targets.
func TestComputeTarget_Deterministic(t *testing.T) {
	p := makeProfile()
	for _, goal := range domain.FitnessGoals {
		g := domain.Goals{FitnessGoal: goal}
		a, errA := ComputeTarget(p, g)
		b, errB := ComputeTarget(p, g)
		if errA != nil || errB != nil {
			t.Fatalf("ComputeTarget(%s): %v / %v", goal, errA, errB)
		}
		if a != b {
			t.Errorf("goal %s: %+v != %+v", goal, a, b)
		}
	}
}

// TestDailyCalories_GoalOrdering verifies that, for every gender and activity
// level, weight loss < maintenance < muscle gain.
func TestDailyCalories_GoalOrdering(t *testing.T) {
	for _, gender := range []domain.Gender{domain.Male, domain.Female} {
		for _, level := range domain.ActivityLevels {
			p := makeProfile()
			p.Gender = gender
			p.ActivityLevel = level

			loss, err1 := DailyCalories(p, domain.Goals{FitnessGoal: domain.WeightLoss})
			maint, err2 := DailyCalories(p, domain.Goals{FitnessGoal: domain.Maintenance})
			gain, err3 := DailyCalories(p, domain.Goals{FitnessGoal: domain.MuscleGain})
			if err1 != nil || err2 != nil || err3 != nil {
				t.Fatalf("%s/%s: %v %v %v", gender, level, err1, err2, err3)
			}
			if !(loss < maint && maint < gain) {
				t.Errorf("%s/%s: loss=%f maint=%f gain=%f, want strictly increasing", gender, level, loss, maint, gain)
			}
		}
	}
}

// TestComputeTarget_MacrosAddUpToCalories verifies the macro split converts
// back to the calorie target for every goal.
func TestComputeTarget_MacrosAddUpToCalories(t *testing.T) {
	p := makeProfile()
	for _, goal := range domain.FitnessGoals {
		got, err := ComputeTarget(p, domain.Goals{FitnessGoal: goal})
		if err != nil {
			t.Fatalf("ComputeTarget(%s): %v", goal, err)
		}
		pk, ck, fk := got.MacroCalories()
		if math.Abs(pk+ck+fk-got.Calories) > 1e-6 {
			t.Errorf("%s: macro kcal %f != target %f", goal, pk+ck+fk, got.Calories)
		}
	}
}

func TestComputeTarget_MuscleGainHasHigherProteinShare(t *testing.T) {
	gain, _ := RatiosFor(domain.MuscleGain)
	maint, _ := RatiosFor(domain.Maintenance)
	if gain.Protein <= maint.Protein {
		t.Errorf("muscle gain protein ratio %f not above maintenance %f", gain.Protein, maint.Protein)
	}
}

// TestDailyCalories_CustomOverride verifies the override replaces the
// calculated value and that resetting restores it.
func TestDailyCalories_CustomOverride(t *testing.T) {
	p := makeProfile()
	g := domain.Goals{FitnessGoal: domain.WeightLoss}
	if err := g.SetCustomCalories(1750); err != nil {
		t.Fatalf("SetCustomCalories: %v", err)
	}
	got, err := DailyCalories(p, g)
	if err != nil {
		t.Fatalf("DailyCalories: %v", err)
	}
	if got != 1750 {
		t.Errorf("custom calories = %f, want 1750", got)
	}

	g.ResetToCalculatedCalories()
	got, err = DailyCalories(p, g)
	if err != nil {
		t.Fatalf("DailyCalories: %v", err)
	}
	if math.Abs(got-1546.3875) > 1e-9 {
		t.Errorf("calculated calories = %f, want 1546.3875", got)
	}
}

/* ─── Error kinds ────────────────────────────────────────────────────── */

func TestComputeTarget_Errors(t *testing.T) {
	cases := []struct {
		name       string
		profile    func(p *domain.Profile)
		goals      domain.Goals
		wantConfig bool
	}{
		{"unknown activity level", func(p *domain.Profile) { p.ActivityLevel = domain.ActivityLevel(42) }, domain.Goals{FitnessGoal: domain.Maintenance}, true},
		{"unknown fitness goal", func(p *domain.Profile) {}, domain.Goals{FitnessGoal: domain.FitnessGoal(9)}, true},
		{"negative weight", func(p *domain.Profile) { p.WeightKG = -1 }, domain.Goals{FitnessGoal: domain.Maintenance}, false},
		{"zero age", func(p *domain.Profile) { p.Age = 0 }, domain.Goals{FitnessGoal: domain.Maintenance}, false},
		{"non-positive result", func(p *domain.Profile) { p.WeightKG = 1; p.HeightCM = 1; p.Age = 100 }, domain.Goals{FitnessGoal: domain.WeightLoss}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := makeProfile()
			tc.profile(&p)
			_, err := ComputeTarget(p, tc.goals)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var cfgErr *domain.ConfigurationError
			var valErr *domain.ValidationError
			if tc.wantConfig && !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigurationError, got %T: %v", err, err)
			}
			if !tc.wantConfig && !errors.As(err, &valErr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}
