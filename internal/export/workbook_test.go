package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

func makePlan() domain.NutritionPlan {
	oats := domain.FoodItem{Name: "Oats", Categories: []string{"grain"}, Calories: 389, Protein: 16.9, Carbohydrates: 66.3, Fats: 6.9}
	banana := domain.FoodItem{Name: "Banana", Categories: []string{"fruit"}, Calories: 89, Protein: 1.1, Carbohydrates: 23, Fats: 0.3}
	p := domain.NewNutritionPlan("Monday")
	p.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p.AddItem(domain.Breakfast, domain.PlanItem{Food: oats, Grams: 50})
	p.AddItem(domain.Breakfast, domain.PlanItem{Food: banana, Grams: 120})
	p.AddItem(domain.Dinner, domain.PlanItem{Food: oats, Grams: 30})
	p.Target = domain.TotalNutrients{Calories: 2046.3875, Protein: 127.89921875, Carbohydrates: 255.7984375, Fats: 56.8441}
	p.FinalAdjustment = p.Target.Calories - p.Totals().Calories
	return p
}

func TestRound(t *testing.T) {
	cases := []struct {
		in     float64
		places int32
		want   float64
	}{
		{194.45, 1, 194.5},
		{2046.3875, 1, 2046.4},
		{-0.05, 1, -0.1},
		{106.8, 0, 107},
	}
	for _, tc := range cases {
		if got := round(tc.in, tc.places); got != tc.want {
			t.Errorf("round(%v, %d) = %v, want %v", tc.in, tc.places, got, tc.want)
		}
	}
}

// TestNutritionWorkbook_Layout checks the header, the item rows, the meal
// subtotal and the closing summary rows.
func TestNutritionWorkbook_Layout(t *testing.T) {
	f, err := NutritionWorkbook(makePlan())
	if err != nil {
		t.Fatalf("NutritionWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetNutrition)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if got := rows[0][0]; got != "Nutrition plan: Monday (2026-03-02)" {
		t.Errorf("title = %q", got)
	}
	if got := rows[2][1]; got != "Food" {
		t.Errorf("header = %v", rows[2])
	}

	// Oats 50 g: 194.5 kcal
	oats := rows[3]
	if oats[0] != "Breakfast" || oats[1] != "Oats" || oats[2] != "50" || oats[3] != "194.5" {
		t.Errorf("oats row = %v", oats)
	}
	// Breakfast subtotal: 194.5 + 106.8
	if sub := rows[5]; sub[0] != "Breakfast total" || sub[3] != "301.3" {
		t.Errorf("breakfast subtotal = %v", sub)
	}

	last := rows[len(rows)-1]
	if last[0] != "Final adjustment" {
		t.Errorf("last row = %v", last)
	}
	target := rows[len(rows)-2]
	if target[0] != "Target" || target[3] != "2046.4" {
		t.Errorf("target row = %v", target)
	}
}

func TestWorkoutWorkbook_Layout(t *testing.T) {
	squat := domain.Exercise{Name: "Squat", Type: domain.Strength, MuscleGroups: []string{"legs", "core"}}
	plan := domain.WorkoutPlan{Name: "Week 1", Type: domain.PlanHypertrophy}
	for _, d := range domain.WeekDays {
		s := domain.Session{Day: d}
		if d == time.Monday {
			s.Exercises = []domain.PrescribedExercise{{Exercise: squat, Sets: 4, Reps: 8}}
		}
		plan.Sessions = append(plan.Sessions, s)
	}

	f, err := WorkoutWorkbook(plan)
	if err != nil {
		t.Fatalf("WorkoutWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetWorkout)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if got := rows[0][0]; got != "Workout plan: Week 1 [Hypertrophy]" {
		t.Errorf("title = %q", got)
	}
	// header + one exercise row + six rest rows
	if len(rows) != 3+1+6 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	mon := rows[3]
	if mon[0] != "Monday" || mon[1] != "Squat" || mon[3] != "legs, core" || mon[4] != "4" || mon[5] != "8" {
		t.Errorf("monday row = %v", mon)
	}
	if tue := rows[4]; tue[0] != "Tuesday" || tue[1] != "Rest" {
		t.Errorf("tuesday row = %v", tue)
	}
}

func TestWriteAndSave(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNutritionPlan(&buf, makePlan()); err != nil {
		t.Fatalf("WriteNutritionPlan: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	if idx, _ := f.GetSheetIndex(SheetNutrition); idx < 0 {
		t.Error("nutrition sheet missing from written workbook")
	}
	f.Close()

	path := filepath.Join(t.TempDir(), "plan.xlsx")
	if err := SaveWorkoutPlan(path, domain.WorkoutPlan{Name: "Empty"}); err != nil {
		t.Fatalf("SaveWorkoutPlan: %v", err)
	}
	saved, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer saved.Close()
	if v, _ := saved.GetCellValue(SheetWorkout, "A4"); v != "Monday" {
		t.Errorf("A4 = %q, want Monday", v)
	}
}
