// Package export renders plans as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

// Sheet names
const (
	SheetNutrition = "Nutrition Plan"
	SheetWorkout   = "Workout Plan"
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	nutritionHeader = []interface{}{"Meal", "Food", "Grams", "Calories (kcal)", "Protein (g)", "Carbohydrates (g)", "Fats (g)"}
	workoutHeader   = []interface{}{"Day", "Exercise", "Type", "Muscle groups", "Sets", "Reps"}
)

// round returns v rounded half away from zero to places decimals.
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func nutrientCells(n domain.TotalNutrients) []interface{} {
	return []interface{}{round(n.Calories, 1), round(n.Protein, 1), round(n.Carbohydrates, 1), round(n.Fats, 1)}
}

type styles struct {
	title, header, subtotal int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	}); err != nil {
		return s, err
	}
	if s.subtotal, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// sheetWriter appends rows to one sheet.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) write(values []interface{}, style int, lastCol string) {
	if w.err != nil {
		return
	}
	w.row++
	cell := fmt.Sprintf("A%d", w.row)
	if w.err = w.f.SetSheetRow(w.sheet, cell, &values); w.err != nil {
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, fmt.Sprintf("%s%d", lastCol, w.row), style)
	}
}

func (w *sheetWriter) blank() {
	w.row++
}

func newWorkbook(sheet string) (*excelize.File, styles, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, styles{}, err
	}
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, styles{}, err
	}
	return f, st, nil
}

func planTitle(name, kind string) string {
	if strings.TrimSpace(name) == "" {
		return kind
	}
	return kind + ": " + name
}

/* ─── Nutrition ──────────────────────────────────────────────────────── */

// NutritionWorkbook lists every item by meal with per-meal subtotals,
// followed by the plan totals, the target and the final adjustment.
func NutritionWorkbook(plan domain.NutritionPlan) (*excelize.File, error) {
	f, st, err := newWorkbook(SheetNutrition)
	if err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, sheet: SheetNutrition}

	title := planTitle(plan.Name, "Nutrition plan")
	if !plan.Date.IsZero() {
		title += " (" + plan.Date.Format("2006-01-02") + ")"
	}
	w.write([]interface{}{title}, st.title, "G")
	w.blank()
	w.write(nutritionHeader, st.header, "G")

	for _, meal := range domain.Meals {
		items := plan.MealItems(meal)
		if len(items) == 0 {
			continue
		}
		for _, it := range items {
			row := append([]interface{}{meal.String(), it.Food.Name, round(it.Grams, 0)}, nutrientCells(it.Nutrients())...)
			w.write(row, 0, "G")
		}
		sub := append([]interface{}{meal.String() + " total", "", ""}, nutrientCells(plan.MealTotals(meal))...)
		w.write(sub, st.subtotal, "G")
	}

	w.blank()
	w.write(append([]interface{}{"Plan total", "", ""}, nutrientCells(plan.Totals())...), st.subtotal, "G")
	w.write(append([]interface{}{"Target", "", ""}, nutrientCells(plan.Target)...), st.subtotal, "G")
	w.write([]interface{}{"Final adjustment", "", "", round(plan.FinalAdjustment, 1)}, st.subtotal, "G")

	if w.err == nil {
		w.err = f.SetColWidth(SheetNutrition, "A", "B", 22)
	}
	if w.err == nil {
		w.err = f.SetColWidth(SheetNutrition, "C", "G", 16)
	}
	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("nutrition sheet: %w", w.err)
	}
	return f, nil
}

/* ─── Workout ────────────────────────────────────────────────────────── */

// WorkoutWorkbook lists each day's exercises Monday to Sunday. Rest days get
// a single "Rest" row.
func WorkoutWorkbook(plan domain.WorkoutPlan) (*excelize.File, error) {
	f, st, err := newWorkbook(SheetWorkout)
	if err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, sheet: SheetWorkout}

	w.write([]interface{}{planTitle(plan.Name, "Workout plan") + " [" + plan.Type.String() + "]"}, st.title, "F")
	w.blank()
	w.write(workoutHeader, st.header, "F")

	for _, day := range domain.WeekDays {
		s, ok := plan.Session(day)
		if !ok || len(s.Exercises) == 0 {
			w.write([]interface{}{day.String(), "Rest"}, 0, "F")
			continue
		}
		for _, pe := range s.Exercises {
			w.write([]interface{}{
				day.String(),
				pe.Exercise.Name,
				pe.Exercise.Type.String(),
				strings.Join(pe.Exercise.MuscleGroups, ", "),
				pe.Sets,
				pe.Reps,
			}, 0, "F")
		}
	}

	if w.err == nil {
		w.err = f.SetColWidth(SheetWorkout, "A", "D", 22)
	}
	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("workout sheet: %w", w.err)
	}
	return f, nil
}

/* ─── Output ─────────────────────────────────────────────────────────── */

// WriteNutritionPlan streams the nutrition workbook to out.
func WriteNutritionPlan(out io.Writer, plan domain.NutritionPlan) error {
	f, err := NutritionWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(out)
}

// WriteWorkoutPlan streams the workout workbook to out.
func WriteWorkoutPlan(out io.Writer, plan domain.WorkoutPlan) error {
	f, err := WorkoutWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(out)
}

// SaveNutritionPlan writes the nutrition workbook to path.
func SaveNutritionPlan(path string, plan domain.NutritionPlan) error {
	f, err := NutritionWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// SaveWorkoutPlan writes the workout workbook to path.
func SaveWorkoutPlan(path string, plan domain.WorkoutPlan) error {
	f, err := WorkoutWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
