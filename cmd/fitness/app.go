package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/martinle068/FitnnessApp/internal/catalog"
	"github.com/martinle068/FitnnessApp/internal/catalogfs"
	"github.com/martinle068/FitnnessApp/internal/config"
	"github.com/martinle068/FitnnessApp/internal/console"
	"github.com/martinle068/FitnnessApp/internal/csvio"
	"github.com/martinle068/FitnnessApp/internal/domain"
	"github.com/martinle068/FitnnessApp/internal/export"
	"github.com/martinle068/FitnnessApp/internal/planner"
)

// Files kept next to the catalogs.
const (
	profileFile   = "profile.csv"
	goalsFile     = "goals.csv"
	nutritionFile = "nutrition_plans.csv"
	workoutFile   = "workout_plans.csv"
)

var errNoProfile = errors.New("no profile yet, create one first")

// app is the console session. Every action reads its files fresh so edits
// made outside the session are picked up.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	prompt  *console.Prompter
	out     io.Writer
	catalog *catalogfs.Snapshot
}

type menuItem struct {
	label  string
	action func() error
}

func (a *app) menu() []menuItem {
	return []menuItem{
		{"Show profile and targets", a.showProfile},
		{"Edit profile", a.editProfile},
		{"Edit goals", a.editGoals},
		{"Set custom daily calories", a.setCustomCalories},
		{"Reset to calculated calories", a.resetCustomCalories},
		{"Browse foods by category", a.browseFoods},
		{"Browse exercises by muscle group", a.browseExercises},
		{"Generate nutrition plan", a.generateNutritionPlan},
		{"Generate workout plan", a.generateWorkoutPlan},
		{"Export latest nutrition plan (xlsx)", a.exportNutritionPlan},
		{"Export latest workout plan (xlsx)", a.exportWorkoutPlan},
	}
}

// run shows the menu until the user quits or the input ends.
func (a *app) run() error {
	items := a.menu()
	for {
		fmt.Fprintln(a.out, "\n== Fitness planner ==")
		for i, it := range items {
			fmt.Fprintf(a.out, "  %d) %s\n", i+1, it.label)
		}
		fmt.Fprintln(a.out, "  0) Quit")

		n, err := a.prompt.Int("Choice", 0, len(items))
		if errors.Is(err, console.ErrClosed) || (err == nil && n == 0) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := items[n-1].action(); err != nil {
			if errors.Is(err, console.ErrClosed) {
				return nil
			}
			fmt.Fprintf(a.out, "Error: %v\n", err)
			a.logger.Debug("action failed", zap.String("action", items[n-1].label), zap.Error(err))
		}
	}
}

/* ─── Files ──────────────────────────────────────────────────────────── */

// readSingle returns the first valid record of path, or ok=false when the
// file is missing or has none.
func readSingle[T any](path string, parse func([]string) (T, error)) (T, bool, error) {
	var zero T
	res, err := csvio.ReadFile(path, parse)
	if errors.Is(err, fs.ErrNotExist) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	if len(res.Items) == 0 {
		if len(res.Errors) > 0 {
			return zero, false, res.Errors[0]
		}
		return zero, false, nil
	}
	return res.Items[0], true, nil
}

func (a *app) loadProfile() (domain.Profile, domain.Goals, error) {
	p, ok, err := readSingle(a.cfg.DataPath(profileFile), csvio.ParseProfile)
	if err != nil {
		return p, domain.Goals{}, err
	}
	if !ok {
		return p, domain.Goals{}, errNoProfile
	}
	g, ok, err := readSingle(a.cfg.DataPath(goalsFile), csvio.ParseGoals)
	if err != nil {
		return p, g, err
	}
	if !ok {
		g = domain.Goals{FitnessGoal: domain.Maintenance}
	}
	return p, g, nil
}

func (a *app) saveGoals(g domain.Goals) error {
	return csvio.WriteFile(a.cfg.DataPath(goalsFile), []domain.Goals{g}, csvio.FormatGoals)
}

// lastRecord returns the newest valid record of an append-only plan file.
// Rows that no longer resolve against the catalog are logged and skipped.
func lastRecord[T any](a *app, path string, parse func([]string) (T, error)) (*T, error) {
	res, err := csvio.ReadFile(path, parse)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range res.Errors {
		a.logger.Warn("plan row skipped", zap.String("file", path), zap.Error(e))
	}
	if len(res.Items) == 0 {
		return nil, nil
	}
	last := res.Items[len(res.Items)-1]
	return &last, nil
}

func (a *app) lastNutritionPlan() (*domain.NutritionPlan, error) {
	foods := catalog.FoodsByName(a.catalog.Foods)
	return lastRecord(a, a.cfg.DataPath(nutritionFile), func(f []string) (domain.NutritionPlan, error) {
		return csvio.ParseNutritionPlan(f, foods)
	})
}

func (a *app) lastWorkoutPlan() (*domain.WorkoutPlan, error) {
	exercises := catalog.ExercisesByName(a.catalog.Exercises)
	return lastRecord(a, a.cfg.DataPath(workoutFile), func(f []string) (domain.WorkoutPlan, error) {
		return csvio.ParseWorkoutPlan(f, exercises)
	})
}

/* ─── Profile and goals ──────────────────────────────────────────────── */

func (a *app) showProfile() error {
	p, g, err := a.loadProfile()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n%s: %s, %d years, %g cm, %g kg, %s (BMI %.1f)\n",
		p.Name, p.Gender, p.Age, p.HeightCM, p.WeightKG, p.ActivityLevel, p.BMI())
	fmt.Fprintf(a.out, "Goal: %s, target weight %g kg\n", g.FitnessGoal, g.TargetWeightKG)

	bmr, err := planner.BMR(p)
	if err != nil {
		return err
	}
	tdee, err := planner.TDEE(p)
	if err != nil {
		return err
	}
	target, err := planner.ComputeTarget(p, g)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "BMR %.0f kcal, TDEE %.0f kcal\n", bmr, tdee)
	if g.UseCustomCalories {
		fmt.Fprintln(a.out, "Custom calorie target in use")
	}
	fmt.Fprintf(a.out, "Daily target: %s\n", target)
	return nil
}

func (a *app) editProfile() error {
	cur, _, err := a.loadProfile()
	if err != nil && !errors.Is(err, errNoProfile) {
		return err
	}
	p, err := console.AskProfile(a.prompt, cur)
	if err != nil {
		return err
	}
	if err := csvio.WriteFile(a.cfg.DataPath(profileFile), []domain.Profile{p}, csvio.FormatProfile); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved.")
	return nil
}

func (a *app) editGoals() error {
	_, cur, err := a.loadProfile()
	if err != nil {
		return err
	}
	g, err := console.AskGoals(a.prompt, cur)
	if err != nil {
		return err
	}
	if err := a.saveGoals(g); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Goals saved.")
	return nil
}

func (a *app) setCustomCalories() error {
	_, g, err := a.loadProfile()
	if err != nil {
		return err
	}
	kcal, err := a.prompt.Float("Daily calories", 500, 10000)
	if err != nil {
		return err
	}
	if err := g.SetCustomCalories(kcal); err != nil {
		return err
	}
	if err := a.saveGoals(g); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Daily target pinned to %.0f kcal.\n", kcal)
	return nil
}

func (a *app) resetCustomCalories() error {
	_, g, err := a.loadProfile()
	if err != nil {
		return err
	}
	g.ResetToCalculatedCalories()
	if err := a.saveGoals(g); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Daily target is calculated from the profile again.")
	return nil
}

/* ─── Catalog ────────────────────────────────────────────────────────── */

func (a *app) browseFoods() error {
	cats := a.catalog.FoodIndex.Categories()
	if len(cats) == 0 {
		return &domain.EmptyCatalogError{Catalog: "food"}
	}
	i, err := a.prompt.Choice("Category", cats, -1)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Food\tkcal/100g\tProtein\tCarbs\tFats")
	for _, f := range a.catalog.FoodIndex.ItemsIn(cats[i]) {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\t%.1f\n", f.Name, f.Calories, f.Protein, f.Carbohydrates, f.Fats)
	}
	return tw.Flush()
}

func (a *app) browseExercises() error {
	groups := a.catalog.ExerciseIndex.Categories()
	if len(groups) == 0 {
		return &domain.EmptyCatalogError{Catalog: "exercise"}
	}
	i, err := a.prompt.Choice("Muscle group", groups, -1)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Exercise\tType\tMuscle groups")
	for _, e := range a.catalog.ExerciseIndex.ItemsIn(groups[i]) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Type, strings.Join(e.MuscleGroups, ", "))
	}
	return tw.Flush()
}

/* ─── Plans ──────────────────────────────────────────────────────────── */

func (a *app) generateNutritionPlan() error {
	p, g, err := a.loadProfile()
	if err != nil {
		return err
	}
	target, err := planner.ComputeTarget(p, g)
	if err != nil {
		return err
	}
	prev, err := a.lastNutritionPlan()
	if err != nil {
		return err
	}
	cats, err := a.prompt.Line("Categories (comma separated, empty for all)")
	if err != nil {
		return err
	}

	builder := a.cfg.NutritionBuilder()
	for _, c := range strings.Split(cats, ",") {
		if c = strings.TrimSpace(c); c != "" {
			builder.Categories = append(builder.Categories, c)
		}
	}
	plan, err := builder.Generate(target, a.catalog.Foods, prev)
	if err != nil {
		return err
	}
	plan.Date = time.Now()
	plan.Name = "Nutrition plan " + plan.Date.Format("2006-01-02 15:04")

	if err := csvio.AppendFile(a.cfg.DataPath(nutritionFile), csvio.FormatNutritionPlan(plan)); err != nil {
		return err
	}
	a.printNutritionPlan(plan)
	return nil
}

func (a *app) printNutritionPlan(plan domain.NutritionPlan) {
	fmt.Fprintf(a.out, "\n%s\n", plan.Name)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, m := range domain.Meals {
		items := plan.MealItems(m)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t\t%.0f kcal\n", m, plan.MealTotals(m).Calories)
		for _, it := range items {
			fmt.Fprintf(tw, "  %s\t%.0f g\t%.0f kcal\n", it.Food.Name, it.Grams, it.Nutrients().Calories)
		}
	}
	tw.Flush()
	fmt.Fprintf(a.out, "Total:  %s\n", plan.Totals())
	if !plan.Target.IsZero() {
		fmt.Fprintf(a.out, "Target: %s\n", plan.Target)
	}
	fmt.Fprintf(a.out, "Final adjustment: %.1f kcal\n", plan.FinalAdjustment)
}

func (a *app) generateWorkoutPlan() error {
	_, g, err := a.loadProfile()
	if err != nil {
		return err
	}
	prev, err := a.lastWorkoutPlan()
	if err != nil {
		return err
	}
	builder, err := a.cfg.WorkoutBuilder()
	if err != nil {
		return err
	}
	plan, err := builder.Generate(g, a.catalog.Exercises, prev)
	if err != nil {
		return err
	}
	plan.Date = time.Now()
	plan.Name = "Workout plan " + plan.Date.Format("2006-01-02 15:04")

	if err := csvio.AppendFile(a.cfg.DataPath(workoutFile), csvio.FormatWorkoutPlan(plan)); err != nil {
		return err
	}
	a.printWorkoutPlan(plan)
	return nil
}

func (a *app) printWorkoutPlan(plan domain.WorkoutPlan) {
	fmt.Fprintf(a.out, "\n%s (%s)\n", plan.Name, plan.Type)
	for _, s := range plan.Sessions {
		if len(s.Exercises) == 0 {
			fmt.Fprintf(a.out, "%s: rest\n", s.Day)
			continue
		}
		groups := make([]string, 0)
		for g := range s.MuscleGroups() {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		fmt.Fprintf(a.out, "%s: %s\n", s.Day, strings.Join(groups, ", "))
		for _, pe := range s.Exercises {
			fmt.Fprintf(a.out, "  %s %dx%d\n", pe.Exercise.Name, pe.Sets, pe.Reps)
		}
	}
}

func (a *app) exportNutritionPlan() error {
	plan, err := a.lastNutritionPlan()
	if err != nil {
		return err
	}
	if plan == nil {
		return errors.New("no nutrition plan generated yet")
	}
	// The CSV row does not carry the target; use the current one.
	if p, g, err := a.loadProfile(); err == nil {
		if target, err := planner.ComputeTarget(p, g); err == nil {
			plan.Target = target
		}
	}
	path, err := a.exportPath("nutrition_plan.xlsx")
	if err != nil {
		return err
	}
	if err := export.SaveNutritionPlan(path, *plan); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}

func (a *app) exportWorkoutPlan() error {
	plan, err := a.lastWorkoutPlan()
	if err != nil {
		return err
	}
	if plan == nil {
		return errors.New("no workout plan generated yet")
	}
	path, err := a.exportPath("workout_plan.xlsx")
	if err != nil {
		return err
	}
	if err := export.SaveWorkoutPlan(path, *plan); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}

func (a *app) exportPath(name string) (string, error) {
	def := a.cfg.DataPath(name)
	path, err := a.prompt.Line(fmt.Sprintf("File (%s)", def))
	if err != nil || path == "" {
		return def, err
	}
	return path, nil
}
