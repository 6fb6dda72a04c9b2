package planner

import (
	"math"

	"github.com/martinle068/FitnnessApp/internal/catalog"
	"github.com/martinle068/FitnnessApp/internal/domain"
)

// Defaults for NutritionBuilder fields left at zero.
const (
	DefaultMinPortionGrams = 10.0
	DefaultMaxPortionGrams = 300.0
	DefaultMaxPlanItems    = 8
)

const scoreEpsilon = 1e-9

// NutritionBuilder assembles a day's NutritionPlan from a food catalog.
// Portions are whole multiples of MinPortionGrams, at most MaxPortionGrams.
// When Categories is set only foods in at least one of them are considered.
type NutritionBuilder struct {
	MinPortionGrams float64
	MaxPortionGrams float64
	MaxItems        int
	Categories      []string
}

// DefaultNutritionBuilder returns a builder with the package defaults.
func DefaultNutritionBuilder() NutritionBuilder {
	return NutritionBuilder{
		MinPortionGrams: DefaultMinPortionGrams,
		MaxPortionGrams: DefaultMaxPortionGrams,
		MaxItems:        DefaultMaxPlanItems,
	}
}

// GenerateNextPlan builds a plan with the default builder settings.
func GenerateNextPlan(target domain.TotalNutrients, foods []domain.FoodItem, previous *domain.NutritionPlan) (domain.NutritionPlan, error) {
	return DefaultNutritionBuilder().Generate(target, foods, previous)
}

func (b NutritionBuilder) withDefaults() (NutritionBuilder, error) {
	if b.MinPortionGrams == 0 {
		b.MinPortionGrams = DefaultMinPortionGrams
	}
	if b.MaxPortionGrams == 0 {
		b.MaxPortionGrams = DefaultMaxPortionGrams
	}
	if b.MaxItems == 0 {
		b.MaxItems = DefaultMaxPlanItems
	}
	if b.MinPortionGrams < 0 || b.MaxPortionGrams < b.MinPortionGrams {
		return b, &domain.ValidationError{Field: "portion_grams", Reason: "need 0 < min portion <= max portion"}
	}
	if b.MaxItems < 0 {
		return b, &domain.ValidationError{Field: "max_items", Reason: "must not be negative"}
	}
	return b, nil
}

// candidate is one food evaluated against the remaining gap at its best
// portion.
type candidate struct {
	item      domain.PlanItem
	novel     bool    // absent from the previous plan
	reduction float64 // decrease of the normalized gap if picked, may be negative
	deviation float64 // macro-share distance from the target's shares
}

// better orders candidates: novel first, then larger gap reduction, then
// closer macro shares, then name.
func (a candidate) better(b candidate) bool {
	if a.novel != b.novel {
		return a.novel
	}
	if math.Abs(a.reduction-b.reduction) > scoreEpsilon {
		return a.reduction > b.reduction
	}
	if math.Abs(a.deviation-b.deviation) > scoreEpsilon {
		return a.deviation < b.deviation
	}
	return a.item.Food.Name < b.item.Food.Name
}

// Generate selects foods greedily until no unused food fits one minimum
// portion in the remaining calories, or MaxItems is reached. Each food is
// scored at every whole portion that fits and keeps the portion that closes
// the normalized gap the most.
//
// Foods absent from previous rank ahead of repeats whatever their gap
// reduction. Gap reductions of real foods almost never tie exactly, so a
// tie-only novelty rule would let the same walk repeat plan after plan.
//
// Selected items are dealt round-robin into the meals in selection order.
// The plan's FinalAdjustment is Target.Calories minus the planned calories.
func (b NutritionBuilder) Generate(target domain.TotalNutrients, foods []domain.FoodItem, previous *domain.NutritionPlan) (domain.NutritionPlan, error) {
	if len(foods) == 0 {
		return domain.NutritionPlan{}, &domain.EmptyCatalogError{Catalog: "food"}
	}
	if !(target.Calories > 0) || math.IsInf(target.Calories, 0) {
		return domain.NutritionPlan{}, &domain.ValidationError{Field: "target.calories", Reason: "must be greater than 0"}
	}
	b, err := b.withDefaults()
	if err != nil {
		return domain.NutritionPlan{}, err
	}

	pool := foods
	if len(b.Categories) > 0 {
		pool = catalog.FoodsInAny(catalog.Foods(foods), b.Categories)
		if len(pool) == 0 {
			return domain.NutritionPlan{}, &domain.EmptyCatalogError{Catalog: "food", Detail: "no foods in the requested categories"}
		}
	}

	prev := make(map[string]bool)
	if previous != nil {
		for _, it := range previous.Items() {
			prev[it.Food.Name] = true
		}
	}

	used := make(map[string]bool, len(pool))
	remaining := target
	var picks []domain.PlanItem
	for len(picks) < b.MaxItems {
		best, ok := b.pick(pool, remaining, target, prev, used)
		if !ok {
			break
		}
		picks = append(picks, best.item)
		used[best.item.Food.Name] = true
		remaining = remaining.Sub(best.item.Nutrients())
	}

	plan := domain.NewNutritionPlan("")
	for i, it := range picks {
		plan.AddItem(domain.Meals[i%len(domain.Meals)], it)
	}
	plan.Target = target
	plan.FinalAdjustment = target.Calories - plan.Totals().Calories
	return plan, nil
}

// pick returns the best candidate among the unused foods that fit one
// minimum portion, if any. A food whose every portion widens the gap is still
// a candidate; it only wins when nothing better fits.
func (b NutritionBuilder) pick(pool []domain.FoodItem, remaining, target domain.TotalNutrients, prev, used map[string]bool) (candidate, bool) {
	var best candidate
	found := false
	before := gap(remaining, target)
	for _, f := range pool {
		if used[f.Name] {
			continue
		}
		item, reduction, ok := b.bestPortion(f, remaining, target, before)
		if !ok {
			continue
		}
		c := candidate{
			item:      item,
			novel:     !prev[f.Name],
			reduction: reduction,
			deviation: shareDeviation(f.Per100g(), target),
		}
		if !found || c.better(best) {
			best, found = c, true
		}
	}
	return best, found
}

// bestPortion scores f at every whole number of minimum portions up to
// maxPortion and returns the one with the largest gap reduction. Equal
// reductions keep the smaller portion.
func (b NutritionBuilder) bestPortion(f domain.FoodItem, remaining, target domain.TotalNutrients, before float64) (domain.PlanItem, float64, bool) {
	limit := b.maxPortion(f, remaining.Calories)
	if limit < b.MinPortionGrams {
		return domain.PlanItem{}, 0, false
	}
	best := domain.PlanItem{Food: f}
	bestReduction := math.Inf(-1)
	for n := 1; ; n++ {
		grams := float64(n) * b.MinPortionGrams
		if grams > limit {
			break
		}
		item := domain.PlanItem{Food: f, Grams: grams}
		reduction := before - gap(remaining.Sub(item.Nutrients()), target)
		if reduction > bestReduction+scoreEpsilon {
			best, bestReduction = item, reduction
		}
	}
	return best, bestReduction, true
}

// maxPortion returns the largest whole number of minimum portions of f that
// fits in remainingKcal, capped at MaxPortionGrams.
func (b NutritionBuilder) maxPortion(f domain.FoodItem, remainingKcal float64) float64 {
	limit := b.MaxPortionGrams
	if f.Calories > 0 {
		if fit := remainingKcal * 100 / float64(f.Calories); fit < limit {
			limit = fit
		}
	}
	if limit <= 0 {
		return 0
	}
	return math.Floor(limit/b.MinPortionGrams) * b.MinPortionGrams
}

// gap is the distance between remaining and zero, each nutrient normalized by
// its target so calories and grams weigh the same.
func gap(remaining, target domain.TotalNutrients) float64 {
	var d float64
	add := func(r, t float64) {
		if t > 0 {
			d += math.Abs(r) / t
		}
	}
	add(remaining.Calories, target.Calories)
	add(remaining.Protein, target.Protein)
	add(remaining.Carbohydrates, target.Carbohydrates)
	add(remaining.Fats, target.Fats)
	return d
}

// shareDeviation is the L1 distance between the macro calorie shares of n and
// of target. Foods with no macros get the maximum distance of 2.
func shareDeviation(n, target domain.TotalNutrients) float64 {
	np, nc, nf, ok := shares(n)
	if !ok {
		return 2
	}
	tp, tc, tf, ok := shares(target)
	if !ok {
		return 0
	}
	return math.Abs(np-tp) + math.Abs(nc-tc) + math.Abs(nf-tf)
}

func shares(n domain.TotalNutrients) (p, c, f float64, ok bool) {
	pk, ck, fk := n.MacroCalories()
	sum := pk + ck + fk
	if sum <= 0 {
		return 0, 0, 0, false
	}
	return pk / sum, ck / sum, fk / sum, true
}
