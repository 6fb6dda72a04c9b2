package domain

import (
	"math"
	"sort"
	"strings"
)

// FoodItem is a catalog entry. Calories and macros are per 100 g; Portion is
// the canonical serving in grams, 0 meaning "unscaled".
type FoodItem struct {
	Name          string   `json:"name"`
	Categories    []string `json:"categories"`
	Calories      int      `json:"calories"`
	Protein       float64  `json:"protein"`
	Carbohydrates float64  `json:"carbohydrates"`
	Fats          float64  `json:"fats"`
	Portion       float64  `json:"portion"`
}

// NormalizeCategories trims, lower-cases, de-duplicates and sorts categories,
// dropping empty entries.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Validate enforces the catalog invariants: a name, at least one category and
// no negative or non-finite nutrient values.
func (f FoodItem) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if len(NormalizeCategories(f.Categories)) == 0 {
		return &ValidationError{Field: "categories", Reason: "at least one category is required"}
	}
	if f.Calories < 0 {
		return &ValidationError{Field: "calories", Reason: "must not be negative"}
	}
	for _, v := range []struct {
		field string
		val   float64
	}{
		{"protein", f.Protein},
		{"carbohydrates", f.Carbohydrates},
		{"fats", f.Fats},
		{"portion", f.Portion},
	} {
		if v.val < 0 || math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return &ValidationError{Field: v.field, Reason: "must be a non-negative number"}
		}
	}
	return nil
}

// Per100g returns the catalog values as a TotalNutrients.
func (f FoodItem) Per100g() TotalNutrients {
	return TotalNutrients{
		Calories:      float64(f.Calories),
		Protein:       f.Protein,
		Carbohydrates: f.Carbohydrates,
		Fats:          f.Fats,
	}
}

// NutrientsFor returns the contribution of grams of this food.
func (f FoodItem) NutrientsFor(grams float64) TotalNutrients {
	return f.Per100g().Scale(grams / 100)
}

// HasCategory reports whether the food declares category (case-insensitive).
func (f FoodItem) HasCategory(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range f.Categories {
		if strings.ToLower(c) == category {
			return true
		}
	}
	return false
}
