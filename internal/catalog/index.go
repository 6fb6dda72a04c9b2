// Package catalog indexes food and exercise catalogs by category and muscle
// group. An Index is built once per catalog load and is read-only afterwards.
package catalog

import (
	"sort"
	"strings"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

// Index groups items under every key they declare.
type Index[T any] struct {
	items []T
	byKey map[string][]T
	keys  []string
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// New builds an index over items. keysOf returns the categories an item
// declares; blank keys are ignored and duplicates within an item collapse.
func New[T any](items []T, keysOf func(T) []string) *Index[T] {
	ix := &Index[T]{
		items: append([]T(nil), items...),
		byKey: make(map[string][]T),
	}
	for _, it := range ix.items {
		seen := make(map[string]bool)
		for _, k := range keysOf(it) {
			k = normalizeKey(k)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			ix.byKey[k] = append(ix.byKey[k], it)
		}
	}
	ix.keys = make([]string, 0, len(ix.byKey))
	for k := range ix.byKey {
		ix.keys = append(ix.keys, k)
	}
	sort.Strings(ix.keys)
	return ix
}

// Categories returns the sorted set of keys.
func (ix *Index[T]) Categories() []string {
	return append([]string(nil), ix.keys...)
}

// ItemsIn returns a copy of the items declared under category, in catalog
// order. Unknown categories yield an empty slice.
func (ix *Index[T]) ItemsIn(category string) []T {
	return append([]T{}, ix.byKey[normalizeKey(category)]...)
}

// ItemsInAny returns the items declared under any of categories, without
// duplicates, in catalog order.
func (ix *Index[T]) ItemsInAny(categories []string, keysOf func(T) []string) []T {
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[normalizeKey(c)] = true
	}
	var out []T
	for _, it := range ix.items {
		for _, k := range keysOf(it) {
			if want[normalizeKey(k)] {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// All returns a copy of every indexed item.
func (ix *Index[T]) All() []T {
	return append([]T(nil), ix.items...)
}

func (ix *Index[T]) Len() int {
	return len(ix.items)
}

/* ─── Typed constructors ─────────────────────────────────────────────── */

func foodKeys(f domain.FoodItem) []string     { return f.Categories }
func exerciseKeys(e domain.Exercise) []string { return e.MuscleGroups }

// Foods indexes foods by category.
func Foods(items []domain.FoodItem) *Index[domain.FoodItem] {
	return New(items, foodKeys)
}

// Exercises indexes exercises by muscle group.
func Exercises(items []domain.Exercise) *Index[domain.Exercise] {
	return New(items, exerciseKeys)
}

// FoodsInAny filters a food index by a set of categories.
func FoodsInAny(ix *Index[domain.FoodItem], categories []string) []domain.FoodItem {
	return ix.ItemsInAny(categories, foodKeys)
}

// CategoriesOf returns the sorted set of categories declared in foods.
func CategoriesOf(foods []domain.FoodItem) []string {
	return Foods(foods).Categories()
}

// MuscleGroupsOf returns the sorted set of muscle groups declared in exercises.
func MuscleGroupsOf(exercises []domain.Exercise) []string {
	return Exercises(exercises).Categories()
}

// ExercisesOfType filters exercises by type, preserving order.
func ExercisesOfType(exercises []domain.Exercise, t domain.ExerciseType) []domain.Exercise {
	var out []domain.Exercise
	for _, e := range exercises {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// FoodsByName maps each food name to its entry. A later duplicate replaces an
// earlier one, matching how the catalog file is re-read after an edit.
func FoodsByName(foods []domain.FoodItem) map[string]domain.FoodItem {
	out := make(map[string]domain.FoodItem, len(foods))
	for _, f := range foods {
		out[f.Name] = f
	}
	return out
}

// ExercisesByName maps each exercise name to its entry.
func ExercisesByName(exercises []domain.Exercise) map[string]domain.Exercise {
	out := make(map[string]domain.Exercise, len(exercises))
	for _, e := range exercises {
		out[e.Name] = e
	}
	return out
}
