// Package catalogfs loads the food and exercise catalogs from their CSV files
// and keeps an in-memory snapshot current as the files change.
package catalogfs

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
	"time"

	"github.com/martinle068/FitnnessApp/internal/catalog"
	"github.com/martinle068/FitnnessApp/internal/csvio"
	"github.com/martinle068/FitnnessApp/internal/domain"
)

// Snapshot is one consistent load of both catalog files. It is never
// modified after creation.
type Snapshot struct {
	Foods         []domain.FoodItem
	Exercises     []domain.Exercise
	FoodIndex     *catalog.Index[domain.FoodItem]
	ExerciseIndex *catalog.Index[domain.Exercise]

	// Rows rejected while loading, with line numbers.
	FoodErrors     []*domain.ParseError
	ExerciseErrors []*domain.ParseError

	LoadedAt time.Time
}

// NewSnapshot indexes already-parsed catalogs.
func NewSnapshot(foods []domain.FoodItem, exercises []domain.Exercise) *Snapshot {
	return &Snapshot{
		Foods:         foods,
		Exercises:     exercises,
		FoodIndex:     catalog.Foods(foods),
		ExerciseIndex: catalog.Exercises(exercises),
		LoadedAt:      time.Now(),
	}
}

// Load reads both files. A missing file yields an empty catalog; malformed
// rows are skipped and reported in the snapshot.
func Load(foodPath, exercisePath string) (*Snapshot, error) {
	foods, err := csvio.ReadFile(foodPath, csvio.ParseFoodItem)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load food catalog: %w", err)
	}
	exercises, err := csvio.ReadFile(exercisePath, csvio.ParseExercise)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load exercise catalog: %w", err)
	}
	snap := NewSnapshot(foods.Items, exercises.Items)
	snap.FoodErrors = foods.Errors
	snap.ExerciseErrors = exercises.Errors
	return snap, nil
}

// Store holds the current snapshot. Readers never block; writers are
// serialized so a file replacement and its reload happen together.
type Store struct {
	FoodPath     string
	ExercisePath string

	cur atomic.Pointer[Snapshot]
	mu  sync.Mutex
}

// NewStore loads the catalog files once.
func NewStore(foodPath, exercisePath string) (*Store, error) {
	s := &Store{FoodPath: foodPath, ExercisePath: exercisePath}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the latest snapshot.
func (s *Store) Current() *Snapshot {
	return s.cur.Load()
}

// Reload re-reads both files and swaps the snapshot in. On error the previous
// snapshot stays current.
func (s *Store) Reload() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *Store) reloadLocked() (*Snapshot, error) {
	snap, err := Load(s.FoodPath, s.ExercisePath)
	if err != nil {
		return nil, err
	}
	s.cur.Store(snap)
	return snap, nil
}

// ReplaceFoods rewrites the food file with foods and reloads.
func (s *Store) ReplaceFoods(foods []domain.FoodItem) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := csvio.WriteFile(s.FoodPath, foods, csvio.FormatFoodItem); err != nil {
		return nil, fmt.Errorf("write food catalog: %w", err)
	}
	return s.reloadLocked()
}

// ReplaceExercises rewrites the exercise file with exercises and reloads.
func (s *Store) ReplaceExercises(exercises []domain.Exercise) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := csvio.WriteFile(s.ExercisePath, exercises, csvio.FormatExercise); err != nil {
		return nil, fmt.Errorf("write exercise catalog: %w", err)
	}
	return s.reloadLocked()
}
