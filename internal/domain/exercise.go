package domain

import (
	"strings"
)

// Exercise is a catalog entry. Repetitions and Sets are the default
// prescription; 0 lets the workout builder pick a goal default.
type Exercise struct {
	Name         string       `json:"name"`
	Type         ExerciseType `json:"type"`
	MuscleGroups []string     `json:"muscle_groups"`
	Repetitions  int          `json:"repetitions"`
	Sets         int          `json:"sets"`
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !e.Type.Valid() {
		return configErr("exercise type", e.Type.String())
	}
	if len(NormalizeCategories(e.MuscleGroups)) == 0 {
		return &ValidationError{Field: "muscle_groups", Reason: "at least one muscle group is required"}
	}
	if e.Repetitions < 0 || e.Sets < 0 {
		return &ValidationError{Field: "volume", Reason: "sets and repetitions must not be negative"}
	}
	return nil
}

// Volume is sets × repetitions.
func (e Exercise) Volume() int {
	return e.Sets * e.Repetitions
}

// Trains reports whether the exercise declares muscle group g.
func (e Exercise) Trains(g string) bool {
	g = strings.ToLower(strings.TrimSpace(g))
	for _, m := range e.MuscleGroups {
		if strings.ToLower(m) == g {
			return true
		}
	}
	return false
}
