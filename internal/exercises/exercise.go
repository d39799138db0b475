package exercises

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidCategory  = errors.New("invalid category")
)

type Category string

const (
	CategoryWeightTraining Category = "weight_training"
	CategoryCardio         Category = "cardio"
	CategoryCalisthenics   Category = "calisthenics"
)

var Categories = []Category{
	CategoryWeightTraining,
	CategoryCardio,
	CategoryCalisthenics,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWeightTraining, CategoryCardio, CategoryCalisthenics:
		return true
	default:
		return false
	}
}

// IsCardio reports whether sets of this category carry a duration instead of reps and weight.
func (c Category) IsCardio() bool {
	return c == CategoryCardio
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Exercise is either global (no owner) or owned by the user who quick-added it.
type Exercise struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	MuscleGroup string   `json:"muscleGroup,omitempty"`
	Description string   `json:"description,omitempty"`
	UserID      *string  `json:"userId,omitempty"`
}

func (e Exercise) IsGlobal() bool {
	return e.UserID == nil
}
