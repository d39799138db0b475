package workouts

import (
	"errors"
	"time"

	"github.com/2beens/fitlog/internal/exercises"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrNoExercises     = errors.New("workout has no exercises")
	ErrNoSets          = errors.New("exercise has no sets")
	ErrInvalidSet      = errors.New("invalid set")
)

// Set is a single set. Strength sets carry reps and weight,
// cardio sets carry the duration in minutes.
type Set struct {
	ID        int     `json:"id,omitempty"`
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
	Duration  int     `json:"duration,omitempty"`
}

// Volume is reps x weight, 0 for cardio sets.
func (s Set) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

type WorkoutExercise struct {
	ID       int                `json:"id,omitempty"`
	Position int                `json:"position"`
	Exercise exercises.Exercise `json:"exercise"`
	Sets     []Set              `json:"sets"`
}

type Workout struct {
	ID        int               `json:"id,omitempty"`
	UserID    string            `json:"userId,omitempty"`
	Date      time.Time         `json:"date"`
	Notes     string            `json:"notes,omitempty"`
	Exercises []WorkoutExercise `json:"workoutExercises"`
}

// SetInput is a set as submitted by the client, before it is shaped by the exercise category.
type SetInput struct {
	Reps     int     `json:"reps,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
	Duration int     `json:"duration,omitempty"`
}

type EntryInput struct {
	ExerciseID int        `json:"exerciseId"`
	Sets       []SetInput `json:"sets"`
}

type LogParams struct {
	UserID  string
	Date    time.Time
	Notes   string
	Entries []EntryInput
}

// shapeSets numbers the sets and keeps only the fields that belong to the category.
func shapeSets(category exercises.Category, inputs []SetInput) ([]Set, error) {
	if len(inputs) == 0 {
		return nil, ErrNoSets
	}
	sets := make([]Set, 0, len(inputs))
	for i, in := range inputs {
		if in.Reps < 0 || in.Weight < 0 || in.Duration < 0 {
			return nil, ErrInvalidSet
		}
		s := Set{SetNumber: i + 1}
		if category.IsCardio() {
			s.Duration = in.Duration
		} else {
			s.Reps = in.Reps
			s.Weight = in.Weight
		}
		sets = append(sets, s)
	}
	return sets, nil
}
