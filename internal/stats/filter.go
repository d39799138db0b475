package stats

import (
	"strings"

	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/workouts"
)

type FilterParams struct {
	// Category empty means any category.
	Category exercises.Category
	// Keyword is matched case-insensitively against exercise names.
	Keyword string
}

func (p FilterParams) IsEmpty() bool {
	return p.Category == "" && strings.TrimSpace(p.Keyword) == ""
}

func (p FilterParams) matches(ex exercises.Exercise, keyword string) bool {
	if p.Category != "" && ex.Category != p.Category {
		return false
	}
	return keyword == "" || strings.Contains(strings.ToLower(ex.Name), keyword)
}

// Filter keeps the workouts with at least one matching exercise. The returned
// workouts are copies holding only the matching exercises.
func Filter(list []workouts.Workout, params FilterParams) []workouts.Workout {
	filtered := make([]workouts.Workout, 0, len(list))
	if params.IsEmpty() {
		return append(filtered, list...)
	}

	keyword := strings.ToLower(strings.TrimSpace(params.Keyword))
	for _, w := range list {
		var kept []workouts.WorkoutExercise
		for _, we := range w.Exercises {
			if params.matches(we.Exercise, keyword) {
				kept = append(kept, we)
			}
		}
		if len(kept) == 0 {
			continue
		}
		w.Exercises = kept
		filtered = append(filtered, w)
	}
	return filtered
}

// FilterByMuscleGroup keeps breakdown entries of the given group, all of them for an empty group.
func FilterByMuscleGroup(breakdown []ExerciseStats, group string) []ExerciseStats {
	group = strings.TrimSpace(group)
	if group == "" {
		return breakdown
	}
	filtered := make([]ExerciseStats, 0, len(breakdown))
	for _, st := range breakdown {
		if strings.EqualFold(st.MuscleGroup, group) {
			filtered = append(filtered, st)
		}
	}
	return filtered
}
