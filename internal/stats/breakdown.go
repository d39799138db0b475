package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitlog/internal/workouts"
)

const DefaultMuscleGroup = "Other"

// MuscleGroupOrder is the display order of the breakdown, head to toe.
var MuscleGroupOrder = []string{"Chest", "Back", "Shoulders", "Arms", "Legs", "Core", "Cardio", DefaultMuscleGroup}

type ExerciseStats struct {
	Name        string   `json:"name"`
	MuscleGroup string   `json:"muscleGroup"`
	Description string   `json:"description,omitempty"`
	TotalSets   int      `json:"totalSets"`
	Volume      float64  `json:"volume"`
	MaxWeight   *float64 `json:"maxWeight"`
	MinWeight   *float64 `json:"minWeight"`
	SetRange    *float64 `json:"setRange"`
	Progress    *int     `json:"progress"`
	WeightBased bool     `json:"weightBased"`
}

// ExerciseProgress compares the average weight of the latest week with
// weighted sets of the named exercise against the week with data before it.
// Nil when fewer than two such weeks exist.
func ExerciseProgress(list []workouts.Workout, name string) *int {
	week2weights := make(map[time.Time][]float64)
	for _, w := range list {
		for _, we := range w.Exercises {
			if we.Exercise.Name != name {
				continue
			}
			for _, s := range we.Sets {
				if s.Weight > 0 {
					start := WeekStart(w.Date)
					week2weights[start] = append(week2weights[start], s.Weight)
				}
			}
		}
	}
	if len(week2weights) < 2 {
		return nil
	}

	weeks := make([]time.Time, 0, len(week2weights))
	for start := range week2weights {
		weeks = append(weeks, start)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Before(weeks[j])
	})

	last := average(week2weights[weeks[len(weeks)-1]])
	prev := average(week2weights[weeks[len(weeks)-2]])
	progress := int(math.Round(last - prev))
	return &progress
}

func average(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ExerciseBreakdown summarizes every exercise found in the workouts,
// ordered by muscle group and then by name.
func ExerciseBreakdown(list []workouts.Workout) []ExerciseStats {
	name2stats := make(map[string]*ExerciseStats)
	for _, w := range list {
		for _, we := range w.Exercises {
			ex := we.Exercise
			st, ok := name2stats[ex.Name]
			if !ok {
				st = &ExerciseStats{
					Name:        ex.Name,
					MuscleGroup: normalizeMuscleGroup(ex.MuscleGroup),
					Description: ex.Description,
				}
				name2stats[ex.Name] = st
			}
			st.TotalSets += len(we.Sets)
			for _, s := range we.Sets {
				if !ex.Category.IsCardio() {
					st.Volume += s.Volume()
				}
				if s.Weight <= 0 {
					continue
				}
				weight := s.Weight
				if st.MaxWeight == nil || weight > *st.MaxWeight {
					st.MaxWeight = &weight
				}
				if st.MinWeight == nil || weight < *st.MinWeight {
					st.MinWeight = &weight
				}
			}
		}
	}

	result := make([]ExerciseStats, 0, len(name2stats))
	for name, st := range name2stats {
		if st.MaxWeight != nil {
			st.WeightBased = true
			setRange := *st.MaxWeight - *st.MinWeight
			st.SetRange = &setRange
		}
		st.Progress = ExerciseProgress(list, name)
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool {
		gi, gj := muscleGroupRank(result[i].MuscleGroup), muscleGroupRank(result[j].MuscleGroup)
		if gi != gj {
			return gi < gj
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// normalizeMuscleGroup maps known groups to their canonical spelling.
// Unknown groups are kept as they are and sorted with Other.
func normalizeMuscleGroup(group string) string {
	group = strings.TrimSpace(group)
	if group == "" {
		return DefaultMuscleGroup
	}
	for _, known := range MuscleGroupOrder {
		if strings.EqualFold(known, group) {
			return known
		}
	}
	return group
}

func muscleGroupRank(group string) int {
	for i, known := range MuscleGroupOrder {
		if known == group {
			return i
		}
	}
	return len(MuscleGroupOrder) - 1
}
