// Package stats aggregates workout history into dashboard figures.
// Every function here is pure and works on in-memory workouts.
package stats

import (
	"sort"
	"time"

	"github.com/2beens/fitlog/internal/workouts"
)

type PersonalRecord struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
}

type ExerciseCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DailyVolumePoint struct {
	Date   time.Time `json:"date"`
	Volume float64   `json:"volume"`
}

// TotalVolume sums reps x weight over all sets. Cardio sets count as 0.
func TotalVolume(list []workouts.Workout) float64 {
	var volume float64
	for _, w := range list {
		volume += workoutVolume(w)
	}
	return volume
}

func TotalSets(list []workouts.Workout) int {
	total := 0
	for _, w := range list {
		total += workoutSets(w)
	}
	return total
}

// TotalDuration sums the cardio minutes.
func TotalDuration(list []workouts.Workout) int {
	total := 0
	for _, w := range list {
		for _, we := range w.Exercises {
			for _, s := range we.Sets {
				total += s.Duration
			}
		}
	}
	return total
}

func workoutVolume(w workouts.Workout) float64 {
	var volume float64
	for _, we := range w.Exercises {
		if we.Exercise.Category.IsCardio() {
			continue
		}
		for _, s := range we.Sets {
			volume += s.Volume()
		}
	}
	return volume
}

func workoutSets(w workouts.Workout) int {
	sets := 0
	for _, we := range w.Exercises {
		sets += len(we.Sets)
	}
	return sets
}

// PersonalRecords returns the max weight per exercise name, heaviest first.
// Exercises never done with a weight are left out.
func PersonalRecords(list []workouts.Workout) []PersonalRecord {
	maxWeight := make(map[string]float64)
	for _, w := range list {
		for _, we := range w.Exercises {
			for _, s := range we.Sets {
				if s.Weight > maxWeight[we.Exercise.Name] {
					maxWeight[we.Exercise.Name] = s.Weight
				}
			}
		}
	}

	records := make([]PersonalRecord, 0, len(maxWeight))
	for name, weight := range maxWeight {
		records = append(records, PersonalRecord{Exercise: name, Weight: weight})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Weight != records[j].Weight {
			return records[i].Weight > records[j].Weight
		}
		return records[i].Exercise < records[j].Exercise
	})
	return records
}

// MostFrequent counts how many times each exercise appears across workouts
// and returns the top n (all of them when n <= 0). Ties go alphabetically.
func MostFrequent(list []workouts.Workout, n int) []ExerciseCount {
	counts := make(map[string]int)
	for _, w := range list {
		for _, we := range w.Exercises {
			counts[we.Exercise.Name]++
		}
	}

	result := make([]ExerciseCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, ExerciseCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// DailyVolume is the volume per UTC day, oldest first.
func DailyVolume(list []workouts.Workout) []DailyVolumePoint {
	day2volume := make(map[time.Time]float64)
	for _, w := range list {
		day2volume[utcDay(w.Date)] += workoutVolume(w)
	}

	points := make([]DailyVolumePoint, 0, len(day2volume))
	for day, volume := range day2volume {
		points = append(points, DailyVolumePoint{Date: day, Volume: volume})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
