package stats

import (
	"sort"
	"time"

	"github.com/2beens/fitlog/internal/workouts"
)

const day = 24 * time.Hour

// workoutDays returns the distinct UTC days with a workout, newest first.
func workoutDays(list []workouts.Workout) []time.Time {
	seen := make(map[time.Time]bool, len(list))
	days := make([]time.Time, 0, len(list))
	for _, w := range list {
		d := utcDay(w.Date)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days
}

// CurrentStreak counts consecutive workout days ending today or yesterday.
// Anything older than yesterday breaks the streak.
func CurrentStreak(list []workouts.Workout, now time.Time) int {
	today := utcDay(now)

	days := workoutDays(list)
	// workouts logged ahead of today do not extend the streak
	for len(days) > 0 && days[0].After(today) {
		days = days[1:]
	}
	if len(days) == 0 || today.Sub(days[0]) > day {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != day {
			break
		}
		streak++
	}
	return streak
}

func LongestStreak(list []workouts.Workout) int {
	days := workoutDays(list)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == day {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
