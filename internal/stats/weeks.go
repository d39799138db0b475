package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/2beens/fitlog/internal/workouts"
)

const weekLabelDateLayout = "Jan 2, 2006"

type WeekGroup struct {
	Label    string             `json:"label"`
	Start    time.Time          `json:"start"`
	Workouts []workouts.Workout `json:"workouts"`
	Sets     int                `json:"sets"`
	Volume   float64            `json:"volume"`
}

// WeekStart returns the Monday (UTC midnight) of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := utcDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekLabel formats the Monday to Sunday range of the week containing t.
func WeekLabel(t time.Time) string {
	start := WeekStart(t)
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("Week of %s – %s", start.Format(weekLabelDateLayout), end.Format(weekLabelDateLayout))
}

func CurrentWeekLabel(now time.Time) string {
	return WeekLabel(now)
}

// GroupByWeek buckets workouts into Monday-starting weeks, newest week first.
// Workouts inside a week are ordered newest first.
func GroupByWeek(list []workouts.Workout) []WeekGroup {
	start2group := make(map[time.Time]*WeekGroup)
	for _, w := range list {
		start := WeekStart(w.Date)
		group, ok := start2group[start]
		if !ok {
			group = &WeekGroup{
				Label:    WeekLabel(start),
				Start:    start,
				Workouts: []workouts.Workout{},
			}
			start2group[start] = group
		}
		group.Workouts = append(group.Workouts, w)
		group.Sets += workoutSets(w)
		group.Volume += workoutVolume(w)
	}

	groups := make([]WeekGroup, 0, len(start2group))
	for _, group := range start2group {
		sort.SliceStable(group.Workouts, func(i, j int) bool {
			return group.Workouts[i].Date.After(group.Workouts[j].Date)
		})
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Start.After(groups[j].Start)
	})
	return groups
}
