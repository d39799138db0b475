package stats

import (
	"time"

	"github.com/2beens/fitlog/internal/workouts"
)

const DefaultTopN = 5

type Dashboard struct {
	TotalWorkouts    int                `json:"totalWorkouts"`
	TotalVolume      float64            `json:"totalVolume"`
	TotalSets        int                `json:"totalSets"`
	TotalDuration    int                `json:"totalDuration"`
	CurrentStreak    int                `json:"currentStreak"`
	LongestStreak    int                `json:"longestStreak"`
	PersonalRecords  []PersonalRecord   `json:"personalRecords"`
	MostFrequent     []ExerciseCount    `json:"mostFrequent"`
	CurrentWeekLabel string             `json:"currentWeekLabel"`
	Weeks            []WeekGroup        `json:"weeks"`
	DailyVolume      []DailyVolumePoint `json:"dailyVolume"`
}

func BuildDashboard(list []workouts.Workout, now time.Time, topN int) Dashboard {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return Dashboard{
		TotalWorkouts:    len(list),
		TotalVolume:      TotalVolume(list),
		TotalSets:        TotalSets(list),
		TotalDuration:    TotalDuration(list),
		CurrentStreak:    CurrentStreak(list, now),
		LongestStreak:    LongestStreak(list),
		PersonalRecords:  PersonalRecords(list),
		MostFrequent:     MostFrequent(list, topN),
		CurrentWeekLabel: CurrentWeekLabel(now),
		Weeks:            GroupByWeek(list),
		DailyVolume:      DailyVolume(list),
	}
}
