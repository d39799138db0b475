// Package summary generates the weekly AI workout summaries and keeps
// one cached summary per user and week.
package summary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/workouts"
)

var (
	ErrSummaryNotFound = errors.New("summary not found")
	ErrUpstream        = errors.New("summary generator failed")
	ErrEmptySummary    = errors.New("summary generator returned an empty summary")
	ErrMissingWeek     = errors.New("missing week")
)

type WeeklySummary struct {
	UserID      string    `json:"userId"`
	WeekStart   time.Time `json:"weekStart"`
	WeekLabel   string    `json:"weekLabel"`
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Request is what the generator needs to write one summary.
type Request struct {
	Workouts        []workouts.Workout
	UserName        string
	WeekLabel       string
	PreviousSummary string
}

// ParseWeekLabel returns the Monday a "Week of Jan 2, 2006 – Jan 8, 2006" label starts on.
func ParseWeekLabel(label string) (time.Time, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(label), "Week of ")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unexpected label %q", ErrMissingWeek, label)
	}
	startStr, _, _ := strings.Cut(rest, " – ")
	start, err := time.Parse("Jan 2, 2006", strings.TrimSpace(startStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMissingWeek, err)
	}
	return stats.WeekStart(start), nil
}

func cacheKey(userID string, weekStart time.Time) string {
	return fmt.Sprintf("summary::%s::%s", userID, weekStart.Format(time.DateOnly))
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
