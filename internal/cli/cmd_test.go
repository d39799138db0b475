package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testUserID = "7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"

var testNow = time.Date(2025, 3, 19, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeStats struct {
	userID string
	filter stats.FilterParams
	now    time.Time
	topN   int
	err    error
}

func (f *fakeStats) Dashboard(_ context.Context, userID string, filter stats.FilterParams, now time.Time, topN int) (*stats.Dashboard, error) {
	f.userID, f.filter, f.now, f.topN = userID, filter, now, topN
	if f.err != nil {
		return nil, f.err
	}
	return &stats.Dashboard{
		TotalWorkouts:    2,
		TotalVolume:      980,
		TotalSets:        2,
		CurrentStreak:    1,
		LongestStreak:    2,
		PersonalRecords:  []stats.PersonalRecord{{Exercise: "Bench Press", Weight: 60}},
		MostFrequent:     []stats.ExerciseCount{{Name: "Bench Press", Count: 2}},
		CurrentWeekLabel: stats.CurrentWeekLabel(now),
	}, nil
}

type fakeSummaries struct {
	params summary.Params
}

func (f *fakeSummaries) WeeklySummary(_ context.Context, params summary.Params) (*summary.WeeklySummary, error) {
	f.params = params
	return &summary.WeeklySummary{
		UserID:      params.UserID,
		WeekStart:   params.WeekStart,
		WeekLabel:   stats.WeekLabel(params.WeekStart),
		Summary:     "Great consistency this week.",
		GeneratedAt: testNow,
	}, nil
}

type testApp struct {
	stats     *fakeStats
	summaries *fakeSummaries
	migrated  bool
	env       string
}

func newTestApp() *testApp {
	return &testApp{stats: &fakeStats{}, summaries: &fakeSummaries{}}
}

func (ta *testApp) factory(_ context.Context, env, _ string) (*App, error) {
	ta.env = env
	return &App{
		Migrate: func(context.Context) error {
			ta.migrated = true
			return nil
		},
		Stats:     ta.stats,
		Summaries: ta.summaries,
		Now:       func() time.Time { return testNow },
	}, nil
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, factory AppFactory, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(factory)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestMigrateCmd(t *testing.T) {
	ta := newTestApp()
	out, err := executeCmd(t, ta.factory, "migrate", "--env", "production")
	require.NoError(t, err)
	assert.True(t, ta.migrated)
	assert.Equal(t, "production", ta.env)
	assert.Equal(t, "schema applied\n", out)
}

func TestRootCmd_FactoryError(t *testing.T) {
	_, err := executeCmd(t, func(context.Context, string, string) (*App, error) {
		return nil, errors.New("no config")
	}, "migrate")
	assert.EqualError(t, err, "no config")
}

func TestDashboardCmd(t *testing.T) {
	ta := newTestApp()
	out, err := executeCmd(t, ta.factory,
		"dashboard", "--user", testUserID, "--category", "weight_training", "--q", "bench", "--top", "3",
	)
	require.NoError(t, err)

	assert.Equal(t, testUserID, ta.stats.userID)
	assert.Equal(t, exercises.CategoryWeightTraining, ta.stats.filter.Category)
	assert.Equal(t, "bench", ta.stats.filter.Keyword)
	assert.Equal(t, 3, ta.stats.topN)
	assert.Equal(t, testNow, ta.stats.now)

	assert.True(t, strings.HasPrefix(out, "Week of Mar 17, 2025 – Mar 23, 2025\n"))
	assert.Contains(t, out, "Total volume")
	assert.Contains(t, out, "980.0 kg")
	assert.Contains(t, out, "Bench Press")
}

func TestDashboardCmd_JSON(t *testing.T) {
	ta := newTestApp()
	out, err := executeCmd(t, ta.factory, "dashboard", "--user", testUserID, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalVolume": 980`)
	assert.Equal(t, stats.DefaultTopN, ta.stats.topN)
}

func TestDashboardCmd_Errors(t *testing.T) {
	ta := newTestApp()

	_, err := executeCmd(t, ta.factory, "dashboard")
	assert.Error(t, err)

	_, err = executeCmd(t, ta.factory, "dashboard", "--user", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid --user")

	_, err = executeCmd(t, ta.factory, "dashboard", "--user", testUserID, "--category", "yoga")
	assert.Error(t, err)

	ta.stats.err = errors.New("db down")
	_, err = executeCmd(t, ta.factory, "dashboard", "--user", testUserID)
	assert.ErrorContains(t, err, "db down")
}

func TestSummaryCmd(t *testing.T) {
	ta := newTestApp()
	out, err := executeCmd(t, ta.factory, "summary", "--user", testUserID, "--week", "2025-03-05", "--force", "--name", "Serj")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), ta.summaries.params.WeekStart)
	assert.True(t, ta.summaries.params.Force)
	assert.Equal(t, "Serj", ta.summaries.params.UserName)
	assert.Contains(t, out, "Week of Mar 3, 2025 – Mar 9, 2025\n")
	assert.Contains(t, out, "Great consistency this week.")
}

func TestParseWeek(t *testing.T) {
	monday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	got, err := parseWeek("", testNow)
	require.NoError(t, err)
	assert.Equal(t, monday, got)

	got, err = parseWeek("2025-03-23", testNow)
	require.NoError(t, err)
	assert.Equal(t, monday, got)

	got, err = parseWeek("Week of Mar 17, 2025 – Mar 23, 2025", testNow)
	require.NoError(t, err)
	assert.Equal(t, monday, got)

	_, err = parseWeek("next week", testNow)
	assert.Error(t, err)
}
