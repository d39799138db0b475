package stats

import (
	"context"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/internal/workouts"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

type workoutsLister interface {
	List(ctx context.Context, params workouts.ListParams) ([]workouts.Workout, error)
}

// Analyzer loads a user's workout history and runs the aggregations over it.
type Analyzer struct {
	repo workoutsLister
}

func NewAnalyzer(repo workoutsLister) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func (a *Analyzer) Dashboard(
	ctx context.Context,
	userID string,
	filter FilterParams,
	now time.Time,
	topN int,
) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("category", string(filter.Category)),
		attribute.String("keyword", filter.Keyword),
	)

	history, err := a.repo.List(ctx, workouts.ListParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	dashboard := BuildDashboard(Filter(history, filter), now, topN)
	return &dashboard, nil
}

// ExerciseStats returns the per-exercise breakdown, optionally for one muscle group.
func (a *Analyzer) ExerciseStats(ctx context.Context, userID, muscleGroup string) (_ []ExerciseStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.exercise-stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", muscleGroup))

	history, err := a.repo.List(ctx, workouts.ListParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	return FilterByMuscleGroup(ExerciseBreakdown(history), muscleGroup), nil
}

func (a *Analyzer) WeeklyGroups(ctx context.Context, userID string, filter FilterParams) (_ []WeekGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.weekly-groups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	history, err := a.repo.List(ctx, workouts.ListParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	return GroupByWeek(Filter(history, filter)), nil
}

// WeekWorkouts loads the workouts of the week containing weekStart, newest first.
func (a *Analyzer) WeekWorkouts(ctx context.Context, userID string, weekStart time.Time) (_ []workouts.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.week-workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from := WeekStart(weekStart)
	to := from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	span.SetAttributes(attribute.String("week_start", from.Format(time.DateOnly)))

	return a.repo.List(ctx, workouts.ListParams{
		UserID: userID,
		From:   &from,
		To:     &to,
	})
}
