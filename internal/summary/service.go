package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=summary_test

type weekWorkoutsLoader interface {
	WeekWorkouts(ctx context.Context, userID string, weekStart time.Time) ([]workouts.Workout, error)
}

type Params struct {
	UserID    string
	UserName  string
	WeekStart time.Time
	// WeekLabel defaults to the label of WeekStart.
	WeekLabel string
	// Workouts are loaded from the store when nil.
	Workouts []workouts.Workout
	// Force skips the cached summary.
	Force bool
}

type Service struct {
	store          summaryStore
	generator      Generator
	loader         weekWorkoutsLoader
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	store summaryStore,
	generator Generator,
	loader weekWorkoutsLoader,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		store:          store,
		generator:      generator,
		loader:         loader,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// WeeklySummary returns the user's summary for the week. A summary generated
// earlier on the same UTC day is reused unless Force is set, otherwise a new one
// is generated with the previous week's summary as context and stored.
func (s *Service) WeeklySummary(ctx context.Context, params Params) (_ *WeeklySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.summary.weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.WeekStart.IsZero() {
		return nil, ErrMissingWeek
	}
	weekStart := stats.WeekStart(params.WeekStart)
	weekLabel := params.WeekLabel
	if weekLabel == "" {
		weekLabel = stats.WeekLabel(weekStart)
	}
	span.SetAttributes(
		attribute.String("week_start", weekStart.Format(time.DateOnly)),
		attribute.Bool("force", params.Force),
	)

	now := s.now()
	if !params.Force {
		cached, err := s.store.Get(ctx, params.UserID, weekStart)
		switch {
		case err == nil && sameUTCDay(cached.GeneratedAt, now):
			s.metricsManager.CounterSummaryCacheHits.Inc()
			span.SetAttributes(attribute.Bool("cached", true))
			return cached, nil
		case err != nil && !errors.Is(err, ErrSummaryNotFound):
			return nil, fmt.Errorf("get cached summary: %w", err)
		}
	}
	s.metricsManager.CounterSummaryCacheMisses.Inc()

	weekWorkouts := params.Workouts
	if weekWorkouts == nil && s.loader != nil {
		weekWorkouts, err = s.loader.WeekWorkouts(ctx, params.UserID, weekStart)
		if err != nil {
			return nil, fmt.Errorf("load week workouts: %w", err)
		}
	}

	var previousSummary string
	previous, err := s.store.Get(ctx, params.UserID, weekStart.AddDate(0, 0, -7))
	switch {
	case err == nil:
		previousSummary = previous.Summary
	case !errors.Is(err, ErrSummaryNotFound):
		log.Warnf("failed to get previous week summary for user %s: %s", params.UserID, err)
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, Request{
		Workouts:        weekWorkouts,
		UserName:        params.UserName,
		WeekLabel:       weekLabel,
		PreviousSummary: previousSummary,
	})
	s.metricsManager.HistSummaryGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metricsManager.CounterSummaryFailures.Inc()
		if !errors.Is(err, ErrUpstream) && !errors.Is(err, ErrEmptySummary) {
			err = fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		return nil, err
	}

	generated := WeeklySummary{
		UserID:      params.UserID,
		WeekStart:   weekStart,
		WeekLabel:   weekLabel,
		Summary:     text,
		GeneratedAt: now,
	}
	if err := s.store.Upsert(ctx, generated); err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}
	s.metricsManager.CounterSummariesGenerated.Inc()

	return &generated, nil
}
