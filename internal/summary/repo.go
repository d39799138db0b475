package summary

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID string, weekStart time.Time) (_ *WeeklySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.summary.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("week_start", weekStart.Format(time.DateOnly)))

	var s WeeklySummary
	err = r.db.QueryRow(ctx, `
		SELECT user_id::text, week_start, week_label, summary, generated_at
		FROM weekly_summary
		WHERE user_id = $1::uuid AND week_start = $2::date;`,
		userID, weekStart.Format(time.DateOnly),
	).Scan(&s.UserID, &s.WeekStart, &s.WeekLabel, &s.Summary, &s.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert stores the summary, replacing whatever was stored for the same user and week.
func (r *Repo) Upsert(ctx context.Context, s WeeklySummary) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.summary.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("week_start", s.WeekStart.Format(time.DateOnly)))

	_, err = r.db.Exec(ctx, `
		INSERT INTO weekly_summary (user_id, week_start, week_label, summary, generated_at)
		VALUES ($1::uuid, $2::date, $3, $4, $5)
		ON CONFLICT (user_id, week_start) DO UPDATE
		SET week_label = EXCLUDED.week_label,
			summary = EXCLUDED.summary,
			generated_at = EXCLUDED.generated_at;`,
		s.UserID, s.WeekStart.Format(time.DateOnly), s.WeekLabel, s.Summary, s.GeneratedAt,
	)
	return err
}
