package profiles

import (
	"context"
	"errors"

	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var p Profile
	err = r.db.QueryRow(ctx, `
		SELECT id::text, name, avatar_url, created_at
		FROM profile
		WHERE id = $1::uuid;`,
		userID,
	).Scan(&p.ID, &p.Name, &p.AvatarURL, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) UpdateName(ctx context.Context, userID, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.update-name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return r.update(ctx, `UPDATE profile SET name = $2 WHERE id = $1::uuid`, userID, name)
}

func (r *Repo) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.update-avatar-url")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return r.update(ctx, `UPDATE profile SET avatar_url = $2 WHERE id = $1::uuid`, userID, avatarURL)
}

func (r *Repo) update(ctx context.Context, query, userID, value string) error {
	tag, err := r.db.Exec(ctx, query, userID, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
