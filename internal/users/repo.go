package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/google/uuid"
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

// Create adds the user together with an empty profile carrying the display name.
func (r *Repo) Create(ctx context.Context, email, passwordHash, name string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err = tx.QueryRow(ctx, `
		INSERT INTO app_user (id, email, password_hash)
		VALUES ($1::uuid, $2, $3)
		RETURNING created_at;`,
		user.ID, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO profile (id, name)
		VALUES ($1::uuid, $2);`,
		user.ID, name,
	); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	return &user, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get-by-email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var user User
	err = r.db.QueryRow(ctx, `
		SELECT id::text, email, password_hash, created_at
		FROM app_user
		WHERE email = $1;`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
