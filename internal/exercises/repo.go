package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID   string
	Category Category
	Keyword  string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (name, category, muscle_group, description, user_id)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
			RETURNING id;`,
		exercise.Name, exercise.Category, exercise.MuscleGroup, exercise.Description, exercise.UserID,
	).Scan(&exercise.ID)
	if pkg.IsCheckViolationError(err) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, exercise.Category)
	}
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return &exercise, nil
}

// Get returns the exercise if it is global or owned by the user.
func (r *Repo) Get(ctx context.Context, id int, userID string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, category, muscle_group, description, user_id
			FROM exercise
			WHERE id = $1 AND (user_id IS NULL OR user_id = $2::uuid);`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2exercises(rows)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, ErrExerciseNotFound
	}
	return &list[0], nil
}

// List returns global exercises and the user's own, ordered by name.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category", string(params.Category)))
	span.SetAttributes(attribute.String("keyword", params.Keyword))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, category, muscle_group, description, user_id
			FROM exercise
			WHERE (user_id IS NULL OR user_id = $1::uuid)
				AND ($2::text = '' OR category = $2)
				AND ($3::text = '' OR name ILIKE '%' || $3 || '%')
			ORDER BY name, id;`,
		params.UserID, string(params.Category), params.Keyword,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2exercises(rows)
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	list := make([]Exercise, 0)
	for rows.Next() {
		var (
			ex          Exercise
			muscleGroup *string
			description *string
		)
		if err := rows.Scan(
			&ex.ID, &ex.Name, &ex.Category, &muscleGroup, &description, &ex.UserID,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if muscleGroup != nil {
			ex.MuscleGroup = *muscleGroup
		}
		if description != nil {
			ex.Description = *description
		}
		list = append(list, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// IsNotFound is true for errors meaning the exercise is missing or not visible.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExerciseNotFound) || errors.Is(err, pgx.ErrNoRows)
}
