package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID string
	From   *time.Time
	To     *time.Time
	// Limit caps the number of workouts, 0 means no limit.
	Limit int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Insert stores the workout with its exercises and sets in a single transaction.
func (r *Repo) Insert(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.insert")
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

	var notes *string
	if workout.Notes != "" {
		notes = &workout.Notes
	}
	if err = tx.QueryRow(ctx, `
		INSERT INTO workout (user_id, date, notes)
		VALUES ($1, $2, $3)
		RETURNING id
	`, workout.UserID, workout.Date, notes).Scan(&workout.ID); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		if err = tx.QueryRow(ctx, `
			INSERT INTO workout_exercise (workout_id, exercise_id, position)
			VALUES ($1, $2, $3)
			RETURNING id
		`, workout.ID, we.Exercise.ID, we.Position).Scan(&we.ID); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return nil, fmt.Errorf("%w: %d", exercises.ErrExerciseNotFound, we.Exercise.ID)
			}
			return nil, fmt.Errorf("insert workout exercise: %w", err)
		}

		for j := range we.Sets {
			s := &we.Sets[j]
			reps, weight, duration := setColumns(we.Exercise.Category, *s)
			if err = tx.QueryRow(ctx, `
				INSERT INTO workout_set (workout_exercise_id, set_number, reps, weight, duration)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, we.ID, s.SetNumber, reps, weight, duration).Scan(&s.ID); err != nil {
				return nil, fmt.Errorf("insert set: %w", err)
			}
		}
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))
	return &workout, nil
}

// setColumns maps the set to its nullable columns, cardio sets only store the duration.
func setColumns(category exercises.Category, s Set) (reps *int, weight *float64, duration *int) {
	if category.IsCardio() {
		return nil, nil, &s.Duration
	}
	return &s.Reps, &s.Weight, nil
}

// List returns the user's workouts in the range, newest first, fully loaded.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", params.Limit))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	var limit *int
	if params.Limit > 0 {
		limit = &params.Limit
	}

	rows, err := r.db.Query(ctx, `
		WITH w AS (
			SELECT id, user_id, date, notes
			FROM workout
			WHERE user_id = $1::uuid
				AND ($2::timestamptz IS NULL OR date >= $2)
				AND ($3::timestamptz IS NULL OR date <= $3)
			ORDER BY date DESC, id DESC
			LIMIT $4::int
		)
		`+workoutDetailsSelect+`
		ORDER BY w.date DESC, w.id DESC, we.position, we.id, s.set_number;`,
		params.UserID, params.From, params.To, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2workouts(rows)
}

func (r *Repo) Get(ctx context.Context, id int, userID string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(ctx, `
		WITH w AS (
			SELECT id, user_id, date, notes
			FROM workout
			WHERE id = $1 AND user_id = $2::uuid
		)
		`+workoutDetailsSelect+`
		ORDER BY we.position, we.id, s.set_number;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, ErrWorkoutNotFound
	}
	return &list[0], nil
}

// Delete removes the workout, its exercises and sets go with it (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1 AND user_id = $2::uuid`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

const workoutDetailsSelect = `
		SELECT
			w.id, w.user_id, w.date, w.notes,
			we.id, we.position,
			e.id, e.name, e.category, e.muscle_group, e.description, e.user_id,
			s.id, s.set_number, s.reps, s.weight, s.duration
		FROM w
		LEFT JOIN workout_exercise we ON we.workout_id = w.id
		LEFT JOIN exercise e ON e.id = we.exercise_id
		LEFT JOIN workout_set s ON s.workout_exercise_id = we.id`

// rows2workouts folds the flat join rows back into nested workouts, keeping row order.
func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	list := make([]Workout, 0)
	workoutIdx := map[int]int{}
	weIdx := map[int]int{}

	for rows.Next() {
		var (
			wID                                         int
			userID                                      string
			date                                        time.Time
			notes                                       *string
			weID, wePosition                            *int
			exID                                        *int
			exName, exCategory, exMuscle, exDesc, exUID *string
			setID, setNumber, reps, duration            *int
			weight                                      *float64
		)
		if err := rows.Scan(
			&wID, &userID, &date, &notes,
			&weID, &wePosition,
			&exID, &exName, &exCategory, &exMuscle, &exDesc, &exUID,
			&setID, &setNumber, &reps, &weight, &duration,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		wi, ok := workoutIdx[wID]
		if !ok {
			w := Workout{
				ID:        wID,
				UserID:    userID,
				Date:      date,
				Exercises: []WorkoutExercise{},
			}
			if notes != nil {
				w.Notes = *notes
			}
			list = append(list, w)
			wi = len(list) - 1
			workoutIdx[wID] = wi
		}
		if weID == nil {
			continue
		}

		w := &list[wi]
		ei, ok := weIdx[*weID]
		if !ok {
			we := WorkoutExercise{
				ID:       *weID,
				Position: derefInt(wePosition),
				Exercise: exercises.Exercise{
					ID:          derefInt(exID),
					Name:        derefString(exName),
					Category:    exercises.Category(derefString(exCategory)),
					MuscleGroup: derefString(exMuscle),
					Description: derefString(exDesc),
					UserID:      exUID,
				},
				Sets: []Set{},
			}
			w.Exercises = append(w.Exercises, we)
			ei = len(w.Exercises) - 1
			weIdx[*weID] = ei
		}
		if setID == nil {
			continue
		}

		w.Exercises[ei].Sets = append(w.Exercises[ei].Sets, Set{
			ID:        *setID,
			SetNumber: derefInt(setNumber),
			Reps:      derefInt(reps),
			Weight:    derefFloat(weight),
			Duration:  derefInt(duration),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
