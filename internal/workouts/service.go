package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type exerciseGetter interface {
	Get(ctx context.Context, id int, userID string) (*exercises.Exercise, error)
}

type workoutsRepo interface {
	Insert(ctx context.Context, workout Workout) (*Workout, error)
	List(ctx context.Context, params ListParams) ([]Workout, error)
	Get(ctx context.Context, id int, userID string) (*Workout, error)
	Delete(ctx context.Context, id int, userID string) error
}

type Service struct {
	repo      workoutsRepo
	exercises exerciseGetter
	now       func() time.Time
}

func NewService(repo workoutsRepo, exercisesGetter exerciseGetter) *Service {
	return &Service{
		repo:      repo,
		exercises: exercisesGetter,
		now:       time.Now,
	}
}

// Log resolves every entry's exercise, shapes the sets by its category and
// stores the workout. The date defaults to now.
func (s *Service) Log(ctx context.Context, params LogParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries", len(params.Entries)))

	if len(params.Entries) == 0 {
		return nil, ErrNoExercises
	}

	workout := Workout{
		UserID:    params.UserID,
		Date:      params.Date,
		Notes:     params.Notes,
		Exercises: make([]WorkoutExercise, 0, len(params.Entries)),
	}
	if workout.Date.IsZero() {
		workout.Date = s.now()
	}

	for i, entry := range params.Entries {
		exercise, err := s.exercises.Get(ctx, entry.ExerciseID, params.UserID)
		if err != nil {
			return nil, fmt.Errorf("get exercise %d: %w", entry.ExerciseID, err)
		}
		sets, err := shapeSets(exercise.Category, entry.Sets)
		if err != nil {
			return nil, fmt.Errorf("exercise %d: %w", entry.ExerciseID, err)
		}
		workout.Exercises = append(workout.Exercises, WorkoutExercise{
			Position: i + 1,
			Exercise: *exercise,
			Sets:     sets,
		})
	}

	return s.repo.Insert(ctx, workout)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Workout, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int, userID string) (*Workout, error) {
	return s.repo.Get(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, id int, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}
