package exercises

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id int, userID string) (*Exercise, error)
	List(ctx context.Context, params ListParams) ([]Exercise, error)
}

type AddExerciseRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	Description string `json:"description,omitempty"`
}

type ListResponse struct {
	Exercises []Exercise `json:"exercises"`
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercises", handler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", handler.HandleAdd).Methods("POST", "OPTIONS").Name("quick-add-exercise")
}

// HandleAdd is the quick-add flow: a user-owned exercise from a name and a category.
func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add exercise, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		pkg.WriteJSONError(w, "exercise name empty", http.StatusBadRequest)
		return
	}
	category, err := ParseCategory(req.Category)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, Exercise{
		Name:        name,
		Category:    category,
		MuscleGroup: strings.TrimSpace(req.MuscleGroup),
		Description: strings.TrimSpace(req.Description),
		UserID:      &userID,
	})
	if err != nil {
		log.Errorf("failed to add exercise [%s] for user %s: %s", name, userID, err)
		pkg.WriteJSONError(w, "failed to add exercise", http.StatusBadRequest)
		return
	}

	span.SetAttributes(attribute.Int("exercise.id", added.ID))
	log.Debugf("new exercise added: %d [%s]", added.ID, added.Name)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	params := ListParams{
		UserID:  userID,
		Keyword: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if categoryParam := r.URL.Query().Get("category"); categoryParam != "" {
		category, err := ParseCategory(categoryParam)
		if err != nil {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		params.Category = category
	}

	list, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("failed to list exercises for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to list exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{Exercises: list}, http.StatusOK)
}
