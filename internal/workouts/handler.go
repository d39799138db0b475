package workouts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// LogWorkoutRequest accepts either a single exercise (exerciseId + sets)
// or several entries under "exercises".
type LogWorkoutRequest struct {
	Date       *time.Time   `json:"date,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	ExerciseID int          `json:"exerciseId,omitempty"`
	Sets       []SetInput   `json:"sets,omitempty"`
	Exercises  []EntryInput `json:"exercises,omitempty"`
}

func (r LogWorkoutRequest) entries() []EntryInput {
	entries := append([]EntryInput{}, r.Exercises...)
	if r.ExerciseID != 0 {
		entries = append([]EntryInput{{ExerciseID: r.ExerciseID, Sets: r.Sets}}, entries...)
	}
	return entries
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", handler.HandleLog).Methods("POST", "OPTIONS").Name("log-workout")
	r.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.log")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req LogWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	params := LogParams{
		UserID:  userID,
		Notes:   req.Notes,
		Entries: req.entries(),
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	workout, err := handler.service.Log(ctx, params)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoExercises), errors.Is(err, ErrNoSets), errors.Is(err, ErrInvalidSet):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case exercises.IsNotFound(err):
		pkg.WriteJSONError(w, "exercise not found", http.StatusNotFound)
		return
	default:
		log.Errorf("failed to log workout for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to log workout", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterWorkoutsLogged.Inc()
	}
	span.SetAttributes(attribute.Int("workout.id", workout.ID))
	log.Debugf("workout %d logged for user %s", workout.ID, userID)
	pkg.WriteJSON(w, workout, http.StatusCreated)
}

// HandleList supports from / to (RFC3339 or YYYY-MM-DD) and limit query params.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	params, err := ParseListParams(userID, r)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := handler.service.List(ctx, params)
	if err != nil {
		log.Errorf("failed to list workouts for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to list workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{Workouts: list}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.Get(ctx, id, userID)
	if errors.Is(err, ErrWorkoutNotFound) {
		pkg.WriteJSONError(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	err = handler.service.Delete(ctx, id, userID)
	if errors.Is(err, ErrWorkoutNotFound) {
		pkg.WriteJSONError(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to delete workout %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout %d deleted by user %s", id, userID)
	pkg.WriteJSON(w, DeleteWorkoutResponse{DeletedID: id}, http.StatusOK)
}

// ParseListParams reads from, to and limit from the query string.
// A date-only "to" covers the whole day.
func ParseListParams(userID string, r *http.Request) (ListParams, error) {
	params := ListParams{UserID: userID}
	q := r.URL.Query()

	if fromStr := q.Get("from"); fromStr != "" {
		from, _, err := parseTimeParam(fromStr)
		if err != nil {
			return params, errors.New("invalid from param")
		}
		params.From = &from
	}
	if toStr := q.Get("to"); toStr != "" {
		to, dateOnly, err := parseTimeParam(toStr)
		if err != nil {
			return params, errors.New("invalid to param")
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		params.To = &to
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return params, errors.New("invalid limit param")
		}
		params.Limit = limit
	}
	return params, nil
}

func parseTimeParam(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	return t, false, err
}
