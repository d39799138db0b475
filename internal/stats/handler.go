package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExerciseStatsResponse struct {
	Exercises []ExerciseStats `json:"exercises"`
}

type WeeksResponse struct {
	CurrentWeekLabel string      `json:"currentWeekLabel"`
	Weeks            []WeekGroup `json:"weeks"`
}

type Handler struct {
	analyzer *Analyzer
	now      func() time.Time
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard", handler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/stats/exercises", handler.HandleExerciseStats).Methods("GET", "OPTIONS").Name("exercise-stats")
	r.HandleFunc("/stats/weeks", handler.HandleWeeks).Methods("GET", "OPTIONS").Name("weekly-groups")
}

// HandleDashboard accepts the category, q (keyword) and top query params.
func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.dashboard")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := ParseFilterParams(r)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	topN := DefaultTopN
	if topStr := r.URL.Query().Get("top"); topStr != "" {
		topN, err = strconv.Atoi(topStr)
		if err != nil || topN <= 0 {
			pkg.WriteJSONError(w, "invalid top param", http.StatusBadRequest)
			return
		}
	}

	dashboard, err := handler.analyzer.Dashboard(ctx, userID, filter, handler.now(), topN)
	if err != nil {
		log.Errorf("failed to build dashboard for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, dashboard, http.StatusOK)
}

func (handler *Handler) HandleExerciseStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exercises")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	breakdown, err := handler.analyzer.ExerciseStats(ctx, userID, r.URL.Query().Get("group"))
	if err != nil {
		log.Errorf("failed to get exercise stats for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get exercise stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ExerciseStatsResponse{Exercises: breakdown}, http.StatusOK)
}

func (handler *Handler) HandleWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weeks")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := ParseFilterParams(r)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	weeks, err := handler.analyzer.WeeklyGroups(ctx, userID, filter)
	if err != nil {
		log.Errorf("failed to group workouts by week for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get weekly workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, WeeksResponse{
		CurrentWeekLabel: CurrentWeekLabel(handler.now()),
		Weeks:            weeks,
	}, http.StatusOK)
}

func ParseFilterParams(r *http.Request) (FilterParams, error) {
	q := r.URL.Query()
	params := FilterParams{Keyword: q.Get("q")}
	if categoryStr := q.Get("category"); categoryStr != "" {
		category, err := exercises.ParseCategory(categoryStr)
		if err != nil {
			return params, err
		}
		params.Category = category
	}
	return params, nil
}
