package summary

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/middleware"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/internal/workouts"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// GenerateRequest carries the week to summarize. Workouts are optional,
// the week's workouts are loaded for the logged user when missing.
type GenerateRequest struct {
	Workouts  []workouts.Workout `json:"workouts,omitempty"`
	UserName  string             `json:"userName"`
	WeekLabel string             `json:"weekLabel"`
	// WeekStart is a YYYY-MM-DD date inside the week, takes precedence over WeekLabel.
	WeekStart string `json:"weekStart,omitempty"`
	Force     bool   `json:"force,omitempty"`
}

type GenerateResponse struct {
	Summary     string    `json:"summary"`
	WeekLabel   string    `json:"weekLabel"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedPerMin int,
) {
	r.Handle(
		"/summary",
		middleware.RateLimit(rateLimiter, "summary", allowedPerMin, metricsManager)(http.HandlerFunc(handler.HandleGenerate)),
	).Methods("POST", "OPTIONS").Name("weekly-summary")
}

func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.summary.generate")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("summary, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	weekStart, err := req.weekStart()
	if err != nil {
		pkg.WriteJSONError(w, "missing or invalid week", http.StatusBadRequest)
		return
	}

	summary, err := handler.service.WeeklySummary(ctx, Params{
		UserID:    userID,
		UserName:  req.UserName,
		WeekStart: weekStart,
		WeekLabel: req.WeekLabel,
		Workouts:  req.Workouts,
		Force:     req.Force,
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrEmptySummary):
		log.Errorf("failed to generate summary for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to generate summary", http.StatusBadGateway)
		return
	default:
		log.Errorf("failed to get summary for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get summary", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, GenerateResponse{
		Summary:     summary.Summary,
		WeekLabel:   summary.WeekLabel,
		GeneratedAt: summary.GeneratedAt,
	}, http.StatusOK)
}

func (req GenerateRequest) weekStart() (time.Time, error) {
	if req.WeekStart != "" {
		return time.Parse(time.DateOnly, req.WeekStart)
	}
	if req.WeekLabel != "" {
		return ParseWeekLabel(req.WeekLabel)
	}
	return time.Time{}, ErrMissingWeek
}
