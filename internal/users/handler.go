package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/middleware"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type LogoutResponse struct {
	LoggedOut bool `json:"loggedOut"`
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

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	authSubrouter := mainRouter.PathPrefix("/auth").Subrouter()
	authSubrouter.HandleFunc("/signup", handler.HandleSignup).Methods("POST", "OPTIONS").Name("signup")
	authSubrouter.HandleFunc("/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authSubrouter.HandleFunc("/logout", handler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")

	// rate limit the auth endpoints to slow down credential guessing
	authSubrouter.Use(middleware.RateLimit(rateLimiter, "auth", allowedPerMin, handler.metricsManager))
}

func (handler *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.signup")
	defer span.End()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("signup, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := handler.service.Signup(ctx, SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrPasswordTooWeak):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrUserExists):
		pkg.WriteJSONError(w, err.Error(), http.StatusConflict)
		return
	default:
		log.Errorf("signup failed: %s", err)
		pkg.WriteJSONError(w, "signup failed", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterSignups.Inc()
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	log.Debugf("new user signed up: %s", user.ID)
	pkg.WriteJSON(w, SessionResponse{Token: token, UserID: user.ID}, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		pkg.WriteJSONError(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		pkg.WriteJSONError(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, token, err := handler.service.Login(ctx, req.Email, req.Password)
	if errors.Is(err, ErrWrongPassword) {
		log.Tracef("failed login attempt for: %s", req.Email)
		pkg.WriteJSONError(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login failed: %s", err)
		pkg.WriteJSONError(w, "login failed", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteJSON(w, SessionResponse{Token: token, UserID: user.ID}, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	authToken := auth.TokenFromRequest(r)
	if authToken == "" {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.service.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		pkg.WriteJSONError(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSON(w, LogoutResponse{LoggedOut: true}, http.StatusOK)
}
