package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type loginChecker interface {
	IsLogged(ctx context.Context, token string) (*auth.LoginSession, error)
}

type AuthMiddlewareHandler struct {
	loginChecker         loginChecker
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(loginChecker loginChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		allowedPaths: map[string]bool{
			// misc handler:
			"/":        true,
			"/version": true,
			"/myip":    true,

			// accounts:
			"/auth/signup": true,
			"/auth/login":  true,
		},
		allowedPathsPrefixes: []string{
			"/avatars/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck resolves the session token to a user and puts the user id in the
// request context. Public paths pass through untouched.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := auth.TokenFromRequest(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			session, err := h.loginChecker.IsLogged(ctx, authToken)
			if errors.Is(err, auth.ErrNotLogged) {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), session.UserID)))
		})
	}
}
