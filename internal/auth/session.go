package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitlog-session||"
	tokensSetKey     = "fitlog-sessions"
)

var (
	ErrNotLogged      = errors.New("not logged in")
	ErrInvalidSession = errors.New("invalid session value")
)

type LoginSession struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

// Expired reports whether the session is older than ttl at the given time.
func (s LoginSession) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}

// session value in redis: <created at unix>|<user id>
func sessionValue(userID string, createdAt time.Time) string {
	return fmt.Sprintf("%d|%s", createdAt.Unix(), userID)
}

func parseSessionValue(token, val string) (*LoginSession, error) {
	createdAtStr, userID, found := strings.Cut(val, "|")
	if !found || userID == "" {
		return nil, ErrInvalidSession
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSession, err)
	}
	return &LoginSession{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

type ctxKey struct{}

// WithUserID stores the authenticated user id in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the id set by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok && userID != ""
}

// TokenHeader is the alternative to the Authorization bearer header.
const TokenHeader = "X-FITLOG-TOKEN"

// TokenFromRequest reads the session token from the Authorization bearer header
// or, when missing, from the X-FITLOG-TOKEN header.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if token, ok := strings.CutPrefix(authz, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}
