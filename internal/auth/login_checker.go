package auth

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// IsLogged resolves the token to its session, or returns ErrNotLogged.
func (c *LoginChecker) IsLogged(ctx context.Context, token string) (_ *LoginSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.isLogged")
	defer func() {
		if errors.Is(err, ErrNotLogged) {
			span.End()
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotLogged
	}
	if err != nil {
		return nil, err
	}

	session, err := parseSessionValue(token, val)
	if err != nil {
		return nil, err
	}

	if session.Expired(c.now(), c.ttl) {
		return nil, ErrNotLogged
	}

	return session, nil
}
