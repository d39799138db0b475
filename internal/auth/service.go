package auth

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login creates a new session for the user and returns its token.
func (as *Service) Login(ctx context.Context, userID string, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	if err := as.redisClient.Set(ctx, sessionKey, sessionValue(userID, createdAt), as.ttl).Err(); err != nil {
		return "", err
	}

	// add token to the set of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Logout drops the session. Returns false if the session did not exist.
func (as *Service) Logout(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessionKey := sessionKeyPrefix + token
	deleted, err := as.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, err
	}

	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return deleted > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	now := time.Now()
	var toRemove []string
	for _, token := range sessionTokens {
		val, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			// expired by redis already, only the set entry is left
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		session, err := parseSessionValue(token, val)
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		if session.Expired(now, as.ttl) {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
	}
	log.Debugf("auth service, scan and clean done, removed %d sessions", len(toRemove))
}
