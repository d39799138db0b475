package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testUserID = "5f0b7c1e-8d59-4c0c-9d8e-2c1b3a4d5e6f"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestService_LoginLogout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(time.Hour, rdb)
	require.NotNil(t, authService)
	assert.Equal(t, time.Hour, authService.ttl)

	testToken := "test_token"
	authService.RandStringFunc = func(s int) (string, error) {
		assert.Equal(t, 35, s)
		return testToken, nil
	}

	now := time.Now()
	sessionKey := sessionKeyPrefix + testToken
	mock.ExpectSet(sessionKey, sessionValue(testUserID, now), time.Hour).SetVal("OK")
	mock.ExpectSAdd(tokensSetKey, testToken).SetVal(1)
	token, err := authService.Login(context.Background(), testUserID, now)
	require.NoError(t, err)
	assert.Equal(t, testToken, token)

	mock.ExpectDel(sessionKey).SetVal(1)
	mock.ExpectSRem(tokensSetKey, testToken).SetVal(1)
	loggedOut, err := authService.Logout(context.Background(), testToken)
	require.NoError(t, err)
	assert.True(t, loggedOut)

	// second logout finds nothing
	mock.ExpectDel(sessionKey).SetVal(0)
	mock.ExpectSRem(tokensSetKey, testToken).SetVal(0)
	loggedOut, err = authService.Logout(context.Background(), testToken)
	require.NoError(t, err)
	assert.False(t, loggedOut)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Login_TokenGenerationFails(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(time.Hour, rdb)
	authService.RandStringFunc = func(int) (string, error) {
		return "", errors.New("no entropy")
	}

	token, err := authService.Login(context.Background(), testUserID, time.Now())
	assert.EqualError(t, err, "no entropy")
	assert.Empty(t, token)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ScanAndClean(t *testing.T) {
	ttl := time.Hour
	now := time.Now()
	then := now.Add(-2 * time.Hour)

	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(ttl, rdb)

	t1, t2, t3 := "token1", "token2", "token3"
	mock.ExpectSMembers(tokensSetKey).SetVal([]string{t1, t2, t3})
	mock.ExpectGet(sessionKeyPrefix + t1).SetVal(sessionValue(testUserID, then))
	mock.ExpectGet(sessionKeyPrefix + t2).SetVal(sessionValue(testUserID, now))
	mock.ExpectGet(sessionKeyPrefix + t3).RedisNil()
	// t1 is too old, t3 expired in redis already
	mock.ExpectDel(sessionKeyPrefix + t1).SetVal(1)
	mock.ExpectSRem(tokensSetKey, t1).SetVal(1)
	mock.ExpectDel(sessionKeyPrefix + t3).SetVal(0)
	mock.ExpectSRem(tokensSetKey, t3).SetVal(1)

	authService.ScanAndClean(context.Background())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseSessionValue(t *testing.T) {
	createdAt := time.Unix(1700000000, 0)
	session, err := parseSessionValue("tok", sessionValue(testUserID, createdAt))
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, testUserID, session.UserID)
	assert.True(t, createdAt.Equal(session.CreatedAt))

	_, err = parseSessionValue("tok", "1700000000")
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = parseSessionValue("tok", "nan|user")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	userID, ok := UserIDFromContext(WithUserID(context.Background(), testUserID))
	assert.True(t, ok)
	assert.Equal(t, testUserID, userID)

	_, ok = UserIDFromContext(WithUserID(context.Background(), ""))
	assert.False(t, ok)
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/profile", nil)
	assert.Empty(t, TokenFromRequest(req))

	req.Header.Set(TokenHeader, " custom-token ")
	assert.Equal(t, "custom-token", TokenFromRequest(req))

	req.Header.Set("Authorization", "Bearer bearer-token")
	assert.Equal(t, "bearer-token", TokenFromRequest(req))

	// non-bearer schemes fall back to the custom header
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, "custom-token", TokenFromRequest(req))
}
