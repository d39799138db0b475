package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
)

// GetRedisClientAndCtx connects to FITLOG_TEST_REDIS_HOST when it is set,
// or to a redis container started for the test.
func GetRedisClientAndCtx(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	var addr string
	if redisHost := os.Getenv("FITLOG_TEST_REDIS_HOST"); redisHost != "" {
		addr = net.JoinHostPort(redisHost, "6379")
	} else {
		addr = net.JoinHostPort("localhost", StartRedis(t))
	}
	t.Logf("using redis: [%s]", addr)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("FITLOG_TEST_REDIS_PASS"),
		DB:       0, // use default DB
	})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	pingRes, err := rdb.Ping(ctx).Result()
	require.NoError(t, err)
	t.Logf("redis ping res: %s", pingRes)

	return ctx, rdb
}

// StartRedis runs a redis container and returns its host port once it answers pings.
func StartRedis(t *testing.T) string {
	t.Helper()

	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err, "create dockertest pool")
	require.NoError(t, dockerPool.Client.Ping(), "ping docker")

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	require.NoError(t, err, "run redis")
	t.Cleanup(func() {
		if err := dockerPool.Purge(resource); err != nil {
			t.Logf("purge redis: %s", err)
		}
		dockerPool.Client.HTTPClient.CloseIdleConnections()
	})

	port := resource.GetPort("6379/tcp")
	addr := net.JoinHostPort("localhost", port)
	err = dockerPool.Retry(func() error {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		return rdb.Ping(context.Background()).Err()
	})
	require.NoError(t, err, "wait for redis")

	return port
}
