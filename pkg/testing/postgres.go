package testing

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
)

// TestDBName is the database created in containers started by StartPostgres.
const TestDBName = "fitlog_test"

// GetPostgresPool returns a pool to a database with the schema applied.
// FITLOG_TEST_POSTGRES_DSN points it to an existing database, otherwise
// a throwaway postgres container is started and purged on test cleanup.
func GetPostgresPool(t *testing.T, schema string) (context.Context, *pgxpool.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	dsn := os.Getenv("FITLOG_TEST_POSTGRES_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://postgres@localhost:%s/%s?sslmode=disable",
			StartPostgres(t), TestDBName,
		)
	}
	t.Logf("using postgres: %s", dsn)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.ExecContext(ctx, schema)
	require.NoError(t, err, "apply schema")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	return ctx, pool
}

// StartPostgres runs a postgres container accepting passwordless connections
// for user postgres and returns its host port once it is ready.
func StartPostgres(t *testing.T) string {
	t.Helper()

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err, "create dockertest pool")
	require.NoError(t, dockerPool.Client.Ping(), "ping docker")
	dockerPool.MaxWait = time.Minute

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=" + TestDBName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err, "run postgres")
	t.Cleanup(func() {
		if err := dockerPool.Purge(resource); err != nil {
			t.Logf("purge postgres: %s", err)
		}
		dockerPool.Client.HTTPClient.CloseIdleConnections()
	})

	port := resource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/%s?sslmode=disable", port, TestDBName)

	// the container accepts connections a bit after it starts
	err = dockerPool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	})
	require.NoError(t, err, "wait for postgres")

	return port
}
