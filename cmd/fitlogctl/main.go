package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/fitlog/internal/cli"
	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/db"
	"github.com/2beens/fitlog/internal/logging"
	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/workouts"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dbPool *pgxpool.Pool
	defer func() {
		if dbPool != nil {
			dbPool.Close()
		}
	}()

	root := cli.NewRootCmd(func(ctx context.Context, env, configPath string) (*cli.App, error) {
		cfg, err := config.Load(env, configPath)
		if err != nil {
			return nil, err
		}

		// stdout is for command output
		log.SetOutput(os.Stderr)
		log.SetLevel(logging.GetLevel(cfg.LogLevel))

		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: os.Getenv("FITLOG_POSTGRES_PASS"),
		})
		if err != nil {
			return nil, fmt.Errorf("db pool: %w", err)
		}

		workoutsRepo := workouts.NewRepo(dbPool)
		analyzer := stats.NewAnalyzer(workoutsRepo)
		summaryService := summary.NewService(
			summary.NewRepo(dbPool),
			summary.NewOpenAIClient(summary.OpenAIClientParams{
				BaseURL: cfg.OpenAIBaseURL,
				APIKey:  os.Getenv("FITLOG_OPENAI_API_KEY"),
				Model:   cfg.OpenAIModel,
				Timeout: cfg.OpenAITimeout(),
			}),
			analyzer,
			metrics.NewManager("fitlog", "ctl", prometheus.NewRegistry()),
		)

		return &cli.App{
			Migrate: func(ctx context.Context) error {
				return db.Migrate(ctx, dbPool)
			},
			Stats:     analyzer,
			Summaries: summaryService,
		}, nil
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
