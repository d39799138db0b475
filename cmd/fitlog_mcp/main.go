// Package main runs the fitlog MCP server over stdio for a single user.
// The same tools are mounted on the main backend at /mcp, where the user
// comes from the session token instead of the -user flag.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/db"
	fitlogmcp "github.com/2beens/fitlog/internal/mcp"
	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/workouts"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	userID := flag.String("user", "", "id of the user whose workout log the tools read")
	flag.Parse()

	if _, err := uuid.Parse(*userID); err != nil {
		log.Fatalf("invalid -user %q: %v", *userID, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the MCP protocol, logs go to stderr
	log.SetOutput(os.Stderr)

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     os.Getenv("FITLOG_POSTGRES_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	workoutsRepo := workouts.NewRepo(dbPool)
	analyzer := stats.NewAnalyzer(workoutsRepo)
	summaryService := summary.NewService(
		summary.NewCachedStore(summary.NewRepo(dbPool), cfg.SummaryCacheSizeMB),
		summary.NewOpenAIClient(summary.OpenAIClientParams{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  os.Getenv("FITLOG_OPENAI_API_KEY"),
			Model:   cfg.OpenAIModel,
			Timeout: cfg.OpenAITimeout(),
		}),
		analyzer,
		metrics.NewManager("fitlog", "mcp_stdio", prometheus.NewRegistry()),
	)

	service := fitlogmcp.NewContextService(
		fitlogmcp.NewSchemaRepo(dbPool),
		workoutsRepo,
		analyzer,
		summaryService,
	)
	server := fitlogmcp.NewServer(service, *userID)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
