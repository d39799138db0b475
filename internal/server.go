package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/db"
	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/filestore"
	fitlogmcp "github.com/2beens/fitlog/internal/mcp"
	"github.com/2beens/fitlog/internal/middleware"
	"github.com/2beens/fitlog/internal/misc"
	"github.com/2beens/fitlog/internal/profiles"
	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/internal/users"
	"github.com/2beens/fitlog/internal/workouts"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	avatarStore *filestore.DiskStore

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	summaryGenerator summary.Generator

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	OpenAIAPIKey            string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(params.Config.SessionTTL(), rdb)
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	avatarStore, err := filestore.NewDiskStore(params.Config.AvatarsPath)
	if err != nil {
		return nil, fmt.Errorf("new avatar store: %w", err)
	}

	if params.OpenAIAPIKey == "" {
		log.Warnln("openai api key not set, weekly summaries will fail")
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		avatarStore: avatarStore,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(params.Config.SessionTTL(), rdb),

		summaryGenerator: summary.NewOpenAIClient(summary.OpenAIClientParams{
			BaseURL: params.Config.OpenAIBaseURL,
			APIKey:  params.OpenAIAPIKey,
			Model:   params.Config.OpenAIModel,
			Timeout: params.Config.OpenAITimeout(),
		}),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	usersHandler := users.NewHandler(
		users.NewService(users.NewRepo(s.dbPool), s.authService),
		s.metricsManager,
	)
	usersHandler.SetupRoutes(r, reqRateLimiter, s.config.LoginRateLimitAllowedPerMin)

	profilesHandler := profiles.NewHandler(profiles.NewRepo(s.dbPool), s.avatarStore)
	profilesHandler.SetupRoutes(r)

	exercisesRepo := exercises.NewRepo(s.dbPool)
	exercisesHandler := exercises.NewHandler(exercisesRepo)
	exercisesHandler.SetupRoutes(r)

	workoutsRepo := workouts.NewRepo(s.dbPool)
	workoutsHandler := workouts.NewHandler(
		workouts.NewService(workoutsRepo, exercisesRepo),
		s.metricsManager,
	)
	workoutsHandler.SetupRoutes(r)

	analyzer := stats.NewAnalyzer(workoutsRepo)
	statsHandler := stats.NewHandler(analyzer)
	statsHandler.SetupRoutes(r)

	summaryService := summary.NewService(
		summary.NewCachedStore(summary.NewRepo(s.dbPool), s.config.SummaryCacheSizeMB),
		s.summaryGenerator,
		analyzer,
		s.metricsManager,
	)
	summaryHandler := summary.NewHandler(summaryService)
	summaryHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.SummaryRateLimitAllowedPerMin)

	mcpService := fitlogmcp.NewContextService(
		fitlogmcp.NewSchemaRepo(s.dbPool),
		workoutsRepo,
		analyzer,
		summaryService,
	)
	r.Handle("/mcp", fitlogmcp.NewHTTPHandler(mcpService)).Methods("GET", "POST", "DELETE", "OPTIONS").Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// weekly summaries wait on the LLM
		WriteTimeout: s.config.OpenAITimeout() + 30*time.Second,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
