package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/nutriflow/internal/app"
	"github.com/2beens/nutriflow/internal/config"
	"github.com/2beens/nutriflow/internal/db"
	"github.com/2beens/nutriflow/internal/plans"
	"github.com/2beens/nutriflow/internal/profile"
	"github.com/2beens/nutriflow/internal/telemetry/metrics"
	"github.com/2beens/nutriflow/internal/telemetry/tracing"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	app         *app.App

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	GeminiAPIKey            string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "nutriflow-backend", rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		redisClient:  rdb,
		otelShutdown: otelShutdown,
	}

	var (
		store          profile.Store
		extraCollector []prometheus.Collector
	)
	switch cfg.ProfileStore {
	case config.ProfileStorePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if _, err := dbPool.Exec(ctx, profile.CreateProfileStoreTableSQL); err != nil {
			return nil, fmt.Errorf("create profile store table: %w", err)
		}

		s.dbPool = dbPool
		store = profile.NewPsqlStore(dbPool)
		extraCollector = append(extraCollector, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	default:
		store = profile.NewRedisStore(rdb)
	}
	log.Debugf("using %s profile store", cfg.ProfileStore)

	s.promRegistry = metrics.SetupPrometheus(extraCollector...)
	s.metricsManager = metrics.NewManager("backend", "nutriflow", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	geminiBackend, err := plans.NewGeminiBackend(ctx, plans.GeminiParams{
		APIKey:     params.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: tracedHttpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("new gemini backend: %w", err)
	}

	s.app = app.New(app.Params{
		Store:        store,
		Generator:    plans.NewClient(geminiBackend, s.metricsManager),
		FetchTimeout: cfg.PlanFetchTimeout(),
		Metrics:      s.metricsManager,
	})
	if err := s.app.Start(ctx); err != nil {
		// the app stays in onboarding; a later completion retries the store
		log.Errorf("start app without stored profile: %s", err)
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	return app.NewRouter(s.app, app.RouterParams{
		RateLimiter:         redis_rate.NewLimiter(s.redisClient),
		Metrics:             s.metricsManager,
		AllowedOrigins:      s.config.AllowedOrigins,
		PlanRateLimitPerMin: s.config.PlanRateLimitPerMin,
	})
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: s.routerSetup(),
		Addr:    ipAndPort,
		// the diet route blocks on plan generation
		WriteTimeout: s.config.PlanFetchTimeout() + 30*time.Second,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
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
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	// in-flight plan fetches are cancelled, then waited for
	s.app.Close()

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
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
