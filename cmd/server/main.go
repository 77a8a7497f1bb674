package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audithandler "propertyguard/internal/audit/handler"
	compliancehandler "propertyguard/internal/compliance/handler"
	compliancemetrics "propertyguard/internal/compliance/metrics"
	complianceservice "propertyguard/internal/compliance/service"
	gapstore "propertyguard/internal/compliance/store/gap"
	itemstore "propertyguard/internal/compliance/store/item"
	councilhandler "propertyguard/internal/council/handler"
	councilmetrics "propertyguard/internal/council/metrics"
	councilservice "propertyguard/internal/council/service"
	councilstore "propertyguard/internal/council/store"
	documentstore "propertyguard/internal/council/store/document"
	municipalitystore "propertyguard/internal/council/store/municipality"
	"propertyguard/internal/platform/config"
	"propertyguard/internal/platform/httpserver"
	"propertyguard/internal/platform/kafka"
	"propertyguard/internal/platform/logger"
	"propertyguard/internal/platform/metrics"
	"propertyguard/internal/platform/middleware"
	"propertyguard/internal/platform/otel"
	"propertyguard/internal/platform/redis"
	propertyhandler "propertyguard/internal/property/handler"
	propertymetrics "propertyguard/internal/property/metrics"
	propertyservice "propertyguard/internal/property/service"
	propertystore "propertyguard/internal/property/store/property"
	responsibilitystore "propertyguard/internal/property/store/responsibility"
	ratelimitmetrics "propertyguard/internal/ratelimit/metrics"
	ratelimitmiddleware "propertyguard/internal/ratelimit/middleware"
	ratelimitservice "propertyguard/internal/ratelimit/service"
	"propertyguard/internal/ratelimit/store/bucket"
	audit "propertyguard/pkg/platform/audit"
	"propertyguard/pkg/platform/audit/publisher"
	"propertyguard/pkg/platform/audit/relay"
	auditmemory "propertyguard/pkg/platform/audit/store/memory"
	auditpostgres "propertyguard/pkg/platform/audit/store/postgres"
	"propertyguard/pkg/platform/middleware/metadata"
	"propertyguard/pkg/platform/middleware/requesttime"
)

// main assembles configuration, stores, services and transport, then runs
// the HTTP server until interrupted. Business logic lives in the internal
// service packages; this file only wires them together.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := otel.Setup(ctx, cfg.Otel, "propertyguard")
	if err != nil {
		log.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}

	deps, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Server.Addr, buildRouter(cfg, log, deps))

	if deps.relay != nil {
		go func() {
			if err := deps.relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit relay stopped", "error", err)
			}
		}()
	}

	go func() {
		log.Info("propertyguard listening",
			"addr", cfg.Server.Addr,
			"storage", deps.storageMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}
	deps.Close(log)
}

// dependencies holds everything main assembles: the three domain services,
// the audit pipeline, the rate limiter, and the backing connections that
// need closing on the way out.
type dependencies struct {
	properties *propertyservice.PropertyService
	compliance *complianceservice.ComplianceService
	council    *councilservice.CouncilService

	httpMetrics *metrics.Metrics
	audit       *publisher.Publisher
	auditTrail  audithandler.Trail
	relay       *relay.Relay
	limiter     *ratelimitservice.Limiter

	db    *sql.DB
	redis *redis.Client
	kafka *kafka.Client

	storageMode  string
	healthChecks []healthCheck
}

// buildDependencies connects the backing services and wires stores into
// domain services. A configured DATABASE_URL selects postgres with the
// transactional outbox; otherwise everything runs in memory so local
// development needs no infrastructure.
func buildDependencies(ctx context.Context, cfg config.Config, log *slog.Logger) (*dependencies, error) {
	deps := &dependencies{
		httpMetrics: metrics.New(),
		storageMode: "memory",
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	deps.redis = redisClient

	kafkaClient, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	deps.kafka = kafkaClient
	if kafkaClient != nil {
		if err := kafkaClient.EnsureTopic(ctx, cfg.Kafka.AuditTopic); err != nil {
			return nil, fmt.Errorf("ensure audit topic: %w", err)
		}
	}

	var (
		properties       propertyservice.PropertyStore
		propertyScores   complianceservice.PropertyStore
		propertyRegistry councilservice.PropertyRegistry
		responsibilities propertyservice.ResponsibilityStore
		items            complianceservice.ItemStore
		gaps             complianceservice.GapStore
		documents        councilservice.DocumentStore
		municipalities   councilservice.MunicipalityStore
		auditStore       audit.Store
		pgTx             *postgresTx
	)

	if cfg.Postgres.URL != "" {
		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping database: %w", err)
		}
		deps.db = db
		deps.storageMode = "postgres"
		deps.healthChecks = append(deps.healthChecks, healthCheck{name: "postgres", probe: db.PingContext})

		ps := propertystore.NewPostgres(db)
		properties, propertyScores, propertyRegistry = ps, ps, ps
		responsibilities = responsibilitystore.NewPostgres(db)
		items = itemstore.NewPostgres(db)
		gaps = gapstore.NewPostgres(db)
		documents = documentstore.NewPostgres(db)

		ms := municipalitystore.NewPostgres(db)
		if err := councilstore.SeedMunicipalities(ctx, ms); err != nil {
			return nil, fmt.Errorf("seed municipalities: %w", err)
		}
		municipalities = ms

		outbox := auditpostgres.New(db)
		auditStore = outbox
		pgTx = newPostgresTx(db)

		if kafkaClient != nil {
			deps.relay = relay.New(outbox, kafkaClient, cfg.Kafka.AuditTopic,
				relay.WithLogger(log),
				relay.WithMaterializer(outbox),
			)
		}
	} else {
		ps := propertystore.NewInMemory()
		properties, propertyScores, propertyRegistry = ps, ps, ps
		responsibilities = responsibilitystore.NewInMemory()
		items = itemstore.NewInMemory()
		gaps = gapstore.NewInMemory()
		documents = documentstore.NewInMemory()

		ms := municipalitystore.NewInMemory()
		if err := councilstore.SeedMunicipalities(ctx, ms); err != nil {
			return nil, fmt.Errorf("seed municipalities: %w", err)
		}
		municipalities = ms

		auditStore = auditmemory.NewInMemoryStore()
	}

	if redisClient != nil {
		municipalities = municipalitystore.NewCache(municipalities, redisClient.Client, config.MunicipalityCacheTTL)
		deps.healthChecks = append(deps.healthChecks, healthCheck{name: "redis", probe: redisClient.Health})
	}
	if kafkaClient != nil {
		deps.healthChecks = append(deps.healthChecks, healthCheck{name: "kafka", probe: kafkaClient.Health})
	}

	if !cfg.RateLimit.Disabled {
		var buckets ratelimitservice.BucketStore = bucket.NewInMemory()
		if redisClient != nil {
			buckets = bucket.NewRedis(redisClient.Client)
		}
		deps.limiter = ratelimitservice.NewLimiter(buckets,
			ratelimitservice.WithLogger(log),
			ratelimitservice.WithMetrics(ratelimitmetrics.New()),
		)
	}

	deps.audit = publisher.NewPublisher(auditStore, publisher.WithLogger(log))
	deps.auditTrail = auditStore

	complianceOpts := []complianceservice.Option{
		complianceservice.WithLogger(log),
		complianceservice.WithAuditPublisher(deps.audit),
		complianceservice.WithMetrics(compliancemetrics.New()),
	}
	councilOpts := []councilservice.Option{
		councilservice.WithLogger(log),
		councilservice.WithAuditPublisher(deps.audit),
		councilservice.WithMetrics(councilmetrics.New()),
	}
	propertyOpts := []propertyservice.Option{
		propertyservice.WithLogger(log),
		propertyservice.WithAuditPublisher(deps.audit),
		propertyservice.WithMetrics(propertymetrics.New()),
	}
	if pgTx != nil {
		complianceOpts = append(complianceOpts, complianceservice.WithStoreTx(pgTx))
		councilOpts = append(councilOpts, councilservice.WithStoreTx(pgTx))
		propertyOpts = append(propertyOpts, propertyservice.WithStoreTx(pgTx))
	}

	deps.compliance = complianceservice.NewComplianceService(items, gaps, propertyScores, complianceOpts...)
	deps.council = councilservice.NewCouncilService(documents, municipalities, propertyRegistry, councilOpts...)
	deps.properties = propertyservice.NewPropertyService(properties, responsibilities, deps.compliance, deps.council, propertyOpts...)

	return deps, nil
}

// buildRouter mounts the API under /api plus the operational endpoints.
func buildRouter(cfg config.Config, log *slog.Logger, deps *dependencies) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		requesttime.Middleware,
		metadata.ClientMetadata,
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.ContentTypeJSON,
		middleware.Latency(deps.httpMetrics),
		middleware.Timeout(cfg.Server.RequestTimeout),
	)

	propertyH := propertyhandler.New(deps.properties, log)
	complianceH := compliancehandler.New(deps.compliance, log)
	councilH := councilhandler.New(deps.council, log)
	auditH := audithandler.New(deps.auditTrail, log)

	r.Route("/api", func(api chi.Router) {
		if deps.limiter != nil {
			api.Use(ratelimitmiddleware.New(deps.limiter, log).RateLimit)
		}
		propertyH.Register(api)
		complianceH.Register(api)
		councilH.Register(api)
		auditH.Register(api)
	})

	r.Get("/health", healthHandler(deps.healthChecks))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Close releases backing connections. The audit publisher drains first so
// buffered events still reach the store before it goes away.
func (d *dependencies) Close(log *slog.Logger) {
	d.audit.Close()
	if d.kafka != nil {
		d.kafka.Close()
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Error("redis close failed", "error", err)
		}
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			log.Error("database close failed", "error", err)
		}
	}
}
