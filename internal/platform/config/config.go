package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "propertyguard/pkg/platform/strings"
)

// Config captures everything the server needs from its environment.
type Config struct {
	Server    Server
	Postgres  Postgres
	Redis     RedisConfig
	Kafka     Kafka
	Otel      Otel
	RateLimit RateLimit
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	RequestTimeout time.Duration
}

// Postgres captures database connectivity. An empty URL selects the in-memory
// stores, which keeps local development free of infrastructure.
type Postgres struct {
	URL string
}

// RedisConfig captures cache connectivity and pool tuning.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures audit relay connectivity. Empty brokers disable the relay.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// Otel captures trace exporter connectivity. An empty endpoint disables export.
type Otel struct {
	Endpoint string
}

// RateLimit captures the API rate limiting switch. Limits themselves are
// endpoint-class policy, not deployment tuning, and live with the limiter.
type RateLimit struct {
	Disabled bool
}

// MunicipalityCacheTTL bounds staleness of cached municipality listings.
var MunicipalityCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("PROPERTYGUARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	requestTimeout := 30 * time.Second
	if raw := os.Getenv("PROPERTYGUARD_REQUEST_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			requestTimeout = parsed
		}
	}

	poolSize := 10
	if raw := os.Getenv("REDIS_POOL_SIZE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			poolSize = parsed
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = pstrings.DedupeAndTrim(strings.Split(raw, ","))
	}

	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "propertyguard.audit"
	}

	return Config{
		Server: Server{
			Addr:           addr,
			RequestTimeout: requestTimeout,
		},
		Postgres: Postgres{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     poolSize,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers:    brokers,
			AuditTopic: auditTopic,
		},
		Otel: Otel{
			Endpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		RateLimit: RateLimit{
			Disabled: os.Getenv("PROPERTYGUARD_RATE_LIMIT_DISABLED") == "true",
		},
	}
}

