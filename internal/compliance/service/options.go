package service

import (
	"log/slog"

	compliancemetrics "propertyguard/internal/compliance/metrics"
)

type serviceConfig struct {
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *compliancemetrics.Metrics
	tx             StoreTx
}

// Option configures the compliance service.
type Option func(*serviceConfig)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) {
		cfg.logger = logger
	}
}

// WithAuditPublisher enables audit event emission.
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(cfg *serviceConfig) {
		cfg.auditPublisher = publisher
	}
}

// WithMetrics enables Prometheus metrics. Nil-safe at call sites so tests
// can run without a registry.
func WithMetrics(m *compliancemetrics.Metrics) Option {
	return func(cfg *serviceConfig) {
		cfg.metrics = m
	}
}

// WithStoreTx sets the transactional boundary for multi-write operations.
// Defaults to an in-memory mutex when unset.
func WithStoreTx(tx StoreTx) Option {
	return func(cfg *serviceConfig) {
		cfg.tx = tx
	}
}
