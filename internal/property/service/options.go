package service

import (
	"log/slog"

	propertymetrics "propertyguard/internal/property/metrics"
)

type serviceConfig struct {
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *propertymetrics.Metrics
	tx             StoreTx
}

// Option configures optional service dependencies.
type Option func(*serviceConfig)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) {
		cfg.logger = logger
	}
}

// WithAuditPublisher sets the audit publisher.
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(cfg *serviceConfig) {
		cfg.auditPublisher = publisher
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *propertymetrics.Metrics) Option {
	return func(cfg *serviceConfig) {
		cfg.metrics = m
	}
}

// WithStoreTx sets the transaction runner for the creation flow. Without it
// the service falls back to a mutex-serialized in-memory runner.
func WithStoreTx(tx StoreTx) Option {
	return func(cfg *serviceConfig) {
		cfg.tx = tx
	}
}
