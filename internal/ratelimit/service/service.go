// Package service decides whether a request may proceed. Policy is fixed
// per endpoint class; the bucket store supplies the shared counting window.
package service

import (
	"context"
	"log/slog"
	"time"

	ratelimitmetrics "propertyguard/internal/ratelimit/metrics"
	"propertyguard/internal/ratelimit/models"
)

// BucketStore counts requests in a sliding window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, span time.Duration) (*models.RateLimitResult, error)
}

// classPolicy fixes the budget for one endpoint class.
type classPolicy struct {
	limit int
	span  time.Duration
}

// policies is deliberate product policy, not deployment tuning: reads are
// cheap, writes moderate, and council imports reach municipal integrations
// so they get the tightest budget.
var policies = map[models.EndpointClass]classPolicy{
	models.ClassRead:   {limit: 100, span: time.Minute},
	models.ClassWrite:  {limit: 30, span: time.Minute},
	models.ClassImport: {limit: 10, span: time.Minute},
}

// Limiter checks client requests against per-class windows.
type Limiter struct {
	store   BucketStore
	logger  *slog.Logger
	metrics *ratelimitmetrics.Metrics
}

// Option configures optional limiter dependencies.
type Option func(*Limiter)

// WithLogger sets the limiter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *ratelimitmetrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

func NewLimiter(store BucketStore, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records one request for the client against its class window.
// Unknown classes fall back to the write budget.
func (l *Limiter) Check(ctx context.Context, clientIP string, class models.EndpointClass) (*models.RateLimitResult, error) {
	policy, ok := policies[class]
	if !ok {
		class = models.ClassWrite
		policy = policies[class]
	}

	result, err := l.store.Allow(ctx, string(class)+":"+clientIP, policy.limit, policy.span)
	if err != nil {
		return nil, err
	}

	if l.metrics != nil {
		l.metrics.ObserveCheck(string(class), result.Allowed)
	}
	if !result.Allowed {
		l.logger.InfoContext(ctx, "request rate limited",
			"class", class,
			"retry_after", result.RetryAfter)
	}
	return result, nil
}
