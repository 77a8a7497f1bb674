package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the rate limiter.
type Metrics struct {
	Checks *prometheus.CounterVec
}

// New creates a new Metrics instance with all rate limiter metrics registered.
func New() *Metrics {
	return &Metrics{
		Checks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "propertyguard_ratelimit_checks_total",
			Help: "Rate limit checks by endpoint class and outcome",
		}, []string{"class", "outcome"}),
	}
}

// ObserveCheck records one window check.
func (m *Metrics) ObserveCheck(class string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "limited"
	}
	m.Checks.WithLabelValues(class, outcome).Inc()
}
