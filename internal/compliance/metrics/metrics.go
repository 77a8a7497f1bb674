package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module.
type Metrics struct {
	ItemsUpdated  prometheus.Counter
	GapsDetected  prometheus.Counter
	GapsResolved  prometheus.Counter
	ScoreDuration prometheus.Histogram
}

// New creates a new Metrics instance with all compliance module metrics registered.
func New() *Metrics {
	return &Metrics{
		ItemsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyguard_compliance_items_updated_total",
			Help: "Total number of compliance item updates",
		}),
		GapsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyguard_documentation_gaps_detected_total",
			Help: "Total number of documentation gaps recorded by detection",
		}),
		GapsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyguard_documentation_gaps_resolved_total",
			Help: "Total number of documentation gaps resolved",
		}),
		ScoreDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propertyguard_documentation_score_duration_seconds",
			Help:    "Duration of documentation score computations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementItemUpdated records a successful compliance item update.
func (m *Metrics) IncrementItemUpdated() {
	m.ItemsUpdated.Inc()
}

// AddGapsDetected records gap rows created by one detection pass.
func (m *Metrics) AddGapsDetected(n int) {
	m.GapsDetected.Add(float64(n))
}

// IncrementGapResolved records a gap resolution.
func (m *Metrics) IncrementGapResolved() {
	m.GapsResolved.Inc()
}

// ObserveScore records the duration of a score computation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveScore(start time.Time) {
	m.ScoreDuration.Observe(time.Since(start).Seconds())
}
