package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the property module.
type Metrics struct {
	PropertiesCreated     prometheus.Counter
	ResponsibilitiesAdded prometheus.Counter
	CreateDuration        prometheus.Histogram
}

// New creates a new Metrics instance with all property module metrics registered.
func New() *Metrics {
	return &Metrics{
		PropertiesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyguard_properties_created_total",
			Help: "Total number of properties created",
		}),
		ResponsibilitiesAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyguard_shared_responsibilities_added_total",
			Help: "Total number of shared responsibility splits recorded",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propertyguard_property_create_duration_seconds",
			Help:    "Duration of property creation including compliance seeding",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementCreated records a successful property creation.
func (m *Metrics) IncrementCreated() {
	m.PropertiesCreated.Inc()
}

// IncrementResponsibilityAdded records a new shared responsibility split.
func (m *Metrics) IncrementResponsibilityAdded() {
	m.ResponsibilitiesAdded.Inc()
}

// ObserveCreate records the duration of a property creation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}
