package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the council module.
type Metrics struct {
	DocumentsImported prometheus.Counter
	ImportsTotal      prometheus.Counter
}

// New creates a new Metrics instance with all council module metrics registered.
func New() *Metrics {
	return &Metrics{
		DocumentsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyguard_council_documents_imported_total",
			Help: "Total number of council documents recorded by imports",
		}),
		ImportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propertyguard_council_imports_total",
			Help: "Total number of council import runs",
		}),
	}
}

// AddDocumentsImported records documents created by one import run.
func (m *Metrics) AddDocumentsImported(n int) {
	m.ImportsTotal.Inc()
	m.DocumentsImported.Add(float64(n))
}
