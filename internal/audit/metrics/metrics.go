package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit module.
type Metrics struct {
	EntriesRecorded *prometheus.CounterVec
}

// New registers the audit metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		EntriesRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "userdir_audit_entries_recorded_total",
			Help: "Total number of audit entries recorded, by action",
		}, []string{"action"}),
	}
}

// IncrementRecorded counts one recorded entry for the given action.
func (m *Metrics) IncrementRecorded(action string) {
	m.EntriesRecorded.WithLabelValues(action).Inc()
}
