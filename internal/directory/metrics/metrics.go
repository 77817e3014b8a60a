package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module.
type Metrics struct {
	UsersCreated prometheus.Counter
	UsersUpdated prometheus.Counter
	UsersDeleted prometheus.Counter
}

// New registers the directory metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_users_created_total",
			Help: "Total number of users created",
		}),
		UsersUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_users_updated_total",
			Help: "Total number of users updated",
		}),
		UsersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userdir_users_deleted_total",
			Help: "Total number of users deleted",
		}),
	}
}

func (m *Metrics) IncrementCreated() { m.UsersCreated.Inc() }
func (m *Metrics) IncrementUpdated() { m.UsersUpdated.Inc() }
func (m *Metrics) IncrementDeleted() { m.UsersDeleted.Inc() }
