package store

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/cascade"
)

// metrics holds the cascade counters. A nil *metrics records nothing.
type metrics struct {
	batches  *prometheus.CounterVec
	affected *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		// batches counts executed cascade batches by table and kind
		batches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veloxdb_cascade_batches_total",
			Help: "Total cascade batches executed by table and delete kind",
		}, []string{"table", "kind"}),
		affected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veloxdb_cascade_rows_affected_total",
			Help: "Total rows affected by cascade batches by table and delete kind",
		}, []string{"table", "kind"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veloxdb_cascade_errors_total",
			Help: "Total failed cascading deletes by reason",
		}, []string{"reason"}),
	}
}

func (m *metrics) batch(b cascade.Batch, n int64) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(b.Type.Table(), b.Kind.String()).Inc()
	m.affected.WithLabelValues(b.Type.Table(), b.Kind.String()).Add(float64(n))
}

func (m *metrics) fail(err error) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(reason(err)).Inc()
}

// reason maps a delete error to its metric label.
func reason(err error) string {
	switch {
	case veloxdb.IsCycleError(err):
		return "cycle"
	case veloxdb.IsUnsupportedReference(err):
		return "unsupported_reference"
	case errors.Is(err, veloxdb.ErrNotSoftDeletable):
		return "not_soft_deletable"
	case veloxdb.IsConstraintError(err):
		return "constraint"
	case veloxdb.IsQueryError(err):
		return "query"
	case veloxdb.IsMutationError(err):
		return "mutation"
	}
	return "other"
}
