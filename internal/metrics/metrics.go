package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	SUCCESS = "success"
	ERROR   = "error"
)

// Collector counts executed statements and coercion failures. Each collector
// owns its registry so that several engines can live in one process.
type Collector struct {
	Registry   *prometheus.Registry
	Statements *prometheus.CounterVec
	Coercion   *prometheus.CounterVec
	Rows       *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	statements := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Executed statements, labeled by statement kind and status",
		},
		[]string{"kind", "status"},
	)
	coercion := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coercion_failures_total",
			Help:      "Rejected values, labeled by destination type and error kind",
		},
		[]string{"type", "error"},
	)
	rows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows written or returned, labeled by statement kind",
		},
		[]string{"kind"},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(statements, coercion, rows)
	return &Collector{
		Registry:   registry,
		Statements: statements,
		Coercion:   coercion,
		Rows:       rows,
	}
}

func (c *Collector) ObserveStatement(kind string, err error) {
	status := SUCCESS
	if err != nil {
		status = ERROR
	}
	c.Statements.WithLabelValues(kind, status).Inc()
}

func (c *Collector) ObserveCoercionFailure(destType, errorKind string) {
	c.Coercion.WithLabelValues(destType, errorKind).Inc()
}

func (c *Collector) ObserveRows(kind string, n int) {
	c.Rows.WithLabelValues(kind).Add(float64(n))
}
