package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics for change traffic. A nil
// *Collector is valid and records nothing.
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// Coordinator metrics
	ChangesApplied *prometheus.CounterVec
	ChangesUndone  *prometheus.CounterVec
	ChangesRedone  *prometheus.CounterVec
	UndoStackDepth *prometheus.GaugeVec

	// Change list replay metrics
	RecordsReplayed *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	changesApplied := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_applied_total",
			Help:      "Total number of changes applied through the coordinator",
		},
		[]string{"cmd"},
	)

	changesUndone := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_undone_total",
			Help:      "Total number of changes undone",
		},
		[]string{"cmd"},
	)

	changesRedone := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_redone_total",
			Help:      "Total number of changes redone",
		},
		[]string{"cmd"},
	)

	undoStackDepth := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "undo_stack_depth",
			Help:      "Number of live changes on the undo stack",
		},
		[]string{"aggregate"},
	)

	recordsReplayed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_replayed_total",
			Help:      "Total number of change records replayed onto an aggregate",
		},
		[]string{"cmd"},
	)

	registry.MustRegister(
		changesApplied,
		changesUndone,
		changesRedone,
		undoStackDepth,
		recordsReplayed,
	)

	return &Collector{
		registry:        registry,
		ChangesApplied:  changesApplied,
		ChangesUndone:   changesUndone,
		ChangesRedone:   changesRedone,
		UndoStackDepth:  undoStackDepth,
		RecordsReplayed: recordsReplayed,
	}
}

// ChangeApplied counts a first-time apply
func (c *Collector) ChangeApplied(cmd string) {
	if c == nil {
		return
	}
	c.ChangesApplied.WithLabelValues(cmd).Inc()
}

// ChangeUndone counts an undo
func (c *Collector) ChangeUndone(cmd string) {
	if c == nil {
		return
	}
	c.ChangesUndone.WithLabelValues(cmd).Inc()
}

// ChangeRedone counts a redo
func (c *Collector) ChangeRedone(cmd string) {
	if c == nil {
		return
	}
	c.ChangesRedone.WithLabelValues(cmd).Inc()
}

// SetStackDepth records the undo stack depth for an aggregate kind
func (c *Collector) SetStackDepth(aggregate string, depth int) {
	if c == nil {
		return
	}
	c.UndoStackDepth.WithLabelValues(aggregate).Set(float64(depth))
}

// RecordReplayed counts one replayed change record
func (c *Collector) RecordReplayed(cmd string) {
	if c == nil {
		return
	}
	c.RecordsReplayed.WithLabelValues(cmd).Inc()
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}
