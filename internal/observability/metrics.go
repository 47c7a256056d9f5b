// Package observability provides application metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations counts successful store operations by store and operation.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_store_mutations_total",
		Help: "Total number of successful store mutations by store and operation",
	}, []string{"store", "operation"})

	// SnapshotWrites counts full-state snapshot writes by namespace key.
	SnapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_snapshot_writes_total",
		Help: "Total number of snapshot writes to the namespace by key",
	}, []string{"key"})

	// SeedFallbacks counts startups that fell back to the seed state because
	// the persisted snapshot was absent or malformed.
	SeedFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_seed_fallbacks_total",
		Help: "Times a store fell back to its seed state on rehydration",
	}, []string{"key", "reason"})
)
