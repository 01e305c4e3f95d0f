package store

import "github.com/prometheus/client_golang/prometheus"

var (
	snapshotSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "convstore_snapshot_saves_total",
		Help: "Snapshot save attempts by outcome (primary, fallback, error).",
	}, []string{"outcome"})

	snapshotFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "convstore_snapshot_fallbacks_total",
		Help: "Times persistence degraded to the in-memory fallback.",
	})

	snapshotLoadMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "convstore_snapshot_load_misses_total",
		Help: "Snapshot loads that found no usable snapshot.",
	})
)

func init() {
	prometheus.MustRegister(snapshotSaves, snapshotFallbacks, snapshotLoadMisses)
}
