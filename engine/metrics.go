package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-multisig/metrics"
)

const subsystem = "engine"

var (
	executeDuration = metrics.NewHistogramWithBuckets(
		"execute_duration_seconds",
		subsystem,
		"duration of action execution",
		[]string{"kind"},
		prometheus.ExponentialBuckets(0.0005, 2, 14),
	)
	executions = metrics.NewCounter(
		"executions",
		subsystem,
		"number of executed actions by kind and result",
		[]string{"kind", "result"},
	)
	discardedWitnesses = metrics.NewCounter(
		"discarded_witnesses",
		subsystem,
		"number of witnesses that contributed no weight",
		[]string{},
	).WithLabelValues()
	registryCache = metrics.NewCounter(
		"registry_cache",
		subsystem,
		"registry cache lookups",
		[]string{"result"},
	)
	cacheHits   = registryCache.WithLabelValues("hit")
	cacheMisses = registryCache.WithLabelValues("miss")
)
