// Package stats provides a unified interface for collecting evaluator
// metrics.
package stats

// Metric names used throughout the library.
const (
	// Evaluator metrics.
	MetricEvaluations  = "ruleval_evaluations_total"
	MetricRulesApplied = "ruleval_rules_applied_total"
	MetricRulesGated   = "ruleval_rules_gated_total"
	MetricScore        = "ruleval_score_centipawns"
	MetricActiveRules  = "ruleval_active_rules"

	// Score cache metrics.
	MetricCacheHits   = "ruleval_cache_hits_total"
	MetricCacheMisses = "ruleval_cache_misses_total"
	MetricCacheSize   = "ruleval_cache_size"

	// Ruleset storage metrics.
	MetricStoreReads  = "ruleval_store_reads_total"
	MetricStoreWrites = "ruleval_store_writes_total"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
