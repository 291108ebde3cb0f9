package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector provides an interface for collecting and exposing the library's
// metrics. It abstracts Prometheus metric operations with support for
// counters, histograms, and gauges.
//
// This interface is implemented by the concrete *Metrics type.
type Collector interface {
	// Pipeline metric methods

	// IncrementIntegrationAttempts increments the integration counter for a
	// strategy and outcome.
	IncrementIntegrationAttempts(strategy, outcome string)

	// IncrementSpansEnriched increments the span enrichment counter with the
	// given outcome label.
	IncrementSpansEnriched(outcome string)

	// RecordOperationDuration records the duration (in seconds) of an operation.
	RecordOperationDuration(start time.Time, component, operation string)

	// IncrementRecoveryAttempts increments the recovery counter with an outcome.
	IncrementRecoveryAttempts(outcome string)

	// AddCacheEvictions adds evicted entries to the eviction counter.
	AddCacheEvictions(n int)

	// SetCacheSize sets the context cache size gauge.
	SetCacheSize(entries int)

	// SetFallbackActive sets the fallback gauge to 1 or 0.
	SetFallbackActive(active bool)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
