package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementIntegrationAttempts increments the integration counter for a
// strategy and outcome.
// Example: metrics.IncrementIntegrationAttempts("secondary_provider", "success")
func (m *Metrics) IncrementIntegrationAttempts(strategy, outcome string) {
	m.integrationAttempts.WithLabelValues(strategy, outcome).Inc()
}

// IncrementSpansEnriched increments the span enrichment counter with the
// given outcome label.
// Example: metrics.IncrementSpansEnriched("computed")
func (m *Metrics) IncrementSpansEnriched(outcome string) {
	m.spansEnriched.WithLabelValues(outcome).Inc()
}

// RecordOperationDuration records the duration (in seconds) of an operation.
// Example: defer metrics.RecordOperationDuration(time.Now(), "enrichment", "span_start")
func (m *Metrics) RecordOperationDuration(start time.Time, component, operation string) {
	duration := time.Since(start).Seconds()
	m.operationDuration.WithLabelValues(component, operation).Observe(duration)
}

// IncrementRecoveryAttempts increments the recovery counter with an outcome.
// Example: metrics.IncrementRecoveryAttempts("failure")
func (m *Metrics) IncrementRecoveryAttempts(outcome string) {
	m.recoveryAttempts.WithLabelValues(outcome).Inc()
}

// AddCacheEvictions adds evicted entries to the eviction counter.
func (m *Metrics) AddCacheEvictions(n int) {
	if n > 0 {
		m.cacheEvictions.Add(float64(n))
	}
}

// SetCacheSize sets the context cache size gauge.
func (m *Metrics) SetCacheSize(entries int) {
	m.cacheSizeGauge.Set(float64(entries))
}

// SetFallbackActive sets the fallback gauge to 1 or 0.
func (m *Metrics) SetFallbackActive(active bool) {
	if active {
		m.fallbackGauge.Set(1)
	} else {
		m.fallbackGauge.Set(0)
	}
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
// Used internally by NewMetrics to maintain consistency.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
// Used internally by NewMetrics for latency tracking.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec safely for resource monitoring.
// Used internally by NewMetrics to track resource utilization.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
