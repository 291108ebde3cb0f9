package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing the library's metrics.
//
// Beyond the generic factory methods, it carries a fixed set of series that
// describe the tracing pipeline itself: how often integration ran and with
// which strategy, how many spans were enriched, how the context cache
// behaves, and whether the resilience layer is currently degraded.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	// Core built-in metrics
	integrationAttempts *prometheus.CounterVec
	spansEnriched       *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	recoveryAttempts    *prometheus.CounterVec
	cacheEvictions      prometheus.Counter
	cacheSizeGauge      prometheus.Gauge
	fallbackGauge       prometheus.Gauge
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system collectors,
// wraps all metrics with a constant `service` label, and creates an HTTP server
// exposing the /metrics endpoint.
//
// Parameters:
//   - cfg: Configuration for the metrics server, including listening address,
//     service name, and whether to enable default collectors.
//
// Returns:
//   - *Metrics: A configured Metrics instance ready for lifecycle management
//     and Fx module integration.
//
// The setup includes:
//   - A dedicated Prometheus registry for the service
//   - Automatic registration of Go, process, and build info collectors
//   - A global "service" label applied to all metrics for easier aggregation
//   - An HTTP server exposing the metrics endpoint
//
// Example:
//
//	cfg := metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "checkout-api",
//	    EnableDefaultCollectors: true,
//	}
//	metricsInstance := metrics.NewMetrics(cfg)
//	go metricsInstance.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	// Create a new isolated Prometheus registry for this service.
	// This avoids metric collisions when multiple services run in the same process.
	registry := prometheus.NewRegistry()

	// Wrap the registry with a constant label for consistent observability.
	// All metrics emitted by this service will automatically include the label:
	//   service="<cfg.ServiceName>"
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	// Define the pipeline metrics using helpers
	m.integrationAttempts = createCounterVec("hivetrace_integration_attempts_total",
		"Number of tracer integration attempts by strategy and outcome", []string{"strategy", "outcome"})
	m.spansEnriched = createCounterVec("hivetrace_spans_enriched_total",
		"Number of spans processed by the enrichment pipeline by outcome", []string{"outcome"})
	m.operationDuration = createHistogramVec("hivetrace_operation_duration_seconds",
		"Duration of instrumented operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.recoveryAttempts = createCounterVec("hivetrace_recovery_attempts_total",
		"Number of background recovery attempts by outcome", []string{"outcome"})
	m.cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hivetrace_context_cache_evictions_total",
		Help: "Number of entries evicted from the span attribute context cache",
	})
	m.cacheSizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hivetrace_context_cache_entries",
		Help: "Current number of entries in the span attribute context cache",
	})
	m.fallbackGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hivetrace_fallback_active",
		Help: "1 while the resilience layer is operating in a fallback mode, 0 otherwise",
	})

	wrappedRegistry.MustRegister(
		m.integrationAttempts,
		m.spansEnriched,
		m.operationDuration,
		m.recoveryAttempts,
		m.cacheEvictions,
		m.cacheSizeGauge,
		m.fallbackGauge,
	)

	// Register standard collectors if enabled.
	// These provide essential runtime metrics for Go processes:
	//   - GoCollector: Memory usage, goroutines, GC stats
	//   - ProcessCollector: CPU, file descriptors, memory stats
	//   - BuildInfoCollector: Binary version/build info
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	// Create an HTTP handler that serves metrics from the registry.
	// The handler exposes metrics at /metrics for Prometheus scraping.
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	m.Server = server
	return m
}
