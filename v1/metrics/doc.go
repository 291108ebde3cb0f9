// Package metrics provides Prometheus-based monitoring for the tracing
// library itself.
//
// The package exposes a configurable /metrics HTTP endpoint and carries a
// fixed set of series describing the tracing pipeline: integration attempts
// by strategy and outcome, spans processed by the enrichment pipeline, the
// size of the span attribute cache, background recovery attempts, and
// whether the resilience layer is currently in a fallback mode.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Collector interface: Defines the contract for metric operations
//   - Metrics struct: Concrete implementation of the Collector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides both *Metrics and Collector for dependency injection
//
// *Metrics also implements observability.Observer, so one instance can be
// handed to every component's WithObserver setter and turn operation reports
// into Prometheus series without the components importing this package.
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "checkout-api",
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	proc := enrichment.NewProcessor(enrichment.Config{}, log).WithObserver(m)
//
// Access metrics at: http://localhost:9090/metrics
package metrics
