package metrics

import (
	"time"

	"github.com/honeyhive/hivetrace/v1/observability"
)

// Compile-time check that *Metrics satisfies the observability contract.
var _ observability.Observer = (*Metrics)(nil)

// ObserveOperation translates an operation report into Prometheus series.
// It implements observability.Observer so a *Metrics instance can be wired
// directly into any component's WithObserver setter.
//
// Mapping:
//   - every report with a measured duration feeds the operation duration
//     histogram under its component and operation labels
//   - enrichment span_start reports increment the spans-enriched counter
//     with the report's outcome
//   - enrichment cache_evict reports add to the eviction counter
//   - integration integrate reports increment the integration counter under
//     the strategy and a success/failure outcome
//   - resilience recovery reports increment the recovery counter
//   - a "cache_size" metadata entry updates the cache size gauge and a
//     "fallback_active" entry updates the fallback gauge
//
// ObserveOperation never blocks and is safe for concurrent use; unknown
// components only contribute to the duration histogram.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	if m == nil {
		return
	}

	if ctx.Duration > 0 {
		m.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	}

	switch {
	case ctx.Component == "enrichment" && ctx.Operation == "span_start":
		m.IncrementSpansEnriched(enrichmentOutcome(ctx))

	case ctx.Component == "integration" && ctx.Operation == "integrate":
		m.IncrementIntegrationAttempts(ctx.SubResource, successOutcome(ctx))

	case ctx.Component == "enrichment" && ctx.Operation == "cache_evict":
		m.AddCacheEvictions(int(ctx.Size))

	case ctx.Component == "resilience" &&
		(ctx.Operation == "health_check_recovery" || ctx.Operation == "background_recovery"):
		m.IncrementRecoveryAttempts(successOutcome(ctx))
	}

	if entries, ok := ctx.Metadata["cache_size"].(int); ok {
		m.SetCacheSize(entries)
	}
	if active, ok := ctx.Metadata["fallback_active"].(bool); ok {
		m.SetFallbackActive(active)
	}
}

// RecordSince is a convenience wrapper for deferred duration recording.
// Example: defer m.RecordSince(time.Now(), "tracer", "start_session")
func (m *Metrics) RecordSince(start time.Time, component, operation string) {
	m.RecordOperationDuration(start, component, operation)
}

func enrichmentOutcome(ctx observability.OperationContext) string {
	if ctx.Error != nil {
		return "error"
	}
	if ctx.SubResource != "" {
		return ctx.SubResource
	}
	return "computed"
}

func successOutcome(ctx observability.OperationContext) string {
	if ctx.Error != nil {
		return "failure"
	}
	if success, ok := ctx.Metadata["success"].(bool); ok && !success {
		return "failure"
	}
	return "success"
}
