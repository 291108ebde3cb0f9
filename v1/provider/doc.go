// Package provider classifies the process-wide OpenTelemetry tracer provider
// and selects an integration strategy for it.
//
// A host application may already run its own tracing setup when hivetrace
// starts. Replacing a real provider would destroy the host's telemetry, while
// leaving a placeholder in place would leave hivetrace without an export path.
// Classify inspects the active provider and answers the one question the rest
// of the library needs: is this a safe-to-replace placeholder, a real provider
// we must coexist with, or something unknown we should stay away from?
//
// # Classification
//
// Classification is capability-first: a provider that exposes the SDK's
// RegisterSpanProcessor method is a real, processor-capable provider. Type
// name inspection is only the fallback signal for telling placeholders
// (no-op, proxy) from custom implementations — the OpenTelemetry API gives no
// stronger marker for those, so the name check is a documented heuristic, not
// a guarantee.
//
// The kind maps onto a strategy:
//
//	NoOp, Proxy  -> StrategyMainProvider     (placeholder, safe to replace)
//	Real         -> StrategySecondaryProvider (must coexist, attach a processor)
//	Custom       -> StrategyConsoleFallback   (unknown, do not touch)
//
// # Usage
//
//	info := provider.Classify(otel.GetTracerProvider())
//	switch info.Strategy {
//	case provider.StrategyMainProvider:
//	    // create our own provider
//	case provider.StrategySecondaryProvider:
//	    // attach an enrichment processor to the existing one
//	case provider.StrategyConsoleFallback:
//	    // degrade to local logging
//	}
//
// Classify is a pure function of the handle it is given: no side effects,
// safe to call repeatedly and concurrently. Info carries no persisted
// identity — every call reflects the current process state.
package provider
