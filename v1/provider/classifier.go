package provider

import (
	"reflect"
	"strings"

	"go.opentelemetry.io/otel"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Type-name markers used when capability inspection is inconclusive.
// The OpenTelemetry API offers no marker interface for "placeholder", so
// these substring checks are a heuristic, kept deliberately broad and
// lower-cased: "noop.TracerProvider", "*global.tracerProvider" and third
// party equivalents all match.
const (
	markerNoOp     = "noop"
	markerProxy    = "proxy"
	markerGlobal   = "global."
	markerCustom   = "custom"
	markerProvider = "tracerprovider"
)

// Classify inspects a tracer provider handle and derives its kind, the
// integration strategy for that kind, and its capabilities.
//
// Parameters:
//   - handle: The provider to classify. Nil is allowed and is treated the
//     same as a no-op placeholder.
//
// Returns:
//   - Info: A freshly built classification of the handle.
//
// Classify has no side effects and holds no state between calls; it is safe
// to call concurrently and repeatedly, and always reflects the handle it was
// given rather than any remembered classification.
func Classify(handle oteltrace.TracerProvider) Info {
	info := Info{Handle: handle}

	if handle == nil {
		// An absent provider is indistinguishable from a no-op one for
		// integration purposes: nothing is exporting, nothing is lost by
		// installing our own.
		info.Kind = KindNoOp
	} else {
		info.TypeName = reflect.TypeOf(handle).String()
		_, info.SupportsProcessors = handle.(ProcessorRegistrar)
		info.Kind = classifyTypeName(info.TypeName, info.SupportsProcessors)
	}

	info.Strategy = strategyFor(info.Kind)
	info.IsReplaceable = info.Kind == KindNoOp || info.Kind == KindProxy
	return info
}

// ClassifyGlobal classifies the process-wide provider currently registered
// with the OpenTelemetry globals.
func ClassifyGlobal() Info {
	return Classify(otel.GetTracerProvider())
}

// classifyTypeName decides the provider kind from its runtime type name and
// the outcome of the capability check. Placeholder detection runs first so a
// no-op provider that happens to embed the registrar capability is still
// treated as replaceable.
func classifyTypeName(typeName string, supportsProcessors bool) Kind {
	name := strings.ToLower(typeName)

	switch {
	case strings.Contains(name, markerNoOp):
		return KindNoOp
	case strings.Contains(name, markerProxy), strings.Contains(name, markerGlobal):
		return KindProxy
	case supportsProcessors:
		// Capability beats naming: whatever it is called, a provider that
		// accepts span processors is one we can attach to.
		return KindReal
	case strings.Contains(name, markerProvider) && !strings.Contains(name, markerCustom):
		return KindReal
	default:
		return KindCustom
	}
}

// strategyFor maps a provider kind onto the integration strategy.
func strategyFor(kind Kind) Strategy {
	switch kind {
	case KindNoOp, KindProxy:
		return StrategyMainProvider
	case KindReal:
		return StrategySecondaryProvider
	default:
		return StrategyConsoleFallback
	}
}
