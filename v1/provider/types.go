package provider

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Kind categorizes the active tracer provider.
type Kind string

const (
	// KindNoOp is an absent provider or a no-op placeholder.
	KindNoOp Kind = "noop"

	// KindProxy is a delegating placeholder (the OpenTelemetry global
	// provider before a real one has been installed).
	KindProxy Kind = "proxy"

	// KindReal is a genuine, processor-capable tracer provider.
	KindReal Kind = "real"

	// KindCustom is any provider the classifier cannot place in the
	// categories above.
	KindCustom Kind = "custom"
)

// Strategy is the integration approach selected for a classified provider.
type Strategy string

const (
	// StrategyMainProvider means the current provider is a replaceable
	// placeholder and the caller should install its own provider.
	StrategyMainProvider Strategy = "main_provider"

	// StrategySecondaryProvider means a real provider is already active and
	// the enrichment processor should be attached to it.
	StrategySecondaryProvider Strategy = "secondary_provider"

	// StrategyConsoleFallback means the provider cannot be integrated with
	// and telemetry should degrade to local logging.
	StrategyConsoleFallback Strategy = "console_fallback"
)

// ProcessorRegistrar is the capability a provider must expose for a span
// processor to be attached to it. The SDK's *sdktrace.TracerProvider
// satisfies it; placeholders and most custom providers do not.
type ProcessorRegistrar interface {
	RegisterSpanProcessor(sp sdktrace.SpanProcessor)
}

// Info describes one classification of the active tracer provider.
// A fresh Info is produced on every Classify call and is never mutated by
// the library afterwards.
type Info struct {
	// Handle is the provider that was classified. Nil if none was active.
	Handle oteltrace.TracerProvider `json:"-"`

	// TypeName is the runtime type name of the handle, e.g.
	// "*trace.TracerProvider". Empty if the handle was nil.
	TypeName string `json:"type_name"`

	// Kind is the classified provider category.
	Kind Kind `json:"kind"`

	// Strategy is the integration strategy selected for Kind.
	Strategy Strategy `json:"strategy"`

	// SupportsProcessors reports whether Handle exposes the
	// ProcessorRegistrar capability.
	SupportsProcessors bool `json:"supports_processors"`

	// IsReplaceable reports whether the provider is a placeholder that may
	// safely be swapped for a new main provider.
	IsReplaceable bool `json:"is_replaceable"`
}
