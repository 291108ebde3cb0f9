package enrichment

// Span is the minimal span surface the enrichment pipeline needs: a name for
// the recovery heuristic, a recording flag, and get/set access to attributes.
// The integration package adapts the OpenTelemetry SDK's span types onto it;
// tests use an in-memory implementation.
type Span interface {
	// Name returns the span's name.
	Name() string

	// IsRecording reports whether the span records events and attributes.
	IsRecording() bool

	// SetAttribute stages a single attribute on the span. Supported value
	// types are string, bool, int, int64 and float64; everything else is
	// stringified by the adapter.
	SetAttribute(key string, value interface{})

	// Attribute returns the current value of an attribute, if set.
	Attribute(key string) (interface{}, bool)
}

// SessionSource exposes the identity of the process-wide tracer instance.
// The recovery heuristic borrows these values for spans created by
// third-party auto-instrumentation that does not propagate baggage.
type SessionSource interface {
	SessionID() string
	Project() string
	Source() string
}

// SessionLookup returns the currently active session source, or nil when no
// tracer instance is active. Looked up per span so a session started after
// the processor is attached is still picked up.
type SessionLookup func() SessionSource

// RecoveryHeuristic decides whether a span that arrived without any baggage
// may borrow the active tracer instance's session identity. It receives the
// span name and nothing else.
//
// The default heuristic matches known LLM-call instrumentation by name
// substring. It is a best-effort policy, deliberately injectable so it can
// be replaced or disabled without touching the rest of the pipeline.
type RecoveryHeuristic func(spanName string) bool
