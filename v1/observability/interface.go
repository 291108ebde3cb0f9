package observability

import "time"

// OperationContext carries the details of a single observed operation.
// It is passed by value to observers and must not be retained mutably.
type OperationContext struct {
	// Component is the reporting package, e.g. "enrichment" or "integration".
	Component string

	// Operation is the name of the operation, e.g. "attach" or "span_start".
	Operation string

	// Resource identifies what the operation acted on, e.g. a provider type
	// name or a span name.
	Resource string

	// SubResource carries additional context, e.g. the integration strategy
	// or the fallback mode in effect.
	SubResource string

	// Duration is how long the operation took, if measured.
	Duration time.Duration

	// Error is the operation error, nil on success.
	Error error

	// Size is an operation-specific magnitude, e.g. the number of attributes
	// written to a span or the number of processors shut down.
	Size int64

	// Metadata holds any extra key/value detail the component wants to expose.
	Metadata map[string]interface{}
}

// Observer receives operation reports from instrumented components.
// Implementations must be safe for concurrent use; ObserveOperation is called
// from the span hot path and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
