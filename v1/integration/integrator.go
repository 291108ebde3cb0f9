package integration

import (
	"context"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/honeyhive/hivetrace/v1/logger"
	"github.com/honeyhive/hivetrace/v1/observability"
	"github.com/honeyhive/hivetrace/v1/provider"
)

// Integrator attaches span processors to a host-owned tracer provider and
// tracks what it attached for later cleanup.
//
// Processors land at the end of the provider's processor chain; no ordering
// guarantee is made relative to processors the host installed itself. The
// enrichment attributes do not depend on chain position.
type Integrator struct {
	mu      sync.Mutex
	tracked []sdktrace.SpanProcessor

	logger   logger.Log
	observer observability.Observer
}

// NewIntegrator creates a processor integrator.
//
// Parameters:
//   - log: Logger for attach and cleanup events.
//
// Returns:
//   - *Integrator: An integrator with an empty tracked list.
func NewIntegrator(log logger.Log) *Integrator {
	return &Integrator{logger: log}
}

// WithObserver sets the observer notified about attach and cleanup
// operations. Returns the integrator for chaining.
func (i *Integrator) WithObserver(obs observability.Observer) *Integrator {
	i.observer = obs
	return i
}

// ValidateCompatibility reports whether the provider can accept a span
// processor. Checking the capability up front keeps incompatibility an
// expected condition instead of a thrown-and-caught one.
func (i *Integrator) ValidateCompatibility(handle oteltrace.TracerProvider) bool {
	_, ok := handle.(provider.ProcessorRegistrar)
	return ok
}

// Attach registers proc on the provider and tracks it for cleanup.
//
// Returns false, never an error, when ValidateCompatibility rejects the
// provider: encountering an incompatible third-party provider is an expected
// condition, logged as a warning and reported to the observer as
// ErrIncompatibleProvider.
//
// Attach is safe to call concurrently; two racing attaches both succeed and
// both end up tracked.
func (i *Integrator) Attach(handle oteltrace.TracerProvider, proc sdktrace.SpanProcessor) bool {
	if handle == nil || proc == nil {
		i.logger.Warn("attach skipped, nil provider or processor", nil, nil)
		return false
	}

	if !i.ValidateCompatibility(handle) {
		info := provider.Classify(handle)
		i.logger.Warn("provider does not accept span processors, skipping attach", ErrIncompatibleProvider, map[string]interface{}{
			"provider": info.TypeName,
		})
		i.observeOperation("attach", info.TypeName, ErrIncompatibleProvider, 0)
		return false
	}

	start := time.Now()
	handle.(provider.ProcessorRegistrar).RegisterSpanProcessor(proc)

	i.mu.Lock()
	i.tracked = append(i.tracked, proc)
	count := len(i.tracked)
	i.mu.Unlock()

	i.logger.Info("enrichment processor attached", nil, map[string]interface{}{
		"tracked_processors": count,
	})
	i.observeOperation("attach", "", nil, time.Since(start))
	return true
}

// TrackedCount returns the number of processors currently tracked.
func (i *Integrator) TrackedCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.tracked)
}

// Cleanup shuts down every tracked processor and clears the list. Idempotent
// and safe with an empty list. A processor that fails to shut down is logged
// and skipped; the rest are still shut down.
//
// The tracked list is swapped out under the mutex and the shutdowns run
// after it is released, so the lock is never held across processor I/O.
func (i *Integrator) Cleanup(ctx context.Context) {
	i.mu.Lock()
	processors := i.tracked
	i.tracked = nil
	i.mu.Unlock()

	if len(processors) == 0 {
		return
	}

	for _, proc := range processors {
		if err := proc.Shutdown(ctx); err != nil {
			i.logger.Warn("processor shutdown failed", err, nil)
		}
	}

	i.logger.Info("tracked processors cleaned up", nil, map[string]interface{}{
		"count": len(processors),
	})
	i.observeOperation("cleanup", "", nil, 0)
}

// observeOperation notifies the observer about an operation if one is set.
func (i *Integrator) observeOperation(operation, resource string, err error, duration time.Duration) {
	if i == nil || i.observer == nil {
		return
	}

	i.observer.ObserveOperation(observability.OperationContext{
		Component: "integration",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Size:      int64(i.TrackedCount()),
	})
}
