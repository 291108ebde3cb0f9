package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/honeyhive/hivetrace/v1/logger"
	"github.com/honeyhive/hivetrace/v1/observability"
	"github.com/honeyhive/hivetrace/v1/provider"
)

// RecoveryFunc attempts to re-establish a degraded integration. A nil error
// means the integration is healthy again.
type RecoveryFunc func(ctx context.Context) error

// Handler owns the process-wide fallback state of the integration: whether a
// fallback is active, which degradation to apply per failure, and when to try
// recovering. One Handler per process; all fields are guarded by a single
// mutex that is never held across recovery I/O.
type Handler struct {
	mu              sync.Mutex
	fallbackActive  bool
	lastHealthCheck time.Time
	closed          bool

	cfg      Config
	logger   logger.Log
	observer observability.Observer
	recovery RecoveryFunc

	// Background recovery workers. The group is bounded by
	// MaxConcurrentRecoveries and joined on Shutdown, so recovery work can
	// neither pile up under repeated failures nor outlive the process.
	group      *errgroup.Group
	workerCtx  context.Context
	cancelWork context.CancelFunc
}

// NewHandler creates the error handler.
//
// Parameters:
//   - cfg: Retry budgets, backoff and health-check rate limiting. Zero
//     values take the documented defaults.
//   - log: Logger for fallback and recovery events. Also the sink handed to
//     callers under the console-logging fallback mode.
//
// Returns:
//   - *Handler: A handler with no fallback active and no recovery function;
//     the default recovery re-classifies the global tracer provider and
//     succeeds when a workable integration strategy is available.
//
// Example:
//
//	handler := resilience.NewHandler(resilience.Config{}, log)
//	defer handler.Shutdown(context.Background())
func NewHandler(cfg Config, log logger.Log) *Handler {
	workerCtx, cancel := context.WithCancel(context.Background())

	group := &errgroup.Group{}
	cfg = cfg.withDefaults()
	group.SetLimit(cfg.MaxConcurrentRecoveries)

	return &Handler{
		cfg:        cfg,
		logger:     log,
		group:      group,
		workerCtx:  workerCtx,
		cancelWork: cancel,
		recovery: func(ctx context.Context) error {
			info := provider.ClassifyGlobal()
			if info.Strategy == provider.StrategyConsoleFallback {
				return fmt.Errorf("%w: provider %q still offers no integration path", ErrRecoveryFailed, info.TypeName)
			}
			return nil
		},
	}
}

// WithRecovery replaces the recovery function and returns the handler for
// chaining. Must be called before any failure is handled.
func (h *Handler) WithRecovery(fn RecoveryFunc) *Handler {
	h.recovery = fn
	return h
}

// WithObserver sets the observer notified about fallback transitions and
// recovery attempts. Returns the handler for chaining.
func (h *Handler) WithObserver(obs observability.Observer) *Handler {
	h.observer = obs
	return h
}

// HandleIntegrationFailure records a failure, activates the fallback mode
// requested by the error context, and returns the directive callers must
// follow from now on.
//
// For SeverityHigh and SeverityCritical failures a background recovery is
// scheduled in addition to the immediate fallback; the caller is never
// blocked waiting for it.
//
// HandleIntegrationFailure never returns an error: converting failures into
// directives instead of propagating them is the point of this package.
func (h *Handler) HandleIntegrationFailure(err error, ec ErrorContext) Directive {
	h.mu.Lock()
	h.fallbackActive = true
	h.mu.Unlock()

	h.logger.Error("integration failure, activating fallback", err, map[string]interface{}{
		"component":     ec.Component,
		"operation":     ec.Operation,
		"severity":      ec.Severity.String(),
		"fallback_mode": string(ec.FallbackMode),
	})

	directive := Directive{
		Mode:      ec.FallbackMode,
		Operation: "degraded",
	}

	switch ec.FallbackMode {
	case FallbackConsoleLogging:
		directive.Logger = h.logger
	case FallbackPartialIntegration:
		directive.DisabledFeatures = []string{FeatureExport}
		directive.EnabledFeatures = []string{FeatureLocalLogging}
	case FallbackNoOp:
		directive.Operation = "disabled"
	}

	if ec.Severity >= SeverityHigh {
		directive.RetryScheduled = h.ScheduleBackgroundRetry(ec)
	}

	h.observeOperation(ec.Operation, ec.Component, string(ec.FallbackMode), 0, err)
	return directive
}

// PerformHealthCheck runs a rate-limited check of the fallback state. Calls
// arriving within HealthCheckInterval of the previous effective check return
// a skipped result with no side effects. An effective check attempts
// recovery if a fallback is active; success clears the fallback flag.
//
// Callers wanting an immediate check regardless of the rate limit should
// call ResetHealthCheck first.
func (h *Handler) PerformHealthCheck() HealthCheckResult {
	h.mu.Lock()
	now := time.Now()
	if now.Sub(h.lastHealthCheck) < h.cfg.HealthCheckInterval {
		active := h.fallbackActive
		h.mu.Unlock()
		return HealthCheckResult{Status: HealthStatusSkipped, FallbackActive: active}
	}
	h.lastHealthCheck = now
	active := h.fallbackActive
	h.mu.Unlock()

	result := HealthCheckResult{Status: HealthStatusChecked, FallbackActive: active}
	if !active {
		return result
	}

	result.RecoveryAttempted = true
	start := time.Now()
	err := h.attemptRecovery(h.workerCtx)

	if err != nil {
		h.observeOperation("health_check_recovery", "resilience", "", time.Since(start), err)
		h.logger.Warn("recovery attempt failed, fallback stays active", err, nil)
		return result
	}

	h.mu.Lock()
	h.fallbackActive = false
	h.mu.Unlock()

	h.observeOperation("health_check_recovery", "resilience", "", time.Since(start), nil)
	result.RecoverySuccessful = true
	h.logger.Info("recovery successful, fallback cleared", nil, nil)
	return result
}

// ResetHealthCheck forces the next PerformHealthCheck call to run regardless
// of the rate limit.
func (h *Handler) ResetHealthCheck() {
	h.mu.Lock()
	h.lastHealthCheck = time.Time{}
	h.mu.Unlock()
}

// FallbackActive reports whether the handler currently has a fallback mode
// in effect.
func (h *Handler) FallbackActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fallbackActive
}

// ScheduleBackgroundRetry queues a recovery for the given failure on the
// bounded worker group. Returns false without blocking when the handler is
// closed or the concurrency limit is already saturated; a recovery already
// in flight covers the new failure too.
//
// The closed check and the enqueue happen under the same mutex Shutdown
// takes to close the handler, so a retry can never slip in after Shutdown
// started joining the workers.
func (h *Handler) ScheduleBackgroundRetry(ec ErrorContext) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		h.logger.Warn("handler closed, dropping background retry", ErrHandlerClosed, map[string]interface{}{
			"operation": ec.Operation,
		})
		return false
	}
	scheduled := h.group.TryGo(func() error {
		start := time.Now()
		_, err := ExecuteWithRetry(h.workerCtx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, h.attemptRecovery(ctx)
		}, h.cfg.MaxRetries, h.cfg.BaseDelay)

		if err != nil {
			h.logger.Warn("background recovery exhausted retries", err, map[string]interface{}{
				"operation": ec.Operation,
				"component": ec.Component,
			})
			// Keep the fallback active; the next health check retries.
			h.observeOperation("background_recovery", ec.Component, "", time.Since(start), err)
			return nil
		}

		h.mu.Lock()
		h.fallbackActive = false
		h.mu.Unlock()

		h.logger.Info("background recovery succeeded, fallback cleared", nil, map[string]interface{}{
			"operation": ec.Operation,
		})
		h.observeOperation("background_recovery", ec.Component, "", time.Since(start), nil)
		return nil
	})
	h.mu.Unlock()

	if !scheduled {
		h.logger.Debug("recovery workers saturated, retry not queued", nil, nil)
	}
	return scheduled
}

// Shutdown stops accepting new recovery work, cancels in-flight recoveries
// and waits for the workers to exit. Safe to call more than once.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	h.cancelWork()

	done := make(chan struct{})
	go func() {
		_ = h.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// attemptRecovery runs the configured recovery function. A handler without
// one reports failure so the fallback stays visible rather than silently
// clearing.
func (h *Handler) attemptRecovery(ctx context.Context) error {
	if h.recovery == nil {
		return ErrRecoveryFailed
	}
	return h.recovery(ctx)
}

// observeOperation notifies the observer about an operation if one is set.
// Every report carries the fallback state as it stands after the operation,
// so metric sinks track transitions without polling the handler.
func (h *Handler) observeOperation(operation, component, mode string, duration time.Duration, err error) {
	if h == nil || h.observer == nil {
		return
	}

	h.observer.ObserveOperation(observability.OperationContext{
		Component:   "resilience",
		Operation:   operation,
		Resource:    component,
		SubResource: mode,
		Duration:    duration,
		Error:       err,
		Metadata: map[string]interface{}{
			"fallback_active": h.FallbackActive(),
		},
	})
}
