package integration

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/honeyhive/hivetrace/v1/logger"
	"github.com/honeyhive/hivetrace/v1/observability"
	"github.com/honeyhive/hivetrace/v1/provider"
	"github.com/honeyhive/hivetrace/v1/resilience"
)

// Result is the outcome of one integration attempt. It is built once and
// never mutated; a console fallback is a successful outcome, not a failure.
type Result struct {
	// Success reports whether the selected strategy was applied.
	Success bool `json:"success"`

	// Strategy is the integration strategy that was (or should be) applied.
	Strategy provider.Strategy `json:"strategy"`

	// ProviderInfo is the classification the strategy was derived from.
	ProviderInfo provider.Info `json:"provider_info"`

	// Message explains the outcome for logs.
	Message string `json:"message"`

	// Error carries the failure description when Success is false.
	Error string `json:"error,omitempty"`
}

// Manager orchestrates classify → integrate → report. It decides the
// strategy; for StrategyMainProvider the caller performs the actual provider
// swap under its own locking — this separation keeps the process-global
// provider mutation in exactly one place.
type Manager struct {
	classify   func() provider.Info
	integrator *Integrator
	handler    *resilience.Handler
	logger     logger.Log
	observer   observability.Observer
}

// NewManager creates the integration manager.
//
// Parameters:
//   - integrator: Attaches processors for the secondary-provider strategy.
//   - handler: Receives integration failures and owns the fallback state.
//   - log: Logger for integration outcomes.
//
// Returns:
//   - *Manager: A manager that classifies the process-wide OpenTelemetry
//     global provider. Tests can reroute classification with WithClassifier.
func NewManager(integrator *Integrator, handler *resilience.Handler, log logger.Log) *Manager {
	return &Manager{
		classify:   provider.ClassifyGlobal,
		integrator: integrator,
		handler:    handler,
		logger:     log,
	}
}

// WithClassifier replaces the classification source and returns the manager
// for chaining. Must be called before Integrate.
func (m *Manager) WithClassifier(fn func() provider.Info) *Manager {
	m.classify = fn
	return m
}

// WithObserver sets the observer notified about integration outcomes and
// returns the manager for chaining.
func (m *Manager) WithObserver(obs observability.Observer) *Manager {
	m.observer = obs
	return m
}

// Integrate classifies the active provider and applies the resulting
// strategy.
//
// Parameters:
//   - proc: The processor to attach under the secondary-provider strategy.
//   - source: The telemetry source name, recorded on the outcome log.
//   - project: The project the session belongs to, recorded on the outcome
//     log.
//
// Returns:
//   - Result: The structured outcome. Integrate never returns an error and
//     never panics: an unexpected failure anywhere in classification or
//     attach is converted into a console-fallback result and routed through
//     the error handler.
//
// Integrate is safe to call concurrently; racing calls each classify
// independently and attach race-safely.
func (m *Manager) Integrate(proc sdktrace.SpanProcessor, source, project string) (result Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic during integration: %v", r)
			m.handler.HandleIntegrationFailure(err, resilience.ErrorContext{
				Operation:    "integrate",
				Component:    "integration",
				Severity:     resilience.SeverityHigh,
				FallbackMode: resilience.FallbackConsoleLogging,
			})
			result = Result{
				Success:  false,
				Strategy: provider.StrategyConsoleFallback,
				Message:  "integration failed, console fallback active",
				Error:    err.Error(),
			}
			m.observeOperation(provider.Info{Strategy: result.Strategy}, result, time.Since(start))
		}
	}()

	info := m.classify()
	result = Result{Strategy: info.Strategy, ProviderInfo: info}

	switch info.Strategy {
	case provider.StrategyMainProvider:
		result.Success = true
		result.Message = "provider is a replaceable placeholder; caller owns creating the main provider"

	case provider.StrategySecondaryProvider:
		result.Success = m.integrator.Attach(info.Handle, proc)
		if result.Success {
			result.Message = "enrichment processor attached to existing provider"
		} else {
			result.Message = "existing provider rejected the enrichment processor"
		}

	default:
		// An unclassifiable provider is a detected condition, not an error:
		// degrading to local logging is itself a successful integration.
		result.Success = true
		result.Message = "unknown provider, console fallback active"
	}

	m.logger.Info("integration completed", nil, map[string]interface{}{
		"strategy": string(info.Strategy),
		"provider": info.TypeName,
		"success":  result.Success,
		"source":   source,
		"project":  project,
	})
	m.observeOperation(info, result, time.Since(start))
	return result
}

// observeOperation notifies the observer about an integration outcome if one
// is set.
func (m *Manager) observeOperation(info provider.Info, result Result, duration time.Duration) {
	if m == nil || m.observer == nil {
		return
	}

	var err error
	if result.Error != "" {
		err = fmt.Errorf("%s", result.Error)
	}

	m.observer.ObserveOperation(observability.OperationContext{
		Component:   "integration",
		Operation:   "integrate",
		Resource:    info.TypeName,
		SubResource: string(result.Strategy),
		Duration:    duration,
		Error:       err,
		Metadata: map[string]interface{}{
			"success": result.Success,
		},
	})
}

// Cleanup releases every processor the manager's integrator attached.
// Idempotent; safe to call on shutdown paths that may run twice.
func (m *Manager) Cleanup(ctx context.Context) {
	m.integrator.Cleanup(ctx)
}
