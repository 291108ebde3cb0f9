// Package resilience keeps telemetry failures away from the host application.
//
// Nothing in the hivetrace library is allowed to crash or raise into the
// process it instruments. This package supplies the three pieces that make
// that guarantee hold:
//
//   - ExecuteWithRetry: a generic retry-with-exponential-backoff executor.
//   - The severity / fallback-mode value types (ErrorContext, Directive,
//     HealthCheckResult) describing a failure and the degradation chosen
//     for it.
//   - Handler: the per-process owner of the fallback state. It converts
//     failures into Directives, schedules supervised background recovery
//     for severe ones, and clears the fallback again through rate-limited
//     health checks.
//
// # Fallback modes
//
// A failure's ErrorContext names the degradation wanted:
//
//	graceful_degradation  keep running, capability silently absent
//	console_logging       log locally instead of exporting spans
//	partial_integration   directive enumerates disabled/enabled features
//	noop                  integration inert, host unaffected
//
// The returned Directive is a plain JSON-serializable record intended for
// logging and telemetry-about-telemetry, not for wire transport.
//
// # Recovery
//
// High and critical failures queue a recovery on a bounded worker group
// (golang.org/x/sync/errgroup with a concurrency limit). Workers are joined
// on Shutdown, so recovery can neither leak goroutines under repeated
// failures nor outlive the process. Health checks are rate limited by
// Config.HealthCheckInterval; ResetHealthCheck forces the next one through.
//
// # Usage
//
//	handler := resilience.NewHandler(resilience.Config{}, log)
//	defer handler.Shutdown(context.Background())
//
//	directive := handler.HandleIntegrationFailure(err, resilience.ErrorContext{
//	    Operation:    "attach_processor",
//	    Component:    "integration",
//	    Severity:     resilience.SeverityHigh,
//	    FallbackMode: resilience.FallbackConsoleLogging,
//	})
//	if directive.Logger != nil {
//	    directive.Logger.Warn("telemetry degraded to console", nil, nil)
//	}
package resilience
