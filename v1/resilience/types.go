package resilience

import (
	"github.com/honeyhive/hivetrace/v1/logger"
)

// Severity grades how badly a failed operation hurts the integration.
// Severities are ordered; High and above trigger background recovery in
// addition to the immediate fallback.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase name of the severity for logs and payloads.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// FallbackMode names the degraded behaviour adopted when an operation fails.
type FallbackMode string

const (
	// FallbackGracefulDegradation keeps the integration running with the
	// failed capability silently absent.
	FallbackGracefulDegradation FallbackMode = "graceful_degradation"

	// FallbackConsoleLogging replaces the tracing export path with local
	// structured logging.
	FallbackConsoleLogging FallbackMode = "console_logging"

	// FallbackPartialIntegration keeps a subset of features alive; the
	// directive enumerates what is disabled and what still works.
	FallbackPartialIntegration FallbackMode = "partial_integration"

	// FallbackNoOp turns the integration inert. The host application keeps
	// running unaffected.
	FallbackNoOp FallbackMode = "noop"
)

// ErrorContext describes a failing operation at its call site. Values are
// constructed where the failure happens and never mutated afterwards.
type ErrorContext struct {
	// Operation is the operation that failed, e.g. "attach_processor".
	Operation string `json:"operation"`

	// Component is the package or subsystem reporting the failure.
	Component string `json:"component"`

	// Severity grades the failure.
	Severity Severity `json:"severity"`

	// FallbackMode is the degradation the caller wants on failure.
	FallbackMode FallbackMode `json:"fallback_mode"`
}

// Feature names used in partial-integration directives.
const (
	FeatureExport       = "honeyhive_export"
	FeatureLocalLogging = "local_logging"
)

// Directive is the structured outcome of handling an integration failure.
// Callers must consult it rather than assume a fixed capability set: under
// partial integration only the enabled features remain available, and under
// console logging the returned Logger is the replacement output path.
type Directive struct {
	// Mode is the fallback mode now in effect.
	Mode FallbackMode `json:"fallback_mode"`

	// Operation is "degraded" for most modes and "disabled" under
	// FallbackNoOp.
	Operation string `json:"operation"`

	// DisabledFeatures lists capabilities that are off under
	// FallbackPartialIntegration.
	DisabledFeatures []string `json:"disabled_features,omitempty"`

	// EnabledFeatures lists capabilities still working under
	// FallbackPartialIntegration.
	EnabledFeatures []string `json:"enabled_features,omitempty"`

	// Logger is the local sink callers should use instead of the tracing
	// export path. Set for FallbackConsoleLogging.
	Logger logger.Log `json:"-"`

	// RetryScheduled reports whether a background recovery was queued for
	// this failure.
	RetryScheduled bool `json:"retry_scheduled"`
}

// HealthCheckResult reports the outcome of one health check.
type HealthCheckResult struct {
	// Status is "skipped" when the rate limit suppressed the check and
	// "checked" otherwise.
	Status string `json:"status"`

	// FallbackActive reports whether the handler was in fallback when the
	// check ran.
	FallbackActive bool `json:"fallback_active"`

	// RecoveryAttempted reports whether a recovery was tried.
	RecoveryAttempted bool `json:"recovery_attempted"`

	// RecoverySuccessful reports whether the recovery cleared the fallback.
	RecoverySuccessful bool `json:"recovery_successful"`
}

// Health check status values.
const (
	HealthStatusSkipped = "skipped"
	HealthStatusChecked = "checked"
)
