package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLog captures log calls for assertions.
type recordingLog struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingLog) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingLog) Debug(msg string, err error, fields ...map[string]interface{}) { r.record(msg) }
func (r *recordingLog) Info(msg string, err error, fields ...map[string]interface{})  { r.record(msg) }
func (r *recordingLog) Warn(msg string, err error, fields ...map[string]interface{})  { r.record(msg) }
func (r *recordingLog) Error(msg string, err error, fields ...map[string]interface{}) { r.record(msg) }
func (r *recordingLog) Fatal(msg string, err error, fields ...map[string]interface{}) { r.record(msg) }
func (r *recordingLog) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	r.record(msg)
}
func (r *recordingLog) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	r.record(msg)
}
func (r *recordingLog) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	r.record(msg)
}
func (r *recordingLog) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	r.record(msg)
}

func newTestHandler(t *testing.T, cfg Config) (*Handler, *recordingLog) {
	t.Helper()
	log := &recordingLog{}
	h := NewHandler(cfg, log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Shutdown(ctx)
	})
	return h, log
}

func TestHandleIntegrationFailure_PartialIntegration(t *testing.T) {
	h, _ := newTestHandler(t, Config{})

	directive := h.HandleIntegrationFailure(errors.New("exporter unreachable"), ErrorContext{
		Operation:    "export",
		Component:    "integration",
		Severity:     SeverityMedium,
		FallbackMode: FallbackPartialIntegration,
	})

	require.Equal(t, FallbackPartialIntegration, directive.Mode)
	assert.Contains(t, directive.DisabledFeatures, FeatureExport)
	assert.NotEmpty(t, directive.EnabledFeatures)
	assert.True(t, h.FallbackActive())
	assert.False(t, directive.RetryScheduled, "medium severity must not schedule a retry")
}

func TestHandleIntegrationFailure_ConsoleLoggingReturnsLogger(t *testing.T) {
	h, log := newTestHandler(t, Config{})

	directive := h.HandleIntegrationFailure(errors.New("boom"), ErrorContext{
		Operation:    "integrate",
		Component:    "integration",
		Severity:     SeverityLow,
		FallbackMode: FallbackConsoleLogging,
	})

	require.NotNil(t, directive.Logger)
	directive.Logger.Warn("degraded", nil, nil)

	log.mu.Lock()
	defer log.mu.Unlock()
	assert.Contains(t, log.messages, "degraded")
}

func TestHandleIntegrationFailure_NoOpDisablesOperation(t *testing.T) {
	h, _ := newTestHandler(t, Config{})

	directive := h.HandleIntegrationFailure(errors.New("boom"), ErrorContext{
		Operation:    "integrate",
		Component:    "integration",
		Severity:     SeverityLow,
		FallbackMode: FallbackNoOp,
	})

	assert.Equal(t, "disabled", directive.Operation)
	assert.True(t, h.FallbackActive())
}

func TestHandleIntegrationFailure_HighSeveritySchedulesRetry(t *testing.T) {
	h, _ := newTestHandler(t, Config{BaseDelay: time.Millisecond})
	h.WithRecovery(func(ctx context.Context) error { return nil })

	directive := h.HandleIntegrationFailure(errors.New("boom"), ErrorContext{
		Operation:    "integrate",
		Component:    "integration",
		Severity:     SeverityHigh,
		FallbackMode: FallbackGracefulDegradation,
	})
	require.True(t, directive.RetryScheduled)

	// The background worker clears the fallback once recovery succeeds.
	require.Eventually(t, func() bool { return !h.FallbackActive() },
		2*time.Second, 5*time.Millisecond, "background recovery should clear the fallback")
}

func TestPerformHealthCheck_RateLimited(t *testing.T) {
	h, _ := newTestHandler(t, Config{HealthCheckInterval: time.Hour})
	h.WithRecovery(func(ctx context.Context) error { return errors.New("still broken") })

	h.HandleIntegrationFailure(errors.New("boom"), ErrorContext{
		Severity:     SeverityLow,
		FallbackMode: FallbackGracefulDegradation,
	})

	first := h.PerformHealthCheck()
	require.Equal(t, HealthStatusChecked, first.Status)
	assert.True(t, first.FallbackActive)
	assert.True(t, first.RecoveryAttempted)
	assert.False(t, first.RecoverySuccessful)
	assert.True(t, h.FallbackActive(), "failed recovery must leave the fallback active")

	second := h.PerformHealthCheck()
	assert.Equal(t, HealthStatusSkipped, second.Status)
	assert.False(t, second.RecoveryAttempted)
}

func TestPerformHealthCheck_ResetForcesRecovery(t *testing.T) {
	h, _ := newTestHandler(t, Config{HealthCheckInterval: time.Hour})
	h.WithRecovery(func(ctx context.Context) error { return nil })

	h.HandleIntegrationFailure(errors.New("boom"), ErrorContext{
		Severity:     SeverityLow,
		FallbackMode: FallbackGracefulDegradation,
	})

	// Burn the rate-limit window, then force the next check through.
	recoveryOff := errors.New("off")
	h.recovery = func(ctx context.Context) error { return recoveryOff }
	_ = h.PerformHealthCheck()

	h.recovery = func(ctx context.Context) error { return nil }
	h.ResetHealthCheck()

	result := h.PerformHealthCheck()
	require.Equal(t, HealthStatusChecked, result.Status)
	assert.True(t, result.RecoveryAttempted)
	assert.True(t, result.RecoverySuccessful)
	assert.False(t, h.FallbackActive())
}

func TestPerformHealthCheck_CleanWhenNotInFallback(t *testing.T) {
	h, _ := newTestHandler(t, Config{})

	result := h.PerformHealthCheck()

	require.Equal(t, HealthStatusChecked, result.Status)
	assert.False(t, result.FallbackActive)
	assert.False(t, result.RecoveryAttempted)
	assert.False(t, result.RecoverySuccessful)
}

func TestShutdown_Idempotent(t *testing.T) {
	log := &recordingLog{}
	h := NewHandler(Config{}, log)

	require.NoError(t, h.Shutdown(context.Background()))
	require.NoError(t, h.Shutdown(context.Background()))

	assert.False(t, h.ScheduleBackgroundRetry(ErrorContext{Operation: "late"}),
		"a closed handler must drop new retries")
}

func TestScheduleBackgroundRetry_DroppedAfterShutdown(t *testing.T) {
	var calls atomic.Int32
	h := NewHandler(Config{BaseDelay: time.Millisecond}, &recordingLog{})
	h.WithRecovery(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, h.Shutdown(context.Background()))

	require.False(t, h.ScheduleBackgroundRetry(ErrorContext{Operation: "late"}))
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load(), "no recovery may start once the handler is closed")
}
