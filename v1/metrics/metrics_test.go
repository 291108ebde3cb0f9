package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/honeyhive/hivetrace/v1/enrichment"
	"github.com/honeyhive/hivetrace/v1/observability"
	"github.com/honeyhive/hivetrace/v1/resilience"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return NewMetrics(Config{
		Address:     ":0",
		ServiceName: "metrics-test",
	})
}

func TestPipelineCounters(t *testing.T) {
	m := newTestMetrics(t)

	m.IncrementIntegrationAttempts("secondary_provider", "success")
	m.IncrementIntegrationAttempts("secondary_provider", "success")
	m.IncrementIntegrationAttempts("console_fallback", "failure")
	m.IncrementSpansEnriched("computed")
	m.IncrementRecoveryAttempts("failure")

	got := testutil.ToFloat64(m.integrationAttempts.WithLabelValues("secondary_provider", "success"))
	if got != 2 {
		t.Fatalf("integration attempts = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.spansEnriched.WithLabelValues("computed")); got != 1 {
		t.Fatalf("spans enriched = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.recoveryAttempts.WithLabelValues("failure")); got != 1 {
		t.Fatalf("recovery attempts = %v, want 1", got)
	}
}

func TestGauges(t *testing.T) {
	m := newTestMetrics(t)

	m.SetCacheSize(42)
	if got := testutil.ToFloat64(m.cacheSizeGauge); got != 42 {
		t.Fatalf("cache size gauge = %v, want 42", got)
	}

	m.SetFallbackActive(true)
	if got := testutil.ToFloat64(m.fallbackGauge); got != 1 {
		t.Fatalf("fallback gauge = %v, want 1", got)
	}

	m.SetFallbackActive(false)
	if got := testutil.ToFloat64(m.fallbackGauge); got != 0 {
		t.Fatalf("fallback gauge = %v, want 0", got)
	}
}

func TestObserveOperation_EnrichmentReport(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveOperation(observability.OperationContext{
		Component:   "enrichment",
		Operation:   "span_start",
		SubResource: "cache_hit",
		Duration:    2 * time.Millisecond,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "enrichment",
		Operation: "span_start",
		Error:     errors.New("boom"),
	})

	if got := testutil.ToFloat64(m.spansEnriched.WithLabelValues("cache_hit")); got != 1 {
		t.Fatalf("cache_hit outcome = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.spansEnriched.WithLabelValues("error")); got != 1 {
		t.Fatalf("error outcome = %v, want 1", got)
	}
}

func TestObserveOperation_IntegrationReport(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveOperation(observability.OperationContext{
		Component:   "integration",
		Operation:   "integrate",
		SubResource: "main_provider",
		Metadata:    map[string]interface{}{"success": true},
	})
	m.ObserveOperation(observability.OperationContext{
		Component:   "integration",
		Operation:   "integrate",
		SubResource: "secondary_provider",
		Metadata:    map[string]interface{}{"success": false},
	})

	if got := testutil.ToFloat64(m.integrationAttempts.WithLabelValues("main_provider", "success")); got != 1 {
		t.Fatalf("main_provider success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.integrationAttempts.WithLabelValues("secondary_provider", "failure")); got != 1 {
		t.Fatalf("secondary_provider failure = %v, want 1", got)
	}
}

func TestObserveOperation_CacheEvictions(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveOperation(observability.OperationContext{
		Component: "enrichment",
		Operation: "cache_evict",
		Size:      3,
	})

	if got := testutil.ToFloat64(m.cacheEvictions); got != 3 {
		t.Fatalf("cache evictions = %v, want 3", got)
	}
}

func TestObserveOperation_MetadataGauges(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveOperation(observability.OperationContext{
		Component: "enrichment",
		Operation: "shutdown",
		Metadata: map[string]interface{}{
			"cache_size":      7,
			"fallback_active": true,
		},
	})

	if got := testutil.ToFloat64(m.cacheSizeGauge); got != 7 {
		t.Fatalf("cache size gauge = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.fallbackGauge); got != 1 {
		t.Fatalf("fallback gauge = %v, want 1", got)
	}
}

func TestCreateFactoriesRegister(t *testing.T) {
	m := newTestMetrics(t)

	counter := m.CreateCounter("custom_total", "help", []string{"kind"})
	counter.WithLabelValues("a").Inc()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, fam := range families {
		if fam.GetName() == "custom_total" {
			found = true
		}
	}
	if !found {
		t.Fatal("custom_total not registered")
	}
}

// nopLog satisfies logger.Log and discards everything.
type nopLog struct{}

func (nopLog) Debug(string, error, ...map[string]interface{}) {}
func (nopLog) Info(string, error, ...map[string]interface{})  {}
func (nopLog) Warn(string, error, ...map[string]interface{})  {}
func (nopLog) Error(string, error, ...map[string]interface{}) {}
func (nopLog) Fatal(string, error, ...map[string]interface{}) {}
func (nopLog) DebugWithContext(context.Context, string, error, ...map[string]interface{}) {}
func (nopLog) InfoWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLog) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLog) ErrorWithContext(context.Context, string, error, ...map[string]interface{}) {}

// gaugeSpan is a minimal in-memory span for driving the enrichment pipeline.
type gaugeSpan struct {
	name  string
	attrs map[string]interface{}
}

func (s *gaugeSpan) Name() string      { return s.name }
func (s *gaugeSpan) IsRecording() bool { return true }

func (s *gaugeSpan) SetAttribute(key string, value interface{}) { s.attrs[key] = value }

func (s *gaugeSpan) Attribute(key string) (interface{}, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

func TestHandlerDrivesFallbackGauge(t *testing.T) {
	m := newTestMetrics(t)

	h := resilience.NewHandler(resilience.Config{HealthCheckInterval: time.Hour}, nopLog{}).
		WithRecovery(func(ctx context.Context) error { return nil }).
		WithObserver(m)
	defer func() { _ = h.Shutdown(context.Background()) }()

	h.HandleIntegrationFailure(errors.New("exporter down"), resilience.ErrorContext{
		Operation:    "export",
		Component:    "tracer",
		Severity:     resilience.SeverityLow,
		FallbackMode: resilience.FallbackGracefulDegradation,
	})

	if !h.FallbackActive() {
		t.Fatal("handler must be in fallback")
	}
	if got := testutil.ToFloat64(m.fallbackGauge); got != 1 {
		t.Fatalf("fallback gauge after failure = %v, want 1", got)
	}

	result := h.PerformHealthCheck()
	if !result.RecoverySuccessful {
		t.Fatal("recovery must succeed")
	}
	if got := testutil.ToFloat64(m.fallbackGauge); got != 0 {
		t.Fatalf("fallback gauge after recovery = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.recoveryAttempts.WithLabelValues("success")); got != 1 {
		t.Fatalf("recovery attempts = %v, want 1", got)
	}
}

func TestProcessorDrivesCacheSizeGauge(t *testing.T) {
	m := newTestMetrics(t)

	p := enrichment.NewProcessor(enrichment.Config{}, nopLog{}).WithObserver(m)

	ctx, err := enrichment.ContextWithSession(context.Background(), "session-1", "demo-project", "dev", "")
	if err != nil {
		t.Fatalf("context with session: %v", err)
	}

	p.OnStart(ctx, &gaugeSpan{name: "openai.chat", attrs: map[string]interface{}{}})

	if got := testutil.ToFloat64(m.cacheSizeGauge); got != 1 {
		t.Fatalf("cache size gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.spansEnriched.WithLabelValues("computed")); got != 1 {
		t.Fatalf("computed outcome = %v, want 1", got)
	}

	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := testutil.ToFloat64(m.cacheSizeGauge); got != 0 {
		t.Fatalf("cache size gauge after shutdown = %v, want 0", got)
	}
}
