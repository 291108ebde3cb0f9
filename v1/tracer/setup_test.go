package tracer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/honeyhive/hivetrace/v1/provider"
)

type nopLog struct{}

func (nopLog) Debug(string, error, ...map[string]interface{})                             {}
func (nopLog) Info(string, error, ...map[string]interface{})                              {}
func (nopLog) Warn(string, error, ...map[string]interface{})                              {}
func (nopLog) Error(string, error, ...map[string]interface{})                             {}
func (nopLog) Fatal(string, error, ...map[string]interface{})                             {}
func (nopLog) DebugWithContext(context.Context, string, error, ...map[string]interface{}) {}
func (nopLog) InfoWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLog) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLog) ErrorWithContext(context.Context, string, error, ...map[string]interface{}) {}

// resetGlobalProvider installs a replaceable no-op provider so each test
// starts from the same classification and leaves one behind for the next.
func resetGlobalProvider(t *testing.T) {
	t.Helper()
	otel.SetTracerProvider(noop.NewTracerProvider())
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
}

func shutdownClient(t *testing.T, tr *Tracer) {
	t.Helper()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tr.Shutdown(ctx)
	})
}

func TestNewClient_CreatesMainProvider(t *testing.T) {
	resetGlobalProvider(t)

	tr := NewClient(Config{Project: "P", ServiceName: "svc"}, nopLog{}, nil)
	require.NotNil(t, tr)
	shutdownClient(t, tr)

	assert.True(t, tr.OwnsProvider())
	assert.Equal(t, provider.StrategyMainProvider, tr.Result().Strategy)
	assert.True(t, tr.Result().Success)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "global provider should be the SDK provider the client created")
}

func TestNewClient_AttachesToExistingProvider(t *testing.T) {
	resetGlobalProvider(t)

	existing := sdktrace.NewTracerProvider()
	defer func() { _ = existing.Shutdown(context.Background()) }()
	otel.SetTracerProvider(existing)

	tr := NewClient(Config{Project: "P", ServiceName: "svc"}, nopLog{}, nil)
	require.NotNil(t, tr)
	shutdownClient(t, tr)

	assert.False(t, tr.OwnsProvider())
	assert.Equal(t, provider.StrategySecondaryProvider, tr.Result().Strategy)
	assert.True(t, tr.Result().Success)
	assert.Same(t, existing, otel.GetTracerProvider(), "existing provider must not be replaced")
}

func TestNewClient_SessionDefaults(t *testing.T) {
	resetGlobalProvider(t)

	tr := NewClient(Config{Project: "P", ServiceName: "svc"}, nopLog{}, nil)
	require.NotNil(t, tr)
	shutdownClient(t, tr)

	assert.NotEmpty(t, tr.SessionID(), "session id should be generated")
	assert.Equal(t, DefaultSource, tr.Source())
	assert.Equal(t, "svc", tr.SessionName(), "session name defaults to the service name")
	assert.Equal(t, "P", tr.Project())
}

func TestNewClient_PinnedSessionID(t *testing.T) {
	resetGlobalProvider(t)

	tr := NewClient(Config{Project: "P", SessionID: "fixed", Source: "ci"}, nopLog{}, nil)
	require.NotNil(t, tr)
	shutdownClient(t, tr)

	assert.Equal(t, "fixed", tr.SessionID())
	assert.Equal(t, "ci", tr.Source())
}

func TestActiveInstance_TracksLifecycle(t *testing.T) {
	resetGlobalProvider(t)

	tr := NewClient(Config{Project: "P"}, nopLog{}, nil)
	require.NotNil(t, tr)

	assert.Same(t, tr, ActiveInstance())
	require.NotNil(t, ActiveSession())
	assert.Equal(t, tr.SessionID(), ActiveSession().SessionID())

	require.NoError(t, tr.Shutdown(context.Background()))
	assert.Nil(t, ActiveInstance())
	assert.Nil(t, ActiveSession())
}

func TestActiveInstance_NewerClientStaysActive(t *testing.T) {
	resetGlobalProvider(t)

	first := NewClient(Config{Project: "P"}, nopLog{}, nil)
	require.NotNil(t, first)
	second := NewClient(Config{Project: "P"}, nopLog{}, nil)
	require.NotNil(t, second)
	shutdownClient(t, second)

	require.NoError(t, first.Shutdown(context.Background()))
	assert.Same(t, second, ActiveInstance(), "shutting down an older client must not unregister the newer one")
}

func TestStartSpan_EnrichedThroughOwnedProvider(t *testing.T) {
	resetGlobalProvider(t)

	tr := NewClient(Config{Project: "P", Source: "api", ServiceName: "svc"}, nopLog{}, nil)
	require.NotNil(t, tr)
	shutdownClient(t, tr)

	exporter := tracetest.NewInMemoryExporter()
	tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok)
	tp.RegisterSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter))

	ctx := tr.SessionContext(context.Background())
	_, span := tr.StartSpan(ctx, "handle-request")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := make(map[string]interface{})
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}

	assert.Equal(t, tr.SessionID(), attrs["honeyhive.session_id"])
	assert.Equal(t, "P", attrs["honeyhive.project"])
	assert.Equal(t, "api", attrs["honeyhive.source"])
	assert.Contains(t, attrs, "honeyhive.start_time")
}

func TestShutdown_Idempotent(t *testing.T) {
	resetGlobalProvider(t)

	tr := NewClient(Config{Project: "P"}, nopLog{}, nil)
	require.NotNil(t, tr)

	require.NoError(t, tr.Shutdown(context.Background()))
	require.NoError(t, tr.Shutdown(context.Background()))
}
