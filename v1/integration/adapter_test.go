package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/honeyhive/hivetrace/v1/enrichment"
)

func TestWrapProcessor_EnrichesRealSDKSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	proc := enrichment.NewProcessor(enrichment.Config{}, nopLog{})
	tp.RegisterSpanProcessor(WrapProcessor(proc))

	ctx, err := enrichment.ContextWithSession(context.Background(), "S", "P", "api", "")
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "handle-request")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := make(map[string]interface{})
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}

	assert.Equal(t, "S", attrs["honeyhive.session_id"])
	assert.Equal(t, "S", attrs["traceloop.association.properties.session_id"])
	assert.Equal(t, "P", attrs["honeyhive.project"])
	assert.Equal(t, "api", attrs["honeyhive.source"])
}

func TestWrapProcessor_LifecycleDelegates(t *testing.T) {
	proc := enrichment.NewProcessor(enrichment.Config{}, nopLog{})
	sp := WrapProcessor(proc)

	assert.NoError(t, sp.ForceFlush(context.Background()))
	assert.NoError(t, sp.Shutdown(context.Background()))
}

func TestToKeyValue_Conversions(t *testing.T) {
	cases := []struct {
		value    interface{}
		expected interface{}
	}{
		{"s", "s"},
		{true, true},
		{int(7), int64(7)},
		{int64(8), int64(8)},
		{3.5, 3.5},
		{struct{ X int }{1}, "{1}"},
	}

	for _, tc := range cases {
		kv := toKeyValue("k", tc.value)
		assert.Equal(t, tc.expected, kv.Value.AsInterface(), "value %v", tc.value)
	}
}
