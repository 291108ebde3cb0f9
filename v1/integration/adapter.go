package integration

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/honeyhive/hivetrace/v1/enrichment"
	"github.com/honeyhive/hivetrace/v1/observability"
)

// Compile-time check that SpanProcessor implements the SDK interface.
var _ sdktrace.SpanProcessor = (*SpanProcessor)(nil)

// SpanProcessor bridges an enrichment.Processor onto the OpenTelemetry SDK's
// span processor interface so it can be registered on a real provider.
//
// OnStart hands the SDK's read-write span to the enrichment pipeline through
// an adapter. OnEnd only reports the span's duration to the observer: the Go
// SDK seals a span once it ends and records end time and duration natively,
// so there is nothing left to stamp — the enrichment processor's own OnEnd
// handles runtimes whose spans stay writable.
type SpanProcessor struct {
	proc     *enrichment.Processor
	observer observability.Observer
}

// WrapProcessor adapts the enrichment processor for registration on an SDK
// tracer provider.
//
// Example:
//
//	sp := integration.WrapProcessor(proc)
//	sdkProvider.RegisterSpanProcessor(sp)
func WrapProcessor(proc *enrichment.Processor) *SpanProcessor {
	return &SpanProcessor{proc: proc}
}

// WithObserver sets the observer notified about span lifecycle events and
// returns the processor for chaining.
func (sp *SpanProcessor) WithObserver(obs observability.Observer) *SpanProcessor {
	sp.observer = obs
	return sp
}

// OnStart enriches the span via the enrichment pipeline.
func (sp *SpanProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	sp.proc.OnStart(parent, rwSpan{span: s})
}

// OnEnd reports the ended span's duration to the observer.
func (sp *SpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if sp.observer == nil {
		return
	}
	sp.observer.ObserveOperation(observability.OperationContext{
		Component: "integration",
		Operation: "span_end",
		Resource:  s.Name(),
		Duration:  s.EndTime().Sub(s.StartTime()),
	})
}

// Shutdown shuts the enrichment pipeline down.
func (sp *SpanProcessor) Shutdown(ctx context.Context) error {
	return sp.proc.Shutdown(ctx)
}

// ForceFlush flushes the enrichment pipeline (a no-op success; it buffers
// nothing).
func (sp *SpanProcessor) ForceFlush(ctx context.Context) error {
	return sp.proc.ForceFlush(ctx)
}

// rwSpan adapts sdktrace.ReadWriteSpan to the enrichment.Span surface.
type rwSpan struct {
	span sdktrace.ReadWriteSpan
}

func (s rwSpan) Name() string      { return s.span.Name() }
func (s rwSpan) IsRecording() bool { return s.span.IsRecording() }

func (s rwSpan) SetAttribute(key string, value interface{}) {
	s.span.SetAttributes(toKeyValue(key, value))
}

func (s rwSpan) Attribute(key string) (interface{}, bool) {
	for _, kv := range s.span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value.AsInterface(), true
		}
	}
	return nil, false
}

// toKeyValue converts a key and a loosely typed value into an OpenTelemetry
// attribute. Unsupported types are stringified.
func toKeyValue(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case time.Duration:
		return attribute.Int64(key, v.Milliseconds())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
