package provider

import (
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// fakeTracerProvider carries "TracerProvider" in its type name but exposes no
// registrar capability.
type fakeTracerProvider struct {
	noop.TracerProvider
}

// customBackend is a provider the classifier has no signal for.
type customBackend struct {
	noop.TracerProvider
}

func TestClassify_NilHandle(t *testing.T) {
	info := Classify(nil)

	if info.Kind != KindNoOp {
		t.Fatalf("expected kind %q, got %q", KindNoOp, info.Kind)
	}
	if info.Strategy != StrategyMainProvider {
		t.Errorf("expected strategy %q, got %q", StrategyMainProvider, info.Strategy)
	}
	if !info.IsReplaceable {
		t.Errorf("expected nil provider to be replaceable")
	}
	if info.SupportsProcessors {
		t.Errorf("nil provider cannot support processors")
	}
	if info.TypeName != "" {
		t.Errorf("expected empty type name, got %q", info.TypeName)
	}
}

func TestClassify_NoOpProvider(t *testing.T) {
	info := Classify(noop.NewTracerProvider())

	if info.Kind != KindNoOp {
		t.Fatalf("expected kind %q, got %q (type name %q)", KindNoOp, info.Kind, info.TypeName)
	}
	if info.Strategy != StrategyMainProvider {
		t.Errorf("expected strategy %q, got %q", StrategyMainProvider, info.Strategy)
	}
	if !info.IsReplaceable {
		t.Errorf("expected no-op provider to be replaceable")
	}
}

func TestClassify_SDKProvider(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(t.Context()) }()

	info := Classify(tp)

	if info.Kind != KindReal {
		t.Fatalf("expected kind %q, got %q", KindReal, info.Kind)
	}
	if info.Strategy != StrategySecondaryProvider {
		t.Errorf("expected strategy %q, got %q", StrategySecondaryProvider, info.Strategy)
	}
	if !info.SupportsProcessors {
		t.Errorf("SDK provider must report processor support")
	}
	if info.IsReplaceable {
		t.Errorf("a real provider must never be reported as replaceable")
	}
}

func TestClassify_TracerProviderByName(t *testing.T) {
	// No registrar capability, but the type name says TracerProvider without
	// any placeholder or custom marker. Embedding hides the noop name.
	info := Classify(&fakeTracerProvider{})

	if info.Kind != KindReal {
		t.Fatalf("expected kind %q, got %q (type name %q)", KindReal, info.Kind, info.TypeName)
	}
	if info.Strategy != StrategySecondaryProvider {
		t.Errorf("expected strategy %q, got %q", StrategySecondaryProvider, info.Strategy)
	}
	if info.SupportsProcessors {
		t.Errorf("fake provider must not report processor support")
	}
}

func TestClassify_CustomProvider(t *testing.T) {
	info := Classify(&customBackend{})

	if info.Kind != KindCustom {
		t.Fatalf("expected kind %q, got %q (type name %q)", KindCustom, info.Kind, info.TypeName)
	}
	if info.Strategy != StrategyConsoleFallback {
		t.Errorf("expected strategy %q, got %q", StrategyConsoleFallback, info.Strategy)
	}
	if info.IsReplaceable {
		t.Errorf("unknown providers must not be replaceable")
	}
}

func TestClassifyGlobal_DefaultIsProxy(t *testing.T) {
	// The untouched OpenTelemetry global is a delegating placeholder.
	info := ClassifyGlobal()

	if info.Kind != KindProxy && info.Kind != KindNoOp {
		t.Fatalf("expected placeholder kind for untouched global, got %q (type name %q)", info.Kind, info.TypeName)
	}
	if info.Strategy != StrategyMainProvider {
		t.Errorf("expected strategy %q, got %q", StrategyMainProvider, info.Strategy)
	}
	if !info.IsReplaceable {
		t.Errorf("untouched global must be replaceable")
	}
}

func TestClassify_FreshInfoPerCall(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(t.Context()) }()

	first := Classify(tp)
	second := Classify(tp)

	if first != second {
		t.Fatalf("classification of the same handle must be stable: %+v vs %+v", first, second)
	}
}
