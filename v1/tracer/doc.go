// Package tracer provides the session-scoped tracing client.
//
// The client is the entry point of the library: it generates or adopts a
// session identity, classifies the process-global OpenTelemetry tracer
// provider, and integrates the span enrichment pipeline using the strategy
// the classification selects. Applications that already run an OpenTelemetry
// SDK keep their provider untouched; the client attaches its processor to
// it. Applications without one get a provider created and installed by the
// client, optionally exporting via OTLP HTTP.
//
// # Session identity
//
// Every client carries a session id (a random UUID unless pinned), a
// project and a source. Spans started from a SessionContext carry these as
// baggage and are enriched with the corresponding attributes. Spans created
// by third-party instrumentation without baggage can still be associated
// with the active client's session through the enrichment package's
// recovery heuristic.
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "checkout-api"})
//
//	tracerClient := tracer.NewClient(tracer.Config{
//	    Project:     "checkout",
//	    Source:      "production",
//	    ServiceName: "checkout-api",
//	}, log, nil)
//	defer tracerClient.Shutdown(context.Background())
//
//	ctx := tracerClient.SessionContext(context.Background())
//	ctx, span := tracerClient.StartSpan(ctx, "process-request")
//	defer span.End()
//
// # FX Usage
//
// Include FXModule together with the logger and metrics modules; the tracer
// is then available in the dependency graph and shut down with the
// application.
package tracer
