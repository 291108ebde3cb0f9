// Package enrichment computes session and experiment attributes for every
// span the host tracing runtime produces.
//
// The processor is the hot-path component of the hivetrace library: the
// runtime calls OnStart and OnEnd synchronously for every traced operation,
// from many goroutines at once. Everything here is built around two rules —
// never block materially, and never let a failure escape into the host
// application.
//
// # Attribute sources, in order
//
//  1. The context attribute cache. Spans sharing a context identity reuse
//     the set computed for the first one and skip all lookups below.
//  2. Explicit baggage: session_id, project, source, parent_id.
//  3. The recovery heuristic: a span named like known LLM instrumentation
//     (openai, chat, completion, gpt) that carries no baggage borrows the
//     active tracer instance's session identity. Baggage always wins when
//     present.
//  4. Legacy association properties from the context, staged as
//     traceloop.association.properties.<key> on every span.
//  5. Experiment fields from the processor config, independent of session.
//
// Session fields are written under both the honeyhive.* and the legacy
// traceloop.association.properties.* namespaces for dual backend
// compatibility. A session without a project is skipped entirely — it could
// not be associated with anything.
//
// # Usage
//
// The processor operates on the package's own small Span interface; the
// integration package adapts the OpenTelemetry SDK onto it and attaches the
// result to a provider:
//
//	proc := enrichment.NewProcessor(enrichment.Config{
//	    ExperimentID: "exp-42",
//	}, log).WithSessionLookup(tracer.ActiveSession)
//
//	manager.Integrate(integration.WrapProcessor(proc), "my-app", "my-project")
//
// Host code associates spans with a session via ContextWithSession (baggage)
// or WithAssociationProperties (legacy map).
package enrichment
