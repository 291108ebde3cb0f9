// Package integration attaches the enrichment pipeline to whatever tracer
// provider the host process runs.
//
// The package has three pieces:
//
//   - SpanProcessor / WrapProcessor: the adapter that presents an
//     enrichment.Processor as an OpenTelemetry sdktrace.SpanProcessor.
//   - Integrator: attaches processors to a processor-capable provider and
//     tracks them for cleanup. Incompatibility is an expected condition
//     reported as false, never an error.
//   - Manager: the classify → integrate → report orchestration. It returns
//     a structured Result and never raises: unexpected failures become
//     console-fallback results routed through the resilience handler.
//
// # Strategy handling
//
// The manager applies the strategy selected by the provider package:
//
//	main_provider       the caller creates a fresh provider (the manager
//	                    only reports the decision — the process-global
//	                    provider swap stays at one call site, under the
//	                    caller's lock)
//	secondary_provider  the integrator attaches the processor to the
//	                    existing provider
//	console_fallback    reported as success; telemetry degrades to local
//	                    logging
//
// # Usage
//
//	integrator := integration.NewIntegrator(log)
//	manager := integration.NewManager(integrator, handler, log)
//
//	result := manager.Integrate(integration.WrapProcessor(proc), "my-app", "my-project")
//	if result.Strategy == provider.StrategyMainProvider {
//	    // install your own provider, then register the processor on it
//	}
//
// Integrate may be called concurrently by threads racing to initialize
// tracing; classification is pure and attaches are race-safe.
package integration
