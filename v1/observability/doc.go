// Package observability defines the shared observer contract used by the
// hivetrace packages to report their own operations.
//
// Every package in this library accepts an optional Observer through a
// WithObserver chaining setter. When set, the package reports each significant
// operation (a provider classification, a processor attach, a span enrichment,
// a recovery attempt) as an OperationContext. The metrics package ships a
// ready-made Observer that turns these reports into Prometheus series, but any
// implementation can be plugged in.
//
// Observers are always optional: a nil observer disables reporting without any
// behavioural change in the observed package.
//
// Example:
//
//	integrator := integration.NewIntegrator(log).WithObserver(metricsObserver)
package observability
