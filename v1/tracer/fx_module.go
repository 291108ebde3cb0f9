package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides an Uber FX module that configures session-scoped tracing
// for your application. This module registers the tracer client with the
// dependency injection system and sets up proper lifecycle management to
// ensure graceful startup and shutdown.
//
// The module:
//  1. Provides the tracer client through the NewClient constructor
//  2. Registers shutdown hooks that detach processors, flush the owned
//     provider and stop the background recovery pool on termination
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{
//	            Project:     "checkout",
//	            ServiceName: "checkout-api",
//	        }
//	    }),
//	    // other modules...
//	)
//	app.Run()
//
// Dependencies required by this module:
// - A tracer.Config instance must be available in the dependency injection container
// - A logger.Log instance for structured logging
// - An observability.Observer, e.g. the one provided by metrics.FXModule
var FXModule = fx.Module("tracer",
	fx.Provide(NewClient),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the FX lifecycle.
// This function ensures that tracer resources are properly released when the application
// terminates, preventing resource leaks and ensuring traces are flushed to exporters.
//
// Parameters:
//   - lc: The FX lifecycle to register hooks with
//   - tracer: The tracer instance to manage lifecycle for
//
// This function is automatically invoked by the FXModule and normally doesn't need
// to be called directly.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer == nil {
				return nil
			}
			return tracer.Shutdown(ctx)
		},
	})
}
