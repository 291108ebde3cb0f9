package resilience

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the resilience package.
// It provides the error handler to the dependency injection container and
// registers its lifecycle so background recovery workers are joined on
// application shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    resilience.FXModule,
//	    fx.Provide(func() resilience.Config { return resilience.Config{} }),
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A resilience.Config instance must be available in the dependency injection container
// - A logger.Log instance must be available in the dependency injection container
var FXModule = fx.Module("resilience",
	fx.Provide(
		NewHandler,
	),
	fx.Invoke(RegisterHandlerLifecycle),
)

// RegisterHandlerLifecycle registers the shutdown hook for the error handler.
// The OnStop hook cancels in-flight recovery work and waits for the worker
// group to exit, so no recovery goroutine outlives the application.
//
// This function is automatically invoked by the FXModule and normally does
// not need to be called directly.
func RegisterHandlerLifecycle(lc fx.Lifecycle, handler *Handler) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return handler.Shutdown(ctx)
		},
	})
}
