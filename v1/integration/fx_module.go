package integration

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the integration package.
// It provides the integrator and manager to the dependency injection
// container and registers cleanup of attached processors on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    resilience.FXModule,
//	    integration.FXModule,
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A logger.Log instance must be available in the dependency injection container
// - A *resilience.Handler instance must be available in the dependency injection container
var FXModule = fx.Module("integration",
	fx.Provide(
		NewIntegrator,
		NewManager,
	),
	fx.Invoke(RegisterIntegrationLifecycle),
)

// RegisterIntegrationLifecycle registers the shutdown hook for the manager.
// The OnStop hook shuts down every processor the integrator attached so the
// host provider is left clean.
//
// This function is automatically invoked by the FXModule and normally does
// not need to be called directly.
func RegisterIntegrationLifecycle(lc fx.Lifecycle, manager *Manager) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			manager.Cleanup(ctx)
			return nil
		},
	})
}
