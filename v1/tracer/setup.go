package tracer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/honeyhive/hivetrace/v1/enrichment"
	"github.com/honeyhive/hivetrace/v1/integration"
	"github.com/honeyhive/hivetrace/v1/logger"
	"github.com/honeyhive/hivetrace/v1/observability"
	"github.com/honeyhive/hivetrace/v1/provider"
	"github.com/honeyhive/hivetrace/v1/resilience"
)

// globalMu serializes every mutation of the process-global OpenTelemetry
// tracer provider. Classification and the provider swap happen under the
// same critical section, so two racing NewClient calls cannot both decide
// they own the main provider.
var globalMu sync.Mutex

// activeMu guards the process-wide active tracer instance.
var (
	activeMu sync.Mutex
	active   *Tracer
)

// Tracer is the session-scoped tracing client. It owns the session identity
// (session id, project, source), attaches the span enrichment pipeline to
// the active OpenTelemetry provider, and exposes span helpers for manual
// instrumentation.
//
// One Tracer is typically created per process. The most recently created
// instance is the active one; the enrichment pipeline consults it when a
// span arrives without baggage and the recovery heuristic matches.
//
// The Tracer is designed to be thread-safe and can be shared across goroutines.
type Tracer struct {
	provider *sdktrace.TracerProvider
	proc     *enrichment.Processor
	manager  *integration.Manager
	handler  *resilience.Handler
	logger   logger.Log
	result   integration.Result

	sessionID   string
	sessionName string
	project     string
	source      string

	shutdownOnce sync.Once
	shutdownErr  error
}

// Tracer satisfies the session source contract consumed by the enrichment
// pipeline's recovery heuristic.
var _ enrichment.SessionSource = (*Tracer)(nil)

// NewClient creates and initializes a new Tracer instance.
//
// This function classifies the process-global OpenTelemetry provider and
// applies the resulting strategy: when a real provider already exists the
// enrichment pipeline is attached to it as a secondary processor, when only
// a replaceable placeholder is installed a new provider is created and set
// globally, and when the provider cannot be classified the client degrades
// to local logging without touching it.
//
// Parameters:
//   - cfg: Configuration for the tracer, including the project, telemetry
//     source, session identity and export settings.
//   - log: Logger for recording initialization events and errors.
//   - obs: Observer notified about integration, enrichment and recovery
//     operations. May be nil; pass a *metrics.Metrics instance to get
//     Prometheus series for the pipeline.
//
// Returns:
//   - *Tracer: A configured Tracer instance holding the session identity,
//     registered as the process-wide active instance.
//
// If trace export is enabled and this client ends up owning the provider,
// an OTLP HTTP exporter is set up using the standard OTEL_EXPORTER_OTLP_*
// environment variables. If the exporter fails to initialize, a fatal error
// is logged.
//
// Example:
//
//	cfg := tracer.Config{
//	    Project:      "checkout",
//	    Source:       "production",
//	    ServiceName:  "checkout-api",
//	    EnableExport: true,
//	}
//
//	tracerClient := tracer.NewClient(cfg, log, nil)
//	defer tracerClient.Shutdown(context.Background())
//
//	ctx, span := tracerClient.StartSpan(tracerClient.SessionContext(context.Background()), "process-request")
//	defer span.End()
func NewClient(cfg Config, log logger.Log, obs observability.Observer) *Tracer {
	cfg = cfg.withDefaults()
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}

	handler := resilience.NewHandler(resilience.Config{}, log).WithObserver(obs)
	proc := enrichment.NewProcessor(cfg.Enrichment, log).
		WithSessionLookup(ActiveSession).
		WithObserver(obs)
	wrapped := integration.WrapProcessor(proc).WithObserver(obs)
	integrator := integration.NewIntegrator(log).WithObserver(obs)
	manager := integration.NewManager(integrator, handler, log).WithObserver(obs)

	t := &Tracer{
		proc:        proc,
		manager:     manager,
		handler:     handler,
		logger:      log,
		sessionID:   cfg.SessionID,
		sessionName: cfg.SessionName,
		project:     cfg.Project,
		source:      cfg.Source,
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	t.result = manager.Integrate(wrapped, cfg.Source, cfg.Project)

	if t.result.Strategy == provider.StrategyMainProvider {
		var options []sdktrace.TracerProviderOption

		if cfg.EnableExport {
			client := otlptracehttp.NewClient()
			exporter, err := otlptrace.New(context.Background(), client)
			if err != nil {
				log.Fatal("cannot initiate tracer", err, nil)
				return nil
			}
			options = append(options, sdktrace.WithBatcher(exporter))
		}

		options = append(options, sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.DeploymentEnvironment(cfg.AppEnv),
			attribute.String("environment", cfg.AppEnv),
		)))

		tp := sdktrace.NewTracerProvider(options...)
		tp.RegisterSpanProcessor(wrapped)

		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

		t.provider = tp
		t.result.Success = true
		t.result.Message = "main provider created"
	}

	setActive(t)

	log.Info("tracer session started", nil, map[string]interface{}{
		"session_id": t.sessionID,
		"project":    t.project,
		"source":     t.source,
		"strategy":   string(t.result.Strategy),
	})
	return t
}

// SessionID returns the session identifier of this client.
func (t *Tracer) SessionID() string { return t.sessionID }

// SessionName returns the human-readable session name.
func (t *Tracer) SessionName() string { return t.sessionName }

// Project returns the project this session belongs to.
func (t *Tracer) Project() string { return t.project }

// Source returns the telemetry source label.
func (t *Tracer) Source() string { return t.source }

// Result returns the outcome of the integration performed at construction.
func (t *Tracer) Result() integration.Result { return t.result }

// FallbackActive reports whether the resilience layer is currently degraded.
func (t *Tracer) FallbackActive() bool { return t.handler.FallbackActive() }

// PerformHealthCheck runs a rate-limited health check on the integration and
// attempts recovery when a fallback is active.
func (t *Tracer) PerformHealthCheck() resilience.HealthCheckResult {
	return t.handler.PerformHealthCheck()
}

// OwnsProvider reports whether this client created the process-global
// tracer provider.
func (t *Tracer) OwnsProvider() bool { return t.provider != nil }

// tracerProvider returns the provider spans should be started on: the one
// this client created, or the process-global one when the client attached
// to an existing provider.
func (t *Tracer) tracerProvider() oteltrace.TracerProvider {
	if t.provider != nil {
		return t.provider
	}
	return otel.GetTracerProvider()
}

// Shutdown releases everything the client set up: attached processors, the
// owned provider (flushing pending spans) and the background recovery pool.
// Idempotent; subsequent calls return the first result.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() {
		clearActive(t)
		t.manager.Cleanup(ctx)

		var errs []error
		if t.provider != nil {
			if err := t.provider.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if err := t.handler.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		t.shutdownErr = errors.Join(errs...)

		t.logger.Info("tracer session ended", nil, map[string]interface{}{
			"session_id": t.sessionID,
		})
	})
	return t.shutdownErr
}

// ActiveInstance returns the process-wide active tracer instance, or nil
// when none has been created or the last one was shut down.
func ActiveInstance() *Tracer {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// ActiveSession exposes the active instance as a session source for the
// enrichment pipeline. Returns nil when no instance is active.
func ActiveSession() enrichment.SessionSource {
	t := ActiveInstance()
	if t == nil {
		return nil
	}
	return t
}

func setActive(t *Tracer) {
	activeMu.Lock()
	defer activeMu.Unlock()
	active = t
}

// clearActive unregisters t if it is still the active instance. A newer
// instance stays active.
func clearActive(t *Tracer) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == t {
		active = nil
	}
}
