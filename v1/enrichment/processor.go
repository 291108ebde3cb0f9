package enrichment

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/baggage"

	"github.com/honeyhive/hivetrace/v1/logger"
	"github.com/honeyhive/hivetrace/v1/observability"
)

// Processor computes session and experiment attributes for every span the
// host tracing runtime starts, and stamps timing attributes when spans end.
//
// OnStart and OnEnd sit on the hot path of every traced operation and are
// invoked concurrently by the runtime's workers. They never panic outward:
// any internal failure is caught, logged, and means "no enrichment this
// time" for the affected span. The only shared mutable state is the bounded
// context cache, guarded by one short-held lock per access.
//
// The cache trades a small staleness risk (a context rebound to new baggage
// without changing object identity would serve stale attributes) for
// skipping repeated baggage and config lookups under high span throughput.
type Processor struct {
	cfg       Config
	logger    logger.Log
	cache     *contextCache
	heuristic RecoveryHeuristic
	session   SessionLookup
	observer  observability.Observer
}

// NewProcessor creates the span enrichment processor.
//
// Parameters:
//   - cfg: Cache bound, heuristic switch and experiment fields. Zero values
//     take the documented defaults.
//   - log: Logger for swallowed errors and skipped enrichments.
//
// Returns:
//   - *Processor: A processor using the default recovery heuristic and no
//     session lookup. Wire a lookup with WithSessionLookup so the heuristic
//     can borrow the active tracer instance's identity.
//
// Example:
//
//	proc := enrichment.NewProcessor(enrichment.Config{}, log).
//	    WithSessionLookup(tracer.ActiveSession)
func NewProcessor(cfg Config, log logger.Log) *Processor {
	cfg = cfg.withDefaults()

	p := &Processor{
		cfg:    cfg,
		logger: log,
		cache:  newContextCache(cfg.CacheSize),
	}
	if !cfg.DisableRecoveryHeuristic {
		p.heuristic = DefaultRecoveryHeuristic
	}
	return p
}

// WithSessionLookup sets the lookup for the process-wide active session and
// returns the processor for chaining. Must be set before the processor is
// attached to a provider.
func (p *Processor) WithSessionLookup(lookup SessionLookup) *Processor {
	p.session = lookup
	return p
}

// WithHeuristic replaces the session recovery heuristic and returns the
// processor for chaining. Pass nil to disable recovery entirely.
func (p *Processor) WithHeuristic(h RecoveryHeuristic) *Processor {
	p.heuristic = h
	return p
}

// WithObserver sets the observer notified about enrichment operations and
// returns the processor for chaining.
func (p *Processor) WithObserver(obs observability.Observer) *Processor {
	p.observer = obs
	return p
}

// OnStart enriches a just-started span with session, legacy-association and
// experiment attributes derived from ctx and the processor config.
//
// Resolution order: the context attribute cache short-circuits everything on
// a hit; otherwise explicit baggage is read, and only when baggage carries
// no session does the recovery heuristic get a chance to borrow the active
// tracer instance's identity. Session attributes require a project — a
// session without one is not actionable and is skipped wholesale. Legacy
// association properties and experiment fields are staged independently of
// session presence.
//
// OnStart never panics out; a failing span is left unmodified.
func (p *Processor) OnStart(ctx context.Context, span Span) {
	defer p.recoverHotPath("span_start")

	if span == nil || !span.IsRecording() || ctx == nil {
		return
	}

	start := time.Now()

	key, hasIdentity := contextIdentity(ctx)
	if hasIdentity {
		if cached, hit := p.cache.get(key); hit {
			p.applyAttributes(span, cached)
			p.observeOperation("span_start", span.Name(), "cache_hit", time.Since(start), nil, int64(len(cached)), nil)
			return
		}
	}

	staged := p.stageAttributes(ctx, span.Name())
	p.applyAttributes(span, staged)

	if len(staged) > 0 && hasIdentity {
		if evicted := p.cache.put(key, staged); evicted > 0 {
			p.observeOperation("cache_evict", span.Name(), "", 0, nil, int64(evicted), p.cacheMetadata())
		}
	}

	p.observeOperation("span_start", span.Name(), "computed", time.Since(start), nil, int64(len(staged)), p.cacheMetadata())
}

// stageAttributes computes the attribute set for one span start.
func (p *Processor) stageAttributes(ctx context.Context, spanName string) attributeSet {
	staged := make(attributeSet)

	bag := baggage.FromContext(ctx)
	sessionID := bag.Member(KeySessionID).Value()
	project := bag.Member(KeyProject).Value()
	source := bag.Member(KeySource).Value()
	parentID := bag.Member(KeyParentID).Value()

	// Baggage wins when present; the heuristic only recovers sessions for
	// spans that arrived without one.
	if sessionID == "" && p.heuristic != nil && p.heuristic(spanName) {
		if src := p.lookupSession(); src != nil && src.SessionID() != "" {
			sessionID = src.SessionID()
			if project == "" {
				project = src.Project()
			}
			if source == "" {
				source = src.Source()
			}
		}
	}

	// Legacy association properties pass through on every span, regardless
	// of session presence. Baggage keys take precedence over legacy ones.
	for key, value := range AssociationPropertiesFromContext(ctx) {
		if bag.Member(key).Value() != "" {
			continue
		}
		staged[NamespaceLegacy+key] = value
	}

	if sessionID != "" {
		if project == "" {
			// A session without a project cannot be associated with
			// anything on the backend. Skip session staging wholesale.
			p.logger.Debug("session without project, skipping session attributes", nil, map[string]interface{}{
				"span": spanName,
			})
		} else {
			p.stageDual(staged, KeySessionID, sessionID)
			p.stageDual(staged, KeyProject, project)
			if source != "" {
				p.stageDual(staged, KeySource, source)
			}
			if parentID != "" {
				p.stageDual(staged, KeyParentID, parentID)
			}
		}
	}

	// Experiment fields are independent of session identity.
	p.stageExperiment(staged)

	return staged
}

// stageDual stages a session field under both the primary and the legacy
// namespace for dual backend compatibility.
func (p *Processor) stageDual(staged attributeSet, key, value string) {
	staged[NamespacePrimary+key] = value
	staged[NamespaceLegacy+key] = value
}

// stageExperiment stages the configured experiment fields, if any.
func (p *Processor) stageExperiment(staged attributeSet) {
	if p.cfg.ExperimentID != "" {
		staged[NamespacePrimary+KeyExperimentID] = p.cfg.ExperimentID
	}
	if p.cfg.ExperimentName != "" {
		staged[NamespacePrimary+KeyExperimentName] = p.cfg.ExperimentName
	}
	if p.cfg.ExperimentVariant != "" {
		staged[NamespacePrimary+KeyExperimentVariant] = p.cfg.ExperimentVariant
	}
	if p.cfg.ExperimentGroup != "" {
		staged[NamespacePrimary+KeyExperimentGroup] = p.cfg.ExperimentGroup
	}
	for key, value := range p.cfg.ExperimentMetadata {
		staged[NamespacePrimary+KeyExperimentMetadataPrefix+key] = value
	}
}

// applyAttributes writes the staged set onto the span. A failure on one
// attribute is logged and never aborts the rest of the set.
func (p *Processor) applyAttributes(span Span, staged attributeSet) {
	for key, value := range staged {
		p.applyAttribute(span, key, value)
	}
}

func (p *Processor) applyAttribute(span Span, key string, value interface{}) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("failed to set span attribute", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"key": key,
			})
		}
	}()
	span.SetAttribute(key, value)
}

// OnEnd stamps an explicit end time on the span if none is present and, when
// a start-time attribute exists, a duration in milliseconds. Never panics
// out.
func (p *Processor) OnEnd(span Span) {
	defer p.recoverHotPath("span_end")

	if span == nil {
		return
	}

	now := time.Now()

	if _, ok := span.Attribute(AttrEndTime); !ok {
		p.applyAttribute(span, AttrEndTime, now.UTC().Format(time.RFC3339Nano))
	}

	if raw, ok := span.Attribute(AttrStartTime); ok {
		if started, valid := parseSpanTime(raw); valid {
			p.applyAttribute(span, AttrDuration, now.Sub(started).Milliseconds())
		}
	}
}

// Shutdown clears the context cache. The processor buffers nothing else.
func (p *Processor) Shutdown(ctx context.Context) error {
	p.cache.clear()
	p.observeOperation("shutdown", "", "", 0, nil, 0, p.cacheMetadata())
	return nil
}

// ForceFlush is a no-op success: the processor writes attributes directly
// onto spans and buffers nothing.
func (p *Processor) ForceFlush(ctx context.Context) error {
	return nil
}

// CacheSize returns the number of cached context attribute sets.
func (p *Processor) CacheSize() int {
	return p.cache.size()
}

// lookupSession resolves the active session source, tolerating a nil lookup.
func (p *Processor) lookupSession() SessionSource {
	if p.session == nil {
		return nil
	}
	return p.session()
}

// recoverHotPath swallows a panic from the hot path and logs it. The span in
// flight is left as it was; the host application never sees the failure.
func (p *Processor) recoverHotPath(operation string) {
	if r := recover(); r != nil {
		p.logger.Error("enrichment failure swallowed", fmt.Errorf("panic: %v", r), map[string]interface{}{
			"operation": operation,
		})
		p.observeOperation(operation, "", "panic", 0, fmt.Errorf("panic: %v", r), 0, nil)
	}
}

// parseSpanTime interprets a start-time attribute. RFC3339 strings,
// time.Time values and millisecond epochs are accepted.
func parseSpanTime(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return parsed, true
		}
	case int64:
		return time.UnixMilli(v), true
	}
	return time.Time{}, false
}

// cacheMetadata reports the current cache occupancy for observer reports
// that change it.
func (p *Processor) cacheMetadata() map[string]interface{} {
	if p.observer == nil {
		return nil
	}
	return map[string]interface{}{"cache_size": p.cache.size()}
}

// observeOperation notifies the observer about an operation if one is set.
func (p *Processor) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if p == nil || p.observer == nil {
		return
	}

	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "enrichment",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
