package enrichment

import (
	"context"
	"reflect"

	"go.opentelemetry.io/otel/baggage"
)

type associationPropertiesKey struct{}

// WithAssociationProperties attaches a legacy flat key/value association map
// to the context. Every key not already present as baggage is staged on
// enriched spans as traceloop.association.properties.<key>. This path exists
// for callers still on the pre-baggage propagation convention and runs on
// every span regardless of session presence.
func WithAssociationProperties(ctx context.Context, props map[string]string) context.Context {
	if len(props) == 0 {
		return ctx
	}
	copied := make(map[string]string, len(props))
	for k, v := range props {
		copied[k] = v
	}
	return context.WithValue(ctx, associationPropertiesKey{}, copied)
}

// AssociationPropertiesFromContext returns the legacy association map from
// the context, or nil. The returned map must not be mutated.
func AssociationPropertiesFromContext(ctx context.Context) map[string]string {
	if ctx == nil {
		return nil
	}
	props, _ := ctx.Value(associationPropertiesKey{}).(map[string]string)
	return props
}

// ContextWithSession returns a context whose baggage carries the given
// session identity. Empty values are omitted. This is the supported way for
// host code to associate its spans with a session explicitly.
//
// Example:
//
//	ctx, err := enrichment.ContextWithSession(ctx, sessionID, "my-project", "prod", "")
//	if err != nil {
//	    return err
//	}
//	ctx, span := tracer.Start(ctx, "handle-request")
func ContextWithSession(ctx context.Context, sessionID, project, source, parentID string) (context.Context, error) {
	bag := baggage.FromContext(ctx)

	for key, value := range map[string]string{
		KeySessionID: sessionID,
		KeyProject:   project,
		KeySource:    source,
		KeyParentID:  parentID,
	} {
		if value == "" {
			continue
		}
		member, err := baggage.NewMember(key, value)
		if err != nil {
			return ctx, err
		}
		bag, err = bag.SetMember(member)
		if err != nil {
			return ctx, err
		}
	}

	return baggage.ContextWithBaggage(ctx, bag), nil
}

// contextIdentity derives a cache key from the identity of the context
// object. Contexts that carry values or baggage are pointer-backed, so the
// pointer serves as identity. Value-backed contexts (context.Background and
// friends) report no identity and skip the cache — they cannot carry baggage
// anyway, and the cache is advisory: a miss only costs a recomputation.
func contextIdentity(ctx context.Context) (uintptr, bool) {
	if ctx == nil {
		return 0, false
	}
	v := reflect.ValueOf(ctx)
	if v.Kind() != reflect.Ptr {
		return 0, false
	}
	return v.Pointer(), true
}
