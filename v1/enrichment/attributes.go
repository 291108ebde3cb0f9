package enrichment

// Attribute namespaces. Both are written for every session field so spans
// stay readable by the current backend and by consumers of the legacy
// association-properties convention.
const (
	// NamespacePrimary prefixes the current attribute namespace.
	NamespacePrimary = "honeyhive."

	// NamespaceLegacy prefixes the legacy association-properties namespace.
	NamespaceLegacy = "traceloop.association.properties."
)

// Session identity keys, read from baggage and staged under both namespaces.
const (
	KeySessionID = "session_id"
	KeyProject   = "project"
	KeySource    = "source"
	KeyParentID  = "parent_id"
)

// Experiment keys, staged under the primary namespace only.
const (
	KeyExperimentID             = "experiment_id"
	KeyExperimentName           = "experiment_name"
	KeyExperimentVariant        = "experiment_variant"
	KeyExperimentGroup          = "experiment_group"
	KeyExperimentMetadataPrefix = "experiment_metadata."
)

// Span timing attributes managed by OnEnd.
const (
	AttrStartTime = NamespacePrimary + "start_time"
	AttrEndTime   = NamespacePrimary + "end_time"
	AttrDuration  = NamespacePrimary + "duration"
)
