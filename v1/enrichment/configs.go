package enrichment

// Config defines the configuration for the span enrichment processor.
type Config struct {
	// CacheSize bounds the context attribute cache. Once exceeded, the
	// oldest 20% of entries are evicted.
	// Default: 1000
	CacheSize int `yaml:"cache_size" envconfig:"HIVETRACE_ENRICHMENT_CACHE_SIZE"`

	// DisableRecoveryHeuristic turns off the span-name based session
	// recovery for spans that carry no baggage.
	DisableRecoveryHeuristic bool `yaml:"disable_recovery_heuristic" envconfig:"HIVETRACE_DISABLE_RECOVERY_HEURISTIC"`

	// ExperimentID identifies the experiment run this process belongs to.
	// Experiment fields are staged on every enriched span, independently of
	// whether a session identity is present.
	ExperimentID string `yaml:"experiment_id" envconfig:"HIVETRACE_EXPERIMENT_ID"`

	// ExperimentName is the human-readable experiment name.
	ExperimentName string `yaml:"experiment_name" envconfig:"HIVETRACE_EXPERIMENT_NAME"`

	// ExperimentVariant names the variant under test.
	ExperimentVariant string `yaml:"experiment_variant" envconfig:"HIVETRACE_EXPERIMENT_VARIANT"`

	// ExperimentGroup names the experiment group.
	ExperimentGroup string `yaml:"experiment_group" envconfig:"HIVETRACE_EXPERIMENT_GROUP"`

	// ExperimentMetadata holds free-form experiment key/values, written as
	// honeyhive.experiment_metadata.<key>.
	ExperimentMetadata map[string]string `yaml:"experiment_metadata"`
}

// withDefaults fills the zero values with the documented defaults.
func (c Config) withDefaults() Config {
	if c.CacheSize <= 0 {
		c.CacheSize = 1000
	}
	return c
}
