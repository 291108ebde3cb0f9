package tracer

import "github.com/honeyhive/hivetrace/v1/enrichment"

// DefaultSource is the telemetry source recorded when none is configured.
const DefaultSource = "dev"

// Config defines the configuration structure for the tracer client.
type Config struct {
	// Project is the project new sessions belong to. Session attributes are
	// only staged on spans when a project is known, so leaving this empty
	// silently disables session enrichment.
	Project string `yaml:"project" envconfig:"HIVETRACE_PROJECT"`

	// Source is the telemetry source label, e.g. "dev", "staging" or
	// "production".
	// Default: "dev"
	Source string `yaml:"source" envconfig:"HIVETRACE_SOURCE"`

	// SessionName is the human-readable session name. Defaults to the
	// service name when empty.
	SessionName string `yaml:"session_name" envconfig:"HIVETRACE_SESSION_NAME"`

	// SessionID pins the session identifier. When empty a random UUID is
	// generated, which is the common case; set it only to join an existing
	// session from another process.
	SessionID string `yaml:"session_id" envconfig:"HIVETRACE_SESSION_ID"`

	// ServiceName identifies the service in the exported resource.
	ServiceName string `yaml:"service_name" envconfig:"HIVETRACE_SERVICE_NAME"`

	// AppEnv names the deployment environment, e.g. "production".
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter when this client ends up
	// owning the tracer provider. The exporter endpoint is taken from the
	// standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export" envconfig:"HIVETRACE_ENABLE_EXPORT"`

	// Enrichment configures the span enrichment pipeline attached by this
	// client.
	Enrichment enrichment.Config `yaml:"enrichment"`
}

// withDefaults fills the zero values with the documented defaults.
func (c Config) withDefaults() Config {
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.SessionName == "" {
		c.SessionName = c.ServiceName
	}
	return c
}
