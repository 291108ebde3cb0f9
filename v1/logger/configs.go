package logger

// Log level names accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the configuration for the logger.
type Config struct {
	// Level is the minimum level that will be emitted.
	// One of the level constants above; unknown values fall back to "info".
	Level string `yaml:"level" envconfig:"HIVETRACE_LOG_LEVEL"`

	// ServiceName is stamped on every log entry as the "service" field.
	// Default: "hivetrace"
	ServiceName string `yaml:"service_name" envconfig:"HIVETRACE_SERVICE_NAME"`

	// EnableTracing controls whether the *WithContext logging methods extract
	// the active OpenTelemetry trace and span IDs and attach them to entries.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"HIVETRACE_LOG_TRACING"`
}
