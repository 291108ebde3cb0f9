package resilience

import "time"

// Config defines the configuration for the error handler.
type Config struct {
	// HealthCheckInterval is the minimum time between two effective health
	// checks; checks arriving sooner are skipped.
	// Default: 30s
	HealthCheckInterval time.Duration `yaml:"health_check_interval" envconfig:"HIVETRACE_HEALTH_CHECK_INTERVAL"`

	// MaxRetries is the number of additional attempts a background recovery
	// makes after its first failure.
	// Default: 3
	MaxRetries int `yaml:"max_retries" envconfig:"HIVETRACE_RECOVERY_MAX_RETRIES"`

	// BaseDelay is the initial backoff delay between recovery attempts;
	// doubled on each subsequent attempt.
	// Default: 1s
	BaseDelay time.Duration `yaml:"base_delay" envconfig:"HIVETRACE_RECOVERY_BASE_DELAY"`

	// MaxConcurrentRecoveries bounds how many background recoveries may run
	// at once. Further schedule requests are dropped with a log line rather
	// than queued, so repeated failures cannot pile up goroutines.
	// Default: 2
	MaxConcurrentRecoveries int `yaml:"max_concurrent_recoveries" envconfig:"HIVETRACE_MAX_CONCURRENT_RECOVERIES"`
}

// withDefaults fills the zero values with the documented defaults.
func (c Config) withDefaults() Config {
	if c.HealthCheckInterval <= 0 {
		c.HealthCheckInterval = 30 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.MaxConcurrentRecoveries <= 0 {
		c.MaxConcurrentRecoveries = 2
	}
	return c
}
