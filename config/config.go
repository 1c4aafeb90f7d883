package config

import (
	"fmt"
	"time"

	"github.com/kbukum/nodekit/logger"
)

// ToolkitConfig contains the configuration fields a nodekit host needs.
// Hosts extend it by embedding:
//
//	type HostConfig struct {
//	    config.ToolkitConfig `yaml:",inline" mapstructure:",squash"`
//	    Pipelines            []PipelineConfig `yaml:"pipelines" mapstructure:"pipelines"`
//	}
type ToolkitConfig struct {
	Name          string              `yaml:"name" mapstructure:"name"`
	Environment   string              `yaml:"environment" mapstructure:"environment"`
	Debug         bool                `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Retry         RetryDefaults       `yaml:"retry" mapstructure:"retry"`
}

// ObservabilityConfig controls tracing and metrics export.
type ObservabilityConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// RetryDefaults seeds retry configuration for inputs that omit it.
type RetryDefaults struct {
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	InitialDelayMs    float64 `yaml:"initial_delay_ms" mapstructure:"initial_delay_ms"`
	MaxDelayMs        float64 `yaml:"max_delay_ms" mapstructure:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier" mapstructure:"backoff_multiplier"`
}

// Apply copies the defaults into an input map for any retry field the
// caller left unset, returning a new map. Field names match the retry
// configuration shape of retry-wrapped nodes.
func (r RetryDefaults) Apply(input map[string]any) map[string]any {
	out := make(map[string]any, len(input)+4)
	for k, v := range input {
		out[k] = v
	}
	setIfAbsent(out, "maxRetries", r.MaxRetries)
	setIfAbsent(out, "initialDelayMs", r.InitialDelayMs)
	setIfAbsent(out, "maxDelayMs", r.MaxDelayMs)
	setIfAbsent(out, "backoffMultiplier", r.BackoffMultiplier)
	return out
}

func setIfAbsent(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// ApplyDefaults applies default values to the configuration.
func (c *ToolkitConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()

	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}
	if c.Observability.Interval == 0 {
		c.Observability.Interval = 15 * time.Second
	}

	if c.Retry.MaxRetries == 0 {
		c.Retry.MaxRetries = 3
	}
	if c.Retry.InitialDelayMs == 0 {
		c.Retry.InitialDelayMs = 1000
	}
	if c.Retry.MaxDelayMs == 0 {
		c.Retry.MaxDelayMs = 30000
	}
	if c.Retry.BackoffMultiplier == 0 {
		c.Retry.BackoffMultiplier = 2
	}
}

// Validate validates the configuration. Retry bounds are enforced here,
// before any retry-wrapped executor ever sees them.
func (c *ToolkitConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if c.Retry.MaxRetries < 1 || c.Retry.MaxRetries > 10 {
		return fmt.Errorf("config.retry.max_retries must be between 1 and 10 (got: %d)", c.Retry.MaxRetries)
	}
	if c.Retry.InitialDelayMs < 0 {
		return fmt.Errorf("config.retry.initial_delay_ms must not be negative")
	}
	if c.Retry.MaxDelayMs < 0 {
		return fmt.Errorf("config.retry.max_delay_ms must not be negative")
	}
	if c.Retry.BackoffMultiplier < 1 {
		return fmt.Errorf("config.retry.backoff_multiplier must be at least 1 (got: %v)", c.Retry.BackoffMultiplier)
	}
	return nil
}
