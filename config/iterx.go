package config

import (
	"fmt"
	"time"
)

// Config is the configuration of the iterx command.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Range         RangeConfig     `yaml:"range" mapstructure:"range"`
	Telemetry     TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// RangeConfig holds defaults for sequence-producing commands.
type RangeConfig struct {
	// Step is the default step magnitude for range.
	Step float64 `yaml:"step" mapstructure:"step" validate:"gte=0"`
	// BatchSize groups output into lines of this many values. 0 disables batching.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=0"`
	// BatchTimeout closes a batch early in async mode. 0 disables the timeout.
	BatchTimeout time.Duration `yaml:"batch_timeout" mapstructure:"batch_timeout" validate:"gte=0"`
	// Separator is written between values on one line.
	Separator string `yaml:"separator" mapstructure:"separator"`
}

// TelemetryConfig configures OTLP export of pull metrics and traces.
type TelemetryConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Range.Step == 0 {
		c.Range.Step = 1
	}
	if c.Range.Separator == "" {
		c.Range.Separator = " "
	}
	if c.Telemetry.Enabled && c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1
	}
}

// Validate validates the fields that struct tags cannot express.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if c.Range.Step < 0 {
		return fmt.Errorf("config.range.step must not be negative (got: %v)", c.Range.Step)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("config.telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}
