package config

import (
	"github.com/sdejongh/cmpdirs/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare     CompareConfig     `yaml:"compare" mapstructure:"compare"`
	Performance PerformanceConfig `yaml:"performance" mapstructure:"performance"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Exclude     []string          `yaml:"exclude" mapstructure:"exclude"`
}

// CompareConfig holds comparison settings
type CompareConfig struct {
	Strategy        models.Strategy        `yaml:"strategy" mapstructure:"strategy"`
	Algorithm       string                 `yaml:"algorithm" mapstructure:"algorithm"`
	CollisionPolicy models.CollisionPolicy `yaml:"collision_policy" mapstructure:"collision_policy"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	Workers        int   `yaml:"workers" mapstructure:"workers"`
	BufferSize     int   `yaml:"buffer_size" mapstructure:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit" mapstructure:"bandwidth_limit"` // bytes per second, 0 = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`     // "human" or "json"
	Progress bool   `yaml:"progress" mapstructure:"progress"` // Show progress bar in human mode
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`   // Also list mapped files
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json" or "text"
	Level  string `yaml:"level" mapstructure:"level"`   // "debug", "info", "warn", "error"
	File   string `yaml:"file" mapstructure:"file"`     // Log file path (empty = no logging)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			Strategy:        models.StrategyHash,
			Algorithm:       "sha256",
			CollisionPolicy: models.LastWins,
		},
		Performance: PerformanceConfig{
			Workers:        1,
			BufferSize:     4096,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Verbose:  false,
		},
		Logging: LoggingConfig{
			Format: "json",
			Level:  "info",
			File:   "",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Compare.Strategy {
	case models.StrategyHash, models.StrategyNameSize:
	default:
		return &models.ValidationError{
			Field:   "compare.strategy",
			Message: "must be 'hash' or 'namesize'",
		}
	}

	switch c.Compare.CollisionPolicy {
	case models.LastWins, models.FirstWins:
	default:
		return &models.ValidationError{
			Field:   "compare.collision_policy",
			Message: "must be 'last-wins' or 'first-wins'",
		}
	}

	if c.Performance.Workers < 1 {
		return &models.ValidationError{
			Field:   "performance.workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.BufferSize < 512 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 512 bytes",
		}
	}

	if c.Performance.BandwidthLimit < 0 {
		return &models.ValidationError{
			Field:   "performance.bandwidth_limit",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
