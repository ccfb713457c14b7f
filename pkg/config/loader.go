package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CMPDIRS_COMPARE_STRATEGY
const EnvPrefix = "CMPDIRS"

// newViper returns a viper instance seeded with the defaults and bound to
// CMPDIRS_* environment variables
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal
	d := Default()
	v.SetDefault("compare.strategy", string(d.Compare.Strategy))
	v.SetDefault("compare.algorithm", d.Compare.Algorithm)
	v.SetDefault("compare.collision_policy", string(d.Compare.CollisionPolicy))
	v.SetDefault("performance.workers", d.Performance.Workers)
	v.SetDefault("performance.buffer_size", d.Performance.BufferSize)
	v.SetDefault("performance.bandwidth_limit", d.Performance.BandwidthLimit)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.progress", d.Output.Progress)
	v.SetDefault("output.verbose", d.Output.Verbose)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("exclude", d.Exclude)

	return v
}

// load unmarshals and validates whatever v currently holds
func load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file, applying environment
// overrides on top of it
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return load(v)
}

// LoadEnv returns the defaults with environment overrides applied
func LoadEnv() (*Config, error) {
	return load(newViper())
}

// SaveToFile saves configuration to a YAML file
func SaveToFile(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "cmpdirs", "config.yaml"), nil
}

// LoadDefault loads the configuration from the default location. A missing
// file is not an error: defaults and environment overrides are returned.
func LoadDefault() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return LoadEnv()
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return LoadEnv()
	}

	return LoadFromFile(path)
}
