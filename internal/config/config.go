// Package config provides typed access to the audit configuration. Values
// come from Viper (config file, environment variables, flags, defaults) and
// are decoded once into a Config at startup.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Common configuration errors.
var (
	ErrMissingRoot    = errors.New("audit root cannot be empty")
	ErrInvalidWorkers = errors.New("probe workers must be positive")
	ErrInvalidTimeout = errors.New("probe timeout must be positive")
)

// Config is the full application configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Logger LoggerConfig `mapstructure:"logger"`
	Audit  AuditConfig  `mapstructure:"audit"`
	Probe  ProbeConfig  `mapstructure:"probe"`
}

// AppConfig identifies the application.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

// AuditConfig holds the audit target settings.
type AuditConfig struct {
	// Root is the directory tree to audit.
	Root string `mapstructure:"root"`
	// BaseURL optionally overrides home-page base URL detection.
	BaseURL string `mapstructure:"base_url"`
}

// ProbeConfig holds external-liveness settings.
type ProbeConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Workers int           `mapstructure:"workers"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load decodes the current Viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if decodeErr := decoder.Decode(viper.AllSettings()); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", decodeErr)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// Validate checks invariants the rest of the application depends on.
func (c *Config) Validate() error {
	if c.Audit.Root == "" {
		return ErrMissingRoot
	}
	if c.Probe.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Probe.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
