// Package config holds the settings shared by the channel layer, logging and
// metrics, and loads them from YAML files and AMQP_ prefixed environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

const (
	// EnvPrefix marks environment variables that override file settings.
	// Nested keys are separated by a double underscore, for example
	// AMQP_CHANNEL__FRAME_MAX.
	EnvPrefix = "AMQP_"

	// MinFrameMax is the smallest frame size a peer must accept
	MinFrameMax = 4096

	DefaultFrameMax    = 131072 // 128KB
	DefaultMetricsAddr = ":9419"
)

// Config is the root configuration
type Config struct {
	Channel ChannelConfig `koanf:"channel" yaml:"channel"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`
}

// ChannelConfig controls frame handling on channels
type ChannelConfig struct {
	FrameMax        uint32 `koanf:"frame_max" yaml:"frame_max"`
	TrackDeliveries bool   `koanf:"track_deliveries" yaml:"track_deliveries"`
	CapturePath     string `koanf:"capture_path" yaml:"capture_path"`
}

// LogConfig controls the zap logger. An empty File logs to stderr.
type LogConfig struct {
	Level       string `koanf:"level" yaml:"level"`
	Format      string `koanf:"format" yaml:"format"`
	Development bool   `koanf:"development" yaml:"development"`
	File        string `koanf:"file" yaml:"file"`
	MaxSizeMB   int    `koanf:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups  int    `koanf:"max_backups" yaml:"max_backups"`
	MaxAgeDays  int    `koanf:"max_age_days" yaml:"max_age_days"`
	Compress    bool   `koanf:"compress" yaml:"compress"`
}

// MetricsConfig controls the Prometheus exporter
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled" yaml:"enabled"`
	Namespace string `koanf:"namespace" yaml:"namespace"`
	Address   string `koanf:"address" yaml:"address"`
}

// DefaultConfig creates a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Channel: ChannelConfig{
			FrameMax: DefaultFrameMax,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "amqp_client",
			Address:   DefaultMetricsAddr,
		},
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Channel.FrameMax < MinFrameMax {
		return amqperrors.NewConfigValidationError("channel", "frame_max",
			fmt.Sprintf("must be at least %d, got %d", MinFrameMax, c.Channel.FrameMax))
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		return amqperrors.NewConfigValidationError("log", "level",
			fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return amqperrors.NewConfigValidationError("log", "format",
			fmt.Sprintf("must be console or json, got %q", c.Log.Format))
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		return amqperrors.NewConfigValidationError("log", "max_size_mb", "must be positive when logging to a file")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Namespace == "" {
			return amqperrors.NewConfigValidationError("metrics", "namespace", "cannot be empty")
		}
		if c.Metrics.Address == "" {
			return amqperrors.NewConfigValidationError("metrics", "address", "cannot be empty")
		}
	}

	return nil
}

// Load reads a YAML file on top of the defaults, applies environment
// overrides and validates the result. An empty path loads the environment
// only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, amqperrors.NewConfigError("failed to read configuration file", "file", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, amqperrors.NewConfigError("failed to read environment", "env", "", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, amqperrors.NewConfigError("failed to parse configuration", "file", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps AMQP_CHANNEL__FRAME_MAX to channel.frame_max
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", "."), value
}

// Save writes the configuration as YAML
func (c *Config) Save(destination string) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(destination, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}
