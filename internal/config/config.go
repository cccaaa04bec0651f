// Package config loads and validates the service configuration.
//
// Configuration comes from an optional YAML file layered over built-in
// defaults. The effective configuration is validated against an embedded
// CUE schema, so a typo in an enum value or a negative limit is a load
// error rather than a surprise at runtime.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from a YAML duration
// string such as "5s" or "250ms".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats the duration like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config is the service configuration.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// Database is the path to the SQLite database file.
	Database string `yaml:"database"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Notifier  NotifierConfig  `yaml:"notifier"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Stats     StatsConfig     `yaml:"stats"`
}

// NotifierConfig configures the creation notifier.
type NotifierConfig struct {
	// Delay is the blocking delay the notifier demonstrates.
	Delay Duration `yaml:"delay"`
}

// RateLimitConfig configures the HTTP token-bucket limiter.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// StatsConfig selects the stats recorder backend.
type StatsConfig struct {
	// Backend is "memory" or "redis".
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds connection settings for the redis stats backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:   ":8080",
		Database: "txsignals.db",
		LogLevel: "info",
		Notifier: NotifierConfig{
			Delay: Duration(5 * time.Second),
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			RPS:     10,
			Burst:   20,
		},
		Stats: StatsConfig{
			Backend: "memory",
		},
	}
}

// Load returns the effective configuration.
//
// If path is empty, defaults are returned. Otherwise the file is layered
// over the defaults. The result is validated against the embedded CUE
// schema either way.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
