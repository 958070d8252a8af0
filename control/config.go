// control/config.go
// Author: momentics <momentics@gmail.com>
//
// File-backed runtime configuration with defaults and validation.

package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full runtime configuration.
type Config struct {
	Pool    PoolConfig    `yaml:"pool" json:"pool"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// PoolConfig sizes the worker pool.
type PoolConfig struct {
	Name       string `yaml:"name" json:"name"`
	Workers    int    `yaml:"workers" json:"workers"`
	MaxThreads int    `yaml:"max_threads" json:"max_threads"` // 0 means unlimited
	CPUs       []int  `yaml:"cpus" json:"cpus"`               // workers pinned round-robin
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // text or json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			Name:    "default",
			Workers: 4,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9100",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads path over DefaultConfig. The format is chosen by
// extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Pool.Workers <= 0 {
		return fmt.Errorf("%w: pool.workers must be positive, got %d", ErrInvalidConfig, c.Pool.Workers)
	}
	if c.Pool.MaxThreads < 0 {
		return fmt.Errorf("%w: pool.max_threads must not be negative", ErrInvalidConfig)
	}
	for _, cpu := range c.Pool.CPUs {
		if cpu < 0 {
			return fmt.Errorf("%w: pool.cpus contains %d", ErrInvalidConfig, cpu)
		}
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("%w: metrics.addr is required when metrics are enabled", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// NewLogger builds a slog.Logger writing to w.
func NewLogger(lc LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, s)
	}
	return l, nil
}
