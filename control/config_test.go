// control/config_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "crsync.yaml", `
pool:
  name: render
  workers: 8
  cpus: [0, 1]
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "render", cfg.Pool.Name)
	assert.Equal(t, 8, cfg.Pool.Workers)
	assert.Equal(t, []int{0, 1}, cfg.Pool.CPUs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset fields keep defaults")
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "crsync.json", `{"pool":{"workers":2,"max_threads":3},"metrics":{"enabled":true,"addr":"127.0.0.1:0"}}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Pool.Workers)
	assert.Equal(t, 3, cfg.Pool.MaxThreads)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfig(writeFile(t, "crsync.toml", "x = 1"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = LoadConfig(writeFile(t, "bad.yaml", "pool: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = LoadConfig(writeFile(t, "zero.yaml", "pool:\n  workers: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"negative max threads": func(c *Config) { c.Pool.MaxThreads = -1 },
		"negative cpu":         func(c *Config) { c.Pool.CPUs = []int{-2} },
		"metrics without addr": func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" },
		"bad level":            func(c *Config) { c.Log.Level = "loud" },
		"bad format":           func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = NewLogger(LogConfig{Level: "nope"}, &buf)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
