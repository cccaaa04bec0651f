package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "txsignals.db", cfg.Database)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Notifier.Delay.Std())
	assert.Equal(t, "memory", cfg.Stats.Backend)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
log_level: debug
notifier:
  delay: 250ms
rate_limit:
  enabled: true
  rps: 5
  burst: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.Notifier.Delay.Std())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Burst)

	// Unset fields keep their defaults.
	assert.Equal(t, "txsignals.db", cfg.Database)
	assert.Equal(t, "memory", cfg.Stats.Backend)
}

func TestLoad_RedisBackend(t *testing.T) {
	path := writeConfig(t, `
stats:
  backend: redis
  redis:
    addr: "localhost:6379"
    db: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Stats.Backend)
	assert.Equal(t, "localhost:6379", cfg.Stats.Redis.Addr)
	assert.Equal(t, 2, cfg.Stats.Redis.DB)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
notifier:
  delay: not-a-duration
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidate_RejectsBadStatsBackend(t *testing.T) {
	cfg := Default()
	cfg.Stats.Backend = "postgres"

	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsNegativeLimits(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.Burst = -1

	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsEmptyListen(t *testing.T) {
	cfg := Default()
	cfg.Listen = ""

	assert.Error(t, Validate(cfg))
}
