package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "absent.yaml"), env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "timescript.yaml", `
log:
  level: debug
cache:
  driver: redis
  ttl: 90s
  redis:
    addr: cache:6379
    db: "2"
validator:
  option_id:
    min: 1
    max: 9
  ui_types: D1,Q1
`)
	cfg, err := load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their default")
	assert.Equal(t, CacheRedis, cfg.Cache.Driver)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, 1, cfg.Validator.OptionID.Min)
	assert.Equal(t, 9, cfg.Validator.OptionID.Max)
	assert.Equal(t, []string{"D1", "Q1"}, cfg.Validator.UITypes)
	assert.Equal(t, -1, cfg.Validator.QID.Max)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "timescript.json", `{"server": {"addr": ":9090", "shutdown_timeout": "1s"}}`)
	cfg, err := load(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := write(t, "timescript.yaml", "log:\n  level: debug\nserver:\n  addr: :1\n")
	cfg, err := load(path, env(map[string]string{
		"TIMESCRIPT_LOG_LEVEL": "warn",
		"TIMESCRIPT_ADDR":      ":2",
		"TIMESCRIPT_CACHE":     "none",
		"TIMESCRIPT_CACHE_TTL": "1m",
	}))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":2", cfg.Server.Addr)
	assert.Equal(t, CacheNone, cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
}

func TestLoad_NullSectionsKeepDefaults(t *testing.T) {
	path := write(t, "timescript.yaml", "validator:\nlog:\n  level: debug\n  file:\n")
	cfg, err := load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, Default().Validator, cfg.Validator)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, Default().Log.Format, cfg.Log.Format)
}

func TestCheck_EmptyRanges(t *testing.T) {
	cfg := Default()
	cfg.Validator.QID.Min, cfg.Validator.QID.Max = 5, 1
	assert.ErrorContains(t, cfg.Check(), "qid range is empty")

	cfg = Default()
	cfg.Validator.OptionID.Min, cfg.Validator.OptionID.Max = 5, 1
	assert.ErrorContains(t, cfg.Check(), "option_id range is empty")
}

func TestLoad_Errors(t *testing.T) {
	_, err := load(write(t, "bad.yaml", "cache:\n  driver: disk\n"), env(nil))
	assert.ErrorContains(t, err, "unknown cache driver")

	_, err = load(write(t, "typo.yaml", "loggging:\n  level: debug\n"), env(nil))
	assert.Error(t, err)

	_, err = load("", env(map[string]string{"TIMESCRIPT_REDIS_DB": "two"}))
	assert.Error(t, err)
}
