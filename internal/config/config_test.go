package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := load(ctx, "", envconfig.MapLookuper(nil))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := writeFile(t, "max_states: 64\nowner: alice\ncache_ttl: 30s\nlog_format: json\n")
		cfg, err := load(ctx, path, envconfig.MapLookuper(nil))
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.MaxStates)
		assert.Equal(t, "alice", cfg.Owner)
		assert.Equal(t, 30*time.Second, cfg.CacheTTL)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "fa_history.db", cfg.HistoryPath)
		assert.Equal(t, 25, cfg.RecentLimit)
	})

	t.Run("environment wins", func(t *testing.T) {
		path := writeFile(t, "max_states: 64\nowner: alice\n")
		cfg, err := load(ctx, path, envconfig.MapLookuper(map[string]string{
			"FA_MAX_STATES":   "128",
			"FA_LOG_LEVEL":    "debug",
			"FA_HISTORY_PATH": "/tmp/h.db",
			"MAX_STATES":      "1",
		}))
		require.NoError(t, err)
		assert.Equal(t, 128, cfg.MaxStates)
		assert.Equal(t, "alice", cfg.Owner)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "/tmp/h.db", cfg.HistoryPath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := load(ctx, filepath.Join(t.TempDir(), "nope.yaml"), envconfig.MapLookuper(nil))
		assert.Error(t, err)
	})

	t.Run("broken file", func(t *testing.T) {
		_, err := load(ctx, writeFile(t, "max_states: [1"), envconfig.MapLookuper(nil))
		assert.Error(t, err)
	})

	t.Run("bad environment value", func(t *testing.T) {
		_, err := load(ctx, "", envconfig.MapLookuper(map[string]string{"FA_MAX_STATES": "many"}))
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"ceiling", func(c *Config) { c.MaxStates = 0 }, "MaxStates: must be at least 1"},
		{"history path", func(c *Config) { c.HistoryPath = "" }, "HistoryPath: field is required"},
		{"owner", func(c *Config) { c.Owner = "" }, "Owner: field is required"},
		{"recent limit", func(c *Config) { c.RecentLimit = 5000 }, "RecentLimit: must not exceed 1000"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel: must be one of"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LogFormat: must be one of"},
	}

	require.NoError(t, Default().Validate())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":1`)
}
