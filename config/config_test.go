package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "./portfolio.db", cfg.Ledger.DBPath)
	assert.Equal(t, "usd", cfg.Prices.Currency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())

	d, err := cfg.Prices.ParseTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"missing db path", func(c *Config) { c.Ledger.DBPath = "" }, "ledger.db_path is required"},
		{"missing currency", func(c *Config) { c.Prices.Currency = "" }, "prices.currency is required"},
		{"bad timeout", func(c *Config) { c.Prices.Timeout = "soon" }, "prices.timeout"},
		{"negative timeout", func(c *Config) { c.Prices.Timeout = "-1s" }, "must not be negative"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coinfolio.yaml")

	cfg := Default()
	cfg.Ledger.DBPath = "/tmp/ledger.db"
	cfg.Prices.Currency = "eur"
	cfg.Prices.APIKey = "secret"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coinfolio.json")

	cfg := Default()
	cfg.Log.Format = "json"
	require.NoError(t, cfg.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"db_path": "./portfolio.db"`)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prices:\n  currency: gbp\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gbp", cfg.Prices.Currency)
	assert.Equal(t, "./portfolio.db", cfg.Ledger.DBPath)
	assert.Equal(t, "30s", cfg.Prices.Timeout)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")

	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("COINFOLIO_DB", "/data/env.db")
	t.Setenv("COINFOLIO_CURRENCY", "jpy")
	t.Setenv("COINGECKO_API_KEY", "k")
	t.Setenv("COINGECKO_PRO", "true")
	t.Setenv("COINGECKO_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/env.db", cfg.Ledger.DBPath)
	assert.Equal(t, "jpy", cfg.Prices.Currency)
	assert.Equal(t, "k", cfg.Prices.APIKey)
	assert.True(t, cfg.Prices.Pro)
	assert.Equal(t, "http://127.0.0.1:1", cfg.Prices.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("COINGECKO_PRO", "maybe")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COINGECKO_PRO")
}
