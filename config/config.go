package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents the complete coinfolio configuration
type Config struct {
	Ledger LedgerConfig `json:"ledger" yaml:"ledger"`
	Prices PricesConfig `json:"prices" yaml:"prices"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// LedgerConfig says where transactions are stored
type LedgerConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PricesConfig configures the CoinGecko client
type PricesConfig struct {
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Pro      bool   `json:"pro,omitempty" yaml:"pro,omitempty"`
	Timeout  string `json:"timeout" yaml:"timeout"` // e.g. "30s"
	Currency string `json:"currency" yaml:"currency"`
}

// ParseTimeout converts the timeout string to time.Duration
func (p PricesConfig) ParseTimeout() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(p.Timeout)
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load builds the effective configuration: defaults, then the file at path
// when path is not empty, then environment variables. A .env file in the
// working directory is read first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from COINFOLIO_* / COINGECKO_* variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("COINFOLIO_DB"); ok {
		c.Ledger.DBPath = v
	}
	if v, ok := os.LookupEnv("COINFOLIO_CURRENCY"); ok {
		c.Prices.Currency = v
	}
	if v, ok := os.LookupEnv("COINGECKO_BASE_URL"); ok {
		c.Prices.BaseURL = v
	}
	if v, ok := os.LookupEnv("COINGECKO_API_KEY"); ok {
		c.Prices.APIKey = v
	}
	if v, ok := os.LookupEnv("COINGECKO_PRO"); ok {
		pro, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COINGECKO_PRO: %w", err)
		}
		c.Prices.Pro = pro
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Ledger.DBPath == "" {
		return fmt.Errorf("ledger.db_path is required")
	}
	if c.Prices.Currency == "" {
		return fmt.Errorf("prices.currency is required")
	}
	if d, err := c.Prices.ParseTimeout(); err != nil {
		return fmt.Errorf("prices.timeout: %w", err)
	} else if d < 0 {
		return fmt.Errorf("prices.timeout must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			DBPath: "./portfolio.db",
		},
		Prices: PricesConfig{
			Timeout:  "30s",
			Currency: "usd",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
