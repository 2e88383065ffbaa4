// Package config loads and validates the library's configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for the finquery clients and CLI.
type Config struct {
	AlphaVantage VendorConfig    `json:"alphavantage" yaml:"alphavantage"`
	Marketstack  VendorConfig    `json:"marketstack" yaml:"marketstack"`
	Lookahead    LookaheadConfig `json:"lookahead" yaml:"lookahead"`
	Journal      JournalConfig   `json:"journal" yaml:"journal"`
	Log          LogConfig       `json:"log" yaml:"log"`
}

// VendorConfig holds one vendor's credentials and endpoint overrides.
type VendorConfig struct {
	APIKey         string `json:"api_key" yaml:"api_key"`
	BaseURL        string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the configured request timeout, or zero when unset.
func (v VendorConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutSeconds) * time.Second
}

// LookaheadConfig bounds the trading-calendar search.
type LookaheadConfig struct {
	MaxDays int `json:"max_days" yaml:"max_days"`
}

// JournalConfig selects the audit-journal backend. Type "none" disables
// journaling entirely.
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	QuotesFile   string `json:"quotes_file,omitempty" yaml:"quotes_file,omitempty"`
	FailuresFile string `json:"failures_file,omitempty" yaml:"failures_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // zerolog level name, e.g. "info"
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
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

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
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

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.AlphaVantage.APIKey == "" && c.Marketstack.APIKey == "" {
		return fmt.Errorf("at least one vendor api_key is required")
	}
	if c.AlphaVantage.TimeoutSeconds < 0 || c.Marketstack.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	if c.Lookahead.MaxDays < 0 {
		return fmt.Errorf("lookahead.max_days must not be negative")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.QuotesFile == "" || c.Journal.FailuresFile == "" {
			return fmt.Errorf("journal quotes_file and failures_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults. API keys are left
// empty and must be filled in before use.
func Default() *Config {
	return &Config{
		Lookahead: LookaheadConfig{MaxDays: 30},
		Journal:   JournalConfig{Type: "none"},
		Log:       LogConfig{Level: "info"},
	}
}
