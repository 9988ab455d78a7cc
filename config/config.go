package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradebook/journal"
)

// Config is the application configuration: where the journal database
// lives and the account values used to seed settings on first run.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Account  AccountConfig  `json:"account" yaml:"account"`
}

// DatabaseConfig locates the sqlite journal file.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// AccountConfig holds the starting balance and display currency.
type AccountConfig struct {
	InitialFund float64 `json:"initial_fund" yaml:"initial_fund"`
	Currency    string  `json:"currency" yaml:"currency"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content).
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
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Account.InitialFund < 0 {
		return fmt.Errorf("account.initial_fund must not be negative")
	}
	if _, err := journal.ParseCurrency(c.Account.Currency); err != nil {
		return fmt.Errorf("account.currency: %w", err)
	}
	return nil
}

// Settings converts the account section into store settings.
func (c *Config) Settings() journal.Settings {
	cur, _ := journal.ParseCurrency(c.Account.Currency)
	return journal.Settings{
		InitialFund: c.Account.InitialFund,
		Currency:    cur,
	}
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	def := journal.DefaultSettings()
	return &Config{
		Database: DatabaseConfig{
			Path: "./tradebook.sqlite",
		},
		Account: AccountConfig{
			InitialFund: def.InitialFund,
			Currency:    string(def.Currency),
		},
	}
}
