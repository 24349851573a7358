// Package config loads and validates the robot configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/YroslavBochkov/investRobot/invest"
	"github.com/YroslavBochkov/investRobot/optimize"
	"github.com/YroslavBochkov/investRobot/strategies"
)

// Config represents the complete robot configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Ledger   LedgerConfig   `json:"ledger" yaml:"ledger"`
	Invest   invest.Config  `json:"invest" yaml:"invest"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Optimize optimize.Grid  `json:"optimize" yaml:"optimize"`
	LogLevel string         `json:"log_level" yaml:"log_level"`
}

// AccountConfig contains the trading account parameters.
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// StrategyConfig selects a strategy and its tuning. Presets override the
// base RSI tuning per ticker.
type StrategyConfig struct {
	Name       string                          `json:"name" yaml:"name"`
	Tickers    []string                        `json:"tickers" yaml:"tickers"`
	Interval   string                          `json:"interval" yaml:"interval"`
	WarmUpLen  int                             `json:"warm_up_len" yaml:"warm_up_len"`
	RSI        strategies.RSIConfig            `json:"rsi" yaml:"rsi"`
	Presets    map[string]strategies.RSIConfig `json:"presets,omitempty" yaml:"presets,omitempty"`
	UsePresets bool                            `json:"use_presets" yaml:"use_presets"`
}

// ParseInterval converts the candle interval string to a duration.
func (s StrategyConfig) ParseInterval() (time.Duration, error) {
	if s.Interval == "" {
		return time.Minute, nil
	}
	return time.ParseDuration(s.Interval)
}

// EffectivePresets merges the built-in per-ticker presets with any
// configured overrides. Disabled presets leave only the overrides.
func (s StrategyConfig) EffectivePresets() map[string]strategies.RSIConfig {
	out := map[string]strategies.RSIConfig{}
	if s.UsePresets {
		for ticker, cfg := range strategies.DefaultPresets() {
			out[ticker] = cfg
		}
	}
	for ticker, cfg := range s.Presets {
		out[ticker] = cfg
	}
	return out
}

// LedgerConfig contains fill persistence parameters.
type LedgerConfig struct {
	Type    string `json:"type" yaml:"type"` // "json" or "sqlite"
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
}

// BacktestConfig points at the candle source a backtest replays.
type BacktestConfig struct {
	CandlesCSV string `json:"candles_csv" yaml:"candles_csv"`
}

// LoadFromFile loads configuration from a file, YAML or JSON by content.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, YAML or JSON by extension.
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

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if len(c.Strategy.Tickers) == 0 {
		return fmt.Errorf("strategy.tickers requires at least one ticker")
	}
	switch strings.ToLower(c.Strategy.Name) {
	case "rsi", "mae", "breakout", "random":
	default:
		return fmt.Errorf("unknown strategy: %s", c.Strategy.Name)
	}
	if _, err := c.Strategy.ParseInterval(); err != nil {
		return fmt.Errorf("strategy.interval: %w", err)
	}
	if c.Strategy.WarmUpLen < 0 {
		return fmt.Errorf("strategy.warm_up_len must not be negative")
	}
	switch c.Ledger.Type {
	case "json":
		if c.Ledger.Path == "" {
			return fmt.Errorf("ledger.path required for JSON type")
		}
	case "sqlite":
		if c.Ledger.DBPath == "" {
			return fmt.Errorf("ledger.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("ledger.type must be 'json' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "RUB",
			Balance:  10000,
		},
		Strategy: StrategyConfig{
			Name:       "rsi",
			Tickers:    []string{"SBER"},
			Interval:   "1m",
			WarmUpLen:  60,
			RSI:        strategies.RSIDefaults(),
			UsePresets: true,
		},
		Ledger: LedgerConfig{
			Type: "json",
			Path: "./fills.json",
		},
		Optimize: optimize.DefaultGrid(),
		LogLevel: "info",
	}
}
