// Package cmd wires the investrobot CLI together.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/YroslavBochkov/investRobot/config"
)

var (
	cfgFile  string
	logLevel string

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "investrobot",
	Short: "A rule-based trading robot for the Moscow Exchange",
	Long: `investrobot trades shares with rule-based strategies over candle data.

It provides tools for:
  - Backtesting strategies against historical candles
  - Live trading through the public invest API, one goroutine per ticker
  - Replaying the fill ledger into balance history and performance reports
  - Sweeping strategy parameter grids to find profitable tunings
  - Seeding the ledger with manually executed trades`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is fine; the environment may carry the token.
		_ = godotenv.Load()

		log.SetFormatter(&logrus.JSONFormatter{})
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		log.SetLevel(level)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig reads the configured file (or defaults) and applies the
// INVEST_TOKEN / INVEST_ACCOUNT environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if token := strings.TrimSpace(os.Getenv("INVEST_TOKEN")); token != "" {
		cfg.Invest.Token = token
	}
	if account := strings.TrimSpace(os.Getenv("INVEST_ACCOUNT")); account != "" {
		cfg.Invest.AccountID = account
	}
	return cfg, nil
}
