package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YroslavBochkov/investRobot/backtest"
	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/market"
	"github.com/YroslavBochkov/investRobot/optimize"
)

var (
	optimizeCSV    string
	optimizeTicker string
	optimizeLot    int
	optimizeTop    int
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Sweep the RSI parameter grid over historical candles",
	Long: `Backtest every combination of the configured parameter grid and
print the best tunings ranked by income.`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeCSV, "csv", "", "candle CSV file (overrides config)")
	optimizeCmd.Flags().StringVar(&optimizeTicker, "ticker", "", "ticker label for the report")
	optimizeCmd.Flags().IntVar(&optimizeLot, "lot", 1, "instrument lot size")
	optimizeCmd.Flags().IntVar(&optimizeTop, "top", 5, "how many best trials to print")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	csvPath := optimizeCSV
	if csvPath == "" {
		csvPath = cfg.Backtest.CandlesCSV
	}
	if csvPath == "" {
		return fmt.Errorf("no candle CSV configured; pass --csv or set backtest.candles_csv")
	}

	ticker := optimizeTicker
	if ticker == "" {
		ticker = cfg.Strategy.Tickers[0]
	}

	sweep := &optimize.Sweep{
		Instrument: market.Instrument{
			Ticker:   ticker,
			Currency: cfg.Account.Currency,
			Lot:      optimizeLot,
		},
		Commission: commission.Tinkoff(),
		Feed:       backtest.CSVFeed{Path: csvPath},
		Base:       cfg.Strategy.RSI,
		Grid:       cfg.Optimize,
		WarmUpLen:  cfg.Strategy.WarmUpLen,
		Balance:    cfg.Account.Balance,
		Log:        log,
	}

	trials, err := sweep.Run(cmd.Context())
	if err != nil {
		return err
	}

	top := optimizeTop
	if top > len(trials) {
		top = len(trials)
	}

	fmt.Printf("Best tunings for %s (%d trials)\n", ticker, len(trials))
	for _, trial := range trials[:top] {
		fmt.Printf("  window=%-3d min_range=%-6.4f take_profit=%-6.4f stop_loss=%-6.4f => income=%.2f (%d fills)\n",
			trial.Config.Window, trial.Config.MinRange, trial.Config.TakeProfit, trial.Config.StopLoss,
			trial.Income, trial.Trades)
	}
	return nil
}
