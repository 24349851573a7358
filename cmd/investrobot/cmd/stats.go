package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/stats"
)

var (
	statsTicker    string
	statsLastPrice float64
	statsExportCSV string
	statsShowRows  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report performance from the saved fill ledger",
	Long: `Replay each ticker's persisted fills into the balance history and
print the income report. With --last-price the open position is also
valued mark-to-market.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsTicker, "ticker", "", "report a single ticker (default: all configured)")
	statsCmd.Flags().Float64Var(&statsLastPrice, "last-price", 0, "per-lot price for mark-to-market valuation")
	statsCmd.Flags().StringVar(&statsExportCSV, "export-csv", "", "also export the fills to a CSV file")
	statsCmd.Flags().BoolVar(&statsShowRows, "rows", false, "print the balance history rows")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tickers := cfg.Strategy.Tickers
	if statsTicker != "" {
		tickers = []string{statsTicker}
	}

	for _, ticker := range tickers {
		book, err := loadLedger(cfg, ticker)
		if err != nil {
			return fmt.Errorf("%s: %w", ticker, err)
		}

		calculators := []stats.Calculator{stats.BalanceCalculator{}}
		if statsLastPrice > 0 {
			calculators = append(calculators, stats.MarkToMarketCalculator{LastPrice: statsLastPrice})
		}

		summary, rows := stats.Report(book.Fills(),
			[]stats.Processor{stats.BalanceProcessor{Initial: cfg.Account.Balance}},
			calculators,
		)

		fmt.Printf("Report %s (%d fills)\n", ticker, book.Len())
		printSummary(summary)

		if statsShowRows {
			printRows(rows)
		}

		if statsExportCSV != "" {
			path := ledgerPathFor(statsExportCSV, ticker)
			if err := ledger.WriteCSV(path, book.Fills()); err != nil {
				return fmt.Errorf("%s: export csv: %w", ticker, err)
			}
			fmt.Printf("  fills exported to %s\n", path)
		}
	}
	return nil
}

func printRows(rows []ledger.BalanceRow) {
	fmt.Printf("  %-26s %-4s %10s %6s %8s %12s %12s\n",
		"time", "dir", "price", "lots", "position", "avg_price", "balance")
	for _, r := range rows {
		fmt.Printf("  %-26s %-4s %10.2f %6d %8d %12.2f %12.2f\n",
			r.Time.Format("2006-01-02 15:04:05"),
			r.Direction.String(),
			r.Price, r.Lots, r.InstrumentBalance, r.AveragePositionPrice, r.CurrencyBalance)
	}
}
