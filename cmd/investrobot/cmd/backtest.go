package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/YroslavBochkov/investRobot/backtest"
	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
	"github.com/YroslavBochkov/investRobot/sim"
	"github.com/YroslavBochkov/investRobot/stats"
	"github.com/YroslavBochkov/investRobot/strategies"
)

var (
	backtestCSV    string
	backtestTicker string
	backtestLot    int
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay historical candles through a strategy",
	Long: `Run the configured strategy over a CSV candle file against the
simulated execution engine and print the performance report.`,
	RunE: runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestCSV, "csv", "", "candle CSV file (overrides config)")
	backtestCmd.Flags().StringVar(&backtestTicker, "ticker", "", "ticker to backtest (default: first configured)")
	backtestCmd.Flags().IntVar(&backtestLot, "lot", 1, "instrument lot size")
	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	csvPath := backtestCSV
	if csvPath == "" {
		csvPath = cfg.Backtest.CandlesCSV
	}
	if csvPath == "" {
		return fmt.Errorf("no candle CSV configured; pass --csv or set backtest.candles_csv")
	}

	ticker := backtestTicker
	if ticker == "" {
		ticker = cfg.Strategy.Tickers[0]
	}

	instr := market.Instrument{
		Ticker:   ticker,
		Currency: cfg.Account.Currency,
		Lot:      backtestLot,
	}

	comm := commission.Tinkoff()
	strat, err := strategies.ByName(cfg.Strategy.Name, instr, comm, cfg.Strategy.EffectivePresets())
	if err != nil {
		return err
	}

	engine := sim.NewEngine(instr, comm, cfg.Account.Balance, log)
	book := ledger.New()

	runner := &backtest.Runner{
		Instrument: instr,
		Strategy:   strat,
		Feed:       backtest.CSVFeed{Path: csvPath},
		Broker:     engine,
		Account:    engine,
		Ledger:     book,
		WarmUpLen:  cfg.Strategy.WarmUpLen,
		Processors: []stats.Processor{stats.BalanceProcessor{Initial: cfg.Account.Balance}},
		Calculators: []stats.Calculator{
			stats.BalanceCalculator{},
		},
		Log: log,
	}

	res, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	// The open position, if any, is valued at the final candle. The
	// balance rows carry per-lot prices, so the close is scaled up.
	m2m := stats.MarkToMarketCalculator{LastPrice: instr.LotPrice(res.LastPrice)}
	for k, v := range m2m.Calculate(res.Rows, book.Fills()) {
		res.Summary[k] = v
	}

	fmt.Printf("Backtest %s over %d candles (%d fills)\n", ticker, res.Candles, book.Len())
	printSummary(res.Summary)
	return nil
}

func printSummary(s stats.Summary) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-26s %14.2f\n", k, s[k])
	}
}
