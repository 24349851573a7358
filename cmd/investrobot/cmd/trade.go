package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YroslavBochkov/investRobot/broker"
	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/config"
	"github.com/YroslavBochkov/investRobot/invest"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
	"github.com/YroslavBochkov/investRobot/stats"
	"github.com/YroslavBochkov/investRobot/strategies"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Trade live through the invest API",
	Long: `Run the configured strategy on live candles, one goroutine per
ticker. Interrupt with Ctrl+C: open ledgers are persisted and a final
report is printed for every ticker before exiting.`,
	RunE: runTrade,
}

func init() {
	rootCmd.AddCommand(tradeCmd)
}

func runTrade(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := invest.NewClient(ctx, cfg.Invest, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Error("close invest client")
		}
	}()

	interval, err := cfg.Strategy.ParseInterval()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, ticker := range cfg.Strategy.Tickers {
		ticker := ticker
		g.Go(func() error {
			if err := tradeTicker(gctx, client, cfg, ticker, interval); err != nil {
				return fmt.Errorf("%s: %w", ticker, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("trading stopped")
	return nil
}

func tradeTicker(ctx context.Context, client *invest.Client, cfg *config.Config, ticker string, interval time.Duration) error {
	instr, err := client.InstrumentByTicker(ctx, ticker)
	if err != nil {
		return err
	}

	comm := commission.Tinkoff()
	strat, err := strategies.ByName(cfg.Strategy.Name, instr, comm, cfg.Strategy.EffectivePresets())
	if err != nil {
		return err
	}

	book, err := loadLedger(cfg, ticker)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	recoverEntryPrice(ctx, client, strat, book, instr)

	warmUp := cfg.Strategy.WarmUpLen
	if warmUp > 0 {
		to := time.Now()
		from := to.Add(-time.Duration(warmUp+1) * interval)
		history, err := client.FetchHistory(ctx, instr.FIGI, from, to, interval)
		switch {
		case errors.Is(err, broker.ErrNoHistory):
			log.WithField("ticker", ticker).Warn("no warm-up history available")
		case err != nil:
			return fmt.Errorf("warm up: %w", err)
		default:
			strat.WarmUp(history)
		}
	}

	stream, err := client.StreamCandles(ctx, interval, instr.FIGI)
	if err != nil {
		return err
	}

	trader := &invest.Trader{
		Instrument: instr,
		Strategy:   strat,
		Stream:     stream,
		Broker:     client,
		Account:    client,
		Ledger:     book,
		OnFill: func(ledger.Fill) error {
			return persistLedger(cfg, ticker, book)
		},
		Log: log.WithField("ticker", ticker),
	}

	lastPrice, runErr := trader.Run(ctx)

	if err := persistLedger(cfg, ticker, book); err != nil {
		log.WithError(err).WithField("ticker", ticker).Error("persist ledger")
	}

	summary, _ := stats.Report(book.Fills(),
		[]stats.Processor{stats.BalanceProcessor{Initial: cfg.Account.Balance}},
		[]stats.Calculator{stats.BalanceCalculator{}, stats.MarkToMarketCalculator{LastPrice: instr.LotPrice(lastPrice)}},
	)
	fmt.Printf("Report %s (%d fills)\n", ticker, book.Len())
	printSummary(summary)

	return runErr
}

// recoverEntryPrice re-seeds a restarted strategy holding a position.
// The saved ledger is authoritative; the portfolio's average position
// price is the fallback when no usable ledger exists.
func recoverEntryPrice(ctx context.Context, client *invest.Client, strat strategies.Strategy, book *ledger.Ledger, instr market.Instrument) {
	seeder, ok := strat.(interface{ SetEntryPrice(float64) })
	if !ok {
		return
	}

	res := ledger.Replayer{Log: log}.Replay(book.Fills())
	if price, ok := ledger.LastEntryPrice(res.Rows, instr.Lot); ok {
		seeder.SetEntryPrice(price)
		log.WithField("ticker", instr.Ticker).WithField("entry_price", price).Info("entry price restored from ledger")
		return
	}

	price, err := client.AveragePositionPrice(ctx, instr)
	if err != nil {
		log.WithError(err).WithField("ticker", instr.Ticker).Warn("entry price recovery failed")
		return
	}
	if price > 0 {
		seeder.SetEntryPrice(price)
		log.WithField("ticker", instr.Ticker).WithField("entry_price", price).Info("entry price restored from portfolio")
	}
}
