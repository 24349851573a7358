package backtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/YroslavBochkov/investRobot/broker"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
	"github.com/YroslavBochkov/investRobot/stats"
	"github.com/YroslavBochkov/investRobot/strategies"
)

// ErrNoCandles reports a feed too short to run over.
var ErrNoCandles = errors.New("backtest: feed produced no candles after warm-up")

// Runner drives one strategy over one candle feed. Candles beyond the
// warm-up prefix are evaluated one at a time; every resulting order is
// executed and its fill recorded before the next candle is seen.
type Runner struct {
	Instrument market.Instrument
	Strategy   strategies.Strategy
	Feed       CandleFeed
	Broker     broker.OrderSubmitter
	Account    broker.Account
	Ledger     *ledger.Ledger
	WarmUpLen  int

	Processors  []stats.Processor
	Calculators []stats.Calculator

	Log logrus.FieldLogger
}

// Result is the outcome of a completed (or cancelled) run.
type Result struct {
	Summary   stats.Summary
	Rows      []ledger.BalanceRow
	Candles   int
	LastPrice float64
}

// Run replays the feed. Cancelling ctx stops the candle loop; fills
// recorded up to that point are still reported.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	candles, err := r.Feed.Candles()
	if err != nil {
		return Result{}, fmt.Errorf("load candles: %w", err)
	}

	warm := r.WarmUpLen
	if warm > len(candles) {
		warm = len(candles)
	}
	if len(candles)-warm == 0 {
		return Result{}, ErrNoCandles
	}

	r.Strategy.WarmUp(candles[:warm])
	log.WithFields(logrus.Fields{
		"strategy": r.Strategy.ID(),
		"figi":     r.Instrument.FIGI,
		"warm_up":  warm,
		"candles":  len(candles) - warm,
	}).Info("backtest started")

	res := Result{}
	for _, c := range candles[warm:] {
		select {
		case <-ctx.Done():
			log.WithError(ctx.Err()).Warn("backtest cancelled")
			return r.report(res)
		default:
		}

		res.Candles++
		res.LastPrice = c.Close

		holdings, err := r.Account.Holdings(ctx, r.Instrument)
		if err != nil {
			return Result{}, fmt.Errorf("read holdings: %w", err)
		}

		decision := r.Strategy.Decide(c, holdings)
		if decision.Order == nil {
			continue
		}

		fill, err := r.Broker.Submit(ctx, r.Instrument, *decision.Order, c.Close)
		if err != nil {
			return Result{}, fmt.Errorf("submit order: %w", err)
		}
		if err := r.Ledger.Record(fill); err != nil {
			return Result{}, fmt.Errorf("record fill: %w", err)
		}

		log.WithFields(logrus.Fields{
			"direction": decision.Order.Direction.String(),
			"lots":      fill.LotsExecuted,
			"status":    string(fill.Status),
			"price":     fill.Price,
		}).Debug("candle produced an order")
	}

	return r.report(res)
}

func (r *Runner) report(res Result) (Result, error) {
	summary, rows := stats.Report(r.Ledger.Fills(), r.Processors, r.Calculators)
	res.Summary = summary
	res.Rows = rows
	return res, nil
}
