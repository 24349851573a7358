package invest

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/YroslavBochkov/investRobot/broker"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
	"github.com/YroslavBochkov/investRobot/strategies"
)

// Trader drives one strategy over a live candle stream. It mirrors the
// backtest runner's candle loop but pulls holdings from the account
// before every decision, so external balance changes are picked up.
type Trader struct {
	Instrument market.Instrument
	Strategy   strategies.Strategy
	Stream     broker.CandleStream
	Broker     broker.OrderSubmitter
	Account    broker.Account
	Ledger     *ledger.Ledger

	// OnFill, when set, is called after each recorded fill; the trade
	// command uses it to persist the ledger as it grows.
	OnFill func(ledger.Fill) error

	Log logrus.FieldLogger
}

// Run consumes the stream until it closes or ctx is cancelled. A
// cancelled context is a clean stop, not an error: fills recorded so far
// remain in the ledger for the final report.
func (t *Trader) Run(ctx context.Context) (lastPrice float64, err error) {
	log := t.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	log.WithFields(logrus.Fields{
		"strategy": t.Strategy.ID(),
		"ticker":   t.Instrument.Ticker,
		"figi":     t.Instrument.FIGI,
	}).Info("live trading started")

	for {
		select {
		case <-ctx.Done():
			log.Info("live trading stopped")
			return lastPrice, nil

		case c, ok := <-t.Stream.Candles():
			if !ok {
				if serr := t.Stream.Err(); serr != nil && !errors.Is(serr, context.Canceled) {
					return lastPrice, fmt.Errorf("candle stream: %w", serr)
				}
				return lastPrice, nil
			}
			lastPrice = c.Close

			holdings, err := t.Account.Holdings(ctx, t.Instrument)
			if err != nil {
				log.WithError(err).Warn("skip candle: holdings unavailable")
				continue
			}

			decision := t.Strategy.Decide(c, holdings)
			if decision.Order == nil {
				continue
			}

			fill, err := t.Broker.Submit(ctx, t.Instrument, *decision.Order, c.Close)
			if err != nil {
				log.WithError(err).Error("order submission failed")
				continue
			}
			if err := t.Ledger.Record(fill); err != nil {
				return lastPrice, fmt.Errorf("record fill: %w", err)
			}
			if t.OnFill != nil {
				if err := t.OnFill(fill); err != nil {
					log.WithError(err).Error("persist fill")
				}
			}
		}
	}
}
