// Package broker defines the capabilities the trading loop needs from an
// execution venue. The sim package satisfies them in-process for
// backtests; the invest package satisfies them against the exchange API.
package broker

import (
	"context"
	"errors"
	"time"

	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
)

// ErrNoHistory reports that a history request returned no candles.
var ErrNoHistory = errors.New("broker: no candle history")

// InstrumentLookup resolves a human ticker into a tradable instrument.
type InstrumentLookup interface {
	InstrumentByTicker(ctx context.Context, ticker string) (market.Instrument, error)
}

// MarketData serves historical candles for strategy warm-up.
type MarketData interface {
	FetchHistory(ctx context.Context, figi string, from, to time.Time, interval time.Duration) ([]market.Candle, error)
}

// CandleStream delivers closed candles as they complete. The channel is
// closed when the stream ends; Err reports why.
type CandleStream interface {
	Candles() <-chan market.Candle
	Err() error
}

// OrderSubmitter executes orders. Every submission yields a fill record,
// including rejections: the ledger keeps the full attempt history.
type OrderSubmitter interface {
	Submit(ctx context.Context, instr market.Instrument, order market.Order, price float64) (ledger.Fill, error)
}

// Account reports the holdings the strategy decides against.
type Account interface {
	Holdings(ctx context.Context, instr market.Instrument) (market.Holdings, error)
}
