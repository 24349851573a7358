// Package sim is the in-process execution venue used by backtests: it
// fills market orders at the submitted reference price, charges the
// configured commission, and tracks a single-instrument account.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/internal/id"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
)

// Engine simulates order execution against one instrument. Orders are
// clamped to what the account can absorb: an oversized buy or sell
// becomes a partial fill, and an order with nothing executable is
// recorded as rejected. It never errors on a bad order; the fill status
// carries the outcome.
type Engine struct {
	mu       sync.Mutex
	instr    market.Instrument
	comm     commission.Model
	holdings market.Holdings
	log      logrus.FieldLogger

	clock func() time.Time
}

func NewEngine(instr market.Instrument, comm commission.Model, initialBalance float64, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		instr:    instr,
		comm:     comm,
		holdings: market.Holdings{CurrencyBalance: initialBalance},
		log:      log,
		clock:    time.Now,
	}
}

// Holdings reports the simulated account state.
func (e *Engine) Holdings(ctx context.Context, _ market.Instrument) (market.Holdings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.holdings, nil
}

// Submit executes order at the given close price and returns the fill.
// price is the per-unit close; the fill records the per-lot price.
func (e *Engine) Submit(ctx context.Context, instr market.Instrument, order market.Order, price float64) (ledger.Fill, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lotPrice := instr.LotPrice(price)

	fill := ledger.Fill{
		ID:            id.New(),
		Direction:     order.Direction,
		LotsRequested: order.Quantity,
		Price:         lotPrice,
		Currency:      instr.Currency,
		FIGI:          instr.FIGI,
		Time:          e.clock(),
	}

	executable := 0
	switch order.Direction {
	case market.Buy:
		affordable := 0
		if lotPrice > 0 {
			affordable = int(e.holdings.CurrencyBalance / lotPrice)
		}
		executable = minInt(order.Quantity, affordable)
	case market.Sell:
		executable = minInt(order.Quantity, e.holdings.InstrumentBalance)
	}

	if executable < 1 {
		fill.Status = ledger.StatusRejected
		e.log.WithFields(logrus.Fields{
			"figi":      instr.FIGI,
			"direction": order.Direction.String(),
			"requested": order.Quantity,
		}).Warn("order rejected: nothing executable")
		return fill, nil
	}

	fill.LotsExecuted = executable
	fill.Amount = lotPrice * float64(executable)
	fill.Commission = e.comm.PerTrade(fill.Amount)
	if executable < order.Quantity {
		fill.Status = ledger.StatusPartial
	} else {
		fill.Status = ledger.StatusFilled
	}

	switch order.Direction {
	case market.Buy:
		e.holdings.CurrencyBalance -= fill.Amount + fill.Commission
		e.holdings.InstrumentBalance += executable
	case market.Sell:
		e.holdings.CurrencyBalance += fill.Amount - fill.Commission
		e.holdings.InstrumentBalance -= executable
	}

	e.log.WithFields(logrus.Fields{
		"figi":      instr.FIGI,
		"direction": order.Direction.String(),
		"lots":      executable,
		"price":     lotPrice,
		"status":    string(fill.Status),
	}).Debug("order executed")

	return fill, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
