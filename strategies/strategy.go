// Package strategies contains the decision state machines that turn a
// rolling price history into buy/sell/hold recommendations.
package strategies

import (
	"fmt"
	"strings"

	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/market"
)

// Decision is the outcome of evaluating one candle. A nil Order means
// hold: the absence of a tradable signal is not an error.
type Decision struct {
	Order *market.Order
}

// Strategy is the capability every variant implements. Decide consumes
// exactly one closed candle together with the holdings the execution
// layer reports; it never mutates the position itself. WarmUp
// pre-populates internal price history from historical candles before
// live evaluation.
type Strategy interface {
	Decide(c market.Candle, h market.Holdings) Decision
	WarmUp(history []market.Candle)
	ID() string
}

// ByName constructs a strategy by its short identifier. The RSI variant
// picks up any per-ticker preset for the instrument.
func ByName(name string, instr market.Instrument, comm commission.Model, presets map[string]RSIConfig) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rsi":
		cfg := RSIDefaults()
		if p, ok := presets[instr.Ticker]; ok {
			cfg = p
		}
		return NewRSI(cfg, instr, comm), nil

	case "mae":
		return NewMAE(MAEDefaults(), instr, comm), nil

	case "breakout":
		return NewBreakout(BreakoutDefaults(), instr, comm), nil

	case "random":
		return NewRandom(RandomConfig{Low: -1, High: 1}, instr), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: rsi, mae, breakout, random)", name)
	}
}

func sell(quantity int) Decision {
	return Decision{Order: &market.Order{Direction: market.Sell, Quantity: quantity, Type: market.Market}}
}

func buy(quantity int) Decision {
	return Decision{Order: &market.Order{Direction: market.Buy, Quantity: quantity, Type: market.Market}}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
