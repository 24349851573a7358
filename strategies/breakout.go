package strategies

import (
	"math"

	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/indicators"
	"github.com/YroslavBochkov/investRobot/market"
)

// BreakoutConfig tunes the fixed-window breakout strategy.
type BreakoutConfig struct {
	Window     int     `yaml:"window" json:"window"`
	TradeCount int     `yaml:"trade_count" json:"trade_count"`
	MinRange   float64 `yaml:"min_range" json:"min_range"`
	TakeProfit float64 `yaml:"take_profit" json:"take_profit"`
	StopLoss   float64 `yaml:"stop_loss" json:"stop_loss"`
}

func BreakoutDefaults() BreakoutConfig {
	return BreakoutConfig{
		Window:     60,
		TradeCount: 1,
		MinRange:   0.0005,
		TakeProfit: 0.01,
		StopLoss:   0.005,
	}
}

// Breakout is the simplest variant: RSI thresholds over a fixed window,
// buying oversold when flat and selling overbought when holding without
// further confirmation, plus commission-floored take-profit/stop-loss.
type Breakout struct {
	cfg   BreakoutConfig
	instr market.Instrument
	comm  commission.Model

	history *PriceHistory

	entryPrice float64
	haveEntry  bool
}

func NewBreakout(cfg BreakoutConfig, instr market.Instrument, comm commission.Model) *Breakout {
	if cfg.Window < 2 {
		cfg.Window = 2
	}
	if cfg.TradeCount < 1 {
		cfg.TradeCount = 1
	}
	return &Breakout{
		cfg:     cfg,
		instr:   instr,
		comm:    comm,
		history: NewPriceHistory(cfg.Window + 1),
	}
}

func (s *Breakout) ID() string { return "breakout" }

func (s *Breakout) WarmUp(history []market.Candle) {
	for _, c := range history {
		s.history.Append(c.Close)
	}
}

func (s *Breakout) Decide(c market.Candle, h market.Holdings) Decision {
	price := c.Close
	s.history.Append(price)

	if s.history.Len() < s.cfg.Window+1 {
		return Decision{}
	}

	window := s.history.Tail(s.cfg.Window + 1)
	if (indicators.Max(window)-indicators.Min(window))/price < s.cfg.MinRange {
		return Decision{}
	}

	rsi := indicators.RSI(window)

	minCommissionRel := 0.0
	if s.haveEntry {
		minCommissionRel = s.comm.RoundTrip(s.instr.LotPrice(price)) / (s.entryPrice * float64(s.instr.Lot))
	}

	switch {
	case rsi < 25 && h.InstrumentBalance == 0:
		affordable := int(h.CurrencyBalance / s.instr.LotPrice(price))
		if affordable < 1 {
			return Decision{}
		}
		s.entryPrice = price
		s.haveEntry = true
		return buy(minInt(s.cfg.TradeCount, affordable))

	case rsi > 75 && h.InstrumentBalance > 0:
		return s.exit(h)

	case h.InstrumentBalance > 0 && s.haveEntry:
		change := (price - s.entryPrice) / s.entryPrice
		if change >= math.Max(s.cfg.TakeProfit, minCommissionRel) {
			return s.exit(h)
		}
		if change <= -s.cfg.StopLoss {
			return s.exit(h)
		}
	}

	return Decision{}
}

func (s *Breakout) exit(h market.Holdings) Decision {
	qty := minInt(s.cfg.TradeCount, h.InstrumentBalance)
	if qty < 1 {
		return Decision{}
	}
	if h.InstrumentBalance-qty == 0 {
		s.haveEntry = false
	}
	return sell(qty)
}
