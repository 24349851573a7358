package strategies

import (
	"math"

	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/indicators"
	"github.com/YroslavBochkov/investRobot/market"
)

// MAEConfig tunes the moving-average crossover strategy.
type MAEConfig struct {
	ShortLen   int     `yaml:"short_len" json:"short_len"`
	LongLen    int     `yaml:"long_len" json:"long_len"`
	TradeCount int     `yaml:"trade_count" json:"trade_count"`
	TakeProfit float64 `yaml:"take_profit" json:"take_profit"`
	StopLoss   float64 `yaml:"stop_loss" json:"stop_loss"`
}

func MAEDefaults() MAEConfig {
	return MAEConfig{
		ShortLen:   5,
		LongLen:    20,
		TradeCount: 1,
		TakeProfit: 0.01,
		StopLoss:   0.005,
	}
}

// MAE trades short/long SMA crossovers: a golden cross buys when flat, a
// death cross sells when holding. Take-profit and stop-loss apply the
// same commission floor as the RSI strategy but without its trailing or
// momentum refinements.
type MAE struct {
	cfg   MAEConfig
	instr market.Instrument
	comm  commission.Model

	history *PriceHistory

	prevShortAbove bool
	havePrevSign   bool

	entryPrice float64
	haveEntry  bool
}

func NewMAE(cfg MAEConfig, instr market.Instrument, comm commission.Model) *MAE {
	if cfg.ShortLen < 1 {
		cfg.ShortLen = 1
	}
	if cfg.LongLen <= cfg.ShortLen {
		cfg.LongLen = cfg.ShortLen + 1
	}
	if cfg.TradeCount < 1 {
		cfg.TradeCount = 1
	}
	return &MAE{
		cfg:     cfg,
		instr:   instr,
		comm:    comm,
		history: NewPriceHistory(cfg.LongLen + 1),
	}
}

func (s *MAE) ID() string { return "mae" }

// WarmUp seeds the history and the prior crossover sign, so the first
// live candle can already detect a cross.
func (s *MAE) WarmUp(history []market.Candle) {
	for _, c := range history {
		s.history.Append(c.Close)
	}
	if s.history.Len() >= s.cfg.LongLen {
		vals := s.history.Values()
		s.prevShortAbove = indicators.MA(vals, s.cfg.ShortLen) > indicators.MA(vals, s.cfg.LongLen)
		s.havePrevSign = true
	}
}

func (s *MAE) Decide(c market.Candle, h market.Holdings) Decision {
	price := c.Close
	s.history.Append(price)

	if s.history.Len() < s.cfg.LongLen {
		return Decision{}
	}

	vals := s.history.Values()
	shortAbove := indicators.MA(vals, s.cfg.ShortLen) > indicators.MA(vals, s.cfg.LongLen)

	if !s.havePrevSign {
		s.prevShortAbove = shortAbove
		s.havePrevSign = true
		return Decision{}
	}

	crossed := shortAbove != s.prevShortAbove
	s.prevShortAbove = shortAbove

	minCommissionRel := 0.0
	if s.haveEntry {
		minCommissionRel = s.comm.RoundTrip(s.instr.LotPrice(price)) / (s.entryPrice * float64(s.instr.Lot))
	}

	switch {
	case crossed && shortAbove && h.InstrumentBalance == 0:
		affordable := int(h.CurrencyBalance / s.instr.LotPrice(price))
		if affordable < 1 {
			return Decision{}
		}
		s.entryPrice = price
		s.haveEntry = true
		return buy(minInt(s.cfg.TradeCount, affordable))

	case crossed && !shortAbove && h.InstrumentBalance > 0:
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

func (s *MAE) exit(h market.Holdings) Decision {
	qty := minInt(s.cfg.TradeCount, h.InstrumentBalance)
	if qty < 1 {
		return Decision{}
	}
	if h.InstrumentBalance-qty == 0 {
		s.haveEntry = false
	}
	return sell(qty)
}
