package strategies

import (
	"math"

	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/indicators"
	"github.com/YroslavBochkov/investRobot/market"
)

// RSIConfig tunes the RSI strategy. Thresholds are relative price
// changes (0.01 = 1%); RSIDropThreshold is in RSI points.
type RSIConfig struct {
	Window           int     `yaml:"window" json:"window"`
	TradeCount       int     `yaml:"trade_count" json:"trade_count"`
	MinRange         float64 `yaml:"min_range" json:"min_range"`
	TakeProfit       float64 `yaml:"take_profit" json:"take_profit"`
	StopLoss         float64 `yaml:"stop_loss" json:"stop_loss"`
	RSIDropPeriod    int     `yaml:"rsi_drop_period" json:"rsi_drop_period"`
	RSIDropThreshold float64 `yaml:"rsi_drop_threshold" json:"rsi_drop_threshold"`
	MinPeriod        int     `yaml:"min_period" json:"min_period"`
	TrailingStop     float64 `yaml:"trailing_stop" json:"trailing_stop"`
}

// RSIDefaults returns the tuning used when no per-ticker preset applies.
func RSIDefaults() RSIConfig {
	return RSIConfig{
		Window:           14,
		TradeCount:       1,
		MinRange:         0.001,
		TakeProfit:       0.01,
		StopLoss:         0.005,
		RSIDropPeriod:    3,
		RSIDropThreshold: 20,
		MinPeriod:        10,
		TrailingStop:     0.01,
	}
}

// RSI is the canonical strategy: it buys oversold dips and exits through
// a fixed priority of trailing-stop, local-minimum breakout, RSI-drop,
// take-profit, and stop-loss rules, never voluntarily closing a profit
// smaller than the round-trip commission.
//
// Two states per instrument: flat (no entry price) and holding (entry
// price set, trailing peak tracked). Transitions happen only on candles.
type RSI struct {
	cfg   RSIConfig
	instr market.Instrument
	comm  commission.Model

	history *PriceHistory

	entryPrice float64
	haveEntry  bool
	peak       float64
	havePeak   bool
}

func NewRSI(cfg RSIConfig, instr market.Instrument, comm commission.Model) *RSI {
	if cfg.Window < 2 {
		cfg.Window = 2
	}
	if cfg.TradeCount < 1 {
		cfg.TradeCount = 1
	}
	return &RSI{
		cfg:     cfg,
		instr:   instr,
		comm:    comm,
		history: NewPriceHistory(maxInt(cfg.Window+1, 50)),
	}
}

func (s *RSI) ID() string { return "rsi" }

func (s *RSI) WarmUp(history []market.Candle) {
	for _, c := range history {
		s.history.Append(c.Close)
	}
}

// SetEntryPrice seeds the entry price after a restart, recovered from
// the last balance row of the saved ledger.
func (s *RSI) SetEntryPrice(price float64) {
	s.entryPrice = price
	s.haveEntry = price > 0
}

func (s *RSI) Decide(c market.Candle, h market.Holdings) Decision {
	price := c.Close
	s.history.Append(price)

	// Signals need a full window plus the candle that moves it.
	if s.history.Len() < s.cfg.Window+1 {
		return Decision{}
	}

	window := s.history.Tail(s.cfg.Window + 1)

	// Volatility gate comes before everything else: a range below
	// MinRange is noise, not a market.
	if (indicators.Max(window)-indicators.Min(window))/price < s.cfg.MinRange {
		return Decision{}
	}

	rsi := indicators.RSI(window)
	lotPrice := s.instr.LotPrice(price)

	// Relative round-trip commission against the entry notional; the
	// profit floor every voluntary exit must clear.
	minCommissionRel := 0.0
	if s.haveEntry {
		minCommissionRel = s.comm.RoundTrip(lotPrice) / (s.entryPrice * float64(s.instr.Lot))
	}

	switch {
	case rsi < 25 && h.InstrumentBalance == 0 && !s.haveEntry:
		return s.enter(price, h)

	case rsi > 75 && h.InstrumentBalance > 0 && s.haveEntry:
		return s.momentumReversalExit(price, h, minCommissionRel)

	case h.InstrumentBalance > 0 && s.haveEntry:
		return s.holdingExits(price, h, minCommissionRel)
	}

	return Decision{}
}

func (s *RSI) enter(price float64, h market.Holdings) Decision {
	lotPrice := s.instr.LotPrice(price)
	affordable := int(h.CurrencyBalance / lotPrice)
	if affordable < 1 {
		return Decision{}
	}

	s.entryPrice = price
	s.haveEntry = true
	s.havePeak = false

	return buy(minInt(s.cfg.TradeCount, affordable))
}

// momentumReversalExit sells into overbought strength, but only with the
// price already under its MA(20) and the gain clearing the commission
// floor. When the confirmation fails no other exit runs this candle.
func (s *RSI) momentumReversalExit(price float64, h market.Holdings, minCommissionRel float64) Decision {
	ma := indicators.MA(s.history.Values(), 20)
	change := (price - s.entryPrice) / s.entryPrice

	if price < ma && change >= math.Max(s.cfg.TakeProfit, minCommissionRel) {
		return s.exit(h)
	}
	return Decision{}
}

// holdingExits evaluates the exit rules in fixed priority order; the
// first applicable rule wins and at most one order leaves per candle.
func (s *RSI) holdingExits(price float64, h market.Holdings, minCommissionRel float64) Decision {
	change := (price - s.entryPrice) / s.entryPrice

	// The peak never decreases while holding.
	if !s.havePeak || price > s.peak {
		s.peak = price
		s.havePeak = true
	}

	// Trailing-stop: retracement from the post-entry peak.
	if s.havePeak && price < s.peak*(1-s.cfg.TrailingStop) {
		return s.exit(h)
	}

	// Local-minimum breakout: close under the minimum of the prior
	// MinPeriod-1 prices while still in profit past commission.
	if s.history.Len() >= s.cfg.MinPeriod {
		prior := s.history.Tail(s.cfg.MinPeriod)
		localMin := indicators.Min(prior[:len(prior)-1])
		if price < localMin && change > minCommissionRel {
			return s.exit(h)
		}
	}

	// RSI-drop: momentum collapsing by RSIDropThreshold points over
	// RSIDropPeriod candles while in profit past commission.
	if s.history.Len() >= s.cfg.Window+1+s.cfg.RSIDropPeriod {
		vals := s.history.Values()
		n := len(vals)
		rsiNow := indicators.RSI(vals[n-s.cfg.Window-1:])
		rsiPrev := indicators.RSI(vals[n-s.cfg.Window-1-s.cfg.RSIDropPeriod : n-s.cfg.RSIDropPeriod])
		if rsiPrev-rsiNow >= s.cfg.RSIDropThreshold && change > minCommissionRel {
			return s.exit(h)
		}
	}

	// Take-profit, against the commission-aware floor.
	if change >= math.Max(s.cfg.TakeProfit, minCommissionRel) {
		return s.exit(h)
	}

	// Stop-loss: the loss is accepted even though it cannot cover
	// commission.
	if change <= -s.cfg.StopLoss {
		return s.exit(h)
	}

	return Decision{}
}

// exit emits a sell for at most TradeCount lots. A full close clears the
// entry price and trailing peak; a partial close keeps both, so later
// exits still compare against the original entry.
func (s *RSI) exit(h market.Holdings) Decision {
	qty := minInt(s.cfg.TradeCount, h.InstrumentBalance)
	if qty < 1 {
		return Decision{}
	}
	if h.InstrumentBalance-qty == 0 {
		s.haveEntry = false
		s.havePeak = false
	}
	return sell(qty)
}
