package strategies

import (
	"math/rand"

	"github.com/YroslavBochkov/investRobot/market"
)

// RandomConfig bounds the random order sizing. Low may be negative
// (sells); High positive (buys).
type RandomConfig struct {
	Low  int
	High int
	Seed int64 // 0 leaves the source unseeded-deterministic at 1
}

// Random emits uniformly random order sizes within feasible bounds. It
// never trades profitably on purpose; it exists as a null baseline that
// exercises the Strategy capability in property tests.
type Random struct {
	cfg   RandomConfig
	instr market.Instrument
	rng   *rand.Rand
}

func NewRandom(cfg RandomConfig, instr market.Instrument) *Random {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &Random{cfg: cfg, instr: instr, rng: rand.New(rand.NewSource(seed))}
}

func (s *Random) ID() string { return "random" }

func (s *Random) WarmUp([]market.Candle) {}

func (s *Random) Decide(c market.Candle, h market.Holdings) Decision {
	low := maxInt(s.cfg.Low, -h.InstrumentBalance)
	high := minInt(s.cfg.High, int(h.CurrencyBalance/s.instr.LotPrice(c.Close)))
	if high < low {
		return Decision{}
	}

	quantity := low + s.rng.Intn(high-low+1)
	switch {
	case quantity > 0:
		return buy(quantity)
	case quantity < 0:
		return sell(-quantity)
	default:
		return Decision{}
	}
}
