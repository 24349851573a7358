package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/market"
)

func testInstrument() market.Instrument {
	return market.Instrument{
		FIGI:      "BBG004730N88",
		Ticker:    "SBER",
		ClassCode: "TQBR",
		Currency:  "RUB",
		Lot:       1,
	}
}

func candle(close float64) market.Candle {
	return market.Candle{Open: close, High: close, Low: close, Close: close, Time: time.Now()}
}

func candles(closes ...float64) []market.Candle {
	out := make([]market.Candle, 0, len(closes))
	for _, c := range closes {
		out = append(out, candle(c))
	}
	return out
}

func declining(from float64, n int) []market.Candle {
	out := make([]market.Candle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, candle(from-float64(i)))
	}
	return out
}

func TestRSIBuysOversold(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.Window = 14
	cfg.TradeCount = 5

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.WarmUp(declining(112, 15)) // strictly falling: RSI will be 0

	d := s.Decide(candle(98), market.Holdings{InstrumentBalance: 0, CurrencyBalance: 10_000})
	require.NotNil(t, d.Order)
	assert.Equal(t, market.Buy, d.Order.Direction)
	// floor(10000 / 98) = 102 affordable lots, capped by trade count.
	assert.Equal(t, 5, d.Order.Quantity)
}

func TestRSIEntryRequiresAffordableLot(t *testing.T) {
	t.Parallel()

	s := NewRSI(RSIDefaults(), testInstrument(), commission.Tinkoff())
	s.WarmUp(declining(112, 15))

	d := s.Decide(candle(98), market.Holdings{InstrumentBalance: 0, CurrencyBalance: 50})
	assert.Nil(t, d.Order)
}

func TestRSINoSignalWithoutFullWindow(t *testing.T) {
	t.Parallel()

	s := NewRSI(RSIDefaults(), testInstrument(), commission.Tinkoff())
	s.WarmUp(declining(112, 5))

	d := s.Decide(candle(98), market.Holdings{CurrencyBalance: 10_000})
	assert.Nil(t, d.Order)
}

func TestRSIVolatilityGateWins(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.MinRange = 0.5 // impossible bar-range requirement

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)
	s.WarmUp(declining(115, 16))

	// Take-profit conditions hold, but the gate silences everything.
	d := s.Decide(candle(150), market.Holdings{InstrumentBalance: 2, CurrencyBalance: 0})
	assert.Nil(t, d.Order)
}

func TestRSITakeProfitClosesFully(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.TakeProfit = 0.01
	cfg.TradeCount = 5

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)
	s.WarmUp(declining(115, 16))

	d := s.Decide(candle(101.5), market.Holdings{InstrumentBalance: 2, CurrencyBalance: 0})
	require.NotNil(t, d.Order)
	assert.Equal(t, market.Sell, d.Order.Direction)
	assert.Equal(t, 2, d.Order.Quantity)

	// Entry was cleared by the full close: a further gain produces no
	// holding exit.
	d = s.Decide(candle(103), market.Holdings{InstrumentBalance: 2, CurrencyBalance: 0})
	assert.Nil(t, d.Order)
}

func TestRSIPartialCloseKeepsEntry(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.TradeCount = 1

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)
	s.WarmUp(declining(115, 16))

	d := s.Decide(candle(101.5), market.Holdings{InstrumentBalance: 3, CurrencyBalance: 0})
	require.NotNil(t, d.Order)
	assert.Equal(t, 1, d.Order.Quantity)

	// Still holding 2 lots against the original entry price.
	d = s.Decide(candle(101.6), market.Holdings{InstrumentBalance: 2, CurrencyBalance: 0})
	require.NotNil(t, d.Order)
	assert.Equal(t, market.Sell, d.Order.Direction)
}

func TestRSITrailingStop(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.TakeProfit = 0.5 // keep take-profit out of the way
	cfg.TrailingStop = 0.01
	cfg.MinRange = 0.0001

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)
	s.WarmUp(declining(115, 16))

	// Peak rises to 110; no exit triggers yet.
	d := s.Decide(candle(110), market.Holdings{InstrumentBalance: 1, CurrencyBalance: 0})
	assert.Nil(t, d.Order)

	// 108 < 110 * 0.99: retracement past the trailing stop.
	d = s.Decide(candle(108), market.Holdings{InstrumentBalance: 1, CurrencyBalance: 0})
	require.NotNil(t, d.Order)
	assert.Equal(t, market.Sell, d.Order.Direction)
}

func TestRSIStopLoss(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.StopLoss = 0.005

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)
	s.WarmUp(declining(115, 16))

	d := s.Decide(candle(99.4), market.Holdings{InstrumentBalance: 1, CurrencyBalance: 0})
	require.NotNil(t, d.Order)
	assert.Equal(t, market.Sell, d.Order.Direction)
}

func TestRSICommissionFloorBlocksTinyProfit(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.TakeProfit = 0 // the commission floor alone must gate the exit
	cfg.TrailingStop = 0.5
	cfg.MinRange = 0.000001

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)
	s.WarmUp(declining(115, 16))

	// Round-trip commission is ~0.1% of the entry notional; +0.05% is
	// not worth closing.
	d := s.Decide(candle(100.05), market.Holdings{InstrumentBalance: 1, CurrencyBalance: 0})
	assert.Nil(t, d.Order)

	// +0.2% clears the floor.
	d = s.Decide(candle(100.2), market.Holdings{InstrumentBalance: 1, CurrencyBalance: 0})
	require.NotNil(t, d.Order)
	assert.Equal(t, market.Sell, d.Order.Direction)
}

func TestRSIMomentumReversalNeedsMAConfirmation(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.Window = 14
	cfg.MinRange = 0.0001

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)

	// Strictly rising recent window: RSI = 100 and the price sits above
	// its moving average, so the reversal exit is not confirmed — and
	// the remaining exits are skipped this candle.
	warm := make([]market.Candle, 0, 19)
	for i := 0; i < 19; i++ {
		warm = append(warm, candle(100+float64(i)))
	}
	s.WarmUp(warm)

	d := s.Decide(candle(119), market.Holdings{InstrumentBalance: 1, CurrencyBalance: 0})
	assert.Nil(t, d.Order)
}

func TestRSIMomentumReversalSellsBelowMA(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.Window = 14
	cfg.MinRange = 0.0001

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.SetEntryPrice(100)

	// Old highs drag the MA(20) far above the rising recent window, so
	// RSI is overbought while the price is still below its average.
	warm := candles(200, 200, 200, 200, 200)
	for i := 0; i < 14; i++ {
		warm = append(warm, candle(100+float64(i)))
	}
	s.WarmUp(warm)

	d := s.Decide(candle(114), market.Holdings{InstrumentBalance: 1, CurrencyBalance: 0})
	require.NotNil(t, d.Order)
	assert.Equal(t, market.Sell, d.Order.Direction)
}

func TestRSINeverOversellsOrOverbuys(t *testing.T) {
	t.Parallel()

	cfg := RSIDefaults()
	cfg.TradeCount = 100

	s := NewRSI(cfg, testInstrument(), commission.Tinkoff())
	s.WarmUp(declining(130, 16))

	holdings := market.Holdings{InstrumentBalance: 0, CurrencyBalance: 500}
	price := 95.0
	for i := 0; i < 200; i++ {
		step := float64((i*31)%9) - 4
		price += step / 2
		d := s.Decide(candle(price), holdings)
		if d.Order == nil {
			continue
		}
		switch d.Order.Direction {
		case market.Buy:
			cost := float64(d.Order.Quantity) * price
			assert.LessOrEqual(t, cost, holdings.CurrencyBalance)
			holdings.CurrencyBalance -= cost
			holdings.InstrumentBalance += d.Order.Quantity
		case market.Sell:
			assert.LessOrEqual(t, d.Order.Quantity, holdings.InstrumentBalance)
			holdings.InstrumentBalance -= d.Order.Quantity
			holdings.CurrencyBalance += float64(d.Order.Quantity) * price
		}
	}
}
