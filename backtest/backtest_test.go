package backtest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
	"github.com/YroslavBochkov/investRobot/sim"
	"github.com/YroslavBochkov/investRobot/stats"
	"github.com/YroslavBochkov/investRobot/strategies"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCSVFeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candles.csv")
	data := "time,open,high,low,close\n" +
		"2024-03-01T10:00:00Z,100,101,99,100.5\n" +
		"2024-03-01T10:05:00Z,100.5,102,100,101.5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	candles, err := CSVFeed{Path: path}.Candles()
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 101.5, candles[1].Close)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), candles[0].Time)
}

func TestCSVFeedRejectsBadRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candles.csv")
	data := "time,open,high,low,close\n" +
		"2024-03-01T10:00:00Z,100,101,99,not-a-price\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := CSVFeed{Path: path}.Candles()
	assert.ErrorContains(t, err, "line 2")
}

func TestCSVFeedMissingFile(t *testing.T) {
	t.Parallel()

	_, err := CSVFeed{Path: filepath.Join(t.TempDir(), "nope.csv")}.Candles()
	assert.Error(t, err)
}

func dipAndRecover() []market.Candle {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	closes := make([]float64, 0, 17)
	for i := 0; i < 15; i++ { // 114 down to 100
		closes = append(closes, 114-float64(i))
	}
	closes = append(closes, 98, 99.5)

	out := make([]market.Candle, 0, len(closes))
	for i, c := range closes {
		out = append(out, market.Candle{Open: c, High: c, Low: c, Close: c, Time: base.Add(time.Duration(i) * time.Minute)})
	}
	return out
}

func TestRunnerBuysDipAndTakesProfit(t *testing.T) {
	t.Parallel()

	instr := market.Instrument{FIGI: "BBG004730N88", Ticker: "SBER", Currency: "RUB", Lot: 1}
	comm := commission.Tinkoff()
	engine := sim.NewEngine(instr, comm, 10_000, quietLogger())
	book := ledger.New()

	r := &Runner{
		Instrument: instr,
		Strategy:   strategies.NewRSI(strategies.RSIDefaults(), instr, comm),
		Feed:       SliceFeed(dipAndRecover()),
		Broker:     engine,
		Account:    engine,
		Ledger:     book,
		WarmUpLen:  15,
		Processors: []stats.Processor{stats.BalanceProcessor{Initial: 10_000}},
		Calculators: []stats.Calculator{
			stats.BalanceCalculator{},
		},
		Log: quietLogger(),
	}

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, book.Len()) // one buy at 98, one sell at 99.5
	fills := book.Fills()
	assert.Equal(t, market.Buy, fills[0].Direction)
	assert.Equal(t, market.Sell, fills[1].Direction)
	assert.Equal(t, 98.0, fills[0].Price)
	assert.Equal(t, 99.5, fills[1].Price)

	// 1.5 gross on the round trip minus commissions of 0.049 and 0.04975.
	assert.InDelta(t, 1.40125, res.Summary["income"], 1e-9)
	assert.Equal(t, 0.0, res.Summary["final_position"])
	assert.Equal(t, 0.0, res.Summary["skipped_fills"])

	require.NotEmpty(t, res.Rows)
	last := res.Rows[len(res.Rows)-1]
	assert.Equal(t, 0, last.InstrumentBalance)
	assert.InDelta(t, 10_001.40125, last.CurrencyBalance, 1e-9)
	assert.Equal(t, 99.5, res.LastPrice)
}

func TestRunnerCancelledContextStillReports(t *testing.T) {
	t.Parallel()

	instr := market.Instrument{FIGI: "F", Ticker: "T", Currency: "RUB", Lot: 1}
	engine := sim.NewEngine(instr, commission.Tinkoff(), 1000, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{
		Instrument: instr,
		Strategy:   strategies.NewRSI(strategies.RSIDefaults(), instr, commission.Tinkoff()),
		Feed:       SliceFeed(dipAndRecover()),
		Broker:     engine,
		Account:    engine,
		Ledger:     ledger.New(),
		Log:        quietLogger(),
	}

	res, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Candles)
	assert.NotNil(t, res.Summary)
}

func TestRunnerEmptyFeed(t *testing.T) {
	t.Parallel()

	instr := market.Instrument{FIGI: "F", Ticker: "T", Currency: "RUB", Lot: 1}
	engine := sim.NewEngine(instr, commission.Tinkoff(), 1000, quietLogger())

	r := &Runner{
		Instrument: instr,
		Strategy:   strategies.NewRSI(strategies.RSIDefaults(), instr, commission.Tinkoff()),
		Feed:       SliceFeed(nil),
		Broker:     engine,
		Account:    engine,
		Ledger:     ledger.New(),
		Log:        quietLogger(),
	}

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoCandles)
}
