package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
)

func fill(id string, dir market.Direction, lots int, price, comm float64, at time.Time) ledger.Fill {
	return ledger.Fill{
		ID:            id,
		Direction:     dir,
		Status:        ledger.StatusFilled,
		LotsRequested: lots,
		LotsExecuted:  lots,
		Price:         price,
		Amount:        price * float64(lots),
		Commission:    comm,
		Currency:      "RUB",
		FIGI:          "TEST0000001",
		Time:          at,
	}
}

// Buy 2@100, sell 1@110 and 1@90, one unit of commission each: the
// strategy closes flat having lost exactly the commission.
func TestBalanceCalculatorIncome(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	fills := []ledger.Fill{
		fill("a", market.Buy, 2, 100, 1, t0),
		fill("b", market.Sell, 1, 110, 1, t0.Add(time.Minute)),
		fill("c", market.Sell, 1, 90, 1, t0.Add(2*time.Minute)),
	}

	summary, rows := Report(fills, nil, []Calculator{BalanceCalculator{}})
	require.Len(t, rows, 3)

	assert.InDelta(t, -3, summary["income"], 1e-9)
	assert.InDelta(t, 3, summary["total_commission"], 1e-9)
	assert.InDelta(t, 0, summary["final_position"], 1e-9)
	assert.InDelta(t, 0, summary["skipped_fills"], 1e-9)
}

func TestBalanceCalculatorEmpty(t *testing.T) {
	t.Parallel()

	summary, rows := Report(nil, nil, []Calculator{BalanceCalculator{}})
	assert.Empty(t, rows)
	assert.InDelta(t, 0, summary["income"], 1e-9)
	assert.InDelta(t, 0, summary["final_position"], 1e-9)
}

func TestBalanceProcessorRunningBalance(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	fills := []ledger.Fill{
		fill("a", market.Buy, 2, 100, 1, t0),
		fill("b", market.Sell, 2, 110, 1, t0.Add(time.Minute)),
	}

	_, rows := Report(fills, []Processor{BalanceProcessor{Initial: 1000}}, nil)
	require.Len(t, rows, 2)

	assert.InDelta(t, 1000-200-1, rows[0].CurrencyBalance, 1e-9)
	assert.InDelta(t, 1000-201+220-1, rows[1].CurrencyBalance, 1e-9)
}

func TestMarkToMarket(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	fills := []ledger.Fill{
		fill("a", market.Buy, 2, 100, 1, t0),
	}

	summary, _ := Report(fills, nil, []Calculator{
		BalanceCalculator{},
		MarkToMarketCalculator{LastPrice: 105},
	})

	// Realized income is just the commission loss; marking the open
	// 2 lots at 105 adds 10 of unrealized gain.
	assert.InDelta(t, -1, summary["income"], 1e-9)
	assert.InDelta(t, 9, summary["income_marked_to_market"], 1e-9)
}

func TestCalculatorsMergeLeftToRight(t *testing.T) {
	t.Parallel()

	summary, _ := Report(nil, nil, []Calculator{
		BalanceCalculator{},
		MarkToMarketCalculator{LastPrice: 50},
	})

	_, hasIncome := summary["income"]
	_, hasMarked := summary["income_marked_to_market"]
	assert.True(t, hasIncome)
	assert.True(t, hasMarked)
}
