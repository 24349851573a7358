package stats

import (
	"github.com/YroslavBochkov/investRobot/ledger"
)

// MarkToMarketCalculator is the explicit marked variant of the income
// metric: it values any position still open at the end of the window at
// LastPrice (the last known per-lot close).
type MarkToMarketCalculator struct {
	LastPrice float64
}

func (c MarkToMarketCalculator) Calculate(rows []ledger.BalanceRow, fills []ledger.Fill) Summary {
	base := BalanceCalculator{}.Calculate(rows, fills)

	unrealized := 0.0
	if n := len(rows); n > 0 {
		last := rows[n-1]
		if last.InstrumentBalance > 0 {
			unrealized = (c.LastPrice - last.AveragePositionPrice) * float64(last.InstrumentBalance)
		}
	}

	return Summary{
		"income_marked_to_market": base["income"] + unrealized,
	}
}

var (
	_ Calculator = MarkToMarketCalculator{}
	_ Calculator = BalanceCalculator{}
	_ Processor  = BalanceProcessor{}
)
