package stats

import (
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
)

// BalanceProcessor fills in the running currency balance column: sells
// credit their net proceeds, buys debit cost plus commission. The running
// value starts from Initial (zero by default).
type BalanceProcessor struct {
	Initial float64
}

func (p BalanceProcessor) Process(rows []ledger.BalanceRow) []ledger.BalanceRow {
	out := make([]ledger.BalanceRow, len(rows))
	copy(out, rows)

	running := p.Initial
	for i := range out {
		switch out[i].Direction {
		case market.Buy:
			running -= out[i].Amount + out[i].Commission
		case market.Sell:
			running += out[i].Amount - out[i].Commission
		}
		out[i].CurrencyBalance = running
	}
	return out
}

// BalanceCalculator produces the core short-report fields:
//
//	income           — realized profit over sells, against the average
//	                   cost basis at the time of each sell, net of all
//	                   commission paid
//	total_commission — commission summed over every fill
//	final_position   — lots still held after the last fill
//
// Unrealized gain on a still-open position is excluded; see
// MarkToMarketCalculator for the marked variant.
type BalanceCalculator struct{}

func (BalanceCalculator) Calculate(rows []ledger.BalanceRow, fills []ledger.Fill) Summary {
	var realized float64
	prevAvg := 0.0
	for _, row := range rows {
		if row.Direction == market.Sell {
			realized += (row.Price - prevAvg) * float64(row.Lots)
		}
		prevAvg = row.AveragePositionPrice
	}

	return Summary{
		"income":           realized - TotalCommission(fills),
		"total_commission": TotalCommission(fills),
		"final_position":   float64(FinalPosition(rows)),
	}
}
