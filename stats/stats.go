// Package stats derives performance reports from a replayed fill history.
//
// The reporting surface is a left-to-right fold: processors may augment
// the balance table with derived columns, then calculators each add named
// fields to a single summary. Both run in caller-specified order.
package stats

import (
	"github.com/YroslavBochkov/investRobot/ledger"
)

// Summary is the short report: named metric fields merged from every
// calculator in the fold.
type Summary map[string]float64

// Processor augments a balance table with derived columns. It must not
// reorder or drop rows.
type Processor interface {
	Process(rows []ledger.BalanceRow) []ledger.BalanceRow
}

// Calculator contributes summary fields computed over the (processed)
// balance table and the raw fills.
type Calculator interface {
	Calculate(rows []ledger.BalanceRow, fills []ledger.Fill) Summary
}

// Report replays the fills and folds the processors and calculators over
// the resulting balance table. It returns the merged summary (the short
// report) and the detail table (the full report). The count of skipped
// fills is surfaced as the "skipped_fills" summary field.
func Report(fills []ledger.Fill, processors []Processor, calculators []Calculator) (Summary, []ledger.BalanceRow) {
	res := ledger.Replayer{}.Replay(fills)

	rows := res.Rows
	for _, p := range processors {
		rows = p.Process(rows)
	}

	summary := Summary{"skipped_fills": float64(res.Skipped)}
	for _, c := range calculators {
		for k, v := range c.Calculate(rows, fills) {
			summary[k] = v
		}
	}

	return summary, rows
}

// FinalPosition returns the last row's instrument balance, or 0 for an
// empty table.
func FinalPosition(rows []ledger.BalanceRow) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].InstrumentBalance
}

// TotalCommission sums commission across all fills, including skipped
// ones: rejected orders can still be charged.
func TotalCommission(fills []ledger.Fill) float64 {
	var total float64
	for _, f := range fills {
		total += f.Commission
	}
	return total
}
