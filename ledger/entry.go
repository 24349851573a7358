package ledger

import "github.com/YroslavBochkov/investRobot/market"

// LastEntryPrice recovers a strategy entry price from replayed balance
// rows: the per-unit average position price as of the most recent buy,
// provided the final row still holds a position. Used to re-seed a
// strategy after a restart so it does not forget an open position.
func LastEntryPrice(rows []BalanceRow, lot int) (float64, bool) {
	if len(rows) == 0 || rows[len(rows)-1].InstrumentBalance <= 0 {
		return 0, false
	}
	if lot < 1 {
		lot = 1
	}

	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Direction == market.Buy {
			return rows[i].AveragePositionPrice / float64(lot), true
		}
	}
	return 0, false
}
