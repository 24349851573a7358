package ledger

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/YroslavBochkov/investRobot/market"
)

// BalanceRow is one reconstructed snapshot of position and average price
// after replaying a single fill. Rows are append-only and strictly
// time-ordered. CurrencyBalance stays zero until a processor fills it in.
type BalanceRow struct {
	FillID               string
	Time                 time.Time
	Direction            market.Direction
	Price                float64
	Lots                 int // executed lots, clamped for oversized sells
	InstrumentBalance    int
	AveragePositionPrice float64
	Amount               float64
	Commission           float64
	CurrencyBalance      float64
}

// Result of a replay: the balance table plus the count of records that
// were skipped as malformed or non-contributing.
type Result struct {
	Rows    []BalanceRow
	Skipped int
}

// Replayer turns an unordered fill set into a time-ordered balance table.
// A nil Log disables skip warnings.
type Replayer struct {
	Log logrus.FieldLogger
}

// Replay sorts fills by timestamp (stable on ties, preserving insertion
// order) and folds them into BalanceRows. Buys reweight the average
// position price; sells clamp to the held balance and leave the average
// unchanged. Replaying the same fills twice yields identical rows.
func (r Replayer) Replay(fills []Fill) Result {
	sorted := make([]Fill, len(fills))
	copy(sorted, fills)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var res Result
	balance := 0
	avg := 0.0

	for _, f := range sorted {
		if f.Malformed() {
			res.Skipped++
			if r.Log != nil {
				r.Log.WithFields(logrus.Fields{
					"fill_id": f.ID,
					"status":  string(f.Status),
				}).Warn("skipping malformed fill")
			}
			continue
		}
		if !f.Status.Contributes() {
			res.Skipped++
			continue
		}

		lots := f.LotsExecuted
		switch f.Direction {
		case market.Buy:
			avg = (float64(balance)*avg + float64(lots)*f.Price) / float64(balance+lots)
			balance += lots
		case market.Sell:
			// An oversized sell cannot drive the balance negative.
			if lots > balance {
				lots = balance
			}
			balance -= lots
		default:
			res.Skipped++
			continue
		}

		res.Rows = append(res.Rows, BalanceRow{
			FillID:               f.ID,
			Time:                 f.Time,
			Direction:            f.Direction,
			Price:                f.Price,
			Lots:                 lots,
			InstrumentBalance:    balance,
			AveragePositionPrice: avg,
			Amount:               f.Amount,
			Commission:           f.Commission,
		})
	}

	return res
}
