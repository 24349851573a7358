// Package ledger stores executed order records and reconstructs the
// position/balance history from them.
package ledger

import (
	"time"

	"github.com/YroslavBochkov/investRobot/market"
)

// Status is the execution state reported by the broker for an order.
// Only filled and partially filled orders contribute to the balance.
type Status string

const (
	StatusFilled   Status = "FILLED"
	StatusPartial  Status = "PARTIAL"
	StatusRejected Status = "REJECTED"
	StatusPending  Status = "PENDING"
)

// Contributes reports whether a fill with this status moves the position.
func (s Status) Contributes() bool {
	return s == StatusFilled || s == StatusPartial
}

// Fill is the canonical record of an order execution. It is immutable
// once recorded. Price is the average execution price per lot.
type Fill struct {
	ID            string           `json:"id"`
	Direction     market.Direction `json:"direction"`
	Status        Status           `json:"status"`
	LotsRequested int              `json:"lots_requested"`
	LotsExecuted  int              `json:"lots_executed"`
	Price         float64          `json:"price"`
	Amount        float64          `json:"amount"`
	Commission    float64          `json:"commission"`
	Currency      string           `json:"currency"`
	FIGI          string           `json:"figi"`
	Time          time.Time        `json:"time"`
}

// Malformed reports whether the fill is unusable for replay: a missing
// price or quantity on a contributing status, or a status the core does
// not know. Such records are skipped, never guessed at.
func (f Fill) Malformed() bool {
	switch f.Status {
	case StatusFilled, StatusPartial:
		return f.Price <= 0 || f.LotsExecuted <= 0
	case StatusRejected, StatusPending:
		return false
	default:
		return true
	}
}
