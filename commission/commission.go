// Package commission converts trade notionals into commission amounts.
package commission

// Model is a proportional commission with a fixed per-trade minimum.
type Model struct {
	Rate    float64 // fraction of notional charged per trade
	Minimum float64 // floor applied per trade
}

// Tinkoff returns the broker tariff the robot trades under:
// 0.05% per trade with a 0.01 minimum.
func Tinkoff() Model {
	return Model{Rate: 0.0005, Minimum: 0.01}
}

// PerTrade returns the commission for a single trade of the given notional.
func (m Model) PerTrade(notional float64) float64 {
	c := notional * m.Rate
	if c < m.Minimum {
		return m.Minimum
	}
	return c
}

// RoundTrip returns the combined cost of opening and closing a position
// of the given notional.
func (m Model) RoundTrip(notional float64) float64 {
	return 2 * m.PerTrade(notional)
}
