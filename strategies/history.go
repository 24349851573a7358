package strategies

// PriceHistory is a bounded sequence of recent close prices; appending
// past capacity evicts the oldest entry.
type PriceHistory struct {
	capacity int
	prices   []float64
}

func NewPriceHistory(capacity int) *PriceHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &PriceHistory{capacity: capacity}
}

func (h *PriceHistory) Append(price float64) {
	h.prices = append(h.prices, price)
	if len(h.prices) > h.capacity {
		h.prices = h.prices[1:]
	}
}

func (h *PriceHistory) Len() int { return len(h.prices) }

// Values returns a copy of the retained prices, oldest first.
func (h *PriceHistory) Values() []float64 {
	out := make([]float64, len(h.prices))
	copy(out, h.prices)
	return out
}

// Tail returns a copy of the most recent n prices (all of them when
// fewer are retained).
func (h *PriceHistory) Tail(n int) []float64 {
	if n > len(h.prices) {
		n = len(h.prices)
	}
	out := make([]float64, n)
	copy(out, h.prices[len(h.prices)-n:])
	return out
}

// Reset drops all retained prices.
func (h *PriceHistory) Reset() {
	h.prices = h.prices[:0]
}
