package indicators

// MA calculates the Simple Moving Average over the last period prices.
// When fewer prices are available, the average covers all of them.
func MA(prices []float64, period int) float64 {
	if len(prices) == 0 || period <= 0 {
		return 0
	}
	if period > len(prices) {
		period = len(prices)
	}

	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period)
}

// Min returns the smallest value in prices. Callers must pass a non-empty
// slice; an empty one returns 0.
func Min(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	m := prices[0]
	for _, p := range prices[1:] {
		if p < m {
			m = p
		}
	}
	return m
}

// Max returns the largest value in prices, or 0 for an empty slice.
func Max(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	m := prices[0]
	for _, p := range prices[1:] {
		if p > m {
			m = p
		}
	}
	return m
}
