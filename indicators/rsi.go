// Package indicators provides the technical calculations the strategies
// are built on. All functions are pure and deterministic, safe for live,
// replay, and backtest use.
package indicators

// RSI computes the Relative Strength Index over the given price sequence.
//
// Positive deltas count as gains, negative as losses; both averages use
// the full sequence length as the denominator, so RS reduces to
// sum(gains)/sum(losses). Degenerate inputs resolve locally: fewer than
// two prices yields the neutral 50, zero losses yields the maximal 100.
func RSI(prices []float64) float64 {
	if len(prices) < 2 {
		return 50.0
	}

	var gains, losses float64
	for i := 1; i < len(prices); i++ {
		diff := prices[i] - prices[i-1]
		if diff > 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}

	n := float64(len(prices))
	avgGain := gains / n
	avgLoss := losses / n

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
