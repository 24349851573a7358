package market

import "time"

// Candle represents one closed OHLC (Open, High, Low, Close) bar.
// Candles are produced externally once per bar interval and never mutated.
type Candle struct {
	Open  float64
	High  float64
	Low   float64
	Close float64
	Time  time.Time
}
