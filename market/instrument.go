package market

// Instrument holds the exchange metadata the core needs for affordability
// and commission math. Lot is the number of shares per tradable lot.
type Instrument struct {
	FIGI              string
	Ticker            string
	ClassCode         string
	Currency          string
	Lot               int
	MinPriceIncrement float64
}

// LotPrice returns the cost of one lot at the given per-share price.
func (i Instrument) LotPrice(price float64) float64 {
	return price * float64(i.Lot)
}

// Holdings is the account state a strategy observes before each decision.
// The strategy never mutates it; confirmed fills do.
type Holdings struct {
	InstrumentBalance int     // held lots, never negative for long-only strategies
	CurrencyBalance   float64 // free cash in the instrument currency
}
