package invest

import (
	"context"
	"fmt"

	"github.com/YroslavBochkov/investRobot/market"
)

// defaultClassCode is the Moscow Exchange T+ shares board, where every
// supported ticker trades.
const defaultClassCode = "TQBR"

// InstrumentByTicker resolves a ticker on the shares board into the
// instrument metadata the rest of the system works with.
func (c *Client) InstrumentByTicker(ctx context.Context, ticker string) (market.Instrument, error) {
	resp, err := c.instruments.ShareByTicker(ticker, defaultClassCode)
	if err != nil {
		return market.Instrument{}, fmt.Errorf("look up share %s: %w", ticker, err)
	}

	share := resp.GetInstrument()
	if share == nil {
		return market.Instrument{}, fmt.Errorf("look up share %s: empty response", ticker)
	}

	return market.Instrument{
		FIGI:              share.GetFigi(),
		Ticker:            share.GetTicker(),
		ClassCode:         share.GetClassCode(),
		Currency:          share.GetCurrency(),
		Lot:               int(share.GetLot()),
		MinPriceIncrement: quotationToFloat(share.GetMinPriceIncrement()),
	}, nil
}
