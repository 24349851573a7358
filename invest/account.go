package invest

import (
	"context"
	"fmt"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"

	"github.com/YroslavBochkov/investRobot/market"
)

// Holdings reports the account's position in the instrument and the free
// balance in the instrument's currency. The position comes back in lots.
func (c *Client) Holdings(ctx context.Context, instr market.Instrument) (market.Holdings, error) {
	resp, err := c.operations.GetPositions(c.accountID)
	if err != nil {
		return market.Holdings{}, fmt.Errorf("get positions: %w", err)
	}

	var h market.Holdings
	for _, m := range resp.GetMoney() {
		if m.GetCurrency() == instr.Currency {
			h.CurrencyBalance = moneyToFloat(m)
			break
		}
	}

	lot := instr.Lot
	if lot < 1 {
		lot = 1
	}
	for _, sec := range resp.GetSecurities() {
		if sec.GetFigi() == instr.FIGI {
			// The API reports units; the strategies think in lots.
			h.InstrumentBalance = int(sec.GetBalance()) / lot
			break
		}
	}

	return h, nil
}

// AveragePositionPrice returns the portfolio's average price per unit
// for the instrument, or 0 with no position. Strategies seed their entry
// price from it after a restart.
func (c *Client) AveragePositionPrice(ctx context.Context, instr market.Instrument) (float64, error) {
	resp, err := c.operations.GetPortfolio(c.accountID, pb.PortfolioRequest_RUB)
	if err != nil {
		return 0, fmt.Errorf("get portfolio: %w", err)
	}

	for _, pos := range resp.GetPositions() {
		if pos.GetFigi() == instr.FIGI {
			return moneyToFloat(pos.GetAveragePositionPrice()), nil
		}
	}
	return 0, nil
}
