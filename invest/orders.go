package invest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	investgo "github.com/russianinvestments/invest-api-go-sdk/investgo"
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/sirupsen/logrus"

	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
)

// Submit posts a market order and converts the execution report into a
// fill record. The order id is a fresh UUID, so a retried submission is
// idempotent on the broker side.
func (c *Client) Submit(ctx context.Context, instr market.Instrument, order market.Order, price float64) (ledger.Fill, error) {
	orderID := uuid.New().String()

	direction := pb.OrderDirection_ORDER_DIRECTION_BUY
	if order.Direction == market.Sell {
		direction = pb.OrderDirection_ORDER_DIRECTION_SELL
	}

	resp, err := c.orders.PostOrder(&investgo.PostOrderRequest{
		InstrumentId: instr.FIGI,
		Quantity:     int64(order.Quantity),
		Direction:    direction,
		AccountId:    c.accountID,
		OrderType:    pb.OrderType_ORDER_TYPE_MARKET,
		OrderId:      orderID,
	})
	if err != nil {
		return ledger.Fill{}, fmt.Errorf("post order: %w", err)
	}

	fill := ledger.Fill{
		ID:            resp.GetOrderId(),
		Direction:     order.Direction,
		Status:        mapExecutionStatus(resp.GetExecutionReportStatus()),
		LotsRequested: int(resp.GetLotsRequested()),
		LotsExecuted:  int(resp.GetLotsExecuted()),
		Price:         moneyToFloat(resp.GetExecutedOrderPrice()) * float64(instr.Lot),
		Amount:        moneyToFloat(resp.GetTotalOrderAmount()),
		Commission:    moneyToFloat(resp.GetExecutedCommission()),
		Currency:      instr.Currency,
		FIGI:          instr.FIGI,
		Time:          time.Now(),
	}
	if fill.ID == "" {
		fill.ID = orderID
	}

	c.log.WithFields(logrus.Fields{
		"order_id":  fill.ID,
		"figi":      instr.FIGI,
		"direction": order.Direction.String(),
		"requested": fill.LotsRequested,
		"executed":  fill.LotsExecuted,
		"status":    string(fill.Status),
	}).Info("order posted")

	return fill, nil
}

func mapExecutionStatus(s pb.OrderExecutionReportStatus) ledger.Status {
	switch s {
	case pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_FILL:
		return ledger.StatusFilled
	case pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_PARTIALLYFILL:
		return ledger.StatusPartial
	case pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_NEW:
		return ledger.StatusPending
	default:
		return ledger.StatusRejected
	}
}
