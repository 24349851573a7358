package market

// Direction of an order or fill. The numeric values show up in balance
// reports, so they are fixed: +1 buy, -1 sell.
type Direction int8

const (
	Buy  Direction = +1
	Sell Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "UNKNOWN"
}

// OrderType selects how an order is priced.
type OrderType int8

const (
	Market OrderType = iota
	Limit
)

// Order is a strategy recommendation handed to the execution layer.
// Quantity is always positive; Direction carries the sign.
type Order struct {
	Direction  Direction
	Quantity   int
	Type       OrderType
	LimitPrice *float64 // nil for market orders
}
