package invest

import (
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
)

func quotationToFloat(q *pb.Quotation) float64 {
	if q == nil {
		return 0
	}
	return q.ToFloat()
}

func moneyToFloat(m *pb.MoneyValue) float64 {
	if m == nil {
		return 0
	}
	return float64(m.GetUnits()) + float64(m.GetNano())/1e9
}

// candleIntervalFor maps a requested candle duration onto the closest
// supported API interval. One-minute candles are the default.
func candleIntervalFor(d time.Duration) pb.CandleInterval {
	switch {
	case d >= 24*time.Hour:
		return pb.CandleInterval_CANDLE_INTERVAL_DAY
	case d >= time.Hour:
		return pb.CandleInterval_CANDLE_INTERVAL_HOUR
	case d >= 15*time.Minute:
		return pb.CandleInterval_CANDLE_INTERVAL_15_MIN
	case d >= 5*time.Minute:
		return pb.CandleInterval_CANDLE_INTERVAL_5_MIN
	default:
		return pb.CandleInterval_CANDLE_INTERVAL_1_MIN
	}
}

// subscriptionIntervalFor mirrors candleIntervalFor for the stream API,
// which exposes a narrower interval set.
func subscriptionIntervalFor(d time.Duration) pb.SubscriptionInterval {
	if d >= 5*time.Minute {
		return pb.SubscriptionInterval_SUBSCRIPTION_INTERVAL_FIVE_MINUTES
	}
	return pb.SubscriptionInterval_SUBSCRIPTION_INTERVAL_ONE_MINUTE
}
