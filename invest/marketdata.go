package invest

import (
	"context"
	"fmt"
	"sync"
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/YroslavBochkov/investRobot/broker"
	"github.com/YroslavBochkov/investRobot/market"
)

// FetchHistory loads historical candles for strategy warm-up. Incomplete
// tail candles are dropped: strategies only ever see closed bars.
func (c *Client) FetchHistory(ctx context.Context, figi string, from, to time.Time, interval time.Duration) ([]market.Candle, error) {
	resp, err := c.marketData.GetCandles(figi, candleIntervalFor(interval), from, to,
		pb.GetCandlesRequest_CANDLE_SOURCE_UNSPECIFIED, 0)
	if err != nil {
		return nil, fmt.Errorf("get candles for %s: %w", figi, err)
	}

	raw := resp.GetCandles()
	out := make([]market.Candle, 0, len(raw))
	for _, hc := range raw {
		if !hc.GetIsComplete() {
			continue
		}
		out = append(out, market.Candle{
			Open:  quotationToFloat(hc.GetOpen()),
			High:  quotationToFloat(hc.GetHigh()),
			Low:   quotationToFloat(hc.GetLow()),
			Close: quotationToFloat(hc.GetClose()),
			Time:  hc.GetTime().AsTime(),
		})
	}
	if len(out) == 0 {
		return nil, broker.ErrNoHistory
	}
	return out, nil
}

// candleStream adapts the gRPC market data stream to broker.CandleStream.
type candleStream struct {
	out chan market.Candle

	mu  sync.Mutex
	err error
}

func (s *candleStream) Candles() <-chan market.Candle { return s.out }

func (s *candleStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *candleStream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// StreamCandles subscribes to closed candles for the given instruments.
// The returned stream's channel closes when ctx is cancelled or the
// subscription drops; Err reports the cause.
func (c *Client) StreamCandles(ctx context.Context, interval time.Duration, figis ...string) (broker.CandleStream, error) {
	stream, err := c.mdStream.MarketDataStream()
	if err != nil {
		return nil, fmt.Errorf("create market data stream: %w", err)
	}

	// waitingClose: only fully formed candles reach the strategies.
	candles, err := stream.SubscribeCandle(figis, subscriptionIntervalFor(interval), true, nil)
	if err != nil {
		stream.Stop()
		return nil, fmt.Errorf("subscribe candles: %w", err)
	}

	cs := &candleStream{out: make(chan market.Candle)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return stream.Listen()
	})
	g.Go(func() error {
		defer stream.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case pc, ok := <-candles:
				if !ok {
					return nil
				}
				if pc == nil {
					continue
				}
				candle := market.Candle{
					Open:  quotationToFloat(pc.GetOpen()),
					High:  quotationToFloat(pc.GetHigh()),
					Low:   quotationToFloat(pc.GetLow()),
					Close: quotationToFloat(pc.GetClose()),
					Time:  pc.GetTime().AsTime(),
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				case cs.out <- candle:
				}
			}
		}
	})

	go func() {
		if err := g.Wait(); err != nil {
			cs.setErr(err)
			c.log.WithError(err).WithField("figis", figis).Warn("candle stream stopped")
		}
		close(cs.out)
	}()

	c.log.WithFields(logrus.Fields{
		"figis":    figis,
		"interval": interval.String(),
	}).Info("candle stream started")

	return cs, nil
}
