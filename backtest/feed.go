// Package backtest replays historical candles through a strategy against
// the simulated execution engine and reports the resulting performance.
package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/YroslavBochkov/investRobot/market"
)

// CandleFeed supplies the candle series a backtest runs over. Candles
// must come back in ascending time order.
type CandleFeed interface {
	Candles() ([]market.Candle, error)
}

// SliceFeed serves an in-memory candle series.
type SliceFeed []market.Candle

func (f SliceFeed) Candles() ([]market.Candle, error) {
	out := make([]market.Candle, len(f))
	copy(out, f)
	return out, nil
}

// CSVFeed reads candles from a CSV file with a header row and the
// columns time,open,high,low,close. Time is RFC 3339.
type CSVFeed struct {
	Path string
}

func (f CSVFeed) Candles() ([]market.Candle, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open candle file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read candle header: %w", err)
	}

	var out []market.Candle
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read candle record: %w", err)
		}

		c, err := parseCandle(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", f.Path, line, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCandle(rec []string) (market.Candle, error) {
	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return market.Candle{}, fmt.Errorf("parse time: %w", err)
	}

	vals := make([]float64, 4)
	for i, field := range rec[1:5] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("parse price %q: %w", field, err)
		}
		vals[i] = v
	}

	return market.Candle{
		Time:  ts,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}, nil
}
