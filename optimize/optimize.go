// Package optimize sweeps a parameter grid for the RSI strategy, running
// one backtest per combination and ranking the results by income.
package optimize

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/YroslavBochkov/investRobot/backtest"
	"github.com/YroslavBochkov/investRobot/commission"
	"github.com/YroslavBochkov/investRobot/ledger"
	"github.com/YroslavBochkov/investRobot/market"
	"github.com/YroslavBochkov/investRobot/sim"
	"github.com/YroslavBochkov/investRobot/stats"
	"github.com/YroslavBochkov/investRobot/strategies"
)

// ErrEmptyGrid reports a grid with no combinations to evaluate.
var ErrEmptyGrid = errors.New("optimize: empty parameter grid")

// Grid enumerates the candidate values per tunable. The sweep evaluates
// the full cross product.
type Grid struct {
	Windows     []int     `yaml:"windows"`
	MinRanges   []float64 `yaml:"min_ranges"`
	TakeProfits []float64 `yaml:"take_profits"`
	StopLosses  []float64 `yaml:"stop_losses"`
}

// DefaultGrid is the sweep historically used for tuning minute candles.
func DefaultGrid() Grid {
	return Grid{
		Windows:     []int{14, 21, 28},
		MinRanges:   []float64{0.001, 0.002},
		TakeProfits: []float64{0.007, 0.01},
		StopLosses:  []float64{0.003, 0.005},
	}
}

func (g Grid) size() int {
	return len(g.Windows) * len(g.MinRanges) * len(g.TakeProfits) * len(g.StopLosses)
}

// Trial is one evaluated combination.
type Trial struct {
	Config strategies.RSIConfig
	Income float64
	Trades int
}

// Sweep holds everything one grid run needs. Each combination gets a
// fresh strategy, engine, and ledger, so trials never contaminate each
// other.
type Sweep struct {
	Instrument market.Instrument
	Commission commission.Model
	Feed       backtest.CandleFeed
	Base       strategies.RSIConfig
	Grid       Grid
	WarmUpLen  int
	Balance    float64

	Log logrus.FieldLogger
}

// Run evaluates the grid and returns all trials sorted by income,
// best first.
func (s *Sweep) Run(ctx context.Context) ([]Trial, error) {
	if s.Grid.size() == 0 {
		return nil, ErrEmptyGrid
	}

	log := s.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	trials := make([]Trial, 0, s.Grid.size())
	for _, window := range s.Grid.Windows {
		for _, minRange := range s.Grid.MinRanges {
			for _, takeProfit := range s.Grid.TakeProfits {
				for _, stopLoss := range s.Grid.StopLosses {
					if err := ctx.Err(); err != nil {
						return trials, err
					}

					cfg := s.Base
					cfg.Window = window
					cfg.MinRange = minRange
					cfg.TakeProfit = takeProfit
					cfg.StopLoss = stopLoss

					trial, err := s.evaluate(ctx, cfg)
					if err != nil {
						return nil, fmt.Errorf("evaluate window=%d: %w", window, err)
					}

					log.WithFields(logrus.Fields{
						"window":      cfg.Window,
						"min_range":   cfg.MinRange,
						"take_profit": cfg.TakeProfit,
						"stop_loss":   cfg.StopLoss,
						"income":      trial.Income,
						"trades":      trial.Trades,
					}).Info("trial finished")

					trials = append(trials, trial)
				}
			}
		}
	}

	sort.SliceStable(trials, func(i, j int) bool {
		return trials[i].Income > trials[j].Income
	})
	return trials, nil
}

func (s *Sweep) evaluate(ctx context.Context, cfg strategies.RSIConfig) (Trial, error) {
	engine := sim.NewEngine(s.Instrument, s.Commission, s.Balance, s.Log)
	book := ledger.New()

	runner := &backtest.Runner{
		Instrument:  s.Instrument,
		Strategy:    strategies.NewRSI(cfg, s.Instrument, s.Commission),
		Feed:        s.Feed,
		Broker:      engine,
		Account:     engine,
		Ledger:      book,
		WarmUpLen:   s.WarmUpLen,
		Processors:  []stats.Processor{stats.BalanceProcessor{Initial: s.Balance}},
		Calculators: []stats.Calculator{stats.BalanceCalculator{}},
		Log:         s.Log,
	}

	res, err := runner.Run(ctx)
	if err != nil {
		return Trial{}, err
	}

	return Trial{
		Config: cfg,
		Income: res.Summary["income"],
		Trades: book.Len(),
	}, nil
}
