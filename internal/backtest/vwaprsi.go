// Package backtest replays a VWAP/RSI crossover strategy over a recent
// intraday frame to estimate per-trade expectancy for an instrument.
package backtest

import (
	"context"
	"math"

	"github.com/markcheno/go-talib"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

const (
	vwapPeriod = 20
	rsiPeriod  = 14

	rsiOverbought = 70.0
	rsiOversold   = 30.0

	// Fixed stake per simulated trade; expectancy is the total PnL over
	// the frame.
	stake = 10.0

	// Enough bars to warm up both indicators before trading begins.
	minBars = 40
)

// FrameProvider supplies the candle frame the simulation runs on.
type FrameProvider interface {
	Frame(ctx context.Context, symbol string) ([]types.Candle, bool)
}

// Estimator backtests one instrument and reports the total simulated PnL,
// i.e. final equity minus starting equity.
type Estimator struct {
	data FrameProvider
}

func NewEstimator(data FrameProvider) *Estimator {
	return &Estimator{data: data}
}

// Estimate runs the strategy over the instrument's recent frame. It returns
// the expectancy, the frame it ran on (so callers can reuse it for sizing),
// and ok=false when data is missing or too short to warm up the indicators.
func (e *Estimator) Estimate(ctx context.Context, symbol string) (float64, []types.Candle, bool) {
	frame, ok := e.data.Frame(ctx, symbol)
	if !ok || len(frame) < minBars {
		logger.Debug(ctx, "Frame too short for estimate", "symbol", symbol, "bars", len(frame))
		return 0, nil, false
	}

	closes := make([]float64, len(frame))
	volumes := make([]float64, len(frame))
	weighted := make([]float64, len(frame))
	for i, c := range frame {
		closes[i] = c.Close
		volumes[i] = c.Vol
		weighted[i] = c.Close * c.Vol
	}

	// Rolling VWAP as the ratio of volume-weighted to plain volume moving
	// averages over the same window.
	wmaPV := talib.Wma(weighted, vwapPeriod)
	wmaV := talib.Wma(volumes, vwapPeriod)
	rsi := talib.Rsi(closes, rsiPeriod)

	var (
		trades   []float64
		open     bool
		long     bool
		entry    float64
		lastSeen float64
	)

	for i := minBars; i < len(frame); i++ {
		if wmaV[i] == 0 {
			continue
		}
		vwap := wmaPV[i] / wmaV[i]
		price := closes[i]
		lastSeen = price

		if math.IsNaN(vwap) || math.IsNaN(rsi[i]) {
			continue
		}

		if !open {
			switch {
			case price > vwap && rsi[i] < rsiOverbought:
				open, long, entry = true, true, price
			case price < vwap && rsi[i] > rsiOversold:
				open, long, entry = true, false, price
			}
			continue
		}

		if long && (price < vwap || rsi[i] > rsiOverbought) {
			trades = append(trades, (price-entry)*stake)
			open = false
		} else if !long && (price > vwap || rsi[i] < rsiOversold) {
			trades = append(trades, (entry-price)*stake)
			open = false
		}
	}

	// Mark any position still open at frame end to the last price.
	if open {
		if long {
			trades = append(trades, (lastSeen-entry)*stake)
		} else {
			trades = append(trades, (entry-lastSeen)*stake)
		}
	}

	expectancy := 0.0
	for _, t := range trades {
		expectancy += t
	}
	logger.Debug(ctx, "Expectancy estimated", "symbol", symbol, "trades", len(trades), "expectancy", expectancy)
	return expectancy, frame, true
}
