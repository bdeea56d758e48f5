package engine

import (
	"context"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

// ExpectancyEstimator backtests one instrument over its recent frame.
type ExpectancyEstimator interface {
	Estimate(ctx context.Context, symbol string) (float64, []types.Candle, bool)
}

// SignalEvaluator gates trade entry on the agreement of the backtest
// expectancy and the current sentiment label.
type SignalEvaluator struct {
	estimator ExpectancyEstimator
}

func NewSignalEvaluator(estimator ExpectancyEstimator) *SignalEvaluator {
	return &SignalEvaluator{estimator: estimator}
}

// Evaluate produces a directional signal for the instrument, or none. A
// long requires positive expectancy under bullish sentiment; a short
// requires negative expectancy under bearish sentiment. Zero expectancy
// or a neutral label never trades.
func (s *SignalEvaluator) Evaluate(ctx context.Context, ins types.Instrument, reading types.SentimentReading) (types.Signal, []types.Candle, bool) {
	expectancy, frame, ok := s.estimator.Estimate(ctx, ins.Symbol)
	if !ok {
		return types.Signal{}, nil, false
	}

	var direction types.Direction
	switch {
	case expectancy > 0 && reading.Label == types.Bullish:
		direction = types.Long
	case expectancy < 0 && reading.Label == types.Bearish:
		direction = types.Short
	default:
		logger.Debug(ctx, "No signal", "symbol", ins.Symbol, "expectancy", expectancy, "label", reading.Label)
		return types.Signal{}, nil, false
	}

	return types.Signal{Instrument: ins, Direction: direction, Expectancy: expectancy}, frame, true
}
