package engine

import (
	"context"
	"math"

	"github.com/markcheno/go-talib"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

const (
	atrPeriod   = 14
	stopATRMult = 1.5
)

// Budget is the fixed capital base and per-trade risk fraction.
type Budget struct {
	Capital      float64
	RiskFraction float64
}

// RiskSizer converts a signal into a concrete order with volatility-scaled
// quantity and stop, or rejects it.
type RiskSizer struct {
	budget Budget
}

func NewRiskSizer(budget Budget) *RiskSizer {
	return &RiskSizer{budget: budget}
}

// Size computes quantity and stop for the signal from the frame's ATR. It
// rejects the trade when the ATR is unusable, the risk budget buys less
// than one share, or the sentiment label contradicts the direction.
func (r *RiskSizer) Size(ctx context.Context, sig types.Signal, frame []types.Candle, label types.Label) (types.Order, bool) {
	if len(frame) <= atrPeriod {
		return types.Order{}, false
	}

	highs := make([]float64, len(frame))
	lows := make([]float64, len(frame))
	closes := make([]float64, len(frame))
	for i, c := range frame {
		highs[i] = c.High
		lows[i] = c.Low
		closes[i] = c.Close
	}

	atrs := talib.Atr(highs, lows, closes, atrPeriod)
	atr := atrs[len(atrs)-1]
	if math.IsNaN(atr) || atr <= 0 {
		logger.Debug(ctx, "Unusable ATR", "symbol", sig.Instrument.Symbol, "atr", atr)
		return types.Order{}, false
	}

	qty := int(math.Floor(r.budget.Capital * r.budget.RiskFraction / (atr * stopATRMult)))
	if qty < 1 {
		logger.Debug(ctx, "Risk budget below one share", "symbol", sig.Instrument.Symbol, "atr", atr)
		return types.Order{}, false
	}

	// Sentiment veto: never size a trade against the prevailing label.
	if (label == types.Bearish && sig.Direction == types.Long) ||
		(label == types.Bullish && sig.Direction == types.Short) {
		logger.Info(ctx, "Sentiment veto", "symbol", sig.Instrument.Symbol, "direction", sig.Direction, "label", label)
		return types.Order{}, false
	}

	entry := closes[len(closes)-1]
	stop := entry - stopATRMult*atr
	if sig.Direction == types.Short {
		stop = entry + stopATRMult*atr
	}

	return types.Order{
		Instrument: sig.Instrument,
		Direction:  sig.Direction,
		Qty:        qty,
		Entry:      entry,
		StopLoss:   stop,
	}, true
}
