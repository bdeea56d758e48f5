package engine

import (
	"context"
	"math"
	"testing"

	"intraday-trader/internal/types"
)

// steadyFrame yields a constant true range of 4, so the Wilder ATR is
// exactly 4 everywhere it is defined.
func steadyFrame(n int) []types.Candle {
	frame := make([]types.Candle, n)
	for i := range frame {
		frame[i] = types.Candle{High: 102, Low: 98, Close: 100, Vol: 1000}
	}
	return frame
}

func testSignal(dir types.Direction) types.Signal {
	return types.Signal{
		Instrument: types.Instrument{Symbol: "ABC.NS", Name: "abc"},
		Direction:  dir,
		Expectancy: 25,
	}
}

func TestSizeLong(t *testing.T) {
	r := NewRiskSizer(Budget{Capital: 100000, RiskFraction: 0.01})

	order, ok := r.Size(context.Background(), testSignal(types.Long), steadyFrame(20), types.Bullish)
	if !ok {
		t.Fatal("expected an order")
	}
	// risk budget 1000 over a 6.00 stop distance buys 166 shares
	if order.Qty != 166 {
		t.Errorf("qty = %d, want 166", order.Qty)
	}
	if order.Entry != 100 {
		t.Errorf("entry = %v, want last close 100", order.Entry)
	}
	if math.Abs(order.StopLoss-94) > 1e-9 {
		t.Errorf("stop = %v, want 94", order.StopLoss)
	}
}

func TestSizeShort(t *testing.T) {
	r := NewRiskSizer(Budget{Capital: 100000, RiskFraction: 0.01})

	order, ok := r.Size(context.Background(), testSignal(types.Short), steadyFrame(20), types.Bearish)
	if !ok {
		t.Fatal("expected an order")
	}
	if math.Abs(order.StopLoss-106) > 1e-9 {
		t.Errorf("stop = %v, want 106", order.StopLoss)
	}
}

func TestSizeSentimentVeto(t *testing.T) {
	r := NewRiskSizer(Budget{Capital: 100000, RiskFraction: 0.01})

	if _, ok := r.Size(context.Background(), testSignal(types.Long), steadyFrame(20), types.Bearish); ok {
		t.Error("bearish label must veto a long")
	}
	if _, ok := r.Size(context.Background(), testSignal(types.Short), steadyFrame(20), types.Bullish); ok {
		t.Error("bullish label must veto a short")
	}
}

func TestSizeRejectsFlatRange(t *testing.T) {
	frame := make([]types.Candle, 20)
	for i := range frame {
		frame[i] = types.Candle{High: 100, Low: 100, Close: 100}
	}
	r := NewRiskSizer(Budget{Capital: 100000, RiskFraction: 0.01})
	if _, ok := r.Size(context.Background(), testSignal(types.Long), frame, types.Bullish); ok {
		t.Error("zero ATR must not produce an order")
	}
}

func TestSizeRejectsSubShareBudget(t *testing.T) {
	r := NewRiskSizer(Budget{Capital: 100, RiskFraction: 0.01})
	if _, ok := r.Size(context.Background(), testSignal(types.Long), steadyFrame(20), types.Bullish); ok {
		t.Error("budget below one share must not produce an order")
	}
}

func TestSizeRejectsShortFrame(t *testing.T) {
	r := NewRiskSizer(Budget{Capital: 100000, RiskFraction: 0.01})
	if _, ok := r.Size(context.Background(), testSignal(types.Long), steadyFrame(atrPeriod), types.Bullish); ok {
		t.Error("frame shorter than the ATR period must not produce an order")
	}
}
