// Package engine runs the trading and monitoring cycles, wiring sentiment,
// signal evaluation, risk sizing, and the position ledger together.
package engine

import (
	"context"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

// SentimentSource produces the market sentiment reading for one cycle.
type SentimentSource interface {
	Evaluate(ctx context.Context) types.SentimentReading
}

// PriceFeed serves the latest traded price for an instrument.
type PriceFeed interface {
	LastPrice(ctx context.Context, symbol string) (float64, bool)
}

// Book is the position ledger surface the engine drives.
type Book interface {
	Open(ctx context.Context, order types.Order) bool
	Poll(ctx context.Context, symbol string, price float64)
	OpenSymbols() []string
}

// Engine owns the decision pipeline. A cycle failure on one instrument
// never blocks the rest.
type Engine struct {
	sentiment SentimentSource
	signals   *SignalEvaluator
	sizer     *RiskSizer
	book      Book
	feed      PriceFeed
}

func New(sentiment SentimentSource, signals *SignalEvaluator, sizer *RiskSizer, book Book, feed PriceFeed) *Engine {
	return &Engine{sentiment: sentiment, signals: signals, sizer: sizer, book: book, feed: feed}
}

// TradingCycle evaluates sentiment once and walks the mentioned
// instruments, opening at most one position per instrument.
func (e *Engine) TradingCycle(ctx context.Context) {
	timer := logger.StartOperation(ctx, "trading_cycle")
	ctx = timer.GetContext()

	reading := e.sentiment.Evaluate(ctx)
	if reading.Label == types.Neutral {
		timer.End("label", string(reading.Label), "score", reading.Score)
		return
	}

	held := map[string]bool{}
	for _, sym := range e.book.OpenSymbols() {
		held[sym] = true
	}

	opened := 0
	for _, ins := range reading.Mentioned {
		if held[ins.Symbol] {
			continue
		}
		if e.tradeOne(ctx, ins, reading) {
			opened++
		}
	}
	timer.End("label", string(reading.Label), "candidates", len(reading.Mentioned), "opened", opened)
}

// tradeOne runs the signal, sizing, and booking steps for one instrument.
func (e *Engine) tradeOne(ctx context.Context, ins types.Instrument, reading types.SentimentReading) bool {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Instrument cycle panicked", "symbol", ins.Symbol, "panic", r)
		}
	}()

	sig, frame, ok := e.signals.Evaluate(ctx, ins, reading)
	if !ok {
		return false
	}
	order, ok := e.sizer.Size(ctx, sig, frame, reading.Label)
	if !ok {
		return false
	}
	return e.book.Open(ctx, order)
}

// MonitorCycle polls the price of every open position so stop breaches are
// noticed between trading cycles. Instruments without a price are skipped.
func (e *Engine) MonitorCycle(ctx context.Context) {
	symbols := e.book.OpenSymbols()
	if len(symbols) == 0 {
		return
	}

	timer := logger.StartOperation(ctx, "monitor_cycle")
	ctx = timer.GetContext()

	for _, sym := range symbols {
		price, ok := e.feed.LastPrice(ctx, sym)
		if !ok {
			logger.Debug(ctx, "No price for open position", "symbol", sym)
			continue
		}
		e.book.Poll(ctx, sym, price)
	}
	timer.End("positions", len(symbols))
}
