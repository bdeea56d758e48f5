// Package marketdata serves intraday candle frames and spot prices from
// Yahoo Finance.
package marketdata

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

// Yahoo fetches five-minute bars over a sliding window of trading days.
type Yahoo struct {
	frameDays int
	timeout   time.Duration
}

func NewYahoo(frameDays, timeoutSeconds int) *Yahoo {
	return &Yahoo{
		frameDays: frameDays,
		timeout:   time.Duration(timeoutSeconds) * time.Second,
	}
}

// Frame returns the recent five-minute candle frame for symbol. Missing or
// empty data reports ok=false, never an error the caller must handle.
func (y *Yahoo) Frame(ctx context.Context, symbol string) ([]types.Candle, bool) {
	var candles []types.Candle
	ok := y.bounded(ctx, func() bool {
		end := time.Now()
		start := end.AddDate(0, 0, -y.frameDays)
		iter := chart.Get(&chart.Params{
			Symbol:   symbol,
			Interval: datetime.FiveMins,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
		})
		for iter.Next() {
			b := iter.Bar()
			candles = append(candles, types.Candle{
				Ts:    int64(b.Timestamp),
				Open:  toFloat(b.Open),
				High:  toFloat(b.High),
				Low:   toFloat(b.Low),
				Close: toFloat(b.Close),
				Vol:   float64(b.Volume),
			})
		}
		if err := iter.Err(); err != nil {
			logger.Warn(ctx, "Chart fetch failed", "symbol", symbol, "error", err)
			return false
		}
		return len(candles) > 0
	})
	if !ok {
		return nil, false
	}
	return candles, true
}

// LastPrice returns the most recent traded price for symbol, preferring the
// latest one-minute close and falling back to the delayed quote.
func (y *Yahoo) LastPrice(ctx context.Context, symbol string) (float64, bool) {
	var price float64
	ok := y.bounded(ctx, func() bool {
		end := time.Now()
		start := end.AddDate(0, 0, -1)
		iter := chart.Get(&chart.Params{
			Symbol:   symbol,
			Interval: datetime.OneMin,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
		})
		for iter.Next() {
			if c := toFloat(iter.Bar().Close); c > 0 {
				price = c
			}
		}
		if iter.Err() == nil && price > 0 {
			return true
		}

		q, err := quote.Get(symbol)
		if err != nil || q == nil {
			logger.Warn(ctx, "Quote fetch failed", "symbol", symbol, "error", err)
			return false
		}
		price = q.RegularMarketPrice
		return price > 0
	})
	if !ok {
		return 0, false
	}
	return price, true
}

// Yahoo serves bar prices as exact decimals; indicators want float64.
func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// bounded runs fn on its own goroutine so a hung upstream call cannot stall
// the trading cycle past the context deadline. The finance client itself
// takes no context.
func (y *Yahoo) bounded(ctx context.Context, fn func() bool) bool {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() { done <- fn() }()

	select {
	case ok := <-done:
		return ok
	case <-ctx.Done():
		logger.Warn(ctx, "Market data call timed out", "error", ctx.Err())
		return false
	}
}
