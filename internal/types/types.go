package types

import "time"

// Candle is one OHLCV bar. Ts is a unix timestamp in seconds.
type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Instrument identifies one tradable symbol from the loaded universe.
// Symbol is exchange-qualified ("RELIANCE.NS"), Name is the lowercase
// display name used for news mention matching.
type Instrument struct {
	Symbol string
	Name   string
}

// Label is the coarse market-mood category.
type Label string

const (
	Bullish Label = "Bullish"
	Bearish Label = "Bearish"
	Neutral Label = "Neutral"
)

// Direction of a trade signal or position.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// SentimentReading is the aggregated market sentiment for one evaluation
// cycle. Readings are never mutated; each cycle supersedes the last.
type SentimentReading struct {
	Label     Label
	Score     float64
	Mentioned []Instrument
}

// Signal is a directional trade candidate. It is consumed immediately by
// the risk sizer and never stored.
type Signal struct {
	Instrument Instrument
	Direction  Direction
	Expectancy float64
}

// Order is a sized trade ready for the ledger. Qty is always >= 1; the
// sizer refuses to produce anything smaller.
type Order struct {
	Instrument Instrument
	Direction  Direction
	Qty        int
	Entry      float64
	StopLoss   float64
}

// ClosedTrade is the immutable record of an exited position.
type ClosedTrade struct {
	Symbol    string
	Direction Direction
	Qty       int
	Entry     float64
	Exit      float64
	PnL       float64
	ExitTime  time.Time
}
