// Package ledger tracks open positions and the day's closed trades in
// memory. It is the single authority on what the bot currently holds.
package ledger

import (
	"context"
	"sync"
	"time"

	"intraday-trader/internal/auditlog"
	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

var ist = time.FixedZone("IST", 19800)

// Position is an open holding plus the last price observed for it.
type Position struct {
	Order     types.Order
	OpenedAt  time.Time
	lastPrice float64
}

// Ledger holds at most one open position per instrument and buckets closed
// trades by IST calendar day.
type Ledger struct {
	mu     sync.Mutex
	open   map[string]*Position
	days   []string
	closed map[string][]types.ClosedTrade
	audit  *auditlog.Log
	now    func() time.Time
}

func New(audit *auditlog.Log) *Ledger {
	return &Ledger{
		open:   map[string]*Position{},
		closed: map[string][]types.ClosedTrade{},
		audit:  audit,
		now:    func() time.Time { return time.Now().In(ist) },
	}
}

// Open records a new position. It refuses orders below one share and
// refuses to stack a second position on an instrument that already has one.
func (l *Ledger) Open(ctx context.Context, order types.Order) bool {
	if order.Qty < 1 {
		logger.Warn(ctx, "Rejected order below one share", "symbol", order.Instrument.Symbol)
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sym := order.Instrument.Symbol
	if _, exists := l.open[sym]; exists {
		logger.Warn(ctx, "Position already open", "symbol", sym)
		return false
	}

	l.open[sym] = &Position{Order: order, OpenedAt: l.now(), lastPrice: order.Entry}
	if l.audit != nil {
		l.audit.Placed(order)
	}
	logger.Info(ctx, "Position opened",
		"symbol", sym, "direction", order.Direction, "qty", order.Qty,
		"entry", order.Entry, "stop", order.StopLoss)
	return true
}

// Poll records the latest observed price for an open position and closes it
// at that price when the stop is breached. Unknown symbols are a no-op.
func (l *Ledger) Poll(ctx context.Context, symbol string, price float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.open[symbol]
	if !ok {
		return
	}
	pos.lastPrice = price

	breached := (pos.Order.Direction == types.Long && price <= pos.Order.StopLoss) ||
		(pos.Order.Direction == types.Short && price >= pos.Order.StopLoss)
	if !breached {
		return
	}
	l.closeLocked(ctx, pos, price)
}

// OpenSymbols returns the instruments with an open position.
func (l *Ledger) OpenSymbols() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	symbols := make([]string, 0, len(l.open))
	for sym := range l.open {
		symbols = append(symbols, sym)
	}
	return symbols
}

func (l *Ledger) OpenCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.open)
}

// ForceCloseAll closes every open position at its last observed price,
// falling back to the entry price when nothing was ever observed.
func (l *Ledger) ForceCloseAll(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, pos := range l.open {
		price := pos.lastPrice
		if price <= 0 {
			price = pos.Order.Entry
		}
		l.closeLocked(ctx, pos, price)
	}
}

// closeLocked finalizes a position at price. Caller holds l.mu.
func (l *Ledger) closeLocked(ctx context.Context, pos *Position, price float64) {
	order := pos.Order
	pnl := (price - order.Entry) * float64(order.Qty)
	if order.Direction == types.Short {
		pnl = (order.Entry - price) * float64(order.Qty)
	}

	now := l.now()
	trade := types.ClosedTrade{
		Symbol:    order.Instrument.Symbol,
		Direction: order.Direction,
		Qty:       order.Qty,
		Entry:     order.Entry,
		Exit:      price,
		PnL:       pnl,
		ExitTime:  now,
	}

	day := now.Format("2006-01-02")
	if _, seen := l.closed[day]; !seen {
		l.days = append(l.days, day)
	}
	l.closed[day] = append(l.closed[day], trade)
	delete(l.open, order.Instrument.Symbol)

	if l.audit != nil {
		l.audit.Closed(trade)
	}
	logger.Info(ctx, "Position closed",
		"symbol", trade.Symbol, "direction", trade.Direction,
		"exit", price, "pnl", pnl)
}

// DailyReport flattens the retained closed-trade history, oldest day first
// and close order within a day. Buckets are left intact; dropping them is
// Rollover's job, so regenerating a report stays idempotent.
func (l *Ledger) DailyReport() []types.ClosedTrade {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []types.ClosedTrade
	for _, day := range l.days {
		out = append(out, l.closed[day]...)
	}
	return out
}

// Rollover drops every closed-trade bucket strictly before the given day,
// keeping same-day report regeneration stable across restarts of the loop.
func (l *Ledger) Rollover(day string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.days[:0]
	for _, d := range l.days {
		if d < day {
			delete(l.closed, d)
			continue
		}
		kept = append(kept, d)
	}
	l.days = kept
}
