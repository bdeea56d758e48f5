// Package eod reconciles the day's closed trades into the daily report CSV.
package eod

import (
	"context"
	"time"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/report"
	"intraday-trader/internal/types"
)

var ist = time.FixedZone("IST", 19800)

// ReportBook is the ledger surface the reconciler reads from.
type ReportBook interface {
	DailyReport() []types.ClosedTrade
	Rollover(day string)
}

// Reconciler regenerates the report for the current IST day. Running it
// twice for the same day produces an identical file.
type Reconciler struct {
	book      ReportBook
	reportDir string
	now       func() time.Time
}

func NewReconciler(book ReportBook, reportDir string) *Reconciler {
	return &Reconciler{
		book:      book,
		reportDir: reportDir,
		now:       func() time.Time { return time.Now().In(ist) },
	}
}

// Run writes today's report and drops closed-trade buckets from prior days.
func (r *Reconciler) Run(ctx context.Context) {
	timer := logger.StartOperation(ctx, "eod_reconcile")
	ctx = timer.GetContext()

	day := r.now().Format("2006-01-02")
	trades := r.book.DailyReport()

	path, err := report.WriteDaily(r.reportDir, day, trades)
	if err != nil {
		timer.EndWithError(err, "day", day)
		return
	}

	pnl := 0.0
	for _, t := range trades {
		pnl += t.PnL
	}
	r.book.Rollover(day)
	timer.End("day", day, "trades", len(trades), "pnl", pnl)
	logger.Info(ctx, "Daily report written", "day", day, "trades", len(trades), "pnl", pnl, "path", path)
}
