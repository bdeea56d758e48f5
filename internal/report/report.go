// Package report writes the end-of-day trade CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"intraday-trader/internal/types"
)

var header = []string{"symbol", "direction", "qty", "entry_price", "exit_price", "pnl", "exit_time"}

// Path returns the report file path for the given IST day.
func Path(dir, day string) string {
	return filepath.Join(dir, fmt.Sprintf("daily_trade_report_%s.csv", day))
}

// WriteDaily persists the day's closed trades as a full rewrite, so
// regenerating the same day yields an identical file. When there are no
// trades an already-written report is left untouched.
func WriteDaily(dir, day string, trades []types.ClosedTrade) (string, error) {
	path := Path(dir, day)

	if len(trades) == 0 {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, t := range trades {
		row := []string{
			t.Symbol,
			string(t.Direction),
			strconv.Itoa(t.Qty),
			fmt.Sprintf("%.2f", t.Entry),
			fmt.Sprintf("%.2f", t.Exit),
			fmt.Sprintf("%.2f", t.PnL),
			t.ExitTime.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush report: %w", err)
	}
	return path, nil
}
