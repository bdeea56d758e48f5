package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"intraday-trader/internal/types"
)

func sampleTrades() []types.ClosedTrade {
	exit := time.Date(2026, 8, 28, 14, 5, 0, 0, time.FixedZone("IST", 19800))
	return []types.ClosedTrade{
		{Symbol: "ABC.NS", Direction: types.Long, Qty: 166, Entry: 100, Exit: 94, PnL: -996, ExitTime: exit},
		{Symbol: "DEF.NS", Direction: types.Short, Qty: 20, Entry: 250.5, Exit: 240.25, PnL: 205, ExitTime: exit.Add(time.Hour)},
	}
}

func TestWriteDaily(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDaily(dir, "2026-08-28", sampleTrades())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "daily_trade_report_2026-08-28.csv" {
		t.Errorf("path = %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("report has %d lines, want header plus 2 rows:\n%s", len(lines), b)
	}
	if lines[0] != "symbol,direction,qty,entry_price,exit_price,pnl,exit_time" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "ABC.NS,LONG,166,100.00,94.00,-996.00,2026-08-28 14:05:00" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteDailyIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	trades := sampleTrades()

	path, err := WriteDaily(dir, "2026-08-28", trades)
	if err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(path)

	if _, err := WriteDaily(dir, "2026-08-28", trades); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(path)

	if string(first) != string(second) {
		t.Error("regenerating the same day changed the file")
	}
}

func TestWriteDailyEmptyKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDaily(dir, "2026-08-28", sampleTrades())
	if err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(path)

	if _, err := WriteDaily(dir, "2026-08-28", nil); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(path)

	if string(before) != string(after) {
		t.Error("empty rerun clobbered an existing report")
	}
}

func TestWriteDailyEmptyWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDaily(dir, "2026-08-29", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(b)); got != "symbol,direction,qty,entry_price,exit_price,pnl,exit_time" {
		t.Errorf("empty report = %q, want header only", got)
	}
}
