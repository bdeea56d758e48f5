package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"intraday-trader/internal/types"
)

func fixedLog(t *testing.T) (*Log, string) {
	t.Helper()
	dir := t.TempDir()
	l := New(dir)
	ts, _ := time.ParseInLocation("2006-01-02 15:04:05", "2026-08-28 10:30:00", ist)
	l.now = func() time.Time { return ts }
	return l, dir
}

func readLog(t *testing.T, dir, day string) []string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, day+".log"))
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

func TestEventLines(t *testing.T) {
	l, dir := fixedLog(t)

	l.Sentiment(types.Bullish, 0.5, []string{"ABC.NS", "DEF.NS"})
	l.Placed(types.Order{
		Instrument: types.Instrument{Symbol: "ABC.NS", Name: "abc"},
		Direction:  types.Long,
		Qty:        166,
		Entry:      100,
		StopLoss:   94,
	})
	l.Closed(types.ClosedTrade{Symbol: "ABC.NS", Direction: types.Long, PnL: -996})
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	lines := readLog(t, dir, "2026-08-28")
	want := []string{
		"2026-08-28 10:30:00\tSentiment: Bullish (0.50) | [ABC.NS DEF.NS]",
		"2026-08-28 10:30:00\tPlaced LONG ABC.NS | Qty:166 | Entry:100.00 | SL:94.00",
		"2026-08-28 10:30:00\tClosed ABC.NS | LONG | PnL:-996.00",
	}
	if len(lines) != len(want) {
		t.Fatalf("log has %d lines, want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestAppendAcrossReopens(t *testing.T) {
	l, dir := fixedLog(t)
	l.Eventf("first")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	l2 := New(dir)
	l2.now = l.now
	l2.Eventf("second")
	if err := l2.Close(); err != nil {
		t.Fatal(err)
	}

	lines := readLog(t, dir, "2026-08-28")
	if len(lines) != 2 {
		t.Fatalf("reopen truncated the log, have %d lines", len(lines))
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "2026-08-01.log")
	fresh := filepath.Join(dir, "2026-08-28.log")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("line\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(dir, 7); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old log was not removed after compression")
	}
	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Error("old log was not gzipped")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh log must be left alone")
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "2026-08-01.log")
	if err := os.WriteFile(p, []byte("line\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -30)
	_ = os.Chtimes(p, stale, stale)

	if err := CompressOlder(dir, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Error("retention 0 must disable the sweep")
	}
}
