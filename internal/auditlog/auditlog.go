// Package auditlog writes the append-only activity log consumed by the
// dashboard. One line per Sentiment/Placed/Closed event, timestamp-prefixed,
// one file per trading day.
package auditlog

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"intraday-trader/internal/types"
)

var ist = time.FixedZone("IST", 19800)

func istNow() time.Time { return time.Now().In(ist) }

// Dir resolves the audit log directory, honoring the TRADER_LOG_DIR
// override used by the dashboard.
func Dir(configured string) string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	if configured != "" {
		return configured
	}
	return "logs"
}

// logClock feeds the log's own clock into zap so line timestamps and file
// rotation agree, whatever the host timezone is.
type logClock struct {
	now func() time.Time
}

func (c logClock) Now() time.Time { return c.now() }

func (c logClock) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }

// Log is an append-only daily event log. Safe for concurrent use.
type Log struct {
	mu   sync.Mutex
	dir  string
	day  string
	lg   *zap.Logger
	file *os.File
	now  func() time.Time
}

func New(dir string) *Log {
	return &Log{dir: dir, now: istNow}
}

// Eventf appends one formatted line to today's log file.
func (l *Log) Eventf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lg, err := l.loggerForToday()
	if err != nil {
		return
	}
	lg.Info(fmt.Sprintf(format, args...))
}

// Sentiment records the outcome of one sentiment evaluation.
func (l *Log) Sentiment(label types.Label, score float64, symbols []string) {
	l.Eventf("Sentiment: %s (%.2f) | %v", label, score, symbols)
}

// Placed records a newly opened position.
func (l *Log) Placed(o types.Order) {
	l.Eventf("Placed %s %s | Qty:%d | Entry:%.2f | SL:%.2f",
		o.Direction, o.Instrument.Symbol, o.Qty, o.Entry, o.StopLoss)
}

// Closed records an exited position.
func (l *Log) Closed(t types.ClosedTrade) {
	l.Eventf("Closed %s | %s | PnL:%.2f", t.Symbol, t.Direction, t.PnL)
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lg == nil {
		return nil
	}
	_ = l.lg.Sync()
	err := l.file.Close()
	l.lg, l.file = nil, nil
	return err
}

// loggerForToday rotates to a fresh file on the first write of each day.
// Caller holds l.mu.
func (l *Log) loggerForToday() (*zap.Logger, error) {
	day := l.now().Format("2006-01-02")
	if l.lg != nil && day == l.day {
		return l.lg, nil
	}
	if l.lg != nil {
		_ = l.lg.Sync()
		_ = l.file.Close()
	}

	p := filepath.Join(l.dir, day+".log")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:    "ts",
		MessageKey: "msg",
		LevelKey:   zapcore.OmitKey,
		EncodeTime: zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		LineEnding: zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.InfoLevel)

	l.day = day
	l.file = f
	l.lg = zap.New(core, zap.WithClock(logClock{now: l.now}))
	return l.lg, nil
}

// CompressOlder gzips log files older than retentionDays and removes the
// originals. A zero or negative retention disables the sweep.
func CompressOlder(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".log" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, e := os.Stat(gz); e == nil {
			return os.Remove(p)
		}

		in, e := os.Open(p)
		if e != nil {
			return nil
		}
		defer in.Close()

		out, e := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if e != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, e := io.Copy(gw, in); e == nil {
			_ = gw.Close()
			_ = out.Close()
			_ = os.Remove(p)
		} else {
			_ = gw.Close()
			_ = out.Close()
		}
		return nil
	})
}
