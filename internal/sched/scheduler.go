// Package sched drives the periodic trading, monitoring, and end-of-day
// jobs on an IST clock. Each job is serialized with itself: a tick that
// fires while the previous run is still going is delayed, never dropped
// and never run concurrently.
package sched

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/store"
)

var ist = time.FixedZone("IST", 19800)

// Scheduler wraps the cron runner with the three bot jobs registered.
type Scheduler struct {
	c *cron.Cron
}

// New registers the trading cycle, monitor cycle, and end-of-day job per
// the configured cadence.
func New(cfg *store.Config, trading, monitor, eod func(ctx context.Context)) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(ist),
		cron.WithChain(cron.DelayIfStillRunning(cronLogger{})),
	)

	eodSpec, err := ClockSpec(cfg.EOD.At)
	if err != nil {
		return nil, err
	}

	register := func(spec string, run func(ctx context.Context)) error {
		_, err := c.AddFunc(spec, func() { run(context.Background()) })
		if err != nil {
			return fmt.Errorf("register job %q: %w", spec, err)
		}
		return nil
	}
	if err := register(fmt.Sprintf("@every %ds", cfg.Trading.IntervalSeconds), trading); err != nil {
		return nil, err
	}
	if err := register(fmt.Sprintf("@every %ds", cfg.Monitor.IntervalSeconds), monitor); err != nil {
		return nil, err
	}
	if err := register(eodSpec, eod); err != nil {
		return nil, err
	}
	return &Scheduler{c: c}, nil
}

// ClockSpec converts a wall-clock time like "15:40" into a daily cron spec.
func ClockSpec(at string) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", fmt.Errorf("parse clock time %q: %w", at, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop halts scheduling and waits for in-flight jobs to drain, up to the
// caller's deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	drained := s.c.Stop()
	select {
	case <-drained.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger routes the cron runner's own messages through the app logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...interface{}) {
	logger.Debug(context.Background(), "Scheduler: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...interface{}) {
	args := append([]interface{}{"error", err}, kv...)
	logger.Error(context.Background(), "Scheduler: "+msg, args...)
}
