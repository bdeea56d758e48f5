package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"intraday-trader/internal/auditlog"
	"intraday-trader/internal/backtest"
	"intraday-trader/internal/engine"
	"intraday-trader/internal/eod"
	"intraday-trader/internal/ledger"
	"intraday-trader/internal/logger"
	"intraday-trader/internal/marketdata"
	"intraday-trader/internal/news"
	"intraday-trader/internal/sched"
	"intraday-trader/internal/sentiment"
	"intraday-trader/internal/store"
	"intraday-trader/internal/trace"
	"intraday-trader/internal/types"
	"intraday-trader/internal/universe"
)

// app holds every long-lived component wired at startup.
type app struct {
	cfg       *store.Config
	universe  []types.Instrument
	audit     *auditlog.Log
	book      *ledger.Ledger
	eng       *engine.Engine
	eodJob    *eod.Reconciler
	scheduler *sched.Scheduler
}

func bootstrap(ctx context.Context, configPath string) (*app, error) {
	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	instruments, err := universe.Load(ctx, cfg.UniverseDir)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	logger.Info(ctx, "Universe loaded", "instruments", len(instruments), "dir", cfg.UniverseDir)

	logDir := auditlog.Dir(cfg.LogDir)
	audit := auditlog.New(logDir)
	if days := retentionDays(); days > 0 {
		if err := auditlog.CompressOlder(logDir, days); err != nil {
			logger.Warn(ctx, "Log retention sweep failed", "error", err)
		}
	}

	book := ledger.New(audit)
	feed := marketdata.NewYahoo(cfg.Data.FrameDays, cfg.Data.TimeoutSeconds)
	estimator := backtest.NewEstimator(feed)
	agg := sentiment.NewAggregator(news.NewProvider(cfg), sentiment.DefaultScorers(), instruments, audit)
	eng := engine.New(
		agg,
		engine.NewSignalEvaluator(estimator),
		engine.NewRiskSizer(engine.Budget{Capital: cfg.Risk.Capital, RiskFraction: cfg.Risk.RiskFraction}),
		book,
		feed,
	)
	eodJob := eod.NewReconciler(book, cfg.ReportDir)

	scheduler, err := sched.New(cfg, eng.TradingCycle, eng.MonitorCycle, eodJob.Run)
	if err != nil {
		return nil, fmt.Errorf("build scheduler: %w", err)
	}

	return &app{
		cfg:       cfg,
		universe:  instruments,
		audit:     audit,
		book:      book,
		eng:       eng,
		eodJob:    eodJob,
		scheduler: scheduler,
	}, nil
}

// shutdown drains the scheduler, closes whatever is still open, flushes a
// final report, and tears down logging and tracing.
func (a *app) shutdown(ctx context.Context) {
	if err := a.scheduler.Stop(ctx); err != nil {
		logger.Warn(ctx, "Scheduler did not drain before deadline", "error", err)
	}

	if n := a.book.OpenCount(); n > 0 {
		logger.Info(ctx, "Closing open positions on shutdown", "count", n)
		a.book.ForceCloseAll(ctx)
	}
	a.eodJob.Run(ctx)

	if err := a.audit.Close(); err != nil {
		logger.Warn(ctx, "Audit log close failed", "error", err)
	}
	if err := trace.Shutdown(ctx); err != nil {
		logger.Warn(ctx, "Trace shutdown failed", "error", err)
	}
	logger.Info(ctx, "Trading bot stopped")
}

// retentionDays reads the TRADER_LOG_RETENTION_DAYS override; zero disables
// the compression sweep.
func retentionDays() int {
	v := os.Getenv("TRADER_LOG_RETENTION_DAYS")
	if v == "" {
		return 7
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 7
	}
	return n
}
