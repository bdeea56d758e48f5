package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "trace init failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	app, err := bootstrap(ctx, *configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Bootstrap failed", err)
		os.Exit(1)
	}

	app.scheduler.Start()
	logger.Info(ctx, "Trading bot started",
		"universe", len(app.universe),
		"trading_interval_s", app.cfg.Trading.IntervalSeconds,
		"monitor_interval_s", app.cfg.Monitor.IntervalSeconds,
		"eod_at", app.cfg.EOD.At)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Info(ctx, "Shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	app.shutdown(shutdownCtx)
}
