package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/tinytrainer/hooks"
	"github.com/example/tinytrainer/visual"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		headless   = flag.Bool("headless", false, "Run a fixed number of ticks without the web UI")
		addr       = flag.String("addr", "", "Listen address for the web UI (overrides config)")
		seed       = flag.Int64("seed", 0, "Random seed, 0 seeds from the clock (overrides config)")
		ticks      = flag.Int("ticks", 0, "Tick count for headless mode (overrides config)")
		logLevel   = flag.String("log-level", "", "Log level: error, warn, info, debug (overrides config)")
	)
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *headless {
		cfg.Headless = true
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *ticks > 0 {
		cfg.HeadlessTicks = *ticks
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	GetLogger().SetLevel(ParseLogLevel(cfg.LogLevel))

	broker := hooks.NewBroker()
	metrics := newMetricsRegistry()
	metrics.Subscribe(broker)

	if cfg.Headless {
		viz := visual.NewNullVisualizer()
		session := NewSession(cfg, viz, broker)
		stats := session.RunHeadless(cfg.HeadlessTicks)
		PrintStats(stats)
		return
	}

	viz := NewWebVisualizer(cfg.Addr, cfg.StaticDir, metrics)
	session := NewSession(cfg, viz, broker)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := viz.Server().Stop(shutdownCtx); err != nil {
		GetLogger().Warnf("Server shutdown: %v", err)
	}
}
