package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MacroRadar/internal/collector"
	"MacroRadar/internal/config"
	"MacroRadar/internal/recorder"
	"MacroRadar/internal/scheduler"
	"MacroRadar/internal/snapshot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MacroRadar starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Report any frames left over from the previous run.
	if prev, err := snapshot.LoadSeries(cfg.Snapshot.OutputFile); err != nil {
		log.Printf("[WARN] read previous export: %v", err)
	} else if len(prev) > 0 {
		log.Printf("[INFO] found %d exported frames in %s, latest %s",
			len(prev), cfg.Snapshot.OutputFile, prev[len(prev)-1].Date.Format("2006-01-02"))
	}

	// Init fetchers
	var markets collector.Fetcher = collector.NewYahooFetcher(cfg.Proxy)
	var macro collector.Fetcher = collector.NewFREDFetcher(cfg.Proxy)
	if os.Getenv("USE_MOCK_DATA") == "true" {
		log.Println("[INFO] USE_MOCK_DATA enabled, using deterministic mock series")
		mock := &collector.MockFetcher{BasePrice: 100}
		markets, macro = mock, mock
	}
	log.Printf("[INFO] data sources: %s + %s", markets.Name(), macro.Name())

	// Init collector
	col := collector.NewCollector(markets, macro, cfg.AssetSymbols(), cfg.Data.MacroCodes)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, rec, cfg)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh now")
		go sched.RunNow()
	}

	log.Println("[INFO] MacroRadar is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MacroRadar stopped")
}
