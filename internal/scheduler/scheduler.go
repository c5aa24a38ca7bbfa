package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"MacroRadar/internal/calculator"
	"MacroRadar/internal/collector"
	"MacroRadar/internal/config"
	"MacroRadar/internal/hierarchy"
	"MacroRadar/internal/recorder"
	"MacroRadar/internal/report"
	"MacroRadar/internal/series"
	"MacroRadar/internal/snapshot"
)

// Scheduler runs the refresh pipeline on a cron cadence: fetch, align,
// compute, aggregate, record, export.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Cfg       *config.Config
	Schema    *hierarchy.Schema
	Ctx       context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Cfg:       cfg,
		Schema:    cfg.Schema(),
		Ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterAll registers the refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh")
	if err := s.Refresh(); err != nil {
		log.Printf("[ERROR] refresh: %v", err)
	}
}

// Refresh runs one full pipeline pass. The engine stages after Collect
// are pure functions of the aligned table, so re-running on unchanged
// data rewrites identical output.
func (s *Scheduler) Refresh() error {
	end := s.now()
	start := end.AddDate(0, 0, -s.Cfg.Data.LookbackDays)

	store, err := s.Collector.Collect(start, end)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	table, err := series.Align(store, start, end)
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}
	series.DeriveLiquidity(table)

	calc := calculator.New(table, s.Cfg.Params())
	agg := &hierarchy.Aggregator{
		Schema:    s.Schema,
		Policy:    hierarchy.AnchoredProxy{Table: table, Anchors: s.Cfg.Hierarchy.Anchors},
		Table:     table,
		ColorDays: s.Cfg.Hierarchy.ColorDays,
	}
	builder := &snapshot.Builder{Calc: calc, Agg: agg, Workers: s.Cfg.Snapshot.Workers}

	dates := snapshot.SampleDates(table, s.Cfg.SampleWeekday(), s.Cfg.Snapshot.Frames)
	if len(dates) == 0 {
		return fmt.Errorf("no sample dates in range")
	}

	snaps, err := builder.BuildSeries(dates)
	if err != nil {
		return fmt.Errorf("build series: %w", err)
	}

	if err := s.Recorder.RecordSeries(snaps); err != nil {
		log.Printf("[ERROR] record series: %v", err)
	}
	if err := snapshot.SaveSeries(s.Cfg.Snapshot.OutputFile, snaps); err != nil {
		log.Printf("[ERROR] export snapshots: %v", err)
	}

	latest := &snaps[len(snaps)-1]
	log.Printf("[INFO] built %d frames, latest %s with %d records",
		len(snaps), latest.Date.Format("2006-01-02"), len(latest.Records))
	fmt.Println(report.FormatTrendTable(latest))
	fmt.Println(report.FormatLiquiditySummary(latest))
	d := s.Cfg.Dispersion
	fmt.Println(report.FormatDispersionRadar(table, d.Benchmark, d.EqualWeight, d.Sectors, d.Smooth))
	return nil
}
