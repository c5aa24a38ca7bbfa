package snapshot

import (
	"time"

	"golang.org/x/sync/errgroup"

	"MacroRadar/internal/calculator"
	"MacroRadar/internal/hierarchy"
	"MacroRadar/internal/model"
)

// Builder drives the calculator and aggregator across an ordered list of
// sample dates, producing the frame sequence an animation renderer
// consumes. Every frame carries the same node-id set: entities without
// data appear as zero-valued leaves instead of disappearing, so frames
// interpolate cleanly.
type Builder struct {
	Calc    *calculator.Calculator
	Agg     *hierarchy.Aggregator
	Workers int // concurrent frame builds; <=1 means sequential
}

// BuildSeries computes one snapshot per sample date, in order. Frames
// are independent of each other and of prior runs: each worker only
// reads the immutable aligned table, and the same input always yields
// the same output.
func (b *Builder) BuildSeries(sampleDates []time.Time) ([]model.Snapshot, error) {
	snaps := make([]model.Snapshot, len(sampleDates))

	var g errgroup.Group
	limit := b.Workers
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, day := range sampleDates {
		i, day := i, day
		g.Go(func() error {
			snaps[i] = b.buildFrame(day)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snaps, nil
}

func (b *Builder) buildFrame(day time.Time) model.Snapshot {
	ids := b.Agg.Schema.EntityIDs()
	results := b.Calc.ComputeAll(ids, day)

	// Records keep schema priority order; skips stay out of the record
	// list but still get a zero-valued leaf below.
	records := make([]model.MetricRecord, 0, len(ids))
	for _, id := range ids {
		if r := results[id]; r.OK() {
			records = append(records, *r.Record)
		}
	}

	return model.Snapshot{
		Date:    model.Day(day),
		Records: records,
		Tree:    b.Agg.Build(day, results),
	}
}

// SampleDates returns the last `frames` calendar days falling on the
// given weekday, oldest first. The weekly-Friday cadence of the original
// dashboards is just weekday=Friday, frames=52.
func SampleDates(t *model.AlignedTable, weekday time.Weekday, frames int) []time.Time {
	var days []time.Time
	for _, day := range t.Calendar {
		if day.Weekday() == weekday {
			days = append(days, day)
		}
	}
	if frames > 0 && len(days) > frames {
		days = days[len(days)-frames:]
	}
	return days
}
