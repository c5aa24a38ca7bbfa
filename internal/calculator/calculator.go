package calculator

import (
	"math"
	"time"

	"MacroRadar/internal/model"
	"MacroRadar/internal/series"
)

// Params controls the rolling windows and horizons.
type Params struct {
	Window       int     // trailing observations for the Z-score
	MinFraction  float64 // fraction of Window required before an entity is eligible
	ShortHorizon int     // observations for momentum / relative strength
	RSIPeriod    int
	EMASpans     [4]int // ascending short/medium/long/very-long spans
	BenchmarkID  string // entity whose momentum anchors relative strength
}

// DefaultParams returns the standard 1-year configuration.
func DefaultParams() Params {
	return Params{
		Window:       250,
		MinFraction:  0.9,
		ShortHorizon: 20,
		RSIPeriod:    14,
		EMASpans:     [4]int{20, 60, 120, 200},
		BenchmarkID:  "SPY",
	}
}

// MinObservations is the eligibility threshold implied by the params.
func (p Params) MinObservations() int {
	return int(math.Ceil(p.MinFraction * float64(p.Window)))
}

// Calculator computes per-entity rolling metrics against one immutable
// aligned table. It holds no mutable state and is safe for concurrent
// use.
type Calculator struct {
	table *model.AlignedTable
	p     Params
}

// New creates a Calculator over the table.
func New(table *model.AlignedTable, p Params) *Calculator {
	return &Calculator{table: table, p: p}
}

// Params returns the configured parameters.
func (c *Calculator) Params() Params { return c.p }

// Compute evaluates one entity as of one date. Entities whose series was
// never fetched, or which lack the minimum history at that date, yield a
// skip result rather than an error: the caller keeps processing the
// rest.
func (c *Calculator) Compute(entityID string, day time.Time) model.Result {
	col, ok := c.table.Columns[entityID]
	if !ok {
		return model.Skipped(model.SkipDataUnavailable)
	}
	row, ok := series.AsOf(c.table, day)
	if !ok {
		return model.Skipped(model.SkipInsufficientHistory)
	}
	vals := compact(col, row)
	if len(vals) < c.p.MinObservations() {
		return model.Skipped(model.SkipInsufficientHistory)
	}

	price := vals[len(vals)-1]
	mom, momOK := Momentum(vals, c.p.ShortHorizon)
	rel, benchDegraded := c.relativeStrength(mom, row)
	biases := ComputeBiases(vals, c.p.EMASpans)

	return model.Ok(&model.MetricRecord{
		Date:              model.Day(day),
		EntityID:          entityID,
		Price:             price,
		ZScore:            ZScore(vals, c.p.Window),
		MomentumPct:       mom,
		RSI:               RSI(vals, c.p.RSIPeriod),
		RelStrengthPct:    rel,
		Trend:             Classify(biases),
		MomentumDegraded:  !momOK,
		BenchmarkDegraded: benchDegraded,
	})
}

// relativeStrength subtracts the benchmark's momentum over the same
// horizon as of the same row. A benchmark that is missing or too short
// degrades to absolute momentum, flagged so the fallback stays visible.
func (c *Calculator) relativeStrength(mom float64, row int) (float64, bool) {
	col, ok := c.table.Columns[c.p.BenchmarkID]
	if !ok {
		return mom, true
	}
	benchVals := compact(col, row)
	benchMom, ok := Momentum(benchVals, c.p.ShortHorizon)
	if !ok {
		return mom, true
	}
	return mom - benchMom, false
}

// ComputeAll evaluates every entity in ids as of day. Callers wanting a
// deterministic order iterate ids themselves.
func (c *Calculator) ComputeAll(ids []string, day time.Time) map[string]model.Result {
	out := make(map[string]model.Result, len(ids))
	for _, id := range ids {
		out[id] = c.Compute(id, day)
	}
	return out
}
