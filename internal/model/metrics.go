package model

import "time"

// TrendState classifies the alignment of an instrument's stacked moving
// averages across four horizons.
type TrendState string

const (
	TrendStrongUptrend   TrendState = "strong_uptrend"
	TrendStrongDowntrend TrendState = "strong_downtrend"
	TrendBullPullback    TrendState = "bull_pullback"
	TrendBearBounce      TrendState = "bear_bounce"
	TrendLongTermBullish TrendState = "long_term_bullish"
	TrendLongTermBearish TrendState = "long_term_bearish"
	TrendChoppy          TrendState = "choppy"
)

// MetricRecord holds the rolling metrics of one entity as of one date.
//
// The degradation flags distinguish a neutral fallback value from a true
// computed zero: MomentumDegraded means the lookback target predates the
// available history, BenchmarkDegraded means relative strength fell back
// to absolute momentum because the benchmark lacked history.
type MetricRecord struct {
	Date              time.Time  `json:"date"`
	EntityID          string     `json:"entity_id"`
	Price             float64    `json:"price"`
	ZScore            float64    `json:"z_score"`
	MomentumPct       float64    `json:"momentum_pct"`
	RSI               float64    `json:"rsi"`
	RelStrengthPct    float64    `json:"rel_strength_pct"`
	Trend             TrendState `json:"trend"`
	MomentumDegraded  bool       `json:"momentum_degraded,omitempty"`
	BenchmarkDegraded bool       `json:"benchmark_degraded,omitempty"`
}

// SkipReason explains why an entity produced no record for a date.
type SkipReason string

const (
	SkipDataUnavailable     SkipReason = "data_unavailable"
	SkipInsufficientHistory SkipReason = "insufficient_history"
)

// Result is the per-entity outcome of a metric computation: either a
// record, or the reason the entity was skipped for that date. Skips are
// policy, not errors; the caller aggregates them and keeps going.
type Result struct {
	Record *MetricRecord
	Skip   SkipReason
}

// OK reports whether the computation produced a record.
func (r Result) OK() bool { return r.Record != nil }

// Skipped builds a skip Result.
func Skipped(reason SkipReason) Result { return Result{Skip: reason} }

// Ok builds a successful Result.
func Ok(rec *MetricRecord) Result { return Result{Record: rec} }
