package calculator

import (
	"math"

	"MacroRadar/internal/model"
)

// Rebase returns, for every calendar day, the percentage gain of the
// column over its first valid value. Days before inception are NaN.
// Used to compare a cap-weighted index against its equal-weight twin.
func Rebase(t *model.AlignedTable, id string) []float64 {
	col, ok := t.Columns[id]
	out := make([]float64, len(t.Calendar))
	base := math.NaN()
	for i := range out {
		if ok && math.IsNaN(base) && !math.IsNaN(col[i]) && col[i] != 0 {
			base = col[i]
		}
		if !ok || math.IsNaN(base) || math.IsNaN(col[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (col[i]/base - 1) * 100
	}
	return out
}

// Dispersion returns the cross-sectional sample standard deviation of
// one-day percentage returns across ids, smoothed with an n-day moving
// average. High dispersion means sectors are diverging; low dispersion
// means the market moves as one block. Days with fewer than two valid
// returns, or an incomplete smoothing window, are NaN.
func Dispersion(t *model.AlignedTable, ids []string, smooth int) []float64 {
	n := len(t.Calendar)
	raw := make([]float64, n)
	if n == 0 {
		return raw
	}
	raw[0] = math.NaN()
	rets := make([]float64, 0, len(ids))
	for i := 1; i < n; i++ {
		rets = rets[:0]
		for _, id := range ids {
			col, ok := t.Columns[id]
			if !ok {
				continue
			}
			prev, curr := col[i-1], col[i]
			if math.IsNaN(prev) || math.IsNaN(curr) || prev == 0 {
				continue
			}
			rets = append(rets, (curr/prev-1)*100)
		}
		if len(rets) < 2 {
			raw[i] = math.NaN()
			continue
		}
		_, std := meanStd(rets)
		raw[i] = std
	}
	if smooth <= 1 {
		return raw
	}
	return movingAverage(raw, smooth)
}

// movingAverage smooths vals with a trailing window; a window containing
// any NaN yields NaN, matching a strict rolling mean.
func movingAverage(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range out {
		if i+1 < window {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(vals[j]) {
				valid = false
				break
			}
			sum += vals[j]
		}
		if !valid {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}
