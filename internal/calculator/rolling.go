package calculator

import "math"

// compact returns the non-NaN values of col[:row+1] in chronological
// order. After forward-fill these are the entity's usable observations
// ending at the reference row.
func compact(col []float64, row int) []float64 {
	if row >= len(col) {
		row = len(col) - 1
	}
	vals := make([]float64, 0, row+1)
	for i := 0; i <= row; i++ {
		if !math.IsNaN(col[i]) {
			vals = append(vals, col[i])
		}
	}
	return vals
}

// meanStd returns the mean and sample standard deviation of vals.
func meanStd(vals []float64) (mean, std float64) {
	n := float64(len(vals))
	if n == 0 {
		return 0, 0
	}
	for _, v := range vals {
		mean += v
	}
	mean /= n
	if n < 2 {
		return mean, 0
	}
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / (n - 1))
}

// ZScore measures how many standard deviations the latest value sits
// above its trailing window mean. A flat window (zero std) yields the
// neutral 0, never NaN or ±Inf.
func ZScore(vals []float64, window int) float64 {
	if len(vals) == 0 {
		return 0
	}
	start := len(vals) - window
	if start < 0 {
		start = 0
	}
	tail := vals[start:]
	mean, std := meanStd(tail)
	if std == 0 {
		return 0
	}
	return (vals[len(vals)-1] - mean) / std
}

// Momentum returns the percentage change from the value `horizon`
// observations back to the latest value. ok=false when the lookback
// target predates the series or the base value is zero; the momentum is
// then the neutral 0 and the caller records the degradation so it stays
// distinguishable from a true flat reading.
func Momentum(vals []float64, horizon int) (pct float64, ok bool) {
	i := len(vals) - 1 - horizon
	if i < 0 {
		return 0, false
	}
	base := vals[i]
	if base == 0 {
		return 0, false
	}
	return (vals[len(vals)-1]/base - 1) * 100, true
}
