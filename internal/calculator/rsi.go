package calculator

// RSI computes the Wilder-smoothed relative strength index over the
// given period. Requires at least period+1 values; returns the neutral
// 50.0 when data is insufficient. Zero average loss saturates at 100.
func RSI(vals []float64, period int) float64 {
	if period <= 0 || len(vals) < period+1 {
		return 50.0
	}

	// Initial average gain/loss over the first `period` changes.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := vals[i] - vals[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for the remaining values.
	for i := period + 1; i < len(vals); i++ {
		change := vals[i] - vals[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	if rsi < 0 {
		rsi = 0
	}
	if rsi > 100 {
		rsi = 100
	}
	return rsi
}
