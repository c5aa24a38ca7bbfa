package calculator

import "MacroRadar/internal/model"

// EMA returns the exponential moving average of vals with the given
// span, seeded from the first value (the recursive form, equivalent to
// pandas ewm(span=n, adjust=False)).
func EMA(vals []float64, span int) float64 {
	if len(vals) == 0 || span <= 0 {
		return 0
	}
	alpha := 2.0 / (float64(span) + 1.0)
	ema := vals[0]
	for _, v := range vals[1:] {
		ema = alpha*v + (1-alpha)*ema
	}
	return ema
}

// TrendBiases holds the four signed percentage gaps of the stacked
// moving-average ladder: price vs short EMA, short vs medium, medium vs
// long, long vs very long.
type TrendBiases struct {
	PriceVsShort   float64
	ShortVsMedium  float64
	MediumVsLong   float64
	LongVsVeryLong float64
}

// ComputeBiases derives the ladder gaps from the value history and four
// ascending EMA spans.
func ComputeBiases(vals []float64, spans [4]int) TrendBiases {
	price := 0.0
	if len(vals) > 0 {
		price = vals[len(vals)-1]
	}
	s := EMA(vals, spans[0])
	m := EMA(vals, spans[1])
	l := EMA(vals, spans[2])
	vl := EMA(vals, spans[3])
	return TrendBiases{
		PriceVsShort:   gapPct(price, s),
		ShortVsMedium:  gapPct(s, m),
		MediumVsLong:   gapPct(m, l),
		LongVsVeryLong: gapPct(l, vl),
	}
}

func gapPct(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// Classify maps the four signed biases onto a trend state. The function
// is total: every combination lands in exactly one state, and a bias of
// exactly zero resolves to the non-negative branch.
func Classify(b TrendBiases) model.TrendState {
	cs := b.PriceVsShort >= 0
	sm := b.ShortVsMedium >= 0
	ml := b.MediumVsLong >= 0
	lvl := b.LongVsVeryLong >= 0
	switch {
	case cs && sm && ml && lvl:
		return model.TrendStrongUptrend
	case !cs && !sm && !ml && !lvl:
		return model.TrendStrongDowntrend
	case lvl && !cs:
		return model.TrendBullPullback
	case lvl:
		return model.TrendLongTermBullish
	case !lvl && cs:
		return model.TrendBearBounce
	case !lvl:
		return model.TrendLongTermBearish
	default:
		return model.TrendChoppy
	}
}
