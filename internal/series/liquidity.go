package series

import (
	"math"

	"MacroRadar/internal/model"
)

// FRED series codes feeding the liquidity view. WALCL and WTREGEN are
// reported in millions and rescaled to billions so all liquidity columns
// share one unit.
const (
	FedBalanceSheetCode = "WALCL"
	TreasuryTGACode     = "WTREGEN"
	ReverseRepoCode     = "RRPONTSYD"
	M2Code              = "M2SL"
)

// Derived liquidity column ids.
const (
	ColFedAssets    = "Fed_Assets"
	ColTGA          = "TGA"
	ColRRP          = "RRP"
	ColM2           = "M2"
	ColNetLiquidity = "Net_Liquidity"
)

// DeriveLiquidity adds the rescaled macro columns and, when all three
// components are present, Net_Liquidity = Fed_Assets - TGA - RRP.
// NaN slots propagate: net liquidity is undefined on any day a component
// is still undefined.
func DeriveLiquidity(t *model.AlignedTable) {
	scale(t, FedBalanceSheetCode, ColFedAssets, 1.0/1000)
	scale(t, TreasuryTGACode, ColTGA, 1.0/1000)
	scale(t, ReverseRepoCode, ColRRP, 1)
	scale(t, M2Code, ColM2, 1)

	fed, okF := t.Columns[ColFedAssets]
	tga, okT := t.Columns[ColTGA]
	rrp, okR := t.Columns[ColRRP]
	if !okF || !okT || !okR {
		return
	}
	net := make([]float64, len(t.Calendar))
	for i := range net {
		net[i] = fed[i] - tga[i] - rrp[i] // NaN-propagating
	}
	t.Columns[ColNetLiquidity] = net
}

func scale(t *model.AlignedTable, from, to string, factor float64) {
	src, ok := t.Columns[from]
	if !ok {
		return
	}
	dst := make([]float64, len(src))
	for i, v := range src {
		if math.IsNaN(v) {
			dst[i] = math.NaN()
			continue
		}
		dst[i] = v * factor
	}
	t.Columns[to] = dst
}
