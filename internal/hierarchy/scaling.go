package hierarchy

import (
	"math"
	"time"

	"MacroRadar/internal/model"
)

// Policy computes the magnitude of one leaf at a date. rec is nil when
// the entity produced no metric record for that date.
type Policy interface {
	LeafValue(entityID string, day time.Time, rec *model.MetricRecord) float64
}

// AbsoluteMagnitude uses the entity's own level as its magnitude,
// suitable for macro aggregates whose natural unit is already a currency
// amount. Negative levels (a net-liquidity drain) size by absolute
// value.
type AbsoluteMagnitude struct{}

func (AbsoluteMagnitude) LeafValue(_ string, _ time.Time, rec *model.MetricRecord) float64 {
	if rec == nil {
		return 0
	}
	return math.Abs(rec.Price)
}

// AnchoredProxy scales a fixed present-day size estimate by the price
// ratio to the anchor date, letting a hand-curated "current market cap"
// breathe with price history without a true market-cap series. Entities
// without an anchor fall back to absolute magnitude.
type AnchoredProxy struct {
	Table   *model.AlignedTable
	Anchors map[string]float64 // entity id -> size estimate at the anchor date
}

func (p AnchoredProxy) LeafValue(entityID string, day time.Time, rec *model.MetricRecord) float64 {
	if rec == nil {
		return 0
	}
	anchor, ok := p.Anchors[entityID]
	if !ok {
		return AbsoluteMagnitude{}.LeafValue(entityID, day, rec)
	}
	row := p.Table.LastValidRow(entityID)
	if row < 0 {
		return anchor
	}
	anchorPrice := p.Table.Value(entityID, row)
	if anchorPrice == 0 || math.IsNaN(anchorPrice) {
		return anchor
	}
	return anchor * rec.Price / anchorPrice
}
