package hierarchy

import (
	"math"
	"time"

	"MacroRadar/internal/model"
	"MacroRadar/internal/series"
)

// Aggregator assembles the category tree for one date. Leaf values come
// from the scaling policy; every internal value is then overwritten as
// the exact sum of its children, so the animated treemap never shows a
// parent that disagrees with its parts.
type Aggregator struct {
	Schema *Schema
	Policy Policy
	Table  *model.AlignedTable
	// ColorDays is the calendar-day horizon of the leaf color metric
	// (percentage change, display only).
	ColorDays int
}

// Build produces the full tree for day from that day's per-entity
// results. Every schema member gets a leaf even when its result is a
// skip: the leaf then carries value 0, which keeps the node-id set
// stable across frames while staying distinguishable from "excluded
// from the schema".
func (a *Aggregator) Build(day time.Time, results map[string]model.Result) *model.Node {
	root := &model.Node{ID: a.Schema.RootID, Label: a.Schema.RootLabel}
	for _, cat := range a.Schema.Categories {
		catNode := &model.Node{
			ID:       cat.ID,
			ParentID: root.ID,
			Label:    cat.Label,
			Category: cat.ID,
		}
		for _, m := range cat.Members {
			var rec *model.MetricRecord
			if r, ok := results[m.ID]; ok && r.OK() {
				rec = r.Record
			}
			leaf := &model.Node{
				ID:          m.ID,
				ParentID:    cat.ID,
				Label:       m.Label,
				Category:    cat.ID,
				Value:       a.Policy.LeafValue(m.ID, day, rec),
				ColorMetric: a.leafColor(m.ID, day, rec),
			}
			catNode.Children = append(catNode.Children, leaf)
		}
		root.Children = append(root.Children, catNode)
	}
	Conserve(root)
	return root
}

// leafColor is the entity's percentage change over ColorDays calendar
// days, resolved with nearest-prior semantics so weekly macro releases
// line up against daily closes. Unresolvable lookbacks read as 0.
func (a *Aggregator) leafColor(entityID string, day time.Time, rec *model.MetricRecord) float64 {
	if rec == nil || a.Table == nil || a.ColorDays <= 0 {
		return 0
	}
	row, ok := series.Resolve(a.Table, day, a.ColorDays)
	if !ok {
		return 0
	}
	prev := a.Table.Value(entityID, row)
	if math.IsNaN(prev) || prev == 0 {
		return 0
	}
	return (rec.Price - prev) / prev * 100
}

// Conserve recomputes every internal node's value as the sum of its
// direct children, leaves up to the root, and returns the node's final
// value. Parent color metrics become the value-weighted average of
// their children; that part is presentation only.
func Conserve(n *model.Node) float64 {
	if n.IsLeaf() {
		return n.Value
	}
	var total, colorWeighted float64
	for _, c := range n.Children {
		v := Conserve(c)
		total += v
		colorWeighted += v * c.ColorMetric
	}
	n.Value = total
	if total != 0 {
		n.ColorMetric = colorWeighted / total
	} else {
		n.ColorMetric = 0
	}
	return total
}
