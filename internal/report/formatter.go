package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"MacroRadar/internal/calculator"
	"MacroRadar/internal/model"
)

// trendLabels maps the machine states onto the scanner's display names.
var trendLabels = map[model.TrendState]string{
	model.TrendStrongUptrend:   "完美多头 (主升)",
	model.TrendStrongDowntrend: "完美空头 (主跌)",
	model.TrendBullPullback:    "牛市回调 (买点?)",
	model.TrendBearBounce:      "熊市反弹 (卖点?)",
	model.TrendLongTermBullish: "长期看涨",
	model.TrendLongTermBearish: "长期看跌",
	model.TrendChoppy:          "震荡/纠缠",
}

// FormatTrendTable renders the trend-scanner table for one snapshot,
// sorted by relative strength descending like the dashboard view.
func FormatTrendTable(snap *model.Snapshot) string {
	records := make([]model.MetricRecord, len(snap.Records))
	copy(records, snap.Records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RelStrengthPct > records[j].RelStrengthPct
	})

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 趋势扫描 | %s\n", snap.Date.Format("2006-01-02")))

	tw := tablewriter.NewWriter(&b)
	tw.SetHeader([]string{"代码", "现价", "Z-Score", "动量%", "相对强度%", "RSI", "趋势结构"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetAutoWrapText(false)

	for _, r := range records {
		rel := fmt.Sprintf("%+.2f", r.RelStrengthPct)
		if r.BenchmarkDegraded {
			rel += "*" // benchmark unavailable, absolute momentum shown
		}
		tw.Append([]string{
			r.EntityID,
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%+.2f", r.ZScore),
			fmt.Sprintf("%+.2f", r.MomentumPct),
			rel,
			fmt.Sprintf("%.0f", r.RSI),
			trendLabels[r.Trend],
		})
	}
	tw.Render()
	return b.String()
}

// FormatLiquiditySummary renders the hierarchy of one snapshot as an
// indented text block, with the conserved totals per branch.
func FormatLiquiditySummary(snap *model.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💸 资金池快照 | %s\n\n", snap.Date.Format("2006-01-02")))

	root := snap.Tree
	b.WriteString(fmt.Sprintf("%s: %s (%+.2f%%)\n", root.Label, formatMagnitude(root.Value), root.ColorMetric))
	for _, cat := range root.Children {
		b.WriteString(fmt.Sprintf("  %s: %s (%+.2f%%)\n", cat.Label, formatMagnitude(cat.Value), cat.ColorMetric))
		for _, leaf := range cat.Children {
			b.WriteString(fmt.Sprintf("    %s: %s (%+.2f%%)\n", leaf.Label, formatMagnitude(leaf.Value), leaf.ColorMetric))
		}
	}
	return b.String()
}

// FormatDispersionRadar renders the market-breadth view: the
// cap-weighted index against its equal-weight twin rebased over the
// table's history, and the smoothed cross-sectional dispersion of daily
// sector returns. A widening cap-weighted lead with low dispersion
// means the index is carried by a few heavyweights.
func FormatDispersionRadar(t *model.AlignedTable, benchID, eqID string, sectors []string, smooth int) string {
	var b strings.Builder
	b.WriteString("📡 市场宽度雷达\n")

	bench := calculator.Rebase(t, benchID)
	eq := calculator.Rebase(t, eqID)
	if i := lastValid(bench); i >= 0 {
		b.WriteString(fmt.Sprintf("  %s (市值加权): %+.2f%%\n", benchID, bench[i]))
	}
	if i := lastValid(eq); i >= 0 {
		b.WriteString(fmt.Sprintf("  %s (等权): %+.2f%%\n", eqID, eq[i]))
	}

	disp := calculator.Dispersion(t, sectors, smooth)
	i := lastValid(disp)
	if i < 0 {
		b.WriteString("  板块离散度: 数据不足\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("  板块离散度 (MA%d): %.2f | %s\n",
		smooth, disp[i], t.Calendar[i].Format("2006-01-02")))
	return b.String()
}

// lastValid returns the index of the latest non-NaN value, or -1.
func lastValid(vals []float64) int {
	for i := len(vals) - 1; i >= 0; i-- {
		if !math.IsNaN(vals[i]) {
			return i
		}
	}
	return -1
}

// formatMagnitude prints billions up to 10000, then trillions, matching
// the dashboard's display convention.
func formatMagnitude(v float64) string {
	if v < 10000 {
		return fmt.Sprintf("$%.1fB", v)
	}
	return fmt.Sprintf("$%.1fT", v/1000)
}
