package report

import (
	"strings"
	"testing"
	"time"

	"MacroRadar/internal/model"
)

func testTable(start time.Time, cols map[string][]float64) *model.AlignedTable {
	days := 0
	for _, c := range cols {
		if len(c) > days {
			days = len(c)
		}
	}
	calendar := make([]time.Time, days)
	for i := range calendar {
		calendar[i] = start.AddDate(0, 0, i)
	}
	return &model.AlignedTable{Calendar: calendar, Columns: cols}
}

func ramp(n int, from, to float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return vals
}

func TestFormatDispersionRadar(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	flat := make([]float64, 40)
	for i := range flat {
		flat[i] = 100
	}
	table := testTable(start, map[string][]float64{
		"SPY": ramp(40, 100, 110), // cap-weighted gains 10%
		"RSP": flat,               // equal-weight twin flat
		"XLK": ramp(40, 100, 130),
		"XLF": ramp(40, 100, 80),
	})

	out := FormatDispersionRadar(table, "SPY", "RSP", []string{"XLK", "XLF"}, 5)

	if !strings.Contains(out, "SPY") || !strings.Contains(out, "RSP") {
		t.Fatalf("both index legs must be named:\n%s", out)
	}
	if !strings.Contains(out, "+10.00%") {
		t.Errorf("cap-weighted rebase should read +10.00%%:\n%s", out)
	}
	if !strings.Contains(out, "+0.00%") {
		t.Errorf("equal-weight rebase should read +0.00%%:\n%s", out)
	}
	if !strings.Contains(out, "MA5") {
		t.Errorf("smoothing window should be labelled:\n%s", out)
	}
	if strings.Contains(out, "数据不足") {
		t.Errorf("40 days of sector data must yield a dispersion reading:\n%s", out)
	}
}

func TestFormatDispersionRadar_InsufficientData(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := testTable(start, map[string][]float64{
		"SPY": ramp(3, 100, 101),
	})
	out := FormatDispersionRadar(table, "SPY", "RSP", []string{"XLK", "XLF"}, 20)
	if !strings.Contains(out, "数据不足") {
		t.Errorf("missing sectors must degrade to the placeholder:\n%s", out)
	}
}

func TestFormatTrendTable_DegradedMarker(t *testing.T) {
	snap := &model.Snapshot{
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Records: []model.MetricRecord{
			{EntityID: "GLD", Price: 180, RelStrengthPct: 2.5, Trend: model.TrendStrongUptrend},
			{EntityID: "NEWIPO", Price: 40, RelStrengthPct: 1.0, Trend: model.TrendChoppy, BenchmarkDegraded: true},
		},
		Tree: &model.Node{ID: "root", Label: "Pool"},
	}
	out := FormatTrendTable(snap)
	if !strings.Contains(out, "+1.00*") {
		t.Errorf("degraded relative strength must carry the * marker:\n%s", out)
	}
	if !strings.Contains(out, "GLD") || !strings.Contains(out, "NEWIPO") {
		t.Errorf("every record must be listed:\n%s", out)
	}
}
