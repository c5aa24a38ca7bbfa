package snapshot

import (
	"math"
	"reflect"
	"testing"
	"time"

	"MacroRadar/internal/calculator"
	"MacroRadar/internal/hierarchy"
	"MacroRadar/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ramp(n int, from, to float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return vals
}

func testBuilder(workers int) (*Builder, *model.AlignedTable) {
	n := 120
	calendar := make([]time.Time, n)
	for i := range calendar {
		calendar[i] = day(2024, 1, 1).AddDate(0, 0, i)
	}
	// LATE starts too recently to ever clear the history floor.
	late := make([]float64, n)
	for i := range late {
		if i < n-5 {
			late[i] = math.NaN()
		} else {
			late[i] = 50
		}
	}
	table := &model.AlignedTable{
		Calendar: calendar,
		Columns: map[string][]float64{
			"SPY":  ramp(n, 400, 440),
			"GLD":  ramp(n, 180, 190),
			"LATE": late,
		},
	}

	params := calculator.Params{
		Window:       20,
		MinFraction:  0.9,
		ShortHorizon: 5,
		RSIPeriod:    3,
		EMASpans:     [4]int{2, 3, 5, 8},
		BenchmarkID:  "SPY",
	}
	schema := hierarchy.NewSchema("root", "Pool", []hierarchy.Category{
		{ID: "core", Label: "Core", Members: []hierarchy.Member{
			{ID: "SPY", Label: "S&P 500"},
			{ID: "GLD", Label: "Gold"},
		}},
		{ID: "fringe", Label: "Fringe", Members: []hierarchy.Member{
			{ID: "LATE", Label: "Latecomer"},
		}},
	})
	b := &Builder{
		Calc: calculator.New(table, params),
		Agg: &hierarchy.Aggregator{
			Schema:    schema,
			Policy:    hierarchy.AbsoluteMagnitude{},
			Table:     table,
			ColorDays: 7,
		},
		Workers: workers,
	}
	return b, table
}

func nodeIDs(n *model.Node) []string {
	var ids []string
	n.Walk(func(node *model.Node) { ids = append(ids, node.ID) })
	return ids
}

func TestBuildSeries_SchemaStableAcrossFrames(t *testing.T) {
	b, table := testBuilder(3)
	dates := SampleDates(table, time.Friday, 8)
	if len(dates) != 8 {
		t.Fatalf("expected 8 sample dates, got %d", len(dates))
	}

	snaps, err := b.BuildSeries(dates)
	if err != nil {
		t.Fatalf("BuildSeries: %v", err)
	}
	if len(snaps) != len(dates) {
		t.Fatalf("expected %d frames, got %d", len(dates), len(snaps))
	}

	want := nodeIDs(snaps[0].Tree)
	for i, s := range snaps {
		if !s.Date.Equal(dates[i]) {
			t.Errorf("frame %d: date %v out of order, want %v", i, s.Date, dates[i])
		}
		if got := nodeIDs(s.Tree); !reflect.DeepEqual(got, want) {
			t.Errorf("frame %d: node-id set drifted:\n%v\n%v", i, got, want)
		}
	}
}

func TestBuildSeries_ConservationEveryFrame(t *testing.T) {
	b, table := testBuilder(4)
	snaps, err := b.BuildSeries(SampleDates(table, time.Friday, 8))
	if err != nil {
		t.Fatalf("BuildSeries: %v", err)
	}
	for i, s := range snaps {
		s.Tree.Walk(func(n *model.Node) {
			if n.IsLeaf() {
				return
			}
			sum := 0.0
			for _, c := range n.Children {
				sum += c.Value
			}
			if math.Abs(n.Value-sum) > 1e-9 {
				t.Errorf("frame %d node %s: value %v != children sum %v", i, n.ID, n.Value, sum)
			}
		})
	}
}

func TestBuildSeries_MissingEntityStaysZero(t *testing.T) {
	b, table := testBuilder(1)
	snaps, err := b.BuildSeries(SampleDates(table, time.Friday, 8))
	if err != nil {
		t.Fatalf("BuildSeries: %v", err)
	}
	for i, s := range snaps {
		for _, r := range s.Records {
			if r.EntityID == "LATE" {
				t.Errorf("frame %d: entity without enough history must not produce a record", i)
			}
		}
		found := false
		s.Tree.Walk(func(n *model.Node) {
			if n.ID == "LATE" {
				found = true
				if n.Value != 0 {
					t.Errorf("frame %d: LATE leaf must carry 0, got %v", i, n.Value)
				}
			}
		})
		if !found {
			t.Errorf("frame %d: LATE leaf missing from tree", i)
		}
	}
}

func TestBuildSeries_Idempotent(t *testing.T) {
	b, table := testBuilder(4)
	dates := SampleDates(table, time.Friday, 8)
	a, err := b.BuildSeries(dates)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	c, err := b.BuildSeries(dates)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(a, c) {
		t.Error("two runs over the same table must produce identical frames")
	}
}

func TestSampleDates(t *testing.T) {
	_, table := testBuilder(1)

	all := SampleDates(table, time.Friday, 0)
	for _, d := range all {
		if d.Weekday() != time.Friday {
			t.Errorf("non-Friday sample %v", d)
		}
	}

	last4 := SampleDates(table, time.Friday, 4)
	if len(last4) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(last4))
	}
	if !last4[3].Equal(all[len(all)-1]) {
		t.Error("capped sampling must keep the most recent dates")
	}
	for i := 1; i < len(last4); i++ {
		if !last4[i-1].Before(last4[i]) {
			t.Error("sample dates must be ascending")
		}
	}
}
