package series

import (
	"testing"
	"time"

	"MacroRadar/internal/model"
)

func buildTable(t *testing.T, start time.Time, days int) *model.AlignedTable {
	t.Helper()
	store := NewStore()
	obs := make([]model.Observation, days)
	for i := range obs {
		obs[i] = model.Observation{Date: start.AddDate(0, 0, i), Value: float64(i)}
	}
	store.Add(&model.TimeSeries{ID: "X", Observations: obs})
	table, err := Align(store, start, start.AddDate(0, 0, days-1))
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	return table
}

func TestAsOf(t *testing.T) {
	start := day(2024, 1, 1)
	table := buildTable(t, start, 10)

	tests := []struct {
		ref     time.Time
		wantIdx int
		wantOK  bool
	}{
		{start, 0, true},
		{start.AddDate(0, 0, 4), 4, true},
		{start.AddDate(0, 0, 9), 9, true},
		{start.AddDate(0, 0, 30), 9, true},            // beyond end clamps to latest
		{start.AddDate(0, 0, -1), 0, false},           // before history
		{time.Date(2024, 1, 5, 23, 59, 0, 0, time.UTC), 4, true}, // clock stripped
	}
	for _, tt := range tests {
		idx, ok := AsOf(table, tt.ref)
		if ok != tt.wantOK {
			t.Errorf("AsOf(%s): ok=%v, want %v", tt.ref, ok, tt.wantOK)
			continue
		}
		if ok && idx != tt.wantIdx {
			t.Errorf("AsOf(%s): idx=%d, want %d", tt.ref, idx, tt.wantIdx)
		}
	}
}

func TestResolve_NoLookahead(t *testing.T) {
	start := day(2024, 1, 1)
	table := buildTable(t, start, 30)

	ref := start.AddDate(0, 0, 20)
	for offset := 0; offset <= 25; offset++ {
		idx, ok := Resolve(table, ref, offset)
		if !ok {
			if offset <= 20 {
				t.Errorf("offset %d should resolve", offset)
			}
			continue
		}
		if table.Calendar[idx].After(ref) {
			t.Fatalf("offset %d resolved to %s, after reference %s", offset, table.Calendar[idx], ref)
		}
		if idx != 20-offset {
			t.Errorf("offset %d: idx=%d, want %d", offset, idx, 20-offset)
		}
	}
}

func TestResolve_OffsetExceedsHistory(t *testing.T) {
	table := buildTable(t, day(2024, 1, 1), 10)
	if _, ok := Resolve(table, day(2024, 1, 10), 30); ok {
		t.Error("expected unavailable when offset exceeds history")
	}
}

func TestResolve_Monotonic(t *testing.T) {
	table := buildTable(t, day(2024, 1, 1), 60)
	ref := day(2024, 2, 20)
	prev := len(table.Calendar)
	for offset := 0; offset < 50; offset++ {
		idx, ok := Resolve(table, ref, offset)
		if !ok {
			break
		}
		if idx > prev {
			t.Fatalf("resolution not monotonic: offset %d gave idx %d after %d", offset, idx, prev)
		}
		prev = idx
	}
}
