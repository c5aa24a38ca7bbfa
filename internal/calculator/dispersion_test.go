package calculator

import (
	"math"
	"testing"

	"MacroRadar/internal/model"
)

func TestDispersion_IdenticalSectors(t *testing.T) {
	col := ramp(40, 100, 120)
	colB := make([]float64, len(col))
	copy(colB, col)
	table := newTable(day(2024, 1, 1), map[string][]float64{"XLK": col, "XLF": colB})

	disp := Dispersion(table, []string{"XLK", "XLF"}, 1)
	for i := 1; i < len(disp); i++ {
		if math.IsNaN(disp[i]) {
			continue
		}
		if math.Abs(disp[i]) > 1e-12 {
			t.Fatalf("identical sectors must have zero dispersion, day %d got %v", i, disp[i])
		}
	}
}

func TestDispersion_DivergingSectors(t *testing.T) {
	table := newTable(day(2024, 1, 1), map[string][]float64{
		"UP":   ramp(40, 100, 140),
		"DOWN": ramp(40, 100, 70),
	})
	disp := Dispersion(table, []string{"UP", "DOWN"}, 1)
	last := disp[len(disp)-1]
	if math.IsNaN(last) || last <= 0 {
		t.Errorf("diverging sectors must show positive dispersion, got %v", last)
	}
}

func TestDispersion_SmoothedWindow(t *testing.T) {
	table := newTable(day(2024, 1, 1), map[string][]float64{
		"A": ramp(40, 100, 140),
		"B": ramp(40, 100, 80),
	})
	disp := Dispersion(table, []string{"A", "B"}, 20)
	// First day has no return, so the first 20-day window is incomplete
	// until index 20.
	for i := 0; i < 20; i++ {
		if !math.IsNaN(disp[i]) {
			t.Fatalf("day %d: expected NaN before the smoothing window fills, got %v", i, disp[i])
		}
	}
	if math.IsNaN(disp[len(disp)-1]) {
		t.Error("expected smoothed dispersion once the window is full")
	}
}

func TestDispersion_EmptyCalendar(t *testing.T) {
	table := &model.AlignedTable{}
	disp := Dispersion(table, []string{"A", "B"}, 20)
	if len(disp) != 0 {
		t.Errorf("empty calendar must yield an empty slice, got %d", len(disp))
	}
}

func TestRebase(t *testing.T) {
	col := []float64{math.NaN(), 100, 110, 120}
	table := newTable(day(2024, 1, 1), map[string][]float64{"SPY": col})
	out := Rebase(table, "SPY")
	if !math.IsNaN(out[0]) {
		t.Errorf("pre-inception must stay NaN, got %v", out[0])
	}
	if out[1] != 0 {
		t.Errorf("base day must be 0, got %v", out[1])
	}
	if math.Abs(out[3]-20) > 1e-12 {
		t.Errorf("expected +20%% on final day, got %v", out[3])
	}
}
