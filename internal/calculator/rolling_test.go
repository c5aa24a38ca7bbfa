package calculator

import (
	"math"
	"testing"
)

func TestZScore_ConstantSeries(t *testing.T) {
	vals := make([]float64, 300)
	for i := range vals {
		vals[i] = 42
	}
	if z := ZScore(vals, 250); z != 0 {
		t.Errorf("flat series must give neutral 0, got %v", z)
	}
}

func TestZScore_ClosedForm(t *testing.T) {
	// Window {1,2,3}: mean 2, sample std 1, latest 3.
	vals := []float64{99, 99, 1, 2, 3}
	z := ZScore(vals, 3)
	if math.Abs(z-1.0) > 1e-12 {
		t.Errorf("expected z=1, got %v", z)
	}
}

func TestZScore_NeverNaN(t *testing.T) {
	cases := [][]float64{
		{},
		{5},
		{5, 5, 5},
	}
	for _, vals := range cases {
		z := ZScore(vals, 10)
		if math.IsNaN(z) || math.IsInf(z, 0) {
			t.Errorf("vals %v: z must be finite, got %v", vals, z)
		}
	}
}

func TestMomentum_Doubling(t *testing.T) {
	// Price doubles over exactly 20 observations.
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = 100
	}
	vals[len(vals)-21] = 100
	vals[len(vals)-1] = 200
	pct, ok := Momentum(vals, 20)
	if !ok {
		t.Fatal("expected resolvable momentum")
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Errorf("expected +100%%, got %v", pct)
	}
}

func TestMomentum_Flat(t *testing.T) {
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = 77
	}
	pct, ok := Momentum(vals, 20)
	if !ok || pct != 0 {
		t.Errorf("flat series: expected 0 ok=true, got %v ok=%v", pct, ok)
	}
}

func TestMomentum_Degraded(t *testing.T) {
	// Too short for the horizon.
	if pct, ok := Momentum([]float64{1, 2, 3}, 20); ok || pct != 0 {
		t.Errorf("short series: expected neutral 0 with ok=false, got %v ok=%v", pct, ok)
	}
	// Zero base price.
	vals := make([]float64, 25)
	vals[len(vals)-1] = 10
	if pct, ok := Momentum(vals, 20); ok || pct != 0 {
		t.Errorf("zero base: expected neutral 0 with ok=false, got %v ok=%v", pct, ok)
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-12 {
		t.Errorf("mean: expected 5, got %v", mean)
	}
	// Sample std of the classic set: sqrt(32/7).
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(std-want) > 1e-12 {
		t.Errorf("std: expected %v, got %v", want, std)
	}
}
