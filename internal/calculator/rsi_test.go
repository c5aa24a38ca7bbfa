package calculator

import "testing"

func TestRSI_AllGains(t *testing.T) {
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = 100 + float64(i)
	}
	if rsi := RSI(vals, 14); rsi != 100 {
		t.Errorf("zero average loss must saturate at 100, got %v", rsi)
	}
}

func TestRSI_AllLosses(t *testing.T) {
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = 100 - float64(i)
	}
	rsi := RSI(vals, 14)
	if rsi != 0 {
		t.Errorf("pure downtrend should read 0, got %v", rsi)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	if rsi := RSI([]float64{1, 2, 3}, 14); rsi != 50 {
		t.Errorf("insufficient data defaults to neutral 50, got %v", rsi)
	}
}

func TestRSI_Bounds(t *testing.T) {
	vals := []float64{10, 12, 9, 14, 8, 15, 11, 13, 10, 16, 9, 17, 12, 18, 11, 19, 13, 20}
	rsi := RSI(vals, 14)
	if rsi < 0 || rsi > 100 {
		t.Errorf("RSI out of [0,100]: %v", rsi)
	}
}
