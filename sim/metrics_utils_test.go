package sim

import (
	"math"
	"testing"
)

func TestFloorCents_TruncatesToWholeCents(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-3.2, 0},
		{1.239, 1.23},
		{0.29, 0.29}, // 0.29*100 is 28.999... in binary
		{100, 100},
		{0.004, 0},
	}
	for _, tt := range tests {
		if got := floorCents(tt.in); got != tt.want {
			t.Errorf("floorCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCounts_NeverNegative(t *testing.T) {
	for _, v := range []float64{-1, math.NaN(), 0} {
		if got := roundCount(v); got != 0 {
			t.Errorf("roundCount(%v) = %d, want 0", v, got)
		}
		if got := floorCount(v); got != 0 {
			t.Errorf("floorCount(%v) = %d, want 0", v, got)
		}
	}
	if got := roundCount(2.5); got != 3 {
		t.Errorf("roundCount(2.5) = %d, want 3", got)
	}
	if got := floorCount(2.9); got != 2 {
		t.Errorf("floorCount(2.9) = %d, want 2", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(math.NaN(), 0, 1); got != 0 {
		t.Errorf("clamp(NaN) = %v, want 0", got)
	}
	if got := clamp(2, 0, 1); got != 1 {
		t.Errorf("clamp(2) = %v, want 1", got)
	}
	if got := clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("clamp(0.5) = %v, want 0.5", got)
	}
}

func TestSafeDiv_ZeroDenominator(t *testing.T) {
	if got := safeDiv(5, 0); got != 0 {
		t.Errorf("safeDiv(5, 0) = %v, want 0", got)
	}
	if got := safeDiv(6, 3); got != 2 {
		t.Errorf("safeDiv(6, 3) = %v, want 2", got)
	}
}

func TestCalculateMean(t *testing.T) {
	if got := CalculateMean([]float64{}); got != 0 {
		t.Errorf("empty mean = %v, want 0", got)
	}
	if got := CalculateMean([]int64{1, 2, 3, 6}); got != 3 {
		t.Errorf("mean = %v, want 3", got)
	}
}
