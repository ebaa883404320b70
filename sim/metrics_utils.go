// sim/metrics_utils.go
package sim

import "math"

// minSpendUnit is the smallest currency amount the engine bills. Budgets
// below it are treated as exhausted.
const minSpendUnit = 0.01

// clamp bounds v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// safeDiv returns num/den, or 0 when den is 0.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// floorCents truncates a currency amount to whole cents.
// The small epsilon absorbs binary representation error (0.29*100 = 28.999...).
func floorCents(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Floor(v*100+1e-9) / 100
}

// roundCount converts an expected count to an integer, never negative.
func roundCount(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Round(v))
}

// floorCount truncates an expected count to an integer, never negative.
func floorCount(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Floor(v))
}

// minInt64 returns the smaller of a and b.
func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// CalculateMean returns the arithmetic mean of a data list, 0 for empty input.
func CalculateMean[T int | int64 | float64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}
	return sum / float64(len(numbers))
}
