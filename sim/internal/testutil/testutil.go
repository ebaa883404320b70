// Package testutil provides shared test infrastructure for the adsim engine.
// It consolidates assertion and fixture helpers used across sim/,
// sim/platforms/, sim/report/ and cmd/ test packages. It must not import sim
// so that package sim's internal tests can use it.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertAtMost fails when got exceeds limit by more than an absolute
// tolerance that absorbs float summation error.
func AssertAtMost(t *testing.T, name string, limit, got float64) {
	t.Helper()
	if got > limit+1e-6 {
		t.Errorf("%s: got %v, exceeds limit %v", name, got, limit)
	}
}

// WriteTempFile writes content to name inside a fresh temp directory and
// returns the full path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
