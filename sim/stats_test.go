package sim

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	prices := []float64{1, 2, 3, 4, 5}
	res := summarize(prices)

	if res.Trials != 5 {
		t.Fatalf("Trials = %d, want 5", res.Trials)
	}
	if math.Abs(res.Mean-3) > 1e-15 {
		t.Fatalf("Mean = %g, want 3", res.Mean)
	}

	// Unbiased sample variance of {1..5} is 2.5.
	wantStd := math.Sqrt(2.5)
	if math.Abs(res.StdDev-wantStd) > 1e-15 {
		t.Fatalf("StdDev = %g, want %g", res.StdDev, wantStd)
	}
	wantSE := wantStd / math.Sqrt(5)
	if math.Abs(res.StdErr-wantSE) > 1e-15 {
		t.Fatalf("StdErr = %g, want %g", res.StdErr, wantSE)
	}
	if res.Min != 1 || res.Max != 5 {
		t.Fatalf("Min, Max = %g, %g, want 1, 5", res.Min, res.Max)
	}
}

func TestSummarize_ConstantSeries(t *testing.T) {
	t.Parallel()

	res := summarize([]float64{42, 42, 42, 42})
	if res.Mean != 42 {
		t.Fatalf("Mean = %g, want 42", res.Mean)
	}
	if res.StdDev != 0 {
		t.Fatalf("StdDev = %g, want 0", res.StdDev)
	}
	if res.Min != 42 || res.Max != 42 {
		t.Fatalf("Min, Max = %g, %g, want 42, 42", res.Min, res.Max)
	}
}
