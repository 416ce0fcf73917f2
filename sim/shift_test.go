package sim

import (
	"math/rand/v2"
	"testing"

	"github.com/meenmo/bondmc/bond"
	"github.com/meenmo/bondmc/curve"
)

func TestShiftCurve_IntegerYearPillars(t *testing.T) {
	t.Parallel()

	b, err := bond.New(1000, 0.05, 7, 2)
	if err != nil {
		t.Fatalf("bond.New: %v", err)
	}
	base, err := curve.New([]float64{1, 2, 3, 5, 10, 30}, []float64{0.01, 0.015, 0.02, 0.025, 0.03, 0.035})
	if err != nil {
		t.Fatalf("curve.New: %v", err)
	}
	e, err := New(b, base, 100, WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	shifted := e.shiftCurve(rand.New(rand.NewPCG(7, 7)))

	maturities := shifted.Maturities()
	if len(maturities) != 7 {
		t.Fatalf("shifted curve has %d pillars, want 7", len(maturities))
	}
	for i, m := range maturities {
		if m != float64(i+1) {
			t.Fatalf("pillar %d at maturity %g, want %d", i, m, i+1)
		}
	}
}

func TestShiftCurve_FloorsNegativeRates(t *testing.T) {
	t.Parallel()

	b, err := bond.New(1000, 0.05, 10, 2)
	if err != nil {
		t.Fatalf("bond.New: %v", err)
	}
	// Base rates near zero with a huge shock guarantee negative draws.
	base := curve.Flat(0.0001, 1, 30)
	e, err := New(b, base, 100, WithSeed(1), WithShockStdDev(1.0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rng := rand.New(rand.NewPCG(42, 42))
	for trial := 0; trial < 200; trial++ {
		shifted := e.shiftCurve(rng)
		for i, r := range shifted.Rates() {
			if r < 0 {
				t.Fatalf("trial %d pillar %d: shifted rate %g below zero", trial, i, r)
			}
		}
	}
}
