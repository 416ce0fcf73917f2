// Package curve models a term structure of interest rates as an immutable
// set of (maturity, rate) pillars with linear interpolation between them.
package curve

import (
	"fmt"

	"github.com/meenmo/bondmc"
)

// Curve is an immutable yield curve. Maturities are in years, strictly
// increasing; rates are annual rates in decimal form (0.03 = 3%).
type Curve struct {
	maturities []float64
	rates      []float64
}

// New builds a curve from matched maturity and rate slices. The slices are
// copied, so the caller may reuse its backing arrays.
func New(maturities, rates []float64) (*Curve, error) {
	if len(maturities) != len(rates) {
		return nil, fmt.Errorf("curve: %d maturities but %d rates: %w", len(maturities), len(rates), bondmc.ErrInvalidInput)
	}
	if len(maturities) == 0 {
		return nil, fmt.Errorf("curve: at least one pillar is required: %w", bondmc.ErrInvalidInput)
	}
	for i, m := range maturities {
		if m <= 0 {
			return nil, fmt.Errorf("curve: maturity %g at pillar %d must be positive: %w", m, i, bondmc.ErrInvalidInput)
		}
		if i > 0 && m <= maturities[i-1] {
			return nil, fmt.Errorf("curve: maturities must be strictly increasing (pillar %d: %g <= %g): %w",
				i, m, maturities[i-1], bondmc.ErrInvalidInput)
		}
	}

	c := &Curve{
		maturities: make([]float64, len(maturities)),
		rates:      make([]float64, len(rates)),
	}
	copy(c.maturities, maturities)
	copy(c.rates, rates)
	return c, nil
}

// Flat builds a curve with the same rate at every given maturity. Intended
// for tests and demos; panics on invalid pillars.
func Flat(rate float64, maturities ...float64) *Curve {
	rates := make([]float64, len(maturities))
	for i := range rates {
		rates[i] = rate
	}
	c, err := New(maturities, rates)
	if err != nil {
		panic(err)
	}
	return c
}

// Rate returns the rate applicable at time t (in years).
//
// Below the first pillar the first rate is returned unchanged, beyond the
// last pillar the last rate; between pillars the rate is the linear blend
//
//	r0 + (r1 - r0) * (t - t0) / (t1 - t0)
func (c *Curve) Rate(t float64) float64 {
	i := searchPillar(c.maturities, t)
	if i == 0 {
		return c.rates[0]
	}
	if i == len(c.maturities) {
		return c.rates[len(c.rates)-1]
	}

	t0, t1 := c.maturities[i-1], c.maturities[i]
	r0, r1 := c.rates[i-1], c.rates[i]
	return r0 + (r1-r0)*(t-t0)/(t1-t0)
}

// Maturities returns a copy of the pillar maturities in years.
func (c *Curve) Maturities() []float64 {
	out := make([]float64, len(c.maturities))
	copy(out, c.maturities)
	return out
}

// Rates returns a copy of the pillar rates.
func (c *Curve) Rates() []float64 {
	out := make([]float64, len(c.rates))
	copy(out, c.rates)
	return out
}

// Len returns the number of pillars.
func (c *Curve) Len() int {
	return len(c.maturities)
}
