// Package bond defines fixed-coupon and zero-coupon bond terms and prices
// them against a yield curve using discrete per-period compounding.
package bond

import (
	"fmt"
	"math"

	"github.com/meenmo/bondmc"
	"github.com/meenmo/bondmc/curve"
)

// Bond holds validated bond terms. Immutable once constructed.
type Bond struct {
	// FaceValue is the principal repaid at maturity.
	FaceValue float64
	// CouponRate is the annual coupon in decimal form (0.05 = 5%);
	// zero for a zero-coupon bond.
	CouponRate float64
	// Years is the number of whole years to maturity.
	Years int
	// Frequency is the number of coupon payments per year.
	Frequency int

	zeroCoupon bool
}

// New validates the bond terms and derives the zero-coupon flag. A bond is
// zero-coupon iff its coupon rate is exactly 0 and it pays once per year;
// the flag selects a single terminal cash flow over a coupon stream.
func New(faceValue, couponRate float64, years, frequency int) (*Bond, error) {
	if faceValue <= 0 {
		return nil, fmt.Errorf("bond: face value must be positive, got %g: %w", faceValue, bondmc.ErrInvalidInput)
	}
	if couponRate < 0 {
		return nil, fmt.Errorf("bond: coupon rate cannot be negative, got %g: %w", couponRate, bondmc.ErrInvalidInput)
	}
	if years <= 0 {
		return nil, fmt.Errorf("bond: years to maturity must be positive, got %d: %w", years, bondmc.ErrInvalidInput)
	}
	if frequency <= 0 {
		return nil, fmt.Errorf("bond: coupons per year must be positive, got %d: %w", frequency, bondmc.ErrInvalidInput)
	}

	return &Bond{
		FaceValue:  faceValue,
		CouponRate: couponRate,
		Years:      years,
		Frequency:  frequency,
		zeroCoupon: couponRate == 0 && frequency == 1,
	}, nil
}

// ZeroCoupon reports whether the bond prices as a single terminal cash flow.
func (b *Bond) ZeroCoupon() bool {
	return b.zeroCoupon
}

// Periods returns the total number of coupon periods to maturity.
func (b *Bond) Periods() int {
	return b.Years * b.Frequency
}

// Cashflows returns the bond's full payment schedule: one coupon per period
// plus the principal attached to the final period. A zero-coupon bond has a
// single principal-only cash flow at maturity.
func (b *Bond) Cashflows() []Cashflow {
	if b.zeroCoupon {
		return []Cashflow{{
			Period:    b.Years,
			Time:      float64(b.Years),
			Principal: b.FaceValue,
		}}
	}

	n := b.Periods()
	couponPayment := b.FaceValue * b.CouponRate / float64(b.Frequency)

	cfs := make([]Cashflow, 0, n)
	for i := 1; i <= n; i++ {
		cf := Cashflow{
			Period: i,
			Time:   float64(i) / float64(b.Frequency),
			Coupon: couponPayment,
		}
		if i == n {
			cf.Principal = b.FaceValue
		}
		cfs = append(cfs, cf)
	}
	return cfs
}

// Price discounts the bond's cash flows against the given curve and returns
// the present value.
//
// Zero-coupon bonds discount the face value annually at the rate
// interpolated at maturity:
//
//	price = F / (1 + r(Y))^Y
//
// Coupon bonds discount each period's coupon at the rate interpolated at
// that period's time, compounded per period, then add the face value
// discounted at the final period's rate:
//
//	price = Σ_{i=1..Y·m} C/m · F / (1 + r(i/m)/m)^i  +  F / (1 + r(Y)/m)^(Y·m)
//
// The per-period (not continuous) compounding convention is intentional and
// must match for numerical parity with downstream consumers.
func (b *Bond) Price(c *curve.Curve) float64 {
	years := float64(b.Years)

	if b.zeroCoupon {
		ytm := c.Rate(years)
		return b.FaceValue / math.Pow(1+ytm, years)
	}

	m := float64(b.Frequency)
	price := 0.0
	couponPayment := b.FaceValue * b.CouponRate / m

	for i := 1; i <= b.Periods(); i++ {
		t := float64(i) / m
		ytm := c.Rate(t)
		price += couponPayment / math.Pow(1+ytm/m, float64(i))
	}

	finalYTM := c.Rate(years)
	price += b.FaceValue / math.Pow(1+finalYTM/m, float64(b.Periods()))

	return price
}
