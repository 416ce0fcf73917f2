// Package bondmc prices fixed-coupon and zero-coupon bonds against a yield
// curve, and estimates the price distribution under random curve shocks via
// Monte Carlo simulation.
//
// The pricing model is deliberately simple: discrete per-period compounding,
// linear interpolation on the curve, and an additive Gaussian shock applied
// per curve pillar. See the curve, bond and sim subpackages.
package bondmc

import "errors"

// ErrInvalidInput is returned when a curve, bond or engine is constructed
// from inputs that violate its preconditions. It is the only error kind the
// pricing packages produce; wrap checks should use errors.Is.
var ErrInvalidInput = errors.New("invalid input")
