package bond

// Cashflow is a single dated cash payment for a bond.
//
// Time is the payment time in years from settlement; amounts are in
// currency units (e.g., USD), not price-per-100.
type Cashflow struct {
	Period    int
	Time      float64
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}
