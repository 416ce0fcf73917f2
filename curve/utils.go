package curve

import "sort"

// searchPillar returns the index of the first pillar with maturity >= t.
// Returns len(maturities) if every pillar is below t.
//
// This uses binary search for O(log n) complexity instead of O(n) linear search.
func searchPillar(maturities []float64, t float64) int {
	return sort.SearchFloat64s(maturities, t)
}
