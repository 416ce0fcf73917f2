package sim

import "math"

// Result holds the sample statistics of one Monte Carlo run.
type Result struct {
	// RunID uniquely identifies the run, for logging and persistence.
	RunID string
	// Trials is the number of simulated prices behind the statistics.
	Trials int
	// Mean is the arithmetic mean of the simulated prices.
	Mean float64
	// StdDev is the unbiased (N-1 denominator) sample standard deviation.
	StdDev float64
	// StdErr is StdDev / sqrt(Trials), the standard error of the mean.
	StdErr float64
	// Min and Max bound the simulated prices.
	Min float64
	Max float64
}

// summarize reduces the collected trial prices to sample statistics.
// Callers guarantee len(prices) >= 2.
func summarize(prices []float64) Result {
	n := len(prices)

	sum := 0.0
	min := prices[0]
	max := prices[0]
	for _, p := range prices {
		sum += p
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	mean := sum / float64(n)

	sumSq := 0.0
	for _, p := range prices {
		d := p - mean
		sumSq += d * d
	}
	variance := sumSq / float64(n-1)
	stdDev := math.Sqrt(variance)

	return Result{
		Trials: n,
		Mean:   mean,
		StdDev: stdDev,
		StdErr: stdDev / math.Sqrt(float64(n)),
		Min:    min,
		Max:    max,
	}
}
