package risk

import "math"

// factorial computes n! iteratively. n stays below MaxRedundancy+1 in
// practice so float64 never overflows.
func factorial(n int) float64 {
	v := 1.0
	for ; n > 1; n-- {
		v *= float64(n)
	}
	return v
}

// PMF is the probability of exactly n events in one time unit of a Poisson
// process with the given rate.
func PMF(rate float64, n int) float64 {
	return math.Pow(rate, float64(n)) * math.Exp(-rate) / factorial(n)
}

// TailAtLeast is the probability of n or more events in one time unit of a
// Poisson process with the given rate: 1 - sum(PMF(rate, k), k < n).
func TailAtLeast(rate float64, n int) float64 {
	if n <= 0 {
		return 1
	}
	// 1 - PMF(rate, 0) is -expm1(-rate); keeps precision for tiny rates.
	p := -math.Expm1(-rate)
	for k := n - 1; k >= 1; k-- {
		p -= PMF(rate, k)
	}
	return p
}
