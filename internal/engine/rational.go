package engine

import (
	"math"
)

// RationalApprox finds num/den ≈ x with 1 ≤ den < 200 and num ≥ 1,
// minimizing the squared error. Earlier (smaller) denominators win ties, so an
// exact ratio is always returned in lowest terms. Non-positive or non-finite x
// yields 1/1.
func RationalApprox(x float64) (num, den int) {
	num, den = 1, 1
	if !(x > 0) || math.IsInf(x, 0) {
		return num, den
	}

	bestErr := sqErr(x, 1, 1)
	for d := 2; d < maxDenominator; d++ {
		n := int(math.Round(x * float64(d)))
		if n < 1 {
			continue
		}
		if e := sqErr(x, n, d); e < bestErr {
			num, den, bestErr = n, d, e
		}
	}
	return num, den
}

func sqErr(x float64, n, d int) float64 {
	e := x - float64(n)/float64(d)
	return e * e
}
