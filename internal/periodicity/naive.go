package periodicity

// NaiveSDF evaluates the same curves as Estimator.Process directly from the
// definition in O(n·k). It allocates and is meant as a reference for testing
// and offline inspection.
func NaiveSDF(x []float64, k int, normalize bool) []float64 {
	n := len(x)
	k = min(k, n)
	out := make([]float64, k)

	var r0 float64
	for _, v := range x {
		r0 += v * v
	}
	scale := 1.0
	if r0 != 0 {
		scale = 1 / r0
	}

	for d := range k {
		var r, m float64
		for j := 0; j < n-d; j++ {
			r += x[j] * x[j+d]
			m += x[j]*x[j] + x[j+d]*x[j+d]
		}
		r *= scale
		m *= scale

		switch {
		case !normalize:
			out[d] = m - 2*r
		case m <= 2*degenerateEnergy || r0 == 0:
			out[d] = 0
		default:
			out[d] = 2 * r / m
		}
	}

	return out
}
