// Package lambert evaluates the principal branch of the Lambert W
// function, the inverse of x ↦ x·eˣ, on the real line.
package lambert

import "math"

// MinArg is the branch point -1/e, the smallest argument for which the
// principal branch is real-valued.
var MinArg = -math.Exp(-1)

// W0 returns the principal branch W₀(x), the real solution w of
// w·eʷ = x with w ≥ -1. It returns NaN for x < -1/e.
//
// The result is found by Halley iteration from a region-dependent seed:
// a square-root series near the branch point, log1p in the middle range,
// and the two-term asymptotic expansion for large arguments.
func W0(x float64) float64 {
	if math.IsNaN(x) || x < MinArg {
		return math.NaN()
	}
	if x == 0 {
		return 0
	}
	if math.IsInf(x, 1) {
		return math.Inf(1)
	}

	var w float64
	switch {
	case x < -0.25:
		r := math.E*x + 1
		if r < 0 {
			// x is within rounding error of the branch point
			r = 0
		}
		p := math.Sqrt(2 * r)
		if p == 0 {
			return -1
		}
		w = -1 + p - p*p/3
	case x < math.E:
		w = math.Log1p(x)
	default:
		l1 := math.Log(x)
		w = l1 - math.Log(l1)
	}

	const maxIter = 64
	const tol = 1e-15

	for i := 0; i < maxIter; i++ {
		e := math.Exp(w)
		f := w*e - x
		den := e*(w+1) - (w+2)*f/(2*(w+1))
		if den == 0 {
			break
		}
		dw := f / den
		w -= dw
		if math.Abs(dw) < tol*(1+math.Abs(w)) {
			break
		}
	}

	return w
}
