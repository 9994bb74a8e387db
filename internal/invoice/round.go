package invoice

import "math"

// Round2 rounds half up to two decimals. NaN and infinities are coerced to 0
// like any other value that is not a number.
func Round2(x float64) float64 {
	if !finite(x) {
		return 0
	}
	r := math.Floor(x*100+0.5) / 100
	if !finite(r) {
		// too large to carry cents
		return x
	}
	return r
}

// Multiply returns a*b rounded to two decimals. Only the product is rounded.
func Multiply(a, b float64) float64 {
	return Round2(a * b)
}

// Divide returns a/b rounded to two decimals. Only the quotient is rounded.
func Divide(a, b float64) float64 {
	return Round2(a / b)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
