//go:build !fastmath

package dynamics

import "math"

// FastMath reports whether the gain law uses approximated exp/log.
const FastMath = false

// mathPow computes x^y using standard library math.
func mathPow(x, y float64) float64 {
	return math.Pow(x, y)
}
