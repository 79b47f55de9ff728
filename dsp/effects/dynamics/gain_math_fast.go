//go:build fastmath

package dynamics

import (
	"github.com/meko-christian/algo-approx"
)

// FastMath reports whether the gain law uses approximated exp/log.
const FastMath = true

// mathPow computes x^y as e^(y*ln x) using fast approximations.
// x is the envelope over threshold ratio. At or below 1, or for y == 0, the
// result is exactly 1 so the knee stays unity gain; above it the result never
// exceeds 1, since y is never positive here.
func mathPow(x, y float64) float64 {
	if x <= 1 || y == 0 {
		return 1
	}

	return min(approx.FastExp(y*approx.FastLog(x)), 1)
}
