package core

import "math"

// Float is the set of sample types the processors are generic over.
type Float interface {
	~float32 | ~float64
}

// MinTimeConstant is the shortest time constant, in seconds, accepted by
// OnePoleCoefficient. Shorter, zero, negative and NaN times are raised to it.
const MinTimeConstant = 1e-4

// Clamp limits value to the inclusive range [min, max].
func Clamp[T Float](value, min, max T) T {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FlushDenormals converts tiny denormal-like values to exact zero.
func FlushDenormals[T Float](x T) T {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// PowerToDB converts a power ratio to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func PowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// SmallestNormal returns the smallest positive normal value of T.
//
// Its reciprocal is finite, unlike the reciprocal of the smallest denormal.
func SmallestNormal[T Float]() T {
	single, double := 0x1p-126, 0x1p-1022
	if isSinglePrecision[T]() {
		return T(single)
	}

	return T(double)
}

// isSinglePrecision reports whether T rounds like float32.
func isSinglePrecision[T Float]() bool {
	one, tiny := T(1), T(0x1p-30)
	return one+tiny == one
}

// OnePoleCoefficient returns the feedback coefficient exp(-2π/(fs·t)) of an
// exponential smoother with time constant seconds at sampleRate.
//
// seconds is clamped to MinTimeConstant. For sampleRate > 0 the result lies
// in (0, 1).
func OnePoleCoefficient(sampleRate, seconds float64) float64 {
	if !(seconds >= MinTimeConstant) {
		seconds = MinTimeConstant
	}

	return math.Exp(-2 * math.Pi / (sampleRate * seconds))
}

// Coefficient is OnePoleCoefficient rounded to T. Rounding never yields 1,
// so very long time constants keep a slowly moving filter in float32.
func Coefficient[T Float](sampleRate, seconds float64) T {
	c := T(OnePoleCoefficient(sampleRate, seconds))
	if c < 1 {
		return c
	}

	below := 1 - 0x1p-53
	if isSinglePrecision[T]() {
		below = 1 - 0x1p-24
	}

	return T(below)
}
