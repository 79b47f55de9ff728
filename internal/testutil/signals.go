package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-divcomp/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine[T core.Float](freqHz, sampleRate, amplitude float64, length int) []T {
	out := make([]T, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = T(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise[T core.Float](seed int64, amplitude float64, length int) []T {
	out := make([]T, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = T((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Square generates a bipolar square wave starting on the positive half.
func Square[T core.Float](freqHz, sampleRate, amplitude float64, length int) []T {
	out := make([]T, length)
	period := sampleRate / freqHz
	for i := range out {
		if math.Mod(float64(i), period) < period/2 {
			out[i] = T(amplitude)
		} else {
			out[i] = T(-amplitude)
		}
	}
	return out
}

// DC generates a constant-valued signal.
func DC[T core.Float](value T, length int) []T {
	out := make([]T, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Stereo returns a planar two-channel buffer holding copies of left and right.
func Stereo[T core.Float](left, right []T) [][]T {
	return [][]T{append([]T(nil), left...), append([]T(nil), right...)}
}
