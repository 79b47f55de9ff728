// Package time computes time-domain level statistics of a signal.
package time

import "math"

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	peak := math.Abs(signal[0])
	for _, x := range signal[1:] {
		peak = max(peak, math.Abs(x))
	}

	return peak
}

// MaxRatioDB returns the largest per-sample level drop from ref to sig in
// dB, 20*log10(|ref|/|sig|). Samples whose reference magnitude is below floor
// or whose output is exactly zero are skipped. The result is never negative.
func MaxRatioDB(ref, sig []float64, floor float64) float64 {
	n := min(len(ref), len(sig))

	worst := 0.0
	for i := range n {
		a := math.Abs(ref[i])
		if a < floor {
			continue
		}

		b := math.Abs(sig[i])
		if b == 0 {
			continue
		}

		worst = max(worst, 20*math.Log10(a/b))
	}

	return worst
}
