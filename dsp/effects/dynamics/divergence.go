package dynamics

import (
	"math"

	"github.com/cwbudde/algo-divcomp/dsp/core"
)

const (
	defaultCutoffSeconds = 0.001

	// invSqrt2 projects |left| and |right| onto the side axis.
	invSqrt2 = 0.7071067811865476
)

// Divergence measures how far a stereo sample leans to one side.
//
// It returns -1 when only left carries signal, +1 when only right does and 0
// when both magnitudes are equal, including the all-zero pair. Polarity is
// ignored, so this is image balance rather than phase correlation.
func Divergence[T core.Float](left, right T) T {
	if left == 0 && right == 0 {
		return 0
	}

	lx := -math.Abs(float64(left)) * invSqrt2
	rx := math.Abs(float64(right)) * invSqrt2

	return T((lx + rx) / math.Hypot(lx, rx))
}

// DivergenceDetector smooths Divergence with a one-pole lowpass keyed on a
// cutoff time constant.
//
// A pair of exact zeros reports 0 and leaves the smoothing state untouched.
type DivergenceDetector[T core.Float] struct {
	lp OnePole[T]
}

// NewDivergenceDetector creates a detector with a 1 ms cutoff.
func NewDivergenceDetector[T core.Float](sampleRate float64) (*DivergenceDetector[T], error) {
	if err := validateSampleRate("divergence detector", sampleRate); err != nil {
		return nil, err
	}

	d := &DivergenceDetector[T]{}
	d.lp.Configure(sampleRate, defaultCutoffSeconds)

	return d, nil
}

// Process returns the smoothed divergence after feeding one stereo sample.
func (d *DivergenceDetector[T]) Process(left, right T) T {
	if left == 0 && right == 0 {
		return 0
	}

	return d.lp.Process(Divergence(left, right))
}

// SetSampleRate updates the sample rate.
func (d *DivergenceDetector[T]) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("divergence detector", sampleRate); err != nil {
		return err
	}

	d.lp.Configure(sampleRate, d.lp.seconds)

	return nil
}

// SetCutoff sets the smoothing time constant in seconds.
func (d *DivergenceDetector[T]) SetCutoff(seconds float64) {
	d.lp.Configure(d.lp.sampleRate, seconds)
}

// SetCutoffMs sets the smoothing time constant in milliseconds.
func (d *DivergenceDetector[T]) SetCutoffMs(ms float64) { d.SetCutoff(ms / 1000) }

// Cutoff returns the smoothing time constant in seconds.
func (d *DivergenceDetector[T]) Cutoff() float64 { return d.lp.seconds }

// SampleRate returns the sample rate in Hz.
func (d *DivergenceDetector[T]) SampleRate() float64 { return d.lp.sampleRate }

// Value returns the current smoothed divergence.
func (d *DivergenceDetector[T]) Value() T { return d.lp.Value() }

// Reset returns the detector to center.
func (d *DivergenceDetector[T]) Reset() { d.lp.Reset(0) }
