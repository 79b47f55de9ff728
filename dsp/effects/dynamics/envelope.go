package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-divcomp/dsp/core"
)

const (
	defaultAttackSeconds  = 0.001
	defaultReleaseSeconds = 0.1
)

// EnvelopeFollower is a per-channel ballistic peak detector.
//
// Each channel runs the asymmetric one-pole recurrence
//
//	y[n] = r + c*(y[n-1] - r),  r = |x[n]|
//
// where c is the attack coefficient while the rectified input is above the
// previous output and the release coefficient otherwise. Release tails are
// flushed to zero once they fall below the denormal range.
//
// The follower is not safe for concurrent use. Channel indices passed to
// Process must be below ChannelCount.
type EnvelopeFollower[T core.Float] struct {
	sampleRate     float64
	attackSeconds  float64
	releaseSeconds float64

	attackCoeff  T
	releaseCoeff T

	state []T
}

// NewEnvelopeFollower creates a follower with 1 ms attack and 100 ms release.
//
// Sample rate must be positive and finite. Negative channel counts are
// treated as zero.
func NewEnvelopeFollower[T core.Float](sampleRate float64, channels int) (*EnvelopeFollower[T], error) {
	if err := validateSampleRate("envelope follower", sampleRate); err != nil {
		return nil, err
	}

	f := &EnvelopeFollower[T]{
		sampleRate:     sampleRate,
		attackSeconds:  defaultAttackSeconds,
		releaseSeconds: defaultReleaseSeconds,
	}

	f.updateCoefficients()
	f.SetChannelCount(channels)

	return f, nil
}

// Process feeds one sample of the given channel and returns its envelope.
func (f *EnvelopeFollower[T]) Process(channel int, sample T) T {
	if sample < 0 {
		sample = -sample
	}

	prev := f.state[channel]

	coeff := f.releaseCoeff
	if sample > prev {
		coeff = f.attackCoeff
	}

	out := core.FlushDenormals(sample + coeff*(prev-sample))
	f.state[channel] = out

	return out
}

// SetSampleRate updates the sample rate and recomputes both coefficients.
// Channel state is kept.
func (f *EnvelopeFollower[T]) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("envelope follower", sampleRate); err != nil {
		return err
	}

	f.sampleRate = sampleRate
	f.updateCoefficients()

	return nil
}

// SetAttackTime sets the attack time constant in seconds.
// Values below core.MinTimeConstant act as core.MinTimeConstant.
func (f *EnvelopeFollower[T]) SetAttackTime(seconds float64) {
	f.attackSeconds = seconds
	f.attackCoeff = core.Coefficient[T](f.sampleRate, seconds)
}

// SetReleaseTime sets the release time constant in seconds.
// Values below core.MinTimeConstant act as core.MinTimeConstant.
func (f *EnvelopeFollower[T]) SetReleaseTime(seconds float64) {
	f.releaseSeconds = seconds
	f.releaseCoeff = core.Coefficient[T](f.sampleRate, seconds)
}

// SetChannelCount resizes the per-channel state and zeroes every channel,
// including channels that existed before the resize.
func (f *EnvelopeFollower[T]) SetChannelCount(channels int) {
	channels = max(channels, 0)
	if cap(f.state) >= channels {
		f.state = f.state[:channels]
	} else {
		f.state = make([]T, channels)
	}

	f.Reset()
}

// Reset zeroes the state of every channel.
func (f *EnvelopeFollower[T]) Reset() {
	for i := range f.state {
		f.state[i] = 0
	}
}

// SampleRate returns the sample rate in Hz.
func (f *EnvelopeFollower[T]) SampleRate() float64 { return f.sampleRate }

// AttackTime returns the attack time as set, in seconds.
func (f *EnvelopeFollower[T]) AttackTime() float64 { return f.attackSeconds }

// ReleaseTime returns the release time as set, in seconds.
func (f *EnvelopeFollower[T]) ReleaseTime() float64 { return f.releaseSeconds }

// ChannelCount returns the number of tracked channels.
func (f *EnvelopeFollower[T]) ChannelCount() int { return len(f.state) }

// AttackCoeff returns the cached attack coefficient.
func (f *EnvelopeFollower[T]) AttackCoeff() T { return f.attackCoeff }

// ReleaseCoeff returns the cached release coefficient.
func (f *EnvelopeFollower[T]) ReleaseCoeff() T { return f.releaseCoeff }

// Envelope returns the last output of channel without advancing it.
func (f *EnvelopeFollower[T]) Envelope(channel int) T { return f.state[channel] }

func (f *EnvelopeFollower[T]) updateCoefficients() {
	f.attackCoeff = core.Coefficient[T](f.sampleRate, f.attackSeconds)
	f.releaseCoeff = core.Coefficient[T](f.sampleRate, f.releaseSeconds)
}

func validateSampleRate(component string, sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%s sample rate must be positive and finite: %f", component, sampleRate)
	}

	return nil
}
