package dynamics

import (
	"math"

	"github.com/cwbudde/algo-divcomp/dsp/core"
)

const (
	defaultThresholdDB = -12.0
	defaultRatio       = 1.0
	minRatio           = 1.0
)

// GainComputer is a feed-forward compressor with a hard knee.
//
// Below the threshold the gain is 1. At and above it the gain is
//
//	(envelope/threshold)^(1/ratio - 1)
//
// so a ratio of 1 never reduces and a very large ratio approaches a limiter.
// The envelope comes from an owned EnvelopeFollower, one state per channel.
type GainComputer[T core.Float] struct {
	follower *EnvelopeFollower[T]

	threshold T
	ratio     T

	invThreshold     T
	invRatioMinusOne T
}

// NewGainComputer creates a compressor for the given sample rate and channel
// count with a -12 dB threshold, ratio 1, 1 ms attack and 100 ms release.
func NewGainComputer[T core.Float](sampleRate float64, channels int) (*GainComputer[T], error) {
	follower, err := NewEnvelopeFollower[T](sampleRate, channels)
	if err != nil {
		return nil, err
	}

	g := &GainComputer[T]{follower: follower}
	g.SetThresholdDB(defaultThresholdDB)
	g.SetRatio(defaultRatio)

	return g, nil
}

// GainFor maps an envelope level to a gain multiplier in (0, 1].
func (g *GainComputer[T]) GainFor(envelope T) T {
	if envelope < g.threshold {
		return 1
	}

	return T(mathPow(float64(envelope*g.invThreshold), float64(g.invRatioMinusOne)))
}

// Gain advances the channel's envelope with sample and returns the gain
// the compressor would apply to it.
func (g *GainComputer[T]) Gain(channel int, sample T) T {
	return g.GainFor(g.follower.Process(channel, sample))
}

// Process returns sample with the channel's gain applied.
func (g *GainComputer[T]) Process(channel int, sample T) T {
	return sample * g.Gain(channel, sample)
}

// ProcessInPlace compresses buf as the given channel.
func (g *GainComputer[T]) ProcessInPlace(channel int, buf []T) {
	for i, x := range buf {
		buf[i] = g.Process(channel, x)
	}
}

// SetThreshold sets the linear threshold. Zero, negative and NaN values are
// replaced by the smallest positive normal value of T.
func (g *GainComputer[T]) SetThreshold(linear T) {
	if !(linear > 0) {
		linear = core.SmallestNormal[T]()
	}

	g.threshold = linear
	g.invThreshold = 1 / linear
}

// SetThresholdDB sets the threshold in dBFS.
func (g *GainComputer[T]) SetThresholdDB(dB float64) {
	g.SetThreshold(T(core.DBToLinear(dB)))
}

// SetRatio sets the compression ratio. Ratios below 1 are clamped to 1.
func (g *GainComputer[T]) SetRatio(ratio T) {
	if !(ratio >= minRatio) {
		ratio = minRatio
	}

	g.ratio = ratio
	g.invRatioMinusOne = 1/ratio - 1
}

// Threshold returns the linear threshold.
func (g *GainComputer[T]) Threshold() T { return g.threshold }

// ThresholdDB returns the threshold in dBFS.
func (g *GainComputer[T]) ThresholdDB() float64 {
	return 20 * math.Log10(float64(g.threshold))
}

// Ratio returns the compression ratio.
func (g *GainComputer[T]) Ratio() T { return g.ratio }

// SetSampleRate forwards to the envelope follower.
func (g *GainComputer[T]) SetSampleRate(sampleRate float64) error {
	return g.follower.SetSampleRate(sampleRate)
}

// SampleRate returns the sample rate in Hz.
func (g *GainComputer[T]) SampleRate() float64 { return g.follower.SampleRate() }

// SetAttackTime sets the attack time in seconds.
func (g *GainComputer[T]) SetAttackTime(seconds float64) { g.follower.SetAttackTime(seconds) }

// SetAttackTimeMs sets the attack time in milliseconds.
func (g *GainComputer[T]) SetAttackTimeMs(ms float64) { g.follower.SetAttackTime(ms / 1000) }

// AttackTime returns the attack time in seconds.
func (g *GainComputer[T]) AttackTime() float64 { return g.follower.AttackTime() }

// AttackTimeMs returns the attack time in milliseconds.
func (g *GainComputer[T]) AttackTimeMs() float64 { return g.follower.AttackTime() * 1000 }

// SetReleaseTime sets the release time in seconds.
func (g *GainComputer[T]) SetReleaseTime(seconds float64) { g.follower.SetReleaseTime(seconds) }

// SetReleaseTimeMs sets the release time in milliseconds.
func (g *GainComputer[T]) SetReleaseTimeMs(ms float64) { g.follower.SetReleaseTime(ms / 1000) }

// ReleaseTime returns the release time in seconds.
func (g *GainComputer[T]) ReleaseTime() float64 { return g.follower.ReleaseTime() }

// ReleaseTimeMs returns the release time in milliseconds.
func (g *GainComputer[T]) ReleaseTimeMs() float64 { return g.follower.ReleaseTime() * 1000 }

// SetChannelCount resizes and zeroes the envelope state.
func (g *GainComputer[T]) SetChannelCount(channels int) { g.follower.SetChannelCount(channels) }

// ChannelCount returns the number of channels.
func (g *GainComputer[T]) ChannelCount() int { return g.follower.ChannelCount() }

// Follower exposes the envelope follower for metering.
func (g *GainComputer[T]) Follower() *EnvelopeFollower[T] { return g.follower }

// Reset zeroes the envelope state.
func (g *GainComputer[T]) Reset() { g.follower.Reset() }
