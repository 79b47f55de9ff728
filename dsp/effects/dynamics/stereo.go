package dynamics

import "github.com/cwbudde/algo-divcomp/dsp/core"

const stereoChannels = 2

// StereoCompressorOption mutates stereo compressor construction parameters.
type StereoCompressorOption func(*stereoCompressorConfig)

type stereoCompressorConfig struct {
	thresholdDB    float64
	ratio          float64
	attackSeconds  float64
	releaseSeconds float64
	cutoffSeconds  float64
}

func defaultStereoCompressorConfig() stereoCompressorConfig {
	return stereoCompressorConfig{
		thresholdDB:    defaultThresholdDB,
		ratio:          defaultRatio,
		attackSeconds:  defaultAttackSeconds,
		releaseSeconds: defaultReleaseSeconds,
		cutoffSeconds:  defaultCutoffSeconds,
	}
}

// WithThresholdDB sets the threshold in dBFS. -Inf and NaN map to the
// smallest positive threshold.
func WithThresholdDB(dB float64) StereoCompressorOption {
	return func(cfg *stereoCompressorConfig) {
		cfg.thresholdDB = dB
	}
}

// WithRatio sets the compression ratio. Values below 1 act as 1.
func WithRatio(ratio float64) StereoCompressorOption {
	return func(cfg *stereoCompressorConfig) {
		cfg.ratio = ratio
	}
}

// WithAttack sets the attack time in seconds.
func WithAttack(seconds float64) StereoCompressorOption {
	return func(cfg *stereoCompressorConfig) {
		cfg.attackSeconds = seconds
	}
}

// WithRelease sets the release time in seconds.
func WithRelease(seconds float64) StereoCompressorOption {
	return func(cfg *stereoCompressorConfig) {
		cfg.releaseSeconds = seconds
	}
}

// WithCutoff sets the time constant, in seconds, shared by the divergence
// detector and the per-channel gain smoothers.
func WithCutoff(seconds float64) StereoCompressorOption {
	return func(cfg *stereoCompressorConfig) {
		cfg.cutoffSeconds = seconds
	}
}

// StereoCompressor compresses whichever side of a stereo pair dominates.
//
// Per sample it computes each channel's compressor gain, smooths it with a
// per-channel one-pole lowpass and smooths the pair's Divergence with the
// same time constant. When the smoothed divergence leans left only the left
// channel receives its gain; when it leans right only the right channel does.
// A centered pair (divergence exactly 0) passes through untouched, so mono
// material is never pumped.
//
// Gain smoothers start at unity. The processor is not safe for concurrent
// use; parameter setters must not race with Process calls.
type StereoCompressor[T core.Float] struct {
	gain     *GainComputer[T]
	detector *DivergenceDetector[T]

	smoothL OnePole[T]
	smoothR OnePole[T]

	lastDiv T
}

// NewStereoCompressor creates a stereo compressor at the given sample rate.
//
// Defaults: threshold -12 dB, ratio 1 (no reduction), attack 1 ms,
// release 100 ms, cutoff 1 ms.
func NewStereoCompressor[T core.Float](sampleRate float64, opts ...StereoCompressorOption) (*StereoCompressor[T], error) {
	cfg := defaultStereoCompressorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	gain, err := NewGainComputer[T](sampleRate, stereoChannels)
	if err != nil {
		return nil, err
	}

	detector, err := NewDivergenceDetector[T](sampleRate)
	if err != nil {
		return nil, err
	}

	s := &StereoCompressor[T]{gain: gain, detector: detector}
	s.SetThresholdDB(cfg.thresholdDB)
	s.SetRatio(T(cfg.ratio))
	s.SetAttackTime(cfg.attackSeconds)
	s.SetReleaseTime(cfg.releaseSeconds)
	s.SetCutoff(cfg.cutoffSeconds)
	s.Reset()

	return s, nil
}

// Process runs one stereo sample through the processor.
func (s *StereoCompressor[T]) Process(left, right T) (T, T) {
	d := s.detector.Process(left, right)
	s.lastDiv = d

	gainL := s.smoothL.Process(s.gain.Gain(0, left))
	gainR := s.smoothR.Process(s.gain.Gain(1, right))

	switch {
	case d < 0:
		return gainL * left, right
	case d > 0:
		return left, gainR * right
	default:
		return left, right
	}
}

// ProcessBlock processes equal-length left and right buffers in place.
// Extra samples in the longer buffer are left untouched.
func (s *StereoCompressor[T]) ProcessBlock(left, right []T) {
	n := min(len(left), len(right))
	left, right = left[:n], right[:n]

	for i := range left {
		left[i], right[i] = s.Process(left[i], right[i])
	}
}

// ProcessChannels processes a planar buffer in place. Only two-channel
// buffers are processed; any other channel count passes through unchanged.
func (s *StereoCompressor[T]) ProcessChannels(channels [][]T) {
	if len(channels) != stereoChannels {
		return
	}

	s.ProcessBlock(channels[0], channels[1])
}

// SetSampleRate updates every filter's sample rate. State is kept.
func (s *StereoCompressor[T]) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate("stereo compressor", sampleRate); err != nil {
		return err
	}

	if err := s.gain.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := s.detector.SetSampleRate(sampleRate); err != nil {
		return err
	}

	s.smoothL.Configure(sampleRate, s.smoothL.seconds)
	s.smoothR.Configure(sampleRate, s.smoothR.seconds)

	return nil
}

// SetThresholdDB sets the threshold in dBFS.
func (s *StereoCompressor[T]) SetThresholdDB(dB float64) { s.gain.SetThresholdDB(dB) }

// SetRatio sets the compression ratio; values below 1 act as 1.
func (s *StereoCompressor[T]) SetRatio(ratio T) { s.gain.SetRatio(ratio) }

// SetAttackTime sets the envelope attack in seconds.
func (s *StereoCompressor[T]) SetAttackTime(seconds float64) { s.gain.SetAttackTime(seconds) }

// SetReleaseTime sets the envelope release in seconds.
func (s *StereoCompressor[T]) SetReleaseTime(seconds float64) { s.gain.SetReleaseTime(seconds) }

// SetCutoff sets the divergence and gain smoothing time constant in seconds.
func (s *StereoCompressor[T]) SetCutoff(seconds float64) {
	fs := s.gain.SampleRate()

	s.detector.SetCutoff(seconds)
	s.smoothL.Configure(fs, seconds)
	s.smoothR.Configure(fs, seconds)
}

// ThresholdDB returns the threshold in dBFS.
func (s *StereoCompressor[T]) ThresholdDB() float64 { return s.gain.ThresholdDB() }

// Ratio returns the compression ratio.
func (s *StereoCompressor[T]) Ratio() T { return s.gain.Ratio() }

// AttackTime returns the attack in seconds.
func (s *StereoCompressor[T]) AttackTime() float64 { return s.gain.AttackTime() }

// ReleaseTime returns the release in seconds.
func (s *StereoCompressor[T]) ReleaseTime() float64 { return s.gain.ReleaseTime() }

// Cutoff returns the smoothing time constant in seconds.
func (s *StereoCompressor[T]) Cutoff() float64 { return s.detector.Cutoff() }

// SampleRate returns the sample rate in Hz.
func (s *StereoCompressor[T]) SampleRate() float64 { return s.gain.SampleRate() }

// Compressor exposes the underlying gain computer.
func (s *StereoCompressor[T]) Compressor() *GainComputer[T] { return s.gain }

// LastGains returns the smoothed left and right gains of the last sample.
// The gain of a channel that was passed through is still reported.
func (s *StereoCompressor[T]) LastGains() (T, T) {
	return s.smoothL.Value(), s.smoothR.Value()
}

// LastDivergence returns the divergence that routed the last sample. A
// silent (0, 0) sample reports 0 even though the smoothed state is held.
func (s *StereoCompressor[T]) LastDivergence() T { return s.lastDiv }

// Reset clears envelopes and divergence and returns the gain smoothers to unity.
func (s *StereoCompressor[T]) Reset() {
	s.gain.Reset()
	s.detector.Reset()
	s.smoothL.Reset(1)
	s.smoothR.Reset(1)
	s.lastDiv = 0
}
