// Package dynamics provides the building blocks of a divergence-gated
// stereo compressor.
//
// Included processors:
//   - EnvelopeFollower: Per-channel ballistic peak detector with separate
//     attack and release time constants.
//   - GainComputer: Hard-knee threshold/ratio compressor driven by an
//     EnvelopeFollower.
//   - Divergence and DivergenceDetector: Signed left/right imbalance of a
//     stereo sample, raw and one-pole smoothed.
//   - OnePole: Exponential smoother shared by the detectors.
//   - StereoCompressor: Applies smoothed compressor gain only to the side a
//     stereo signal leans toward and passes centered material through.
//
// All processors are generic over float32 and float64 samples. The
// per-sample methods do not allocate, lock or return errors; the only
// error path is an invalid sample rate, rejected at construction and by
// SetSampleRate. Other out-of-range parameters are clamped.
//
// Build with -tags fastmath to evaluate the gain law with algo-approx
// approximations instead of math.Pow.
package dynamics
