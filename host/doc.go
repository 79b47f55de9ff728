// Package host adapts the stereo divergence compressor to a plugin-style
// block callback.
//
// A Processor owns one dynamics.StereoCompressor computing in float64 and
// exposes float32 and float64 planar block entry points. Parameters arrive in
// UI units (dB, ratio, milliseconds) through Submit, which is safe to call
// from any goroutine; the latest snapshot is applied once at the start of the
// next block. Meter readings are published atomically after every block.
//
// Buffers with a channel count other than two are copied through unchanged.
package host
