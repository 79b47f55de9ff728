package dynamics

import (
	"testing"

	"github.com/cwbudde/algo-divcomp/dsp/core"
	"github.com/cwbudde/algo-divcomp/internal/testutil"
)

func BenchmarkStereoCompressorProcess(b *testing.B) {
	s, _ := NewStereoCompressor[float64](48000, WithThresholdDB(-12), WithRatio(4))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Process(0.9, 0.1)
	}
}

func benchmarkStereoBlock[T core.Float](b *testing.B, size int) {
	s, _ := NewStereoCompressor[T](48000, WithThresholdDB(-18), WithRatio(4))
	left := testutil.DeterministicSine[T](440, 48000, 0.9, size)
	right := testutil.DeterministicNoise[T](1, 0.3, size)

	b.ReportAllocs()
	b.SetBytes(int64(size * 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ProcessBlock(left, right)
	}
}

func BenchmarkStereoCompressorBlock64(b *testing.B)     { benchmarkStereoBlock[float64](b, 64) }
func BenchmarkStereoCompressorBlock512(b *testing.B)    { benchmarkStereoBlock[float64](b, 512) }
func BenchmarkStereoCompressorBlock512F32(b *testing.B) { benchmarkStereoBlock[float32](b, 512) }

func BenchmarkEnvelopeFollowerProcess(b *testing.B) {
	f, _ := NewEnvelopeFollower[float64](48000, 2)
	buf := testutil.DeterministicSine[float64](1000, 48000, 1, 512)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, x := range buf {
			_ = f.Process(0, x)
		}
	}
}

func BenchmarkGainFor(b *testing.B) {
	g, _ := NewGainComputer[float64](48000, 1)
	g.SetThresholdDB(-20)
	g.SetRatio(4)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.GainFor(0.5)
	}
}
