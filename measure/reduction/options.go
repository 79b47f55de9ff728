package reduction

import (
	"fmt"
	"math/bits"

	"github.com/cwbudde/algo-divcomp/dsp/window"
)

const (
	defaultFFTSize = 2048
	minFFTSize     = 64
	maxFFTSize     = 1 << 18
)

var defaultBandEdges = []float64{20, 250, 2000, 8000, 20000}

type config struct {
	fftSize   int
	bandEdges []float64
	window    window.Type
}

func defaultConfig() config {
	return config{
		fftSize:   defaultFFTSize,
		bandEdges: defaultBandEdges,
		window:    window.TypeHann,
	}
}

// Option mutates measurement parameters.
type Option func(*config) error

// WithFFTSize sets the analysis frame length. It must be a power of two in
// [64, 262144].
func WithFFTSize(n int) Option {
	return func(cfg *config) error {
		if n < minFFTSize || n > maxFFTSize || bits.OnesCount(uint(n)) != 1 {
			return fmt.Errorf("reduction fft size must be a power of two in [%d, %d]: %d", minFFTSize, maxFFTSize, n)
		}

		cfg.fftSize = n

		return nil
	}
}

// WithBandEdges sets ascending band edges in Hz. n edges give n-1 bands;
// edges above Nyquist are clipped when measuring.
func WithBandEdges(edges ...float64) Option {
	return func(cfg *config) error {
		if len(edges) < 2 {
			return fmt.Errorf("reduction needs at least two band edges: %v", edges)
		}

		for i := 1; i < len(edges); i++ {
			if !(edges[i] > edges[i-1]) || edges[i-1] < 0 {
				return fmt.Errorf("reduction band edges must be ascending and non-negative: %v", edges)
			}
		}

		cfg.bandEdges = append([]float64(nil), edges...)

		return nil
	}
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		switch t {
		case window.TypeRectangular, window.TypeHann, window.TypeHamming, window.TypeBlackman:
		default:
			return fmt.Errorf("reduction unsupported window: %s", t)
		}

		cfg.window = t

		return nil
	}
}
