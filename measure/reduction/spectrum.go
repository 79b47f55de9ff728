package reduction

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-divcomp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// analyzer computes Welch-averaged one-sided power spectra with a periodic
// analysis window.
type analyzer struct {
	size   int
	plan   *algofft.Plan[complex128]
	window []float64

	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	power []float64
}

func newAnalyzer(size int, winType window.Type) (*analyzer, error) {
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, err
	}

	win := window.Generate(winType, size, window.WithPeriodic())
	if win == nil {
		return nil, fmt.Errorf("reduction window size must be > 0: %d", size)
	}

	a := &analyzer{
		size:   size,
		plan:   plan,
		window: win,
		frame:  make([]float64, size),
		in:     make([]complex128, size),
		out:    make([]complex128, size),
		re:     make([]float64, size/2+1),
		im:     make([]float64, size/2+1),
		power:  make([]float64, size/2+1),
	}

	return a, nil
}

// powerSpectrum returns the mean power per bin 0..size/2 over 50%-overlapped
// frames. Signals shorter than one frame are zero-padded.
func (a *analyzer) powerSpectrum(x []float64) ([]float64, error) {
	acc := make([]float64, a.size/2+1)
	hop := a.size / 2

	frames := 0
	for start := 0; start == 0 || start+a.size <= len(x); start += hop {
		n := copy(a.frame, x[start:min(start+a.size, len(x))])
		clear(a.frame[n:])

		if err := window.ApplyCoefficientsInPlace(a.frame, a.window); err != nil {
			return nil, err
		}

		for i, v := range a.frame {
			a.in[i] = complex(v, 0)
		}

		if err := a.plan.Forward(a.out, a.in); err != nil {
			return nil, err
		}

		for k := range a.re {
			a.re[k] = real(a.out[k])
			a.im[k] = imag(a.out[k])
		}

		vecmath.Power(a.power, a.re, a.im)

		for k, p := range a.power {
			acc[k] += p
		}

		frames++
	}

	scale := 1 / float64(frames)
	for k := range acc {
		acc[k] *= scale
	}

	return acc, nil
}

// bandEnergy sums power over bins whose centre lies in [lowHz, highHz).
func bandEnergy(power []float64, binHz, lowHz, highHz float64) float64 {
	lo := max(int(math.Ceil(lowHz/binHz)), 0)
	hi := min(int(math.Ceil(highHz/binHz)), len(power))

	sum := 0.0
	for k := lo; k < hi; k++ {
		sum += power[k]
	}

	return sum
}
