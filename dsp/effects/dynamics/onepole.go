package dynamics

import "github.com/cwbudde/algo-divcomp/dsp/core"

// OnePole is the exponential smoother y[n] = x[n] + c*(y[n-1] - x[n]) with
// c = exp(-2π/(fs·t)). It holds a single state value, flushed to zero when it
// decays into the denormal range.
type OnePole[T core.Float] struct {
	sampleRate float64
	seconds    float64
	coeff      T
	state      T
}

// Configure sets sample rate and time constant and recomputes the
// coefficient. The state is kept.
func (p *OnePole[T]) Configure(sampleRate, seconds float64) {
	p.sampleRate = sampleRate
	p.seconds = seconds
	p.coeff = core.Coefficient[T](sampleRate, seconds)
}

// Process smooths x and returns the new state.
func (p *OnePole[T]) Process(x T) T {
	p.state = core.FlushDenormals(x + p.coeff*(p.state-x))
	return p.state
}

// Value returns the state without advancing it.
func (p *OnePole[T]) Value() T { return p.state }

// Coeff returns the cached coefficient.
func (p *OnePole[T]) Coeff() T { return p.coeff }

// Reset sets the state to v.
func (p *OnePole[T]) Reset(v T) { p.state = v }
