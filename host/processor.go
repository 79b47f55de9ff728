package host

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-divcomp/dsp/core"
	"github.com/cwbudde/algo-divcomp/dsp/effects/dynamics"
)

const (
	msPerSecond    = 1000
	stereoChannels = 2
)

// Processor is the block-level adapter around a StereoCompressor.
//
// ProcessFloat32, ProcessFloat64, SetSampleRate and Reset must be called
// from one goroutine (the audio callback). Submit and Meters may be called
// from any goroutine.
type Processor struct {
	comp      *dynamics.StereoCompressor[float64]
	params    Params
	blockSize int
	channels  int

	pending atomic.Pointer[Params]
	meters  meterState
}

// NewProcessor creates a processor at the configured sample rate with
// DefaultParams applied. The configured channel count must be 2; the block
// size is the preferred block length reported by BlockSize.
func NewProcessor(opts ...core.ProcessorOption) (*Processor, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	if cfg.Channels != stereoChannels {
		return nil, fmt.Errorf("host processor needs %d channels: %d", stereoChannels, cfg.Channels)
	}

	comp, err := dynamics.NewStereoCompressor[float64](cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		comp:      comp,
		blockSize: cfg.BlockSize,
		channels:  cfg.Channels,
	}
	p.apply(DefaultParams())
	p.meters.reset()

	return p, nil
}

// Submit publishes a parameter snapshot. Values are clamped into range and
// take effect at the start of the next block.
func (p *Processor) Submit(params Params) {
	clamped := params.Clamp()
	p.pending.Store(&clamped)
}

// Params returns the parameters applied to the last block. Audio goroutine only.
func (p *Processor) Params() Params { return p.params }

// SetSampleRate propagates a host sample-rate change to every filter.
func (p *Processor) SetSampleRate(sampleRate float64) error {
	return p.comp.SetSampleRate(sampleRate)
}

// SampleRate returns the current sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.comp.SampleRate() }

// BlockSize returns the preferred block length in frames. Blocks of any
// length are accepted.
func (p *Processor) BlockSize() int { return p.blockSize }

// Channels returns the processed channel count.
func (p *Processor) Channels() int { return p.channels }

// Meters returns the meter snapshot of the most recent block.
func (p *Processor) Meters() Meters { return p.meters.load() }

// Reset clears all filter state and meters. Parameters are kept.
func (p *Processor) Reset() {
	p.comp.Reset()
	p.meters.reset()
}

// SaveState returns the persisted plugin state. Persistence is not
// implemented, so the state is always empty.
func (p *Processor) SaveState() []byte { return nil }

// LoadState restores persisted plugin state. It accepts and ignores any input.
func (p *Processor) LoadState([]byte) error { return nil }

// ProcessFloat64 processes one planar block. in and out may alias.
func (p *Processor) ProcessFloat64(in, out [][]float64) { processBlock(p, in, out) }

// ProcessFloat32 processes one planar block, computing internally in float64.
// in and out may alias.
func (p *Processor) ProcessFloat32(in, out [][]float32) { processBlock(p, in, out) }

func (p *Processor) applyPending() {
	if next := p.pending.Swap(nil); next != nil {
		p.apply(*next)
	}
}

func (p *Processor) apply(params Params) {
	p.params = params

	p.comp.SetThresholdDB(params.ThresholdDB)
	p.comp.SetRatio(params.Ratio)
	p.comp.SetAttackTime(params.AttackMs / msPerSecond)
	p.comp.SetReleaseTime(params.ReleaseMs / msPerSecond)
	p.comp.SetCutoff(params.CutoffMs / msPerSecond)
}

func processBlock[T core.Float](p *Processor, in, out [][]T) {
	p.applyPending()

	if len(in) != p.channels || len(out) < p.channels {
		for ch := range min(len(in), len(out)) {
			copy(out[ch], in[ch])
		}

		return
	}

	inL, inR := in[0], in[1]
	outL, outR := out[0], out[1]
	n := min(len(inL), len(inR), len(outL), len(outR))

	var m Meters
	for i := range n {
		l, r := float64(inL[i]), float64(inR[i])
		m.InputPeakL = max(m.InputPeakL, math.Abs(l))
		m.InputPeakR = max(m.InputPeakR, math.Abs(r))

		l, r = p.comp.Process(l, r)
		m.OutputPeakL = max(m.OutputPeakL, math.Abs(l))
		m.OutputPeakR = max(m.OutputPeakR, math.Abs(r))

		outL[i], outR[i] = T(l), T(r)
	}

	m.GainL, m.GainR = p.comp.LastGains()
	m.Divergence = p.comp.LastDivergence()
	p.meters.publish(m)
}
