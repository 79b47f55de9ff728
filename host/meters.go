package host

import (
	"math"
	"sync/atomic"
)

// Meters is a snapshot of the most recent block.
type Meters struct {
	InputPeakL  float64
	InputPeakR  float64
	OutputPeakL float64
	OutputPeakR float64

	// GainL and GainR are the smoothed compressor gains after the block,
	// whether or not the router applied them.
	GainL float64
	GainR float64

	Divergence float64
	Blocks     uint64
}

// GainReductionDB returns the left and right gain as positive dB of reduction.
func (m Meters) GainReductionDB() (float64, float64) {
	return -20 * math.Log10(m.GainL), -20 * math.Log10(m.GainR)
}

type meterState struct {
	inputPeakL  atomic.Uint64
	inputPeakR  atomic.Uint64
	outputPeakL atomic.Uint64
	outputPeakR atomic.Uint64
	gainL       atomic.Uint64
	gainR       atomic.Uint64
	divergence  atomic.Uint64
	blocks      atomic.Uint64
}

func (s *meterState) publish(m Meters) {
	s.inputPeakL.Store(math.Float64bits(m.InputPeakL))
	s.inputPeakR.Store(math.Float64bits(m.InputPeakR))
	s.outputPeakL.Store(math.Float64bits(m.OutputPeakL))
	s.outputPeakR.Store(math.Float64bits(m.OutputPeakR))
	s.gainL.Store(math.Float64bits(m.GainL))
	s.gainR.Store(math.Float64bits(m.GainR))
	s.divergence.Store(math.Float64bits(m.Divergence))
	s.blocks.Add(1)
}

func (s *meterState) load() Meters {
	return Meters{
		InputPeakL:  math.Float64frombits(s.inputPeakL.Load()),
		InputPeakR:  math.Float64frombits(s.inputPeakR.Load()),
		OutputPeakL: math.Float64frombits(s.outputPeakL.Load()),
		OutputPeakR: math.Float64frombits(s.outputPeakR.Load()),
		GainL:       math.Float64frombits(s.gainL.Load()),
		GainR:       math.Float64frombits(s.gainR.Load()),
		Divergence:  math.Float64frombits(s.divergence.Load()),
		Blocks:      s.blocks.Load(),
	}
}

func (s *meterState) reset() {
	s.publish(Meters{GainL: 1, GainR: 1})
	s.blocks.Store(0)
}
