package reduction

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-divcomp/dsp/core"
	"github.com/cwbudde/algo-divcomp/dsp/effects/dynamics"
	timestats "github.com/cwbudde/algo-divcomp/stats/time"
)

// ErrLengthMismatch is returned when the four signals differ in length.
var ErrLengthMismatch = errors.New("reduction: input and output lengths differ")

// silenceFloor is the input magnitude below which per-sample reduction is
// not evaluated.
const silenceFloor = 1e-6

// BandChange is the level change of one frequency band.
type BandChange struct {
	LowHz    float64
	HighHz   float64
	InputDB  float64
	OutputDB float64
	DeltaDB  float64
}

// ChannelReport summarises one channel.
type ChannelReport struct {
	InputRMSDB     float64
	OutputRMSDB    float64
	InputPeakDB    float64
	OutputPeakDB   float64
	MaxReductionDB float64
	Bands          []BandChange
}

// DivergenceStats describes how the input's raw divergence is distributed.
// The fractions sum to 1 for non-empty input.
type DivergenceStats struct {
	Mean   float64
	Left   float64
	Center float64
	Right  float64
}

// Report is the result of Measure.
type Report struct {
	SampleRate float64
	Frames     int
	Left       ChannelReport
	Right      ChannelReport
	Divergence DivergenceStats
}

// Measure compares a processed stereo signal with its input.
func Measure(inL, inR, outL, outR []float64, sampleRate float64, opts ...Option) (Report, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return Report{}, fmt.Errorf("reduction sample rate must be positive and finite: %f", sampleRate)
	}

	n := len(inL)
	if len(inR) != n || len(outL) != n || len(outR) != n {
		return Report{}, fmt.Errorf("%w: %d/%d/%d/%d", ErrLengthMismatch, len(inL), len(inR), len(outL), len(outR))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return Report{}, err
		}
	}

	an, err := newAnalyzer(cfg.fftSize, cfg.window)
	if err != nil {
		return Report{}, fmt.Errorf("reduction fft plan: %w", err)
	}

	left, err := measureChannel(an, inL, outL, sampleRate, cfg.bandEdges)
	if err != nil {
		return Report{}, err
	}

	right, err := measureChannel(an, inR, outR, sampleRate, cfg.bandEdges)
	if err != nil {
		return Report{}, err
	}

	return Report{
		SampleRate: sampleRate,
		Frames:     n,
		Left:       left,
		Right:      right,
		Divergence: divergenceStats(inL, inR),
	}, nil
}

func measureChannel(an *analyzer, in, out []float64, sampleRate float64, edges []float64) (ChannelReport, error) {
	rep := ChannelReport{
		InputRMSDB:     core.LinearToDB(timestats.RMS(in)),
		OutputRMSDB:    core.LinearToDB(timestats.RMS(out)),
		InputPeakDB:    core.LinearToDB(timestats.Peak(in)),
		OutputPeakDB:   core.LinearToDB(timestats.Peak(out)),
		MaxReductionDB: timestats.MaxRatioDB(in, out, silenceFloor),
	}

	inPow, err := an.powerSpectrum(in)
	if err != nil {
		return ChannelReport{}, fmt.Errorf("reduction input spectrum: %w", err)
	}

	outPow, err := an.powerSpectrum(out)
	if err != nil {
		return ChannelReport{}, fmt.Errorf("reduction output spectrum: %w", err)
	}

	nyquist := sampleRate / 2
	binHz := sampleRate / float64(an.size)

	for i := 1; i < len(edges); i++ {
		lo, hi := edges[i-1], min(edges[i], nyquist)
		if lo >= nyquist {
			break
		}

		eIn := bandEnergy(inPow, binHz, lo, hi)
		eOut := bandEnergy(outPow, binHz, lo, hi)

		band := BandChange{
			LowHz:    lo,
			HighHz:   hi,
			InputDB:  core.PowerToDB(eIn),
			OutputDB: core.PowerToDB(eOut),
		}

		if eIn > 0 && eOut > 0 {
			band.DeltaDB = band.OutputDB - band.InputDB
		}

		rep.Bands = append(rep.Bands, band)
	}

	return rep, nil
}

func divergenceStats(left, right []float64) DivergenceStats {
	if len(left) == 0 {
		return DivergenceStats{}
	}

	var s DivergenceStats

	sum := 0.0
	for i := range left {
		d := dynamics.Divergence(left[i], right[i])
		sum += d

		switch {
		case d < 0:
			s.Left++
		case d > 0:
			s.Right++
		default:
			s.Center++
		}
	}

	n := float64(len(left))
	s.Mean = sum / n
	s.Left /= n
	s.Center /= n
	s.Right /= n

	return s
}
