package host

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-divcomp/dsp/core"
)

// Range describes the accepted interval and default of one parameter.
type Range struct {
	Min     float64
	Max     float64
	Default float64
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Parameter ranges exposed to hosts and the command line.
var (
	ThresholdRange = Range{Min: -120, Max: 0, Default: -12}
	RatioRange     = Range{Min: 1, Max: 10, Default: 1}
	AttackRange    = Range{Min: 0.001, Max: 1000, Default: 1}
	ReleaseRange   = Range{Min: 0.001, Max: 1000, Default: 100}
	CutoffRange    = Range{Min: 1, Max: 1000, Default: 1}
)

// Params holds the user-facing parameter values of the processor.
type Params struct {
	ThresholdDB float64 `yaml:"threshold_db"`
	Ratio       float64 `yaml:"ratio"`
	AttackMs    float64 `yaml:"attack_ms"`
	ReleaseMs   float64 `yaml:"release_ms"`
	CutoffMs    float64 `yaml:"cutoff_ms"`
}

// DefaultParams returns the default of every parameter.
func DefaultParams() Params {
	return Params{
		ThresholdDB: ThresholdRange.Default,
		Ratio:       RatioRange.Default,
		AttackMs:    AttackRange.Default,
		ReleaseMs:   ReleaseRange.Default,
		CutoffMs:    CutoffRange.Default,
	}
}

// Validate reports every parameter outside its range.
func (p Params) Validate() error {
	var errs []error

	check := func(name string, v float64, r Range) {
		if !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%s must be in [%g, %g]: %g", name, r.Min, r.Max, v))
		}
	}

	check("threshold", p.ThresholdDB, ThresholdRange)
	check("ratio", p.Ratio, RatioRange)
	check("attack", p.AttackMs, AttackRange)
	check("release", p.ReleaseMs, ReleaseRange)
	check("cutoff", p.CutoffMs, CutoffRange)

	return errors.Join(errs...)
}

// Clamp returns p with every value snapped into its range. NaN becomes the
// default.
func (p Params) Clamp() Params {
	clamp := func(v float64, r Range) float64 {
		if math.IsNaN(v) {
			return r.Default
		}
		return core.Clamp(v, r.Min, r.Max)
	}

	return Params{
		ThresholdDB: clamp(p.ThresholdDB, ThresholdRange),
		Ratio:       clamp(p.Ratio, RatioRange),
		AttackMs:    clamp(p.AttackMs, AttackRange),
		ReleaseMs:   clamp(p.ReleaseMs, ReleaseRange),
		CutoffMs:    clamp(p.CutoffMs, CutoffRange),
	}
}
