package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-divcomp/internal/config"
)

// paramFlags are the processing flags shared by render, analyze and play.
type paramFlags struct {
	preset    string
	threshold float64
	ratio     float64
	attack    float64
	release   float64
	cutoff    float64
	block     int
}

func (f *paramFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()

	fs.StringVar(&f.preset, "preset", "", "YAML preset file")
	fs.Float64Var(&f.threshold, "threshold", d.ThresholdDB, "threshold in dBFS")
	fs.Float64Var(&f.ratio, "ratio", d.Ratio, "compression ratio")
	fs.Float64Var(&f.attack, "attack", d.AttackMs, "attack time in ms")
	fs.Float64Var(&f.release, "release", d.ReleaseMs, "release time in ms")
	fs.Float64Var(&f.cutoff, "cutoff", d.CutoffMs, "divergence smoothing time in ms")
	fs.IntVar(&f.block, "block", d.BlockSize, "processing block size in frames")
}

// resolve loads the preset, if any, and applies explicitly set flags on top.
func (f *paramFlags) resolve(cmd *cobra.Command) (config.Preset, error) {
	p := config.Default()

	if f.preset != "" {
		loaded, err := config.Load(f.preset)
		if err != nil {
			return config.Preset{}, err
		}

		p = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("threshold") {
		p.ThresholdDB = f.threshold
	}
	if fs.Changed("ratio") {
		p.Ratio = f.ratio
	}
	if fs.Changed("attack") {
		p.AttackMs = f.attack
	}
	if fs.Changed("release") {
		p.ReleaseMs = f.release
	}
	if fs.Changed("cutoff") {
		p.CutoffMs = f.cutoff
	}
	if fs.Changed("block") {
		p.BlockSize = f.block
	}

	if err := p.Validate(); err != nil {
		return config.Preset{}, fmt.Errorf("invalid parameters: %w", err)
	}

	return p, nil
}
