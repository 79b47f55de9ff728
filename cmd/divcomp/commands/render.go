package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-divcomp/dsp/core"
	"github.com/cwbudde/algo-divcomp/host"
	"github.com/cwbudde/algo-divcomp/internal/config"
	"github.com/cwbudde/algo-divcomp/internal/wavio"
)

var (
	renderParams   paramFlags
	renderBitDepth int
)

var renderCmd = &cobra.Command{
	Use:   "render <in.wav> <out.wav>",
	Short: "Process a stereo WAV file",
	Long: `Process a stereo WAV file and write the result.

The output keeps the input sample rate. Its bit depth is the input's unless
--bit-depth is given (16, 24 or 32).

Example:
  divcomp render mix.wav mix-comp.wav --threshold -20 --ratio 4 --attack 5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, err := renderParams.resolve(cmd)
		if err != nil {
			return err
		}

		in, err := readInput(args[0])
		if err != nil {
			return err
		}

		start := time.Now()

		out, meters, err := renderAudio(in, preset)
		if err != nil {
			return err
		}

		if renderBitDepth != 0 {
			out.BitDepth = renderBitDepth
		}

		if err := wavio.WriteFile(args[1], out); err != nil {
			return err
		}

		grL, grR := meters.GainReductionDB()
		logger.Info("rendered",
			"path", args[1],
			"frames", out.Frames(),
			"sample_rate", out.SampleRate,
			"bit_depth", out.BitDepth,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
		logger.Debug("final block meters",
			"gain_reduction_left_db", grL,
			"gain_reduction_right_db", grR,
			"divergence", meters.Divergence,
		)

		return nil
	},
}

func init() {
	renderParams.register(renderCmd)
	renderCmd.Flags().IntVar(&renderBitDepth, "bit-depth", 0, "output bit depth (16, 24 or 32; 0 keeps the input's)")

	rootCmd.AddCommand(renderCmd)
}

func readInput(path string) (*wavio.Audio, error) {
	a, err := wavio.ReadFile(path)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded",
		"path", path,
		"frames", a.Frames(),
		"sample_rate", a.SampleRate,
		"duration", time.Duration(a.Duration()*float64(time.Second)).Round(time.Millisecond),
	)

	return a, nil
}

// renderAudio runs in through a fresh processor block by block.
func renderAudio(in *wavio.Audio, preset config.Preset) (*wavio.Audio, host.Meters, error) {
	if in.SampleRate <= 0 {
		return nil, host.Meters{}, fmt.Errorf("sample rate must be positive: %d", in.SampleRate)
	}

	if preset.BlockSize <= 0 {
		return nil, host.Meters{}, fmt.Errorf("block size must be positive: %d", preset.BlockSize)
	}

	proc, err := host.NewProcessor(
		core.WithSampleRate(float64(in.SampleRate)),
		core.WithBlockSize(preset.BlockSize),
		core.WithChannels(2),
	)
	if err != nil {
		return nil, host.Meters{}, err
	}

	proc.Submit(preset.Params)

	n := in.Frames()
	out := &wavio.Audio{
		SampleRate: in.SampleRate,
		BitDepth:   in.BitDepth,
		Left:       make([]float64, n),
		Right:      make([]float64, n),
	}

	src := make([][]float64, 2)
	dst := make([][]float64, 2)

	block := proc.BlockSize()
	for start := 0; start < n; start += block {
		end := min(start+block, n)

		src[0], src[1] = in.Left[start:end], in.Right[start:end]
		dst[0], dst[1] = out.Left[start:end], out.Right[start:end]

		proc.ProcessFloat64(src, dst)
	}

	return out, proc.Meters(), nil
}
