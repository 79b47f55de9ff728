package commands

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-divcomp/internal/wavio"
)

const playPollInterval = 50 * time.Millisecond

var (
	playParams paramFlags
	playDry    bool
)

var playCmd = &cobra.Command{
	Use:   "play <in.wav>",
	Short: "Process and play a stereo WAV file",
	Long: `Process a stereo WAV file in memory and play it on the default output
device. --dry plays the unprocessed input for comparison. Ctrl-C stops
playback.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, err := playParams.resolve(cmd)
		if err != nil {
			return err
		}

		in, err := readInput(args[0])
		if err != nil {
			return err
		}

		a := in
		if !playDry {
			a, _, err = renderAudio(in, preset)
			if err != nil {
				return err
			}
		}

		return playAudio(cmd.Context(), a)
	},
}

func init() {
	playParams.register(playCmd)
	playCmd.Flags().BoolVar(&playDry, "dry", false, "play the unprocessed input")

	rootCmd.AddCommand(playCmd)
}

func playAudio(ctx context.Context, a *wavio.Audio) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   a.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(bytes.NewReader(float32LE(a)))
	defer player.Close()

	logger.Info("playing", "frames", a.Frames(), "sample_rate", a.SampleRate)
	player.Play()

	ticker := time.NewTicker(playPollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return player.Err()
}

// float32LE interleaves a into little-endian float32 frames.
func float32LE(a *wavio.Audio) []byte {
	n := a.Frames()
	buf := make([]byte, n*2*4)

	for i := range n {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(float32(a.Left[i])))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(float32(a.Right[i])))
	}

	return buf
}
