// Package wavio reads and writes stereo PCM WAV files as planar float64
// samples in [-1, 1).
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-divcomp/dsp/core"
)

const pcmFormat = 1

var (
	// ErrNotStereo is returned for files or buffers without exactly two channels.
	ErrNotStereo = errors.New("wavio: audio is not stereo")
	// ErrInvalidFile is returned when the input is not a PCM WAV stream.
	ErrInvalidFile = errors.New("wavio: not a valid PCM wav file")
)

// Audio is a decoded stereo signal.
type Audio struct {
	SampleRate int
	BitDepth   int
	Left       []float64
	Right      []float64
}

// Frames returns the number of stereo frames.
func (a *Audio) Frames() int {
	return min(len(a.Left), len(a.Right))
}

// Duration returns the signal length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}

	return float64(a.Frames()) / float64(a.SampleRate)
}

// Decode reads a complete stereo WAV stream.
func Decode(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: audio format %d", ErrInvalidFile, dec.WavAudioFormat)
	}

	if dec.NumChans != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotStereo, dec.NumChans)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}

	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	interleaved := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		interleaved[i] = float64(v) / scale
	}

	planar := core.Deinterleave(make([][]float64, 2), interleaved)

	return &Audio{
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
		Left:       planar[0],
		Right:      planar[1],
	}, nil
}

// Encode writes a as a PCM WAV stream at a.BitDepth (16, 24 or 32).
// Samples outside [-1, 1] are clipped.
func Encode(w io.WriteSeeker, a *Audio) error {
	if a == nil {
		return ErrNotStereo
	}

	if a.SampleRate <= 0 {
		return fmt.Errorf("wavio sample rate must be positive: %d", a.SampleRate)
	}

	scale, err := fullScale(a.BitDepth)
	if err != nil {
		return err
	}

	interleaved := core.Interleave(nil, [][]float64{a.Left, a.Right})

	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		data[i] = quantize(v, scale)
	}

	enc := wav.NewEncoder(w, a.SampleRate, a.BitDepth, 2, pcmFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: a.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode pcm: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}

	return nil
}

// ReadFile decodes the stereo WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return a, nil
}

// WriteFile encodes a to path, replacing any existing file.
func WriteFile(path string, a *Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, a); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("wavio unsupported bit depth: %d", bitDepth)
	}
}

func quantize(v, scale float64) int {
	if math.IsNaN(v) {
		return 0
	}

	q := math.Round(v * scale)

	return int(core.Clamp(q, -scale, scale-1))
}
