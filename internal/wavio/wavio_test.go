package wavio

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-divcomp/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		bitDepth int
		eps      float64
	}{
		{bitDepth: 16, eps: 1.0 / 32768},
		{bitDepth: 24, eps: 1.0 / 8388608},
		{bitDepth: 32, eps: 1e-9},
	}

	for _, tt := range tests {
		t.Run("bits-"+strconv.Itoa(tt.bitDepth), func(t *testing.T) {
			in := &Audio{
				SampleRate: 44100,
				BitDepth:   tt.bitDepth,
				Left:       testutil.DeterministicSine[float64](440, 44100, 0.5, 2048),
				Right:      testutil.DeterministicNoise[float64](9, 0.25, 2048),
			}

			path := filepath.Join(t.TempDir(), "rt.wav")
			if err := WriteFile(path, in); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			out, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}

			if out.SampleRate != 44100 || out.BitDepth != tt.bitDepth || out.Frames() != 2048 {
				t.Fatalf("got rate=%d depth=%d frames=%d", out.SampleRate, out.BitDepth, out.Frames())
			}

			testutil.RequireSliceNearlyEqual(t, out.Left, in.Left, tt.eps)
			testutil.RequireSliceNearlyEqual(t, out.Right, in.Right, tt.eps)
		})
	}
}

func TestEncodeClips(t *testing.T) {
	in := &Audio{SampleRate: 8000, BitDepth: 16, Left: []float64{2, -2}, Right: []float64{0, 0.5}}

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	testutil.RequireSliceEqual(t, out.Left, []float64{32767.0 / 32768, -1})
	testutil.RequireSliceEqual(t, out.Right, []float64{0, 0.5})
}

func TestReadMonoFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{0, 100, -100, 0},
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	f.Close()

	if _, err := ReadFile(path); !errors.Is(err, ErrNotStereo) {
		t.Fatalf("ReadFile(mono) error = %v, want ErrNotStereo", err)
	}
}

func TestReadGarbageFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not a riff file"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(path); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("ReadFile(junk) error = %v, want ErrInvalidFile", err)
	}
}

func TestEncodeRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")

	tests := []struct {
		name string
		a    *Audio
	}{
		{name: "nil", a: nil},
		{name: "zero rate", a: &Audio{BitDepth: 16}},
		{name: "bit depth", a: &Audio{SampleRate: 8000, BitDepth: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := WriteFile(path, tt.a); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDuration(t *testing.T) {
	a := &Audio{SampleRate: 1000, Left: make([]float64, 500), Right: make([]float64, 400)}
	if got := a.Duration(); got != 0.4 {
		t.Fatalf("Duration() = %v, want 0.4", got)
	}

	if got := (&Audio{}).Duration(); got != 0 {
		t.Fatalf("Duration() without rate = %v, want 0", got)
	}
}

