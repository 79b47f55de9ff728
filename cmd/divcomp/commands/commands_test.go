package commands

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-divcomp/internal/config"
	"github.com/cwbudde/algo-divcomp/internal/testutil"
	"github.com/cwbudde/algo-divcomp/internal/wavio"
	"github.com/cwbudde/algo-divcomp/measure/reduction"
)

func hardLeft(frames int) *wavio.Audio {
	return &wavio.Audio{
		SampleRate: 48000,
		BitDepth:   24,
		Left:       testutil.DeterministicSine[float64](220, 48000, 0.9, frames),
		Right:      make([]float64, frames),
	}
}

func TestRenderAudioCompressesLeadingSide(t *testing.T) {
	in := hardLeft(9600)
	preset := config.Default()
	preset.ThresholdDB = -20
	preset.Ratio = 4
	preset.BlockSize = 300

	out, meters, err := renderAudio(in, preset)
	if err != nil {
		t.Fatalf("renderAudio() error = %v", err)
	}

	if out.Frames() != in.Frames() || out.SampleRate != in.SampleRate || out.BitDepth != in.BitDepth {
		t.Fatalf("output shape = %d frames @ %d Hz/%d bit", out.Frames(), out.SampleRate, out.BitDepth)
	}

	testutil.RequireSliceEqual(t, out.Right, in.Right)

	if meters.GainL >= 1 || meters.GainR != 1 {
		t.Fatalf("meters gains = %v/%v, want left < 1 and right = 1", meters.GainL, meters.GainR)
	}

	if peak(out.Left) >= peak(in.Left) {
		t.Fatalf("left peak not reduced: %v -> %v", peak(in.Left), peak(out.Left))
	}
}

func TestRenderAudioBlockSizeIndependent(t *testing.T) {
	in := hardLeft(5000)
	in.Right = testutil.DeterministicNoise[float64](4, 0.3, 5000)

	preset := config.Default()
	preset.Ratio = 3

	preset.BlockSize = 64
	a, _, err := renderAudio(in, preset)
	if err != nil {
		t.Fatal(err)
	}

	preset.BlockSize = 1000
	b, _, err := renderAudio(in, preset)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceEqual(t, a.Left, b.Left)
	testutil.RequireSliceEqual(t, a.Right, b.Right)
}

func TestRenderAudioRejects(t *testing.T) {
	in := hardLeft(10)

	bad := config.Default()
	bad.BlockSize = 0
	if _, _, err := renderAudio(in, bad); err == nil {
		t.Fatal("expected block size error")
	}

	in.SampleRate = 0
	if _, _, err := renderAudio(in, config.Default()); err == nil {
		t.Fatal("expected sample rate error")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")
	presetPath := filepath.Join(dir, "preset.yaml")

	if err := wavio.WriteFile(inPath, hardLeft(4800)); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(presetPath, []byte("threshold_db: -30\nratio: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"render", inPath, outPath, "--preset", presetPath, "--ratio", "6", "--bit-depth", "16"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render error = %v (stderr: %s)", err, stderr.String())
	}

	out, err := wavio.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile(out) error = %v", err)
	}

	if out.BitDepth != 16 || out.Frames() != 4800 {
		t.Fatalf("output = %d bit, %d frames", out.BitDepth, out.Frames())
	}

	if !strings.Contains(stderr.String(), "msg=rendered") {
		t.Fatalf("missing render log line: %q", stderr.String())
	}
}

func TestAnalyzeCommandWindow(t *testing.T) {
	inPath := filepath.Join(t.TempDir(), "in.wav")
	if err := wavio.WriteFile(inPath, hardLeft(4800)); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		analyzeWindow = "hann"
	})

	rootCmd.SetArgs([]string{"analyze", inPath, "--window", "blackman", "--fft-size", "1024", "--ratio", "4", "--threshold", "-20"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("analyze error = %v (stderr: %s)", err, stderr.String())
	}

	if !strings.Contains(stdout.String(), "max reduction") {
		t.Fatalf("report missing header: %q", stdout.String())
	}

	rootCmd.SetArgs([]string{"analyze", inPath, "--window", "kaiser"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unknown window")
	}
}

func TestParamFlagsResolve(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "p.yaml")
	if err := os.WriteFile(presetPath, []byte("threshold_db: -30\nratio: 2\nblock_size: 128\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var f paramFlags
	cmd := newTestCommand(&f)
	if err := cmd.ParseFlags([]string{"--preset", presetPath, "--ratio", "5"}); err != nil {
		t.Fatal(err)
	}

	p, err := f.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if p.ThresholdDB != -30 || p.Ratio != 5 || p.BlockSize != 128 || p.CutoffMs != config.Default().CutoffMs {
		t.Fatalf("resolve() = %+v", p)
	}

	var g paramFlags
	cmd = newTestCommand(&g)
	if err := cmd.ParseFlags([]string{"--ratio", "50"}); err != nil {
		t.Fatal(err)
	}

	if _, err := g.resolve(cmd); err == nil {
		t.Fatal("expected out-of-range ratio error")
	}
}

func TestWriteReport(t *testing.T) {
	in := hardLeft(4096)
	out := &wavio.Audio{SampleRate: in.SampleRate, Left: scale(in.Left, 0.5), Right: in.Right}

	rep, err := reduction.Measure(in.Left, in.Right, out.Left, out.Right, 48000)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeReport(&buf, rep); err != nil {
		t.Fatalf("writeReport() error = %v", err)
	}

	text := buf.String()
	for _, want := range []string{"frames", "4096", "6.02 dB", "-inf", "20-250 Hz"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestFloat32LE(t *testing.T) {
	a := &wavio.Audio{Left: []float64{0.5, -1}, Right: []float64{0.25, 1}}

	buf := float32LE(a)
	if len(buf) != 16 {
		t.Fatalf("len = %d, want 16", len(buf))
	}

	want := []float32{0.5, 0.25, -1, 1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != w {
			t.Fatalf("sample %d = %v, want %v", i, got, w)
		}
	}
}

func TestSIMDSummary(t *testing.T) {
	tests := []struct {
		f    cpu.Features
		want string
	}{
		{f: cpu.Features{}, want: "none"},
		{f: cpu.Features{HasSSE2: true, HasAVX2: true}, want: "sse2,avx2"},
		{f: cpu.Features{HasNEON: true}, want: "neon"},
	}

	for _, tt := range tests {
		if got := simdSummary(tt.f); got != tt.want {
			t.Fatalf("simdSummary(%+v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "divcomp ") {
		t.Fatalf("version output = %q", stdout.String())
	}
}

func scale(x []float64, g float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * g
	}

	return out
}

func peak(x []float64) float64 {
	p := 0.0
	for _, v := range x {
		p = max(p, math.Abs(v))
	}

	return p
}

func newTestCommand(f *paramFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)

	return cmd
}
