package time

import (
	"math"
	"testing"
)

func TestRMSAndPeak(t *testing.T) {
	tests := []struct {
		name     string
		signal   []float64
		wantRMS  float64
		wantPeak float64
	}{
		{name: "empty", signal: nil, wantRMS: 0, wantPeak: 0},
		{name: "square", signal: []float64{1, -1, 1, -1}, wantRMS: 1, wantPeak: 1},
		{name: "dc", signal: []float64{0.5, 0.5}, wantRMS: 0.5, wantPeak: 0.5},
		{name: "negative peak", signal: []float64{0.1, -0.8, 0.3}, wantRMS: math.Sqrt((0.01 + 0.64 + 0.09) / 3), wantPeak: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.signal); math.Abs(got-tt.wantRMS) > 1e-12 {
				t.Fatalf("RMS() = %v, want %v", got, tt.wantRMS)
			}

			if got := Peak(tt.signal); got != tt.wantPeak {
				t.Fatalf("Peak() = %v, want %v", got, tt.wantPeak)
			}
		})
	}
}

func TestMaxRatioDB(t *testing.T) {
	ref := []float64{1, -0.5, 1e-9, 0.2, 0.4}
	sig := []float64{0.5, -0.5, 0, 0, 0.4}

	got := MaxRatioDB(ref, sig, 1e-6)
	want := 20 * math.Log10(2)

	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("MaxRatioDB() = %v, want %v", got, want)
	}

	if got := MaxRatioDB([]float64{0.5}, []float64{1}, 1e-6); got != 0 {
		t.Fatalf("MaxRatioDB(gain) = %v, want 0", got)
	}
}
