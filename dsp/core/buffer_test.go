package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestDeinterleave(t *testing.T) {
	dst := Deinterleave(make([][]float32, 2), []float32{1, -1, 2, -2, 3, -3, 4})

	if len(dst[0]) != 3 || len(dst[1]) != 3 {
		t.Fatalf("frames = %d/%d, want 3/3", len(dst[0]), len(dst[1]))
	}

	for i := range 3 {
		want := float32(i + 1)
		if dst[0][i] != want || dst[1][i] != -want {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", i, dst[0][i], dst[1][i], want, -want)
		}
	}
}

func TestInterleaveShortestChannel(t *testing.T) {
	out := Interleave(nil, [][]float64{{1, 2, 3}, {-1, -2}})

	want := []float64{1, -1, 2, -2}
	if len(out) != len(want) {
		t.Fatalf("len = %d, want %d", len(out), len(want))
	}

	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	src := [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}

	back := Deinterleave(make([][]float64, 2), Interleave(nil, src))
	for ch := range src {
		for i := range src[ch] {
			if back[ch][i] != src[ch][i] {
				t.Fatalf("ch %d sample %d = %v, want %v", ch, i, back[ch][i], src[ch][i])
			}
		}
	}
}
