package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T Float](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Deinterleave splits frame-interleaved samples into dst, one slice per
// channel. Each dst slice is resized to the frame count. A trailing partial
// frame is dropped.
func Deinterleave[T Float](dst [][]T, interleaved []T) [][]T {
	channels := len(dst)
	if channels == 0 {
		return dst
	}

	frames := len(interleaved) / channels
	for ch := range dst {
		dst[ch] = EnsureLen(dst[ch], frames)
	}

	for i := range frames {
		base := i * channels
		for ch := range dst {
			dst[ch][i] = interleaved[base+ch]
		}
	}

	return dst
}

// Interleave writes the channel slices of src into dst frame by frame and
// returns dst resized to frames*channels. The shortest channel bounds the
// frame count.
func Interleave[T Float](dst []T, src [][]T) []T {
	channels := len(src)
	if channels == 0 {
		return dst[:0]
	}

	frames := len(src[0])
	for _, ch := range src[1:] {
		frames = min(frames, len(ch))
	}

	dst = EnsureLen(dst, frames*channels)
	for i := range frames {
		base := i * channels
		for ch := range src {
			dst[base+ch] = src[ch][i]
		}
	}

	return dst
}
