//go:build !fastmath

package dynamics

// gainToleranceDB bounds the error of the static gain curve in dB.
const gainToleranceDB = 1e-9
