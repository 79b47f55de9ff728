// Package reduction measures what a dynamics processor did to a stereo
// signal by comparing input and output.
//
// A Report holds per-channel RMS and peak levels, the largest per-sample gain
// reduction, the level change in each analysis band (Welch-averaged FFT power
// spectra) and the distribution of the input's left/right divergence.
package reduction
