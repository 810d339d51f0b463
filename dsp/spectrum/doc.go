// Package spectrum measures rendered audio in the frequency domain.
//
// [Analyze] applies a Hann window, runs a power-of-two FFT and keeps the
// single-sided magnitude spectrum, scaled so that a full-scale sine reads
// close to 1.0 at its bin. [Spectrum.Peaks] then reports the strongest
// local maxima with parabolic bin refinement, which is how the chord tests
// and the amsynth -analyze mode verify partial tuning.
//
// Build with -tags fastmath to use algo-approx for level conversion.
package spectrum
