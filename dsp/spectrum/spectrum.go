package spectrum

import (
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Peak is one spectral maximum.
type Peak struct {
	Frequency float64
	Magnitude float64
	LevelDB   float64
}

// Spectrum is a single-sided magnitude spectrum.
type Spectrum struct {
	sampleRate float64
	fftSize    int
	mags       []float64
}

// Analyze computes the windowed magnitude spectrum of samples.
func Analyze(samples []float64, sampleRate float64) (*Spectrum, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("spectrum input must have at least 2 samples: %d", len(samples))
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum sample rate must be > 0: %f", sampleRate)
	}

	n := len(samples)
	fftSize := nextPowerOf2(n)

	coeffs := hann(n)
	windowed := make([]float64, n)
	vecmath.MulBlock(windowed, samples, coeffs)

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mags := make([]float64, bins)
	vecmath.Magnitude(mags, re, im)

	if gain := vecmath.Sum(coeffs); gain > 0 {
		vecmath.ScaleBlockInPlace(mags, 2/gain)
	}

	return &Spectrum{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		mags:       mags,
	}, nil
}

// FFTSize returns the transform length used.
func (s *Spectrum) FFTSize() int { return s.fftSize }

// BinHz returns the frequency spacing between bins.
func (s *Spectrum) BinHz() float64 { return s.sampleRate / float64(s.fftSize) }

// Len returns the number of bins from DC to Nyquist.
func (s *Spectrum) Len() int { return len(s.mags) }

// Magnitudes returns a copy of the scaled magnitudes.
func (s *Spectrum) Magnitudes() []float64 {
	out := make([]float64, len(s.mags))
	copy(out, s.mags)
	return out
}

// Peaks returns up to n local maxima, strongest first.
func (s *Spectrum) Peaks(n int) []Peak {
	if n <= 0 || len(s.mags) < 3 {
		return nil
	}

	var idx []int
	for k := 1; k < len(s.mags)-1; k++ {
		if s.mags[k] > s.mags[k-1] && s.mags[k] >= s.mags[k+1] {
			idx = append(idx, k)
		}
	}
	sort.Slice(idx, func(i, j int) bool { return s.mags[idx[i]] > s.mags[idx[j]] })
	if len(idx) > n {
		idx = idx[:n]
	}

	binHz := s.BinHz()
	peaks := make([]Peak, len(idx))
	for i, k := range idx {
		a, b, c := s.mags[k-1], s.mags[k], s.mags[k+1]
		delta := 0.0
		if den := a - 2*b + c; den != 0 {
			delta = 0.5 * (a - c) / den
		}
		mag := b - 0.25*(a-c)*delta
		peaks[i] = Peak{
			Frequency: (float64(k) + delta) * binHz,
			Magnitude: mag,
			LevelDB:   LevelDB(mag),
		}
	}
	return peaks
}

// LevelDB converts a linear amplitude to dBFS. Zero and negative input
// map to -Inf.
func LevelDB(linear float64) float64 {
	if linear <= 0 {
		return math.Inf(-1)
	}
	return 20 * mathLog10(linear)
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	den := float64(n - 1)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/den)
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
