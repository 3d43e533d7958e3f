package probe

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/emwave/fdtdlab/internal/emwave"
)

// dbFloor keeps log magnitudes finite for empty bins.
const dbFloor = 1e-10

// MinAnalyzerSize is the smallest supported window.
const MinAnalyzerSize = 16

// Analyzer turns a real-valued time window into decibel magnitude bins.
// A Hann window is applied before the transform to bound spectral leakage.
type Analyzer struct {
	size     int
	window   []float64
	fft      *fourier.FFT
	seq      []float64
	coeffs   []complex128
	spectrum []float64
}

// NewAnalyzer builds an analyzer for windows of the given size, which must be
// a power of two and at least MinAnalyzerSize.
func NewAnalyzer(size int) (*Analyzer, error) {
	if !powerOfTwo(size) || size < MinAnalyzerSize {
		return nil, fmt.Errorf("%w: analyzer size %d (want power of two >= %d)",
			emwave.ErrInvalidParameter, size, MinAnalyzerSize)
	}
	window := make([]float64, size)
	for k := range window {
		window[k] = 0.5 * (1 - math.Cos(2*math.Pi*float64(k)/float64(size-1)))
	}
	return &Analyzer{
		size:     size,
		window:   window,
		fft:      fourier.NewFFT(size),
		seq:      make([]float64, size),
		coeffs:   make([]complex128, size/2+1),
		spectrum: make([]float64, size/2),
	}, nil
}

// Size returns the window length.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of magnitude bins (size/2).
func (a *Analyzer) Bins() int { return a.size / 2 }

// Compute windows the samples, transforms them and returns size/2 magnitude
// bins in decibels. Short inputs are zero-padded. The returned slice is owned
// by the analyzer and overwritten by the next Compute.
func (a *Analyzer) Compute(samples []float32) []float64 {
	n := len(samples)
	if n > a.size {
		n = a.size
	}
	for k := 0; k < n; k++ {
		a.seq[k] = float64(samples[k]) * a.window[k]
	}
	for k := n; k < a.size; k++ {
		a.seq[k] = 0
	}

	a.fft.Coefficients(a.coeffs, a.seq)

	for k := range a.spectrum {
		mag := cmplx.Abs(a.coeffs[k])
		if mag < dbFloor {
			mag = dbFloor
		}
		a.spectrum[k] = 20 * math.Log10(mag)
	}
	return a.spectrum
}

// FindPeakBin returns the index of the strongest bin, DC excluded.
func (a *Analyzer) FindPeakBin() int {
	peak := 1
	for k := 2; k < len(a.spectrum); k++ {
		if a.spectrum[k] > a.spectrum[peak] {
			peak = k
		}
	}
	return peak
}

// BinToFrequency converts a bin index to normalized frequency in cycles per
// step.
func (a *Analyzer) BinToFrequency(bin int) float64 {
	return float64(bin) / float64(a.size)
}
