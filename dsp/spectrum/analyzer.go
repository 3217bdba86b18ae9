package spectrum

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/window"
)

// Analyzer computes magnitude spectra of real-valued audio blocks.
// The FFT size is the next power of two at or above the block size;
// a Hann window is applied before transforming.
type Analyzer struct {
	sampleRate float64
	fftSize    int
	coeffs     []float64
	scratch    []float64
	in         []complex128
	out        []complex128
	plan       *algofft.Plan[complex128]
}

// NewAnalyzer creates an Analyzer for blocks of the given size.
func NewAnalyzer(blockSize int, sampleRate float64) (*Analyzer, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("analyzer block size must be > 0: %d", blockSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("analyzer sample rate must be > 0: %f", sampleRate)
	}

	fftSize := core.NextPowerOfTwo(blockSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("creating fft plan: %w", err)
	}

	return &Analyzer{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		coeffs:     window.Coefficients(window.TypeHann, blockSize),
		scratch:    make([]float64, blockSize),
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
		plan:       plan,
	}, nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// BinFrequency returns the center frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.fftSize)
}

// Analyze windows the block, transforms it, and returns the magnitudes of
// the non-negative-frequency bins [0..fftSize/2]. Blocks longer than the
// configured size are truncated; shorter blocks are zero-padded.
func (a *Analyzer) Analyze(block []float64) ([]float64, error) {
	n := len(block)
	if n > len(a.coeffs) {
		n = len(a.coeffs)
	}

	window.Apply(a.scratch[:n], block[:n], a.coeffs[:n])
	for i := 0; i < n; i++ {
		a.in[i] = complex(a.scratch[i], 0)
	}
	for i := n; i < a.fftSize; i++ {
		a.in[i] = 0
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("fft forward: %w", err)
	}

	return Magnitude(a.out[:a.fftSize/2+1]), nil
}

// PeakBin returns the index of the largest-magnitude bin in mags,
// skipping the DC bin.
func PeakBin(mags []float64) int {
	peak := 1
	for i := 2; i < len(mags); i++ {
		if mags[i] > mags[peak] {
			peak = i
		}
	}
	return peak
}
