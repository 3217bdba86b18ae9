package biquad

import (
	"math"
	"math/cmplx"
)

// FloorDB is the reported magnitude when the linear response is zero or
// numerically negative.
const FloorDB = -100

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression in
// phi = sin(pi*f/sampleRate)^2, avoiding complex exponentials.
//
// Round-off can drive the result slightly negative near deep notches;
// callers should clamp at zero before taking the square root.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	phi := math.Sin(math.Pi * freqHz / sampleRate)
	phi *= phi

	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := 16*b0*b2*phi*phi + (b0+b1+b2)*(b0+b1+b2) - 4*(b0*b1+4*b0*b2+b1*b2)*phi
	den := 16*a2*phi*phi + (1+a1+a2)*(1+a1+a2) - 4*(a1+4*a2+a1*a2)*phi

	return num / den
}

// Magnitude returns |H(f)|, clamping numerically negative squared
// magnitudes to zero.
func (c *Coefficients) Magnitude(freqHz, sampleRate float64) float64 {
	h2 := c.MagnitudeSquared(freqHz, sampleRate)
	if h2 <= 0 {
		return 0
	}

	return math.Sqrt(h2)
}

// MagnitudeDB returns 20*log10(|H(f)|), or [FloorDB] when the linear
// magnitude is zero.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	mag := c.Magnitude(freqHz, sampleRate)
	if mag <= 0 {
		return FloorDB
	}

	return 20 * math.Log10(mag)
}

// Phase returns the phase response in radians at the given frequency.
// The result is in [-pi, pi], consistent with the standard DSP convention
// H(e^{-jw}).
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}
