// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single second-order
// section defined by [Coefficients]: two samples of input history and two
// samples of output history, carried across block boundaries.
//
// This package provides the processing runtime and frequency-response queries
// only. Parametric coefficient design (lowpass, highpass, bandpass, notch)
// lives in dsp/filter/design.
package biquad
