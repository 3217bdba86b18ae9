// Package design computes biquad coefficients for the parametric filter
// shapes used by the engine: lowpass, highpass, bandpass, and notch.
//
// All designs follow the RBJ audio-EQ cookbook bilinear forms. Invalid
// parameters (frequency outside (0, Nyquist), non-finite values) yield
// zero coefficients; a non-positive or non-finite Q falls back to the
// Butterworth default 1/sqrt(2).
package design
