// Package spectrum converts complex FFT output into real magnitude and
// power arrays, and provides a small [Analyzer] for inspecting audio blocks
// captured from the engine (the scope node, response plots, tests).
//
// The element-wise conversions use SIMD-accelerated kernels from
// algo-vecmath where available.
package spectrum
