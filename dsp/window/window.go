// Package window provides the analysis window functions used by the
// spectrum analyzer.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return fmt.Sprintf("window(%d)", int(t))
	}
}

// ParseType resolves a window name. The second result is false for
// unknown names.
func ParseType(name string) (Type, bool) {
	switch name {
	case "rectangular":
		return TypeRectangular, true
	case "hann":
		return TypeHann, true
	case "hamming":
		return TypeHamming, true
	case "blackman":
		return TypeBlackman, true
	default:
		return TypeRectangular, false
	}
}

// Coefficients returns the symmetric window of the given type and size.
// Sizes below 2 yield all-ones.
func Coefficients(t Type, size int) []float64 {
	coeffs := make([]float64, size)
	if size < 2 {
		for i := range coeffs {
			coeffs[i] = 1
		}
		return coeffs
	}
	for i := range coeffs {
		coeffs[i] = at(t, float64(i)/float64(size-1))
	}
	return coeffs
}

// at evaluates the window at normalized position x in [0, 1].
func at(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*x)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	default:
		return 1
	}
}

// Apply multiplies samples with coefficients into out. All three slices
// must share one length.
func Apply(out, samples, coeffs []float64) {
	vecmath.MulBlock(out, samples, coeffs)
}

// ApplyInPlace multiplies samples with coefficients in place.
func ApplyInPlace(samples, coeffs []float64) {
	vecmath.MulBlockInPlace(samples, coeffs)
}
