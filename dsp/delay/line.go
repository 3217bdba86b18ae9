// Package delay provides a circular delay line for echo and feedback
// processing.
package delay

import (
	"fmt"
	"math"
)

// Line is a fixed-size circular delay line. Writing advances the head;
// reads are addressed backward from the most recent write.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line holding size samples.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns the line capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write stores one sample and advances the head.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay steps ago. Read(1) is the most
// recent write; delays beyond the capacity wrap.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay + 2*size) % size
	return d.buffer[readPos]
}

// ReadFractional reads a non-integer delay using cubic Hermite
// interpolation over the four surrounding samples.
func (d *Line) ReadFractional(delay float64) float64 {
	if delay < 1 {
		delay = 1
	}
	maxDelay := float64(d.Len() - 2)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	xm1 := d.Read(p - 1)
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)
	return hermite4(t, xm1, x0, x1, x2)
}

// hermite4 evaluates the 4-point, 3rd-order Hermite interpolant at
// t in [0, 1] between x0 and x1.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + x0
}

// Reset clears the line to silence.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
