// Package delay provides the fixed-capacity circular storage used by
// delay-based effects.
package delay

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

// Line is a circular delay line addressed by absolute buffer index.
// Cursor bookkeeping belongs to the owner; Line only stores and reads.
type Line struct {
	buffer []float64
}

// New returns a zero-filled delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Store writes sample at index. index must be in [0, Len()).
func (d *Line) Store(index int, sample float64) {
	d.buffer[index] = sample
}

// Linear reads between index and its successor, wrapping the successor to
// the start of the buffer at the upper boundary. frac is the blend weight.
func (d *Line) Linear(index int, frac float64) float64 {
	next := index + 1
	if next >= len(d.buffer) {
		next -= len(d.buffer)
	}
	return interp.Linear2(frac, d.buffer[index], d.buffer[next])
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
}
