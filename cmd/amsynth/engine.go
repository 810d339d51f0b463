package main

import (
	"sync/atomic"

	"github.com/cwbudde/algo-synth/dsp/patch"
)

// engine hands the current voice to the audio callback. Swap is called
// from the control goroutine; Fill only loads the pointer.
type engine struct {
	voice atomic.Pointer[patch.Voice]
}

// Swap publishes v to the audio callback.
func (e *engine) Swap(v *patch.Voice) {
	e.voice.Store(v)
}

// Fill renders the current voice into out, or silence if there is none.
func (e *engine) Fill(out []float32) {
	v := e.voice.Load()
	if v == nil {
		clear(out)
		return
	}
	v.ProcessFloat32(out)
}

// Peak returns the absolute peak of the last rendered block.
func (e *engine) Peak() float64 {
	v := e.voice.Load()
	if v == nil {
		return 0
	}
	return v.Peak()
}
