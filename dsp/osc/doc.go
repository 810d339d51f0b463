// Package osc provides phase-accumulator oscillators and a two-operator
// phase modulator.
//
// An [Oscillator] advances a phase in [0, 1) by frequency/sampleRate each
// sample and shapes it into one of five [Waveform]s. The phase of a sine
// oscillator can be perturbed by an external phi input, which is how
// [PhaseModulator] couples its modulator into its carrier.
//
// Process is allocation-free and never fails. All validation happens when
// a component is configured.
package osc
