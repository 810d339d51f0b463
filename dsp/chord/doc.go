// Package chord builds triads and chord clusters out of osc.Oscillator
// partials.
//
// A [Chord] stacks root, third and fifth for each requested octave. Partial
// i is weighted 1/(partials*(i+1)), so upper partials are progressively
// quieter. A [Cluster] averages several chords whose base frequencies are
// drawn once from an injected [RandomSource], alternating major and minor.
//
// Oscillator storage is sized when a chord is configured; retuning and
// sample-rate changes only mutate existing partials.
package chord
