// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// [Linear2] blends two neighbouring samples; it is what the double comb
// filter in package chorus uses to read its fractional taps.
package interp
