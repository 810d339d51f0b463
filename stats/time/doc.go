// Package time summarizes rendered audio in the time domain: DC offset,
// RMS and peak level, crest factor and a zero-crossing pitch estimate.
package time
