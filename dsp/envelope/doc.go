// Package envelope provides phase-driven amplitude envelopes.
//
// [DurationGate] opens a signal inside a window of a repeating cycle. A
// phasor running at 1/PieceLength is compared against the window; the gate
// level ramps toward 1 inside the window and back to 0 just before the
// window closes, so the output never jumps by more than one fade step.
package envelope
