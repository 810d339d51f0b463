// Package chorus implements a two-tap fractional delay used as a chorus or
// flanger.
//
// [DoubleComb] stores the dry input in a circular [delay.Line] and reads it
// back at two independently tuned fractional offsets. The taps are scaled by
// their feedback gains and added to the input at the output stage only;
// nothing is recirculated into the line.
//
// Configuration is staged: the sample rate comes first, then the maximum
// delay (which sizes the line), then the tap delays. [New] commits all of
// them at once.
package chorus
