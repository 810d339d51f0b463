package testutil

// SequenceSource replays fixed values as uniform draws, cycling when
// exhausted. It satisfies chord.RandomSource.
type SequenceSource struct {
	Values []float64
	next   int
}

// NewSequenceSource returns a source that yields values in order.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Float64 returns the next value, or 0 when Values is empty.
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next]
	s.next = (s.next + 1) % len(s.Values)
	return v
}
