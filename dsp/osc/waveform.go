package osc

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Waveform selects the shape an Oscillator produces.
type Waveform uint8

const (
	// Phasor is the raw 0..1 ramp.
	Phasor Waveform = iota
	// Sine is sin(2*pi*phase + phi*depth).
	Sine
	// Square is +1 while phase <= pulse width, else -1.
	Square
	// Triangle is 4*(|phase-0.5| - 0.25).
	Triangle
	// Sawtooth is 2*(phase - 0.5).
	Sawtooth

	waveformCount
)

var waveformNames = [waveformCount]string{
	Phasor:   "phasor",
	Sine:     "sine",
	Square:   "square",
	Triangle: "triangle",
	Sawtooth: "sawtooth",
}

// Valid reports whether w is one of the defined waveforms.
func (w Waveform) Valid() bool {
	return w < waveformCount
}

func (w Waveform) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Waveform(%d)", uint8(w))
	}
	return waveformNames[w]
}

// ParseWaveform resolves a case-insensitive waveform name.
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q: %w", name, core.ErrInvalidWaveform)
}

// MarshalText implements encoding.TextMarshaler.
func (w Waveform) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, validateWaveform("oscillator", w)
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Waveform) UnmarshalText(text []byte) error {
	parsed, err := ParseWaveform(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func validateWaveform(component string, w Waveform) error {
	if !w.Valid() {
		return core.NewConfigurationError(component, "waveform", float64(w), core.ErrInvalidWaveform)
	}
	return nil
}
