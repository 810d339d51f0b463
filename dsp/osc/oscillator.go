package osc

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	defaultPulseWidth = 0.5
	defaultPhiDepth   = 1.0
)

// Oscillator is a phase-accumulator waveform generator.
//
// The zero value is silent-safe but unconfigured; use New or Configure.
// Owners may embed Oscillator by value and call Configure on it.
type Oscillator struct {
	sampleRate  float64
	frequency   float64
	phase       float64
	phaseInc    float64
	phaseOffset float64
	waveform    Waveform
	pulseWidth  float64
	phi         float64
	phiDepth    float64
}

// New creates a configured oscillator.
func New(sampleRate, frequency float64, waveform Waveform) (*Oscillator, error) {
	o := &Oscillator{}
	if err := o.Configure(sampleRate, frequency, waveform); err != nil {
		return nil, err
	}
	return o, nil
}

// Configure sets sample rate, frequency and waveform in one step and
// restores phase, offset, pulse width and phi modulation to their defaults.
// On error the oscillator is left untouched.
func (o *Oscillator) Configure(sampleRate, frequency float64, waveform Waveform) error {
	if err := core.ValidateSampleRate("oscillator", sampleRate); err != nil {
		return err
	}
	if err := core.ValidateFinite("oscillator", "frequency", frequency); err != nil {
		return err
	}
	if err := validateWaveform("oscillator", waveform); err != nil {
		return err
	}

	*o = Oscillator{
		sampleRate: sampleRate,
		frequency:  frequency,
		phaseInc:   frequency / sampleRate,
		waveform:   waveform,
		pulseWidth: defaultPulseWidth,
		phiDepth:   defaultPhiDepth,
	}
	return nil
}

// SetSampleRate changes the sample rate and recomputes the phase increment
// from the current frequency. Phase is preserved.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("oscillator", sampleRate); err != nil {
		return err
	}
	o.sampleRate = sampleRate
	o.phaseInc = o.frequency / sampleRate
	return nil
}

// SetFrequency retunes the oscillator without resetting phase.
func (o *Oscillator) SetFrequency(frequency float64) error {
	if err := core.ValidateFinite("oscillator", "frequency", frequency); err != nil {
		return err
	}
	if o.sampleRate <= 0 {
		return core.NewConfigurationError("oscillator", "sample rate", o.sampleRate, core.ErrNotConfigured)
	}
	o.setFrequency(frequency)
	return nil
}

func (o *Oscillator) setFrequency(frequency float64) {
	o.frequency = frequency
	o.phaseInc = frequency / o.sampleRate
}

// SetWaveform switches the output shape without resetting phase.
func (o *Oscillator) SetWaveform(waveform Waveform) error {
	if err := validateWaveform("oscillator", waveform); err != nil {
		return err
	}
	o.waveform = waveform
	return nil
}

// SetPhaseOffset sets an additive per-sample phase bias, in cycles.
func (o *Oscillator) SetPhaseOffset(offset float64) error {
	if err := core.ValidateFinite("oscillator", "phase offset", offset); err != nil {
		return err
	}
	o.phaseOffset = offset
	return nil
}

// SetPulseWidth sets the Square duty cycle in (0, 1).
func (o *Oscillator) SetPulseWidth(width float64) error {
	if !(width > 0 && width < 1) {
		return core.NewConfigurationError("oscillator", "pulse width", width, core.ErrInvalidParameter)
	}
	o.pulseWidth = width
	return nil
}

// SetPhi sets the phase-modulation input of a Sine oscillator, in radians
// before scaling by the modulation depth. Other waveforms ignore it.
func (o *Oscillator) SetPhi(phi float64) {
	o.phi = phi
}

// SetModulationDepth sets the factor applied to phi.
func (o *Oscillator) SetModulationDepth(depth float64) error {
	if err := core.ValidateFinite("oscillator", "modulation depth", depth); err != nil {
		return err
	}
	o.phiDepth = depth
	return nil
}

// SetPhiModulation sets phi and its depth together.
func (o *Oscillator) SetPhiModulation(phi, depth float64) error {
	if err := o.SetModulationDepth(depth); err != nil {
		return err
	}
	o.phi = phi
	return nil
}

// Reset returns the phase to 0.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Process advances the phase by one sample and returns the waveform value.
func (o *Oscillator) Process() float64 {
	o.phase += o.phaseInc + o.phaseOffset
	if o.phase >= 1 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
		// a tiny negative phase can round up to exactly 1
		if o.phase >= 1 {
			o.phase = 0
		}
	}

	p := o.phase
	switch o.waveform {
	case Phasor:
		return p
	case Sine:
		return math.Sin(2*math.Pi*p + o.phi*o.phiDepth)
	case Square:
		if p <= o.pulseWidth {
			return 1
		}
		return -1
	case Triangle:
		return 4 * (math.Abs(p-0.5) - 0.25)
	default: // Sawtooth; Configure and SetWaveform reject anything else
		return 2 * (p - 0.5)
	}
}

// ProcessBlock fills dst with consecutive samples.
func (o *Oscillator) ProcessBlock(dst []float64) {
	for i := range dst {
		dst[i] = o.Process()
	}
}

// SampleRate returns sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Frequency returns frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// PhaseIncrement returns frequency/sampleRate.
func (o *Oscillator) PhaseIncrement() float64 { return o.phaseInc }

// PhaseOffset returns the per-sample phase bias.
func (o *Oscillator) PhaseOffset() float64 { return o.phaseOffset }

// Waveform returns the selected waveform.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// PulseWidth returns the Square duty cycle.
func (o *Oscillator) PulseWidth() float64 { return o.pulseWidth }

// Phi returns the current phase-modulation input.
func (o *Oscillator) Phi() float64 { return o.phi }

// ModulationDepth returns the factor applied to phi.
func (o *Oscillator) ModulationDepth() float64 { return o.phiDepth }
