package osc

import "github.com/cwbudde/algo-synth/dsp/core"

// PhaseModulatorConfig holds every parameter a PhaseModulator needs. It is
// applied atomically by NewPhaseModulator and Configure.
type PhaseModulatorConfig struct {
	SampleRate         float64
	CarrierFrequency   float64
	CarrierWaveform    Waveform
	ModulatorFrequency float64
	ModulatorWaveform  Waveform
	// Index scales the modulator output before it offsets the carrier phase.
	Index float64
}

// DefaultPhaseModulatorConfig returns a sine-on-sine setup at 48 kHz.
func DefaultPhaseModulatorConfig() PhaseModulatorConfig {
	return PhaseModulatorConfig{
		SampleRate:         48000,
		CarrierFrequency:   440,
		CarrierWaveform:    Sine,
		ModulatorFrequency: 110,
		ModulatorWaveform:  Sine,
		Index:              1,
	}
}

// PhaseModulator drives a carrier's phi input from a modulator oscillator.
//
// Only a Sine carrier responds to phi; other carrier waveforms play
// unmodulated.
type PhaseModulator struct {
	carrier   Oscillator
	modulator Oscillator
}

// NewPhaseModulator creates a phase modulator from cfg.
func NewPhaseModulator(cfg PhaseModulatorConfig) (*PhaseModulator, error) {
	p := &PhaseModulator{}
	if err := p.Configure(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Configure rebuilds both oscillators from cfg. Phases restart at 0.
// On error the modulator keeps its previous state.
func (p *PhaseModulator) Configure(cfg PhaseModulatorConfig) error {
	var carrier, modulator Oscillator
	if err := carrier.Configure(cfg.SampleRate, cfg.CarrierFrequency, cfg.CarrierWaveform); err != nil {
		return err
	}
	if err := modulator.Configure(cfg.SampleRate, cfg.ModulatorFrequency, cfg.ModulatorWaveform); err != nil {
		return err
	}
	if err := carrier.SetModulationDepth(cfg.Index); err != nil {
		return err
	}

	p.carrier = carrier
	p.modulator = modulator
	return nil
}

// SetSampleRate updates both oscillators, keeping their phases.
func (p *PhaseModulator) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("phase modulator", sampleRate); err != nil {
		return err
	}
	_ = p.carrier.SetSampleRate(sampleRate)
	_ = p.modulator.SetSampleRate(sampleRate)
	return nil
}

// SetFrequencies retunes carrier and modulator and sets the modulation index.
func (p *PhaseModulator) SetFrequencies(carrier, modulator, index float64) error {
	for _, v := range [...]struct {
		name  string
		value float64
	}{
		{"carrier frequency", carrier},
		{"modulator frequency", modulator},
		{"index", index},
	} {
		if err := core.ValidateFinite("phase modulator", v.name, v.value); err != nil {
			return err
		}
	}
	if p.carrier.sampleRate <= 0 {
		return core.NewConfigurationError("phase modulator", "sample rate", 0, core.ErrNotConfigured)
	}

	p.carrier.setFrequency(carrier)
	p.modulator.setFrequency(modulator)
	p.carrier.phiDepth = index
	return nil
}

// Reset returns both phases to 0 and clears the latched modulator value.
func (p *PhaseModulator) Reset() {
	p.carrier.Reset()
	p.modulator.Reset()
	p.carrier.SetPhi(0)
}

// Process advances the modulator, latches its output into the carrier's
// phi input and then advances the carrier. The order is fixed.
func (p *PhaseModulator) Process() float64 {
	m := p.modulator.Process()
	p.carrier.SetPhi(m)
	return p.carrier.Process()
}

// ProcessBlock fills dst with consecutive samples.
func (p *PhaseModulator) ProcessBlock(dst []float64) {
	for i := range dst {
		dst[i] = p.Process()
	}
}

// Config returns the parameters currently in effect.
func (p *PhaseModulator) Config() PhaseModulatorConfig {
	return PhaseModulatorConfig{
		SampleRate:         p.carrier.sampleRate,
		CarrierFrequency:   p.carrier.frequency,
		CarrierWaveform:    p.carrier.waveform,
		ModulatorFrequency: p.modulator.frequency,
		ModulatorWaveform:  p.modulator.waveform,
		Index:              p.carrier.phiDepth,
	}
}
