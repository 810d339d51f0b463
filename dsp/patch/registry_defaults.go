package patch

import (
	"github.com/cwbudde/algo-synth/dsp/chord"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// Built-in source type names.
const (
	SourceOscillator = "oscillator"
	SourcePM         = "pm"
	SourceChord      = "chord"
	SourceCluster    = "cluster"
)

// DefaultRegistry returns a Registry pre-populated with the built-in
// sources.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(SourceOscillator, func(ctx Context, cfg SourceConfig) (Source, error) {
		o, err := osc.New(ctx.SampleRate, cfg.Frequency, cfg.Waveform)
		if err != nil {
			return nil, err
		}
		if cfg.PulseWidth != 0 {
			if err := o.SetPulseWidth(cfg.PulseWidth); err != nil {
				return nil, err
			}
		}
		return o, nil
	})
	r.MustRegister(SourcePM, func(ctx Context, cfg SourceConfig) (Source, error) {
		pm := osc.DefaultPhaseModulatorConfig()
		pm.SampleRate = ctx.SampleRate
		pm.CarrierFrequency = cfg.Frequency
		pm.CarrierWaveform = cfg.Waveform
		pm.Index = cfg.Index
		if cfg.Modulator != nil {
			pm.ModulatorFrequency = cfg.Modulator.Frequency
			pm.ModulatorWaveform = cfg.Modulator.Waveform
		}
		p, err := osc.NewPhaseModulator(pm)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	r.MustRegister(SourceChord, func(ctx Context, cfg SourceConfig) (Source, error) {
		c, err := chord.New(chord.Config{
			SampleRate:    ctx.SampleRate,
			BaseFrequency: cfg.Frequency,
			Waveform:      cfg.Waveform,
			Quality:       cfg.Quality,
			Octaves:       cfg.Octaves,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	})
	r.MustRegister(SourceCluster, func(ctx Context, cfg SourceConfig) (Source, error) {
		c, err := chord.NewCluster(chord.ClusterConfig{
			SampleRate: ctx.SampleRate,
			Chords:     cfg.Chords,
			Waveform:   cfg.Waveform,
		}, ctx.Rand)
		if err != nil {
			return nil, err
		}
		return c, nil
	})

	return r
}
