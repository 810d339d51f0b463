package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-synth/dsp/chord"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// Config is a complete voice description.
type Config struct {
	SampleRate float64       `json:"sampleRate"`
	BlockSize  int           `json:"blockSize"`
	Seed       int64         `json:"seed"`
	GainDB     float64       `json:"gainDB"`
	Source     SourceConfig  `json:"source"`
	Gate       *GateConfig   `json:"gate,omitempty"`
	Chorus     *ChorusConfig `json:"chorus,omitempty"`
}

// SourceConfig selects and tunes the signal source. Which fields apply
// depends on Type.
type SourceConfig struct {
	Type       string           `json:"type"`
	Waveform   osc.Waveform     `json:"waveform"`
	Frequency  float64          `json:"frequency"`
	PulseWidth float64          `json:"pulseWidth,omitempty"`
	Modulator  *ModulatorConfig `json:"modulator,omitempty"`
	Index      float64          `json:"index,omitempty"`
	Quality    chord.Quality    `json:"quality"`
	Octaves    int              `json:"octaves,omitempty"`
	Chords     int              `json:"chords,omitempty"`
}

// ModulatorConfig tunes the modulator of a "pm" source.
type ModulatorConfig struct {
	Waveform  osc.Waveform `json:"waveform"`
	Frequency float64      `json:"frequency"`
}

// UnmarshalJSON decodes a modulator block on top of the default sine
// modulator, so omitted fields keep their defaults.
func (m *ModulatorConfig) UnmarshalJSON(data []byte) error {
	type plain ModulatorConfig
	def := osc.DefaultPhaseModulatorConfig()
	v := plain{Waveform: def.ModulatorWaveform, Frequency: def.ModulatorFrequency}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*m = ModulatorConfig(v)
	return nil
}

// GateConfig places a duration gate window, in seconds.
type GateConfig struct {
	PieceLength float64 `json:"pieceLength"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
}

// ChorusConfig sets up the double comb, in seconds and linear gains.
type ChorusConfig struct {
	MaxDelay    float64 `json:"maxDelay"`
	TapOne      float64 `json:"tapOne"`
	TapTwo      float64 `json:"tapTwo"`
	FeedbackOne float64 `json:"feedbackOne"`
	FeedbackTwo float64 `json:"feedbackTwo"`
}

// DefaultConfig returns an ungated, dry sine oscillator at 220 Hz.
func DefaultConfig() Config {
	pc := core.DefaultProcessorConfig()
	return Config{
		SampleRate: pc.SampleRate,
		BlockSize:  pc.BlockSize,
		Seed:       1,
		GainDB:     -6,
		Source: SourceConfig{
			Type:       SourceOscillator,
			Waveform:   osc.Sine,
			Frequency:  220,
			PulseWidth: 0.5,
			Index:      1,
			Quality:    chord.Major,
			Octaves:    1,
			Chords:     4,
		},
	}
}

// Apply overrides the sample rate and block size with opts.
func (c Config) Apply(opts ...core.ProcessorOption) Config {
	pc := core.ApplyProcessorOptions(core.ProcessorConfig{SampleRate: c.SampleRate, BlockSize: c.BlockSize}, opts...)
	c.SampleRate = pc.SampleRate
	c.BlockSize = pc.BlockSize
	return c
}

// Validate checks the processor settings. Component parameters are
// validated by Build.
func (c Config) Validate() error {
	pc := core.ProcessorConfig{SampleRate: c.SampleRate, BlockSize: c.BlockSize}
	if err := pc.Validate("patch"); err != nil {
		return err
	}
	return core.ValidateFinite("patch", "gain", c.GainDB)
}

// Load decodes a JSON config on top of DefaultConfig. Unknown fields are
// rejected.
func Load(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode patch: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a JSON config from path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open patch: %w", err)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
