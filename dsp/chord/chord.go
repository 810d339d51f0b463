package chord

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

const (
	partialsPerOctave = 3
	renderBlockSize   = 256
)

// Config describes a chord.
type Config struct {
	SampleRate    float64
	BaseFrequency float64
	Waveform      osc.Waveform
	Quality       Quality
	Octaves       int
}

// DefaultConfig returns a single-octave A3 major sine chord at 48 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:    48000,
		BaseFrequency: 220,
		Waveform:      osc.Sine,
		Quality:       Major,
		Octaves:       1,
	}
}

func (c Config) validate() error {
	if err := core.ValidateSampleRate("chord", c.SampleRate); err != nil {
		return err
	}
	if err := core.ValidatePositive("chord", "base frequency", c.BaseFrequency); err != nil {
		return err
	}
	if !c.Waveform.Valid() {
		return core.NewConfigurationError("chord", "waveform", float64(c.Waveform), core.ErrInvalidWaveform)
	}
	if err := validateQuality(c.Quality); err != nil {
		return err
	}
	if c.Octaves < 1 {
		return core.NewConfigurationError("chord", "octaves", float64(c.Octaves), core.ErrInvalidParameter)
	}
	return nil
}

// Chord sums root, third and fifth partials for each octave.
//
// Octave k (starting at 0) is rooted at BaseFrequency*(k+1).
type Chord struct {
	cfg      Config
	partials []osc.Oscillator
	gains    []float64
	scratch  []float64
}

// New creates a chord from cfg.
func New(cfg Config) (*Chord, error) {
	c := &Chord{}
	if err := c.Configure(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure rebuilds the partial set. This is the only call that allocates;
// changing Octaves requires it. On error the chord keeps its previous state.
func (c *Chord) Configure(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	count := cfg.Octaves * partialsPerOctave
	partials := make([]osc.Oscillator, count)
	gains := make([]float64, count)

	for i := range partials {
		if err := partials[i].Configure(cfg.SampleRate, cfg.BaseFrequency, cfg.Waveform); err != nil {
			return err
		}
		gains[i] = 1 / (float64(count) * float64(i+1))
	}
	if err := retune(partials, cfg.BaseFrequency, cfg.Quality); err != nil {
		return err
	}

	c.cfg = cfg
	c.partials = partials
	c.gains = gains
	c.scratch = core.EnsureLen(c.scratch, renderBlockSize)
	return nil
}

func retune(partials []osc.Oscillator, base float64, quality Quality) error {
	ratios := [partialsPerOctave]float64{1, quality.ThirdRatio(), fifthRatio}
	for i := range partials {
		octave := i / partialsPerOctave
		root := base * float64(octave+1)
		if err := partials[i].SetFrequency(root * ratios[i%partialsPerOctave]); err != nil {
			return err
		}
	}
	return nil
}

// SetBaseFrequency retunes every partial in place for the given quality.
// Phases are preserved.
func (c *Chord) SetBaseFrequency(base float64, quality Quality) error {
	if len(c.partials) == 0 {
		return core.NewConfigurationError("chord", "partials", 0, core.ErrNotConfigured)
	}
	if err := core.ValidatePositive("chord", "base frequency", base); err != nil {
		return err
	}
	if err := validateQuality(quality); err != nil {
		return err
	}
	if err := retune(c.partials, base, quality); err != nil {
		// restore previous tuning
		_ = retune(c.partials, c.cfg.BaseFrequency, c.cfg.Quality)
		return err
	}

	c.cfg.BaseFrequency = base
	c.cfg.Quality = quality
	return nil
}

// SetSampleRate updates every partial without changing the partial count.
func (c *Chord) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("chord", sampleRate); err != nil {
		return err
	}
	for i := range c.partials {
		_ = c.partials[i].SetSampleRate(sampleRate)
	}
	c.cfg.SampleRate = sampleRate
	return nil
}

// Reset returns every partial to phase 0.
func (c *Chord) Reset() {
	for i := range c.partials {
		c.partials[i].Reset()
	}
}

// Process advances every partial once and returns the weighted sum.
func (c *Chord) Process() float64 {
	mix := 0.0
	for i := range c.partials {
		mix += c.partials[i].Process() * c.gains[i]
	}
	return mix
}

// ProcessBlock fills dst with consecutive samples. It renders partial by
// partial through preallocated scratch and produces the same values as
// repeated Process calls.
func (c *Chord) ProcessBlock(dst []float64) {
	if len(c.scratch) == 0 {
		core.Zero(dst)
		return
	}

	for len(dst) > 0 {
		n := min(len(dst), len(c.scratch))
		out := dst[:n]
		tmp := c.scratch[:n]

		core.Zero(out)
		for i := range c.partials {
			c.partials[i].ProcessBlock(tmp)
			vecmath.ScaleBlockInPlace(tmp, c.gains[i])
			vecmath.AddBlockInPlace(out, tmp)
		}

		dst = dst[n:]
	}
}

// Config returns the parameters currently in effect.
func (c *Chord) Config() Config { return c.cfg }

// Quality returns the current chord quality.
func (c *Chord) Quality() Quality { return c.cfg.Quality }

// BaseFrequency returns the root frequency of the first octave in Hz.
func (c *Chord) BaseFrequency() float64 { return c.cfg.BaseFrequency }

// Partials returns the number of oscillators in the chord.
func (c *Chord) Partials() int { return len(c.partials) }

// PartialFrequency returns the frequency of partial i in Hz.
func (c *Chord) PartialFrequency(i int) float64 { return c.partials[i].Frequency() }

// PartialGain returns the mix weight of partial i.
func (c *Chord) PartialGain(i int) float64 { return c.gains[i] }

// PeakAmplitude returns the sum of partial gains, an upper bound on
// |Process()| for waveforms bounded by ±1.
func (c *Chord) PeakAmplitude() float64 {
	return vecmath.Sum(c.gains)
}
