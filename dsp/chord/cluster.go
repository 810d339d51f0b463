package chord

import (
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

const (
	clusterMinFrequency  = 300.0
	clusterFrequencySpan = 1000.0
	defaultClusterSeed   = 1
)

// RandomSource yields uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// ClusterConfig describes a chord cluster.
type ClusterConfig struct {
	SampleRate float64
	Chords     int
	Waveform   osc.Waveform
}

// DefaultClusterConfig returns a four-chord sine cluster at 48 kHz.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		SampleRate: 48000,
		Chords:     4,
		Waveform:   osc.Sine,
	}
}

// Cluster averages single-octave chords with random base frequencies in
// [300, 1300) Hz. Even-indexed chords are major, odd-indexed minor.
type Cluster struct {
	cfg     ClusterConfig
	chords  []Chord
	inv     float64
	scratch []float64
}

// NewCluster creates a cluster, drawing base frequencies from rng. A nil rng
// uses a fixed-seed source.
func NewCluster(cfg ClusterConfig, rng RandomSource) (*Cluster, error) {
	c := &Cluster{}
	if err := c.Configure(cfg, rng); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure rebuilds the cluster and draws fresh base frequencies.
// On error the cluster keeps its previous state.
func (c *Cluster) Configure(cfg ClusterConfig, rng RandomSource) error {
	if err := core.ValidateSampleRate("cluster", cfg.SampleRate); err != nil {
		return err
	}
	if cfg.Chords < 1 {
		return core.NewConfigurationError("cluster", "chords", float64(cfg.Chords), core.ErrInvalidParameter)
	}
	if !cfg.Waveform.Valid() {
		return core.NewConfigurationError("cluster", "waveform", float64(cfg.Waveform), core.ErrInvalidWaveform)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(defaultClusterSeed))
	}

	chords := make([]Chord, cfg.Chords)
	for i := range chords {
		err := chords[i].Configure(Config{
			SampleRate:    cfg.SampleRate,
			BaseFrequency: drawBaseFrequency(rng),
			Waveform:      cfg.Waveform,
			Quality:       qualityFor(i),
			Octaves:       1,
		})
		if err != nil {
			return err
		}
	}

	c.cfg = cfg
	c.chords = chords
	c.inv = 1 / float64(len(chords))
	c.scratch = core.EnsureLen(c.scratch, renderBlockSize)
	return nil
}

func drawBaseFrequency(rng RandomSource) float64 {
	return clusterFrequencySpan*rng.Float64() + clusterMinFrequency
}

func qualityFor(index int) Quality {
	if index%2 == 0 {
		return Major
	}
	return Minor
}

// Reroll draws new base frequencies into the existing chords without
// reallocating. Phases are preserved.
func (c *Cluster) Reroll(rng RandomSource) error {
	if len(c.chords) == 0 {
		return core.NewConfigurationError("cluster", "chords", 0, core.ErrNotConfigured)
	}
	if rng == nil {
		return core.NewConfigurationError("cluster", "random source", 0, core.ErrInvalidParameter)
	}
	for i := range c.chords {
		if err := c.chords[i].SetBaseFrequency(drawBaseFrequency(rng), qualityFor(i)); err != nil {
			return err
		}
	}
	return nil
}

// SetSampleRate updates every chord in place.
func (c *Cluster) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("cluster", sampleRate); err != nil {
		return err
	}
	for i := range c.chords {
		_ = c.chords[i].SetSampleRate(sampleRate)
	}
	c.cfg.SampleRate = sampleRate
	return nil
}

// Reset returns every partial of every chord to phase 0.
func (c *Cluster) Reset() {
	for i := range c.chords {
		c.chords[i].Reset()
	}
}

// Process returns the unweighted average of all chord outputs.
func (c *Cluster) Process() float64 {
	mix := 0.0
	for i := range c.chords {
		mix += c.chords[i].Process() * c.inv
	}
	return mix
}

// ProcessBlock fills dst with consecutive samples, matching repeated
// Process calls.
func (c *Cluster) ProcessBlock(dst []float64) {
	if len(c.scratch) == 0 {
		core.Zero(dst)
		return
	}

	for len(dst) > 0 {
		n := min(len(dst), len(c.scratch))
		out := dst[:n]
		tmp := c.scratch[:n]

		core.Zero(out)
		for i := range c.chords {
			c.chords[i].ProcessBlock(tmp)
			vecmath.ScaleBlockInPlace(tmp, c.inv)
			vecmath.AddBlockInPlace(out, tmp)
		}

		dst = dst[n:]
	}
}

// Config returns the parameters currently in effect.
func (c *Cluster) Config() ClusterConfig { return c.cfg }

// Len returns the number of chords.
func (c *Cluster) Len() int { return len(c.chords) }

// Chord returns chord i. The pointer aliases cluster state.
func (c *Cluster) Chord(i int) *Chord { return &c.chords[i] }

// BaseFrequencies returns a copy of the drawn base frequencies.
func (c *Cluster) BaseFrequencies() []float64 {
	out := make([]float64, len(c.chords))
	for i := range c.chords {
		out[i] = c.chords[i].BaseFrequency()
	}
	return out
}
