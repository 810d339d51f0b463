package patch

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/chorus"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
)

// Voice renders source → gate → gain → chorus.
//
// Process and the block methods must not run concurrently with each other.
// Peak is safe to call from any goroutine.
type Voice struct {
	cfg    Config
	source Source
	gate   *envelope.DurationGate
	chorus *chorus.DoubleComb
	gain   float64

	levels []float64
	render []float64

	peak atomic.Uint64
}

// Build creates a Voice with the default registry.
func Build(cfg Config) (*Voice, error) {
	return DefaultRegistry().Build(cfg)
}

// Build creates a Voice, resolving cfg.Source.Type in r.
func (r *Registry) Build(cfg Config) (*Voice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factory := r.Lookup(cfg.Source.Type)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source.Type)
	}
	src, err := factory(Context{
		SampleRate: cfg.SampleRate,
		Rand:       rand.New(rand.NewSource(cfg.Seed)),
	}, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", cfg.Source.Type, err)
	}

	v := &Voice{
		cfg:    cfg,
		source: src,
		gain:   core.DBToLinear(cfg.GainDB),
		levels: make([]float64, cfg.BlockSize),
		render: make([]float64, cfg.BlockSize),
	}

	if g := cfg.Gate; g != nil {
		v.gate, err = envelope.NewDurationGate(envelope.GateConfig{
			SampleRate:  cfg.SampleRate,
			PieceLength: g.PieceLength,
			Start:       g.Start,
			End:         g.End,
		})
		if err != nil {
			return nil, fmt.Errorf("gate: %w", err)
		}
	}

	if c := cfg.Chorus; c != nil {
		v.chorus, err = chorus.New(chorus.Config{
			SampleRate:  cfg.SampleRate,
			MaxDelay:    c.MaxDelay,
			TapOne:      c.TapOne,
			TapTwo:      c.TapTwo,
			FeedbackOne: c.FeedbackOne,
			FeedbackTwo: c.FeedbackTwo,
		})
		if err != nil {
			return nil, fmt.Errorf("chorus: %w", err)
		}
	}

	return v, nil
}

// Process renders one sample.
func (v *Voice) Process() float64 {
	x := v.source.Process()
	if v.gate != nil {
		x *= v.gate.Process()
	}
	x *= v.gain
	if v.chorus != nil {
		x = v.chorus.Process(x)
	}
	return x
}

// ProcessBlock renders len(dst) samples in BlockSize chunks. It matches
// repeated Process calls and does not allocate.
func (v *Voice) ProcessBlock(dst []float64) {
	for len(dst) > 0 {
		n := min(len(dst), len(v.levels))
		out := dst[:n]

		v.source.ProcessBlock(out)
		if v.gate != nil {
			levels := v.levels[:n]
			v.gate.ProcessBlock(levels)
			vecmath.MulBlockInPlace(out, levels)
		}
		vecmath.ScaleBlockInPlace(out, v.gain)
		if v.chorus != nil {
			v.chorus.ProcessInPlace(out)
		}

		dst = dst[n:]
	}
}

// ProcessFloat32 renders into an audio backend buffer and records the
// block peak.
func (v *Voice) ProcessFloat32(dst []float32) {
	peak := 0.0
	for len(dst) > 0 {
		n := min(len(dst), len(v.render))
		buf := v.render[:n]
		v.ProcessBlock(buf)
		peak = math.Max(peak, vecmath.MaxAbs(buf))
		for i, x := range buf {
			dst[i] = float32(x)
		}
		dst = dst[n:]
	}
	v.peak.Store(math.Float64bits(peak))
}

// Peak returns the absolute peak of the last ProcessFloat32 call.
func (v *Voice) Peak() float64 {
	return math.Float64frombits(v.peak.Load())
}

// Reset restarts the source, gate and chorus.
func (v *Voice) Reset() {
	v.source.Reset()
	if v.gate != nil {
		v.gate.Reset()
	}
	if v.chorus != nil {
		v.chorus.Reset()
	}
	v.peak.Store(0)
}

// Config returns the config the voice was built from.
func (v *Voice) Config() Config { return v.cfg }

// Gain returns the linear output gain.
func (v *Voice) Gain() float64 { return v.gain }
