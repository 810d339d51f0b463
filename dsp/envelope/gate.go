package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

const (
	defaultFadeSeconds = 0.5
	// endGuard is subtracted from the end fraction so the fade-out begins
	// slightly before the window closes.
	endGuard = 0.001
)

// GateState is the phase of the gate's state machine.
type GateState uint8

const (
	// Silent outputs 0.
	Silent GateState = iota
	// FadingIn ramps the level toward 1.
	FadingIn
	// Sustained holds the level at 1.
	Sustained
	// FadingOut ramps the level toward 0.
	FadingOut
)

func (s GateState) String() string {
	switch s {
	case Silent:
		return "silent"
	case FadingIn:
		return "fading-in"
	case Sustained:
		return "sustained"
	case FadingOut:
		return "fading-out"
	default:
		return fmt.Sprintf("GateState(%d)", uint8(s))
	}
}

// GateConfig describes a gate window. Start and End are in seconds within
// one cycle of PieceLength seconds.
type GateConfig struct {
	SampleRate  float64
	PieceLength float64
	Start       float64
	End         float64
}

// DefaultGateConfig returns a one-second cycle open from 0.2 s to 0.8 s.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		SampleRate:  48000,
		PieceLength: 1,
		Start:       0.2,
		End:         0.8,
	}
}

// gateShape holds the values derived from a GateConfig.
type gateShape struct {
	start       float64
	fadeOutAt   float64
	fadeInStep  float64
	fadeOutStep float64
}

func deriveShape(cfg GateConfig) (gateShape, error) {
	if err := core.ValidateSampleRate("gate", cfg.SampleRate); err != nil {
		return gateShape{}, err
	}
	if err := core.ValidatePositive("gate", "piece length", cfg.PieceLength); err != nil {
		return gateShape{}, err
	}
	if !(cfg.Start >= 0 && cfg.Start < cfg.PieceLength) {
		return gateShape{}, core.NewConfigurationError("gate", "start", cfg.Start, core.ErrInvalidParameter)
	}
	if !(cfg.End > cfg.Start && cfg.End <= cfg.PieceLength) {
		return gateShape{}, core.NewConfigurationError("gate", "end", cfg.End, core.ErrInvalidParameter)
	}

	start := cfg.Start / cfg.PieceLength
	fadeOutAt := cfg.End/cfg.PieceLength - endGuard
	if fadeOutAt <= start {
		return gateShape{}, core.NewConfigurationError("gate", "end", cfg.End, core.ErrInvalidParameter)
	}

	// The fade-out has to finish before the phasor wraps.
	tail := math.Floor((1-fadeOutAt)*cfg.PieceLength*cfg.SampleRate) - 1
	if tail < 1 {
		return gateShape{}, core.NewConfigurationError("gate", "piece length", cfg.PieceLength, core.ErrInvalidParameter)
	}

	fadeInStep := 1 / (defaultFadeSeconds * cfg.SampleRate)
	return gateShape{
		start:       start,
		fadeOutAt:   fadeOutAt,
		fadeInStep:  fadeInStep,
		fadeOutStep: math.Max(fadeInStep, 1/tail),
	}, nil
}

// DurationGate is a cyclic on/off envelope with linear fades.
//
// The fade-in rises at 1/(0.5·SampleRate) per sample. The fade-out uses the
// same rate unless the tail between End and the end of the cycle is shorter
// than half a second, in which case it steepens just enough to reach 0
// before the cycle restarts.
type DurationGate struct {
	cfg    GateConfig
	shape  gateShape
	phasor osc.Oscillator

	level float64
	state GateState
	phase float64
}

// NewDurationGate creates a gate from cfg.
func NewDurationGate(cfg GateConfig) (*DurationGate, error) {
	g := &DurationGate{}
	if err := g.Configure(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Configure applies cfg and restarts the cycle at phase 0 with the gate
// closed. On error the gate keeps its previous state.
func (g *DurationGate) Configure(cfg GateConfig) error {
	shape, err := deriveShape(cfg)
	if err != nil {
		return err
	}

	var phasor osc.Oscillator
	if err := phasor.Configure(cfg.SampleRate, 1/cfg.PieceLength, osc.Phasor); err != nil {
		return err
	}

	g.cfg = cfg
	g.shape = shape
	g.phasor = phasor
	g.Reset()
	return nil
}

// SetSampleRate changes the sample rate, keeping the cycle position.
func (g *DurationGate) SetSampleRate(sampleRate float64) error {
	next := g.cfg
	next.SampleRate = sampleRate
	return g.update(next)
}

// SetPieceLength changes the cycle length. The window stays at the same
// absolute times, so its fractions are re-derived.
func (g *DurationGate) SetPieceLength(seconds float64) error {
	next := g.cfg
	next.PieceLength = seconds
	return g.update(next)
}

// SetWindow moves the open window to [start, end) seconds.
func (g *DurationGate) SetWindow(start, end float64) error {
	next := g.cfg
	next.Start = start
	next.End = end
	return g.update(next)
}

func (g *DurationGate) update(next GateConfig) error {
	if g.phasor.SampleRate() <= 0 {
		return core.NewConfigurationError("gate", "phasor", 0, core.ErrNotConfigured)
	}
	shape, err := deriveShape(next)
	if err != nil {
		return err
	}
	if err := g.phasor.SetSampleRate(next.SampleRate); err != nil {
		return err
	}
	if err := g.phasor.SetFrequency(1 / next.PieceLength); err != nil {
		return err
	}
	g.cfg = next
	g.shape = shape
	return nil
}

// Reset restarts the cycle with the gate closed.
func (g *DurationGate) Reset() {
	g.phasor.Reset()
	g.level = 0
	g.state = Silent
	g.phase = 0
}

// Process advances the cycle by one sample and returns the gate level in
// [0, 1].
func (g *DurationGate) Process() float64 {
	p := g.phasor.Process()
	g.phase = p

	switch {
	case p < g.shape.start:
		g.level = 0
		g.state = Silent
	case p >= g.shape.fadeOutAt:
		g.level -= g.shape.fadeOutStep
		if g.level <= 0 {
			g.level = 0
			g.state = Silent
		} else {
			g.state = FadingOut
		}
	default:
		g.level += g.shape.fadeInStep
		if g.level >= 1 {
			g.level = 1
			g.state = Sustained
		} else {
			g.state = FadingIn
		}
	}
	return g.level
}

// Apply gates one input sample.
func (g *DurationGate) Apply(x float64) float64 {
	return x * g.Process()
}

// ProcessBlock writes consecutive gate levels into dst.
func (g *DurationGate) ProcessBlock(dst []float64) {
	for i := range dst {
		dst[i] = g.Process()
	}
}

// ProcessInPlace gates buf in place.
func (g *DurationGate) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] *= g.Process()
	}
}

// Config returns the parameters currently in effect.
func (g *DurationGate) Config() GateConfig { return g.cfg }

// State returns the state reached by the last Process call.
func (g *DurationGate) State() GateState { return g.state }

// Phase returns the last phasor value in [0, 1).
func (g *DurationGate) Phase() float64 { return g.phase }

// Level returns the last gate level.
func (g *DurationGate) Level() float64 { return g.level }

// FadeStep returns the largest per-sample level change the gate can make.
func (g *DurationGate) FadeStep() float64 {
	return math.Max(g.shape.fadeInStep, g.shape.fadeOutStep)
}

// Window returns the start and fade-out fractions of the cycle.
func (g *DurationGate) Window() (start, fadeOutAt float64) {
	return g.shape.start, g.shape.fadeOutAt
}
