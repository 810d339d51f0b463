package chorus

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
)

const (
	component          = "chorus"
	defaultFeedback    = 0.5
	minCapacitySamples = 2
)

// Config holds every DoubleComb parameter. Times are in seconds.
type Config struct {
	SampleRate  float64
	MaxDelay    float64
	TapOne      float64
	TapTwo      float64
	FeedbackOne float64
	FeedbackTwo float64
}

// DefaultConfig returns a light chorus at 48 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		MaxDelay:    0.05,
		TapOne:      0.011,
		TapTwo:      0.017,
		FeedbackOne: defaultFeedback,
		FeedbackTwo: defaultFeedback,
	}
}

// tap is a fractional read cursor split into buffer index and blend weight.
type tap struct {
	index int
	frac  float64
}

func (t tap) position() float64 { return float64(t.index) + t.frac }

// DoubleComb is a circular delay line with two fractional read taps.
//
// The zero value passes input through unchanged until a sample rate,
// maximum delay and tap delays have been set.
type DoubleComb struct {
	sampleRate float64
	maxDelay   float64

	line  *delay.Line
	write int

	delays  [2]float64
	taps    [2]tap
	tapsSet bool

	feedback [2]float64
}

// New creates a DoubleComb from cfg in one step. Feedback gains are clamped
// to [0, 1].
func New(cfg Config) (*DoubleComb, error) {
	c := &DoubleComb{}
	if err := c.Configure(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure validates cfg and replaces all state, clearing the line.
// On error the previous configuration stays in effect.
func (c *DoubleComb) Configure(cfg Config) error {
	if err := core.ValidateSampleRate(component, cfg.SampleRate); err != nil {
		return err
	}
	line, err := newLine(cfg.SampleRate, cfg.MaxDelay)
	if err != nil {
		return err
	}
	one, err := tapFor(0, line.Len(), cfg.SampleRate, "tap one", cfg.TapOne)
	if err != nil {
		return err
	}
	two, err := tapFor(0, line.Len(), cfg.SampleRate, "tap two", cfg.TapTwo)
	if err != nil {
		return err
	}

	c.sampleRate = cfg.SampleRate
	c.maxDelay = cfg.MaxDelay
	c.line = line
	c.write = 0
	c.delays = [2]float64{cfg.TapOne, cfg.TapTwo}
	c.taps = [2]tap{one, two}
	c.tapsSet = true
	c.SetFeedback(cfg.FeedbackOne, cfg.FeedbackTwo)
	return nil
}

// SetSampleRate sets the rate used to convert seconds to samples. If a
// maximum delay is already configured the line is reallocated at the new
// rate and any tap delays are re-derived; the line starts silent.
func (c *DoubleComb) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(component, sampleRate); err != nil {
		return err
	}
	if c.line == nil {
		c.sampleRate = sampleRate
		return nil
	}

	line, err := newLine(sampleRate, c.maxDelay)
	if err != nil {
		return err
	}
	var taps [2]tap
	if c.tapsSet {
		for i, seconds := range c.delays {
			if taps[i], err = tapFor(0, line.Len(), sampleRate, tapName(i), seconds); err != nil {
				return err
			}
		}
	}

	c.sampleRate = sampleRate
	c.line = line
	c.write = 0
	c.taps = taps
	return nil
}

// SetMaxDelay allocates a silent line of seconds·SampleRate samples and
// rewinds the write cursor. Previously set tap delays are discarded and
// must be set again.
func (c *DoubleComb) SetMaxDelay(seconds float64) error {
	if c.sampleRate <= 0 {
		return core.NewConfigurationError(component, "sample rate", c.sampleRate, core.ErrNotConfigured)
	}
	line, err := newLine(c.sampleRate, seconds)
	if err != nil {
		return err
	}

	c.maxDelay = seconds
	c.line = line
	c.write = 0
	c.delays = [2]float64{}
	c.taps = [2]tap{}
	c.tapsSet = false
	return nil
}

// SetDelayTimes places both read taps behind the write cursor. Each delay
// must lie in [0, MaxDelay] once converted to samples; a delay of 0 aliases
// the full line length. Taps are read before the input is stored, so a
// delay under one sample blends the previous input with the slot about to
// be overwritten, which still holds the input from Capacity samples ago.
func (c *DoubleComb) SetDelayTimes(one, two float64) error {
	if c.line == nil {
		return core.NewConfigurationError(component, "max delay", c.maxDelay, core.ErrNotConfigured)
	}
	tapOne, err := tapFor(c.write, c.line.Len(), c.sampleRate, "tap one", one)
	if err != nil {
		return err
	}
	tapTwo, err := tapFor(c.write, c.line.Len(), c.sampleRate, "tap two", two)
	if err != nil {
		return err
	}

	c.delays = [2]float64{one, two}
	c.taps = [2]tap{tapOne, tapTwo}
	c.tapsSet = true
	return nil
}

// SetFeedback sets both tap gains, clamped to [0, 1]. NaN maps to 0.
func (c *DoubleComb) SetFeedback(one, two float64) {
	c.feedback = [2]float64{core.ClampUnit(one), core.ClampUnit(two)}
}

// Reset silences the line and restores the taps to their configured delays
// relative to a rewound write cursor.
func (c *DoubleComb) Reset() {
	if c.line == nil {
		return
	}
	c.line.Reset()
	c.write = 0
	if !c.tapsSet {
		return
	}
	for i, seconds := range c.delays {
		// the delays were accepted for this capacity already
		c.taps[i], _ = tapFor(0, c.line.Len(), c.sampleRate, tapName(i), seconds)
	}
}

// Ready reports whether Process applies the taps.
func (c *DoubleComb) Ready() bool {
	return c.line != nil && c.tapsSet
}

// Process returns input plus both interpolated taps scaled by their
// feedback gains, then stores the dry input and advances all cursors.
func (c *DoubleComb) Process(input float64) float64 {
	if !c.Ready() {
		return input
	}

	one := c.line.Linear(c.taps[0].index, c.taps[0].frac)
	two := c.line.Linear(c.taps[1].index, c.taps[1].frac)
	out := input + one*c.feedback[0] + two*c.feedback[1]

	c.line.Store(c.write, input)

	n := c.line.Len()
	c.taps[0].index = advance(c.taps[0].index, n)
	c.taps[1].index = advance(c.taps[1].index, n)
	c.write = advance(c.write, n)
	return out
}

// ProcessInPlace applies the filter to buf in place.
func (c *DoubleComb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.Process(buf[i])
	}
}

// SampleRate returns the sample rate in Hz.
func (c *DoubleComb) SampleRate() float64 { return c.sampleRate }

// MaxDelay returns the configured maximum delay in seconds.
func (c *DoubleComb) MaxDelay() float64 { return c.maxDelay }

// Capacity returns the line length in samples, or 0 before SetMaxDelay.
func (c *DoubleComb) Capacity() int {
	if c.line == nil {
		return 0
	}
	return c.line.Len()
}

// DelayTimes returns the tap delays in seconds.
func (c *DoubleComb) DelayTimes() (one, two float64) { return c.delays[0], c.delays[1] }

// Feedback returns the clamped tap gains.
func (c *DoubleComb) Feedback() (one, two float64) { return c.feedback[0], c.feedback[1] }

// WriteCursor returns the index the next input is stored at.
func (c *DoubleComb) WriteCursor() int { return c.write }

// ReadCursors returns both fractional read positions in [0, Capacity).
func (c *DoubleComb) ReadCursors() (one, two float64) {
	return c.taps[0].position(), c.taps[1].position()
}

func newLine(sampleRate, seconds float64) (*delay.Line, error) {
	if !core.IsFinite(seconds) || seconds <= 0 {
		return nil, core.NewConfigurationError(component, "max delay", seconds, core.ErrInvalidParameter)
	}
	capacity := math.Floor(seconds * sampleRate)
	if capacity < minCapacitySamples || capacity > math.MaxInt32 {
		return nil, core.NewConfigurationError(component, "max delay", seconds, core.ErrInvalidParameter)
	}
	return delay.New(int(capacity))
}

func tapFor(write, capacity int, sampleRate float64, name string, seconds float64) (tap, error) {
	if !core.IsFinite(seconds) || seconds < 0 {
		return tap{}, core.NewConfigurationError(component, name, seconds, core.ErrInvalidParameter)
	}
	samples := seconds * sampleRate
	if samples > float64(capacity) {
		return tap{}, core.NewConfigurationError(component, name, seconds, core.ErrDelayExceedsCapacity)
	}

	pos := float64(write) - samples
	if pos < 0 {
		pos += float64(capacity)
	}
	index := int(math.Floor(pos))
	frac := pos - float64(index)
	if index >= capacity {
		index -= capacity
	}
	return tap{index: index, frac: frac}, nil
}

func tapName(i int) string {
	if i == 0 {
		return "tap one"
	}
	return "tap two"
}

func advance(index, capacity int) int {
	index++
	if index >= capacity {
		index = 0
	}
	return index
}
