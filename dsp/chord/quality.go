package chord

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Quality selects the third of a triad.
type Quality uint8

const (
	// Major uses a third ratio of 1.26.
	Major Quality = iota
	// Minor uses a third ratio of 1.189.
	Minor
)

const (
	majorThirdRatio = 1.26
	minorThirdRatio = 1.189
	fifthRatio      = 1.5
)

// Valid reports whether q is Major or Minor.
func (q Quality) Valid() bool {
	return q == Major || q == Minor
}

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return fmt.Sprintf("Quality(%d)", uint8(q))
	}
}

// ThirdRatio returns the frequency ratio of the third above the root.
func (q Quality) ThirdRatio() float64 {
	if q == Minor {
		return minorThirdRatio
	}
	return majorThirdRatio
}

// ParseQuality resolves "major" or "minor", case-insensitively.
func ParseQuality(name string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	}
	return 0, fmt.Errorf("unknown chord quality %q: %w", name, core.ErrInvalidParameter)
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, validateQuality(q)
	}
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

func validateQuality(q Quality) error {
	if !q.Valid() {
		return core.NewConfigurationError("chord", "quality", float64(q), core.ErrInvalidParameter)
	}
	return nil
}
