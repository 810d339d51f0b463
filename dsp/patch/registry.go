package patch

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/chord"
)

// Source is a generator a Voice can play.
type Source interface {
	Process() float64
	ProcessBlock(dst []float64)
	Reset()
}

// Context carries what source factories need besides their own config.
type Context struct {
	SampleRate float64
	Rand       chord.RandomSource
}

// Factory builds one Source from its config.
type Factory func(ctx Context, cfg SourceConfig) (Source, error)

// Registry maps source type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var (
	errDuplicateSource = errors.New("duplicate source type")

	// ErrUnknownSource is returned by Build for an unregistered type.
	ErrUnknownSource = errors.New("unknown source type")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given source type.
func (r *Registry) Register(sourceType string, factory Factory) error {
	if sourceType == "" {
		return errors.New("empty source type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[sourceType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateSource, sourceType)
	}

	r.factories[sourceType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(sourceType string, factory Factory) {
	err := r.Register(sourceType, factory)
	if err != nil {
		panic("patch registry: " + err.Error())
	}
}

// Lookup returns the factory for the given source type, or nil.
func (r *Registry) Lookup(sourceType string) Factory {
	return r.factories[sourceType]
}
