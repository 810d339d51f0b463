package patch

import (
	"errors"
	"testing"
)

type stubSource struct{}

func (stubSource) Process() float64          { return 0 }
func (stubSource) ProcessBlock(dst []float64) {}
func (stubSource) Reset()                     {}

func dummyFactory(_ Context, _ SourceConfig) (Source, error) {
	return stubSource{}, nil
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up factory", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()

		err := r.Register("drone", dummyFactory)
		if err != nil {
			t.Fatalf("Register returned unexpected error: %v", err)
		}

		if r.Lookup("drone") == nil {
			t.Fatal("Lookup returned nil for registered type")
		}
	})

	t.Run("rejects empty source type", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("", dummyFactory); err == nil {
			t.Fatal("expected error for empty source type")
		}
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("drone", nil); err == nil {
			t.Fatal("expected error for nil factory")
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		_ = r.Register("drone", dummyFactory)

		err := r.Register("drone", dummyFactory)
		if !errors.Is(err, errDuplicateSource) {
			t.Fatalf("expected errDuplicateSource, got %v", err)
		}
	})
}

func TestRegistryLookupUnknown(t *testing.T) {
	t.Parallel()

	if f := NewRegistry().Lookup("nonexistent"); f != nil {
		t.Fatal("expected nil for unregistered type")
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister("drone", dummyFactory)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate MustRegister")
		}
	}()
	r.MustRegister("drone", dummyFactory)
}

func TestDefaultRegistryTypes(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	for _, name := range []string{SourceOscillator, SourcePM, SourceChord, SourceCluster} {
		if r.Lookup(name) == nil {
			t.Fatalf("default registry missing %q", name)
		}
	}
}

func TestCustomSourceBuilds(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	r.MustRegister("silence", dummyFactory)

	cfg := DefaultConfig()
	cfg.Source.Type = "silence"
	v, err := r.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Process(); got != 0 {
		t.Fatalf("Process = %v, want 0", got)
	}
}
