package main

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/patch"
)

func TestDefaultPatchBuilds(t *testing.T) {
	cfg, err := loadPatch("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gate == nil || cfg.Chorus == nil {
		t.Fatal("demo patch should enable gate and chorus")
	}
	if _, err := patch.Build(cfg); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzePatch(t *testing.T) {
	cfg, err := patch.Load(strings.NewReader(`{
		"gainDB": -6,
		"source": {"type": "oscillator", "waveform": "sine", "frequency": 1000}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := analyzePatch(&out, cfg, 1, 1); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	if !strings.Contains(text, "peak level: -6.0 dBFS") {
		t.Fatalf("missing peak level in:\n%s", text)
	}
	if !strings.Contains(text, "source:     oscillator") {
		t.Fatalf("missing source in:\n%s", text)
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "1 ") || !strings.Contains(last, " Hz") {
		t.Fatalf("unexpected peak row %q", last)
	}
}

func TestAnalyzeRejectsShortDuration(t *testing.T) {
	cfg := patch.DefaultConfig()
	if err := analyzePatch(&bytes.Buffer{}, cfg, 0, 1); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestEngineSwap(t *testing.T) {
	var e engine
	buf := []float32{1, 2, 3}
	e.Fill(buf)
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d = %v, want silence without a voice", i, s)
		}
	}
	if e.Peak() != 0 {
		t.Fatal("Peak without a voice must be 0")
	}

	cfg := patch.DefaultConfig()
	cfg.GainDB = 0
	v, err := patch.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Swap(v)

	out := make([]float32, 1024)
	e.Fill(out)
	if p := e.Peak(); p < 0.9 || p > 1 {
		t.Fatalf("Peak = %v after rendering a full-scale sine", p)
	}
}

func TestReloadKeepsSampleRate(t *testing.T) {
	var e engine
	cfg := patch.DefaultConfig()

	next := cfg
	next.SampleRate = 22050
	if err := reload(&e, next, cfg.SampleRate); !errors.Is(err, errRateChange) {
		t.Fatalf("expected errRateChange, got %v", err)
	}
	if e.voice.Load() != nil {
		t.Fatal("rejected reload must not publish a voice")
	}

	// float noise from a converted rate is not a rate change
	next = cfg
	next.SampleRate = cfg.SampleRate * (1 + 1e-12)
	if err := reload(&e, next, cfg.SampleRate); err != nil {
		t.Fatalf("near-equal rate rejected: %v", err)
	}

	next = cfg
	next.Source.Type = patch.SourceChord
	if err := reload(&e, next, cfg.SampleRate); err != nil {
		t.Fatal(err)
	}
	if got := e.voice.Load().Config().Source.Type; got != patch.SourceChord {
		t.Fatalf("published source %q", got)
	}
}

func TestMeterLine(t *testing.T) {
	m := &meter{width: 10, holdDB: math.Inf(-1)}

	if got := m.line(math.Inf(-1)); got != "[          ]  -inf dBFS" {
		t.Fatalf("silence line %q", got)
	}
	if got := m.line(-30); got != "[#####     ] -30.0 dBFS" {
		t.Fatalf("-30 dB line %q", got)
	}
	// the hold falls by 1 dB per update
	if got := m.line(-60); got != "[          ] -31.0 dBFS" {
		t.Fatalf("decay line %q", got)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patch.json")
	if err := os.WriteFile(path, []byte(`{"gainDB": -6}`), 0o644); err != nil {
		t.Fatal(err)
	}

	configs := make(chan patch.Config)
	errs := make(chan error)
	done := make(chan struct{})
	defer close(done)

	if err := Watch(path, configs, errs, done); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"gainDB": -3}`), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-configs:
			if cfg.GainDB == -3 {
				return
			}
		case <-errs:
			// a write can be observed before it completes
		case <-timeout:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatchKeepsRateOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patch.json")
	if err := os.WriteFile(path, []byte(`{"sampleRate": 48000}`), 0o644); err != nil {
		t.Fatal(err)
	}

	const running = 44100
	configs := make(chan patch.Config)
	errs := make(chan error)
	done := make(chan struct{})
	defer close(done)

	if err := Watch(path, configs, errs, done, core.WithSampleRate(running)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"sampleRate": 48000, "gainDB": -3}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var e engine
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-configs:
			if cfg.GainDB != -3 {
				continue
			}
			if cfg.SampleRate != running {
				t.Fatalf("reloaded sample rate %v, want %v", cfg.SampleRate, running)
			}
			if err := reload(&e, cfg, running); err != nil {
				t.Fatalf("reload with overridden rate: %v", err)
			}
			if got := e.voice.Load().Config().SampleRate; got != running {
				t.Fatalf("published voice at %v Hz", got)
			}
			return
		case <-errs:
		case <-timeout:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatchMissingFile(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	err := Watch(filepath.Join(t.TempDir(), "missing.json"), make(chan patch.Config), make(chan error), done)
	if err == nil {
		t.Fatal("expected error watching a missing file")
	}
}
