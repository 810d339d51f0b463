package osc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
)

func TestParseWaveform(t *testing.T) {
	for w := Phasor; w < waveformCount; w++ {
		got, err := ParseWaveform(w.String())
		if err != nil {
			t.Fatalf("ParseWaveform(%q) error = %v", w.String(), err)
		}
		if got != w {
			t.Fatalf("ParseWaveform(%q) = %v, want %v", w.String(), got, w)
		}
	}

	if got, err := ParseWaveform("  SINE "); err != nil || got != Sine {
		t.Fatalf("ParseWaveform(SINE) = %v, %v", got, err)
	}

	if _, err := ParseWaveform("noise"); !errors.Is(err, core.ErrInvalidWaveform) {
		t.Fatalf("ParseWaveform(noise) = %v, want ErrInvalidWaveform", err)
	}
}

func TestWaveformString(t *testing.T) {
	if Square.String() != "square" {
		t.Fatalf("Square.String() = %q", Square.String())
	}
	if Waveform(9).Valid() {
		t.Fatal("Waveform(9) must be invalid")
	}
	if Waveform(9).String() != "Waveform(9)" {
		t.Fatalf("Waveform(9).String() = %q", Waveform(9).String())
	}
}

func TestWaveformJSON(t *testing.T) {
	var v struct {
		Wave Waveform `json:"wave"`
	}
	if err := json.Unmarshal([]byte(`{"wave":"triangle"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Wave != Triangle {
		t.Fatalf("decoded %v, want triangle", v.Wave)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"wave":"triangle"}` {
		t.Fatalf("encoded %s", out)
	}

	if err := json.Unmarshal([]byte(`{"wave":"pulse"}`), &v); err == nil {
		t.Fatal("expected error for unknown waveform")
	}
}
