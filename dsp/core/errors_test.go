package core

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidateSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		err := ValidateSampleRate("oscillator", sr)
		if !errors.Is(err, ErrInvalidSampleRate) {
			t.Fatalf("ValidateSampleRate(%v) = %v, want ErrInvalidSampleRate", sr, err)
		}

		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("ValidateSampleRate(%v) did not return *ConfigurationError", sr)
		}
		if cfgErr.Component != "oscillator" {
			t.Fatalf("component = %q, want oscillator", cfgErr.Component)
		}
	}

	if err := ValidateSampleRate("oscillator", 48000); err != nil {
		t.Fatalf("ValidateSampleRate(48000) = %v", err)
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive("gate", "piece length", 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("got %v, want ErrInvalidParameter", err)
	}
	if err := ValidatePositive("gate", "piece length", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := NewConfigurationError("chorus", "tap one", 3, ErrDelayExceedsCapacity)
	msg := err.Error()
	if !strings.Contains(msg, "chorus tap one") || !strings.Contains(msg, "delay exceeds capacity") {
		t.Fatalf("unexpected message %q", msg)
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Fatal("error must only match its own sentinel")
	}
}
