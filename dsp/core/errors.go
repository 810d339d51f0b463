package core

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ConfigurationError.
var (
	ErrInvalidSampleRate    = errors.New("invalid sample rate")
	ErrInvalidWaveform      = errors.New("invalid waveform kind")
	ErrDelayExceedsCapacity = errors.New("delay exceeds capacity")
	ErrNotConfigured        = errors.New("not configured")
	ErrInvalidParameter     = errors.New("invalid parameter")
)

// ConfigurationError reports a rejected configuration call. Component names
// the processor ("oscillator", "chorus", ...), Param the offending field.
type ConfigurationError struct {
	Component string
	Param     string
	Value     float64
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s: %v (got %g)", e.Component, e.Param, e.Err, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError builds a *ConfigurationError wrapping cause.
func NewConfigurationError(component, param string, value float64, cause error) error {
	return &ConfigurationError{
		Component: component,
		Param:     param,
		Value:     value,
		Err:       cause,
	}
}

// ValidateSampleRate rejects zero, negative and non-finite sample rates.
func ValidateSampleRate(component string, sampleRate float64) error {
	if sampleRate <= 0 || !IsFinite(sampleRate) {
		return NewConfigurationError(component, "sample rate", sampleRate, ErrInvalidSampleRate)
	}
	return nil
}

// ValidatePositive rejects values that are not finite and > 0.
func ValidatePositive(component, param string, value float64) error {
	if value <= 0 || !IsFinite(value) {
		return NewConfigurationError(component, param, value, ErrInvalidParameter)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(component, param string, value float64) error {
	if !IsFinite(value) {
		return NewConfigurationError(component, param, value, ErrInvalidParameter)
	}
	return nil
}
