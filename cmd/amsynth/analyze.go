package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-synth/dsp/patch"
	"github.com/cwbudde/algo-synth/dsp/spectrum"
	timestats "github.com/cwbudde/algo-synth/stats/time"
)

// analyzePatch renders seconds of cfg offline and prints its levels and
// strongest spectral peaks.
func analyzePatch(w io.Writer, cfg patch.Config, seconds float64, peaks int) error {
	v, err := patch.Build(cfg)
	if err != nil {
		return err
	}

	n := int(math.Round(seconds * cfg.SampleRate))
	if n < 2 {
		return fmt.Errorf("duration too short: %g s", seconds)
	}
	buf := make([]float64, n)
	v.ProcessBlock(buf)

	s, err := spectrum.Analyze(buf, cfg.SampleRate)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "source:     %s\n", cfg.Source.Type)
	fmt.Fprintf(w, "rendered:   %.2f s at %g Hz (FFT %d, %.3f Hz/bin)\n", seconds, cfg.SampleRate, s.FFTSize(), s.BinHz())
	st := timestats.Calculate(buf)
	fmt.Fprintf(w, "peak level: %.1f dBFS\n", st.Peak_dB)
	fmt.Fprintf(w, "rms level:  %.1f dBFS (crest %.1f dB, dc %.4f)\n", st.RMS_dB, st.CrestFactor_dB, st.DC)
	fmt.Fprintf(w, "zc pitch:   %.1f Hz\n\n", timestats.ZeroCrossingFrequency(buf, cfg.SampleRate))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFrequency\tMagnitude\tLevel")
	for i, p := range s.Peaks(peaks) {
		fmt.Fprintf(tw, "%d\t%.1f Hz\t%.4f\t%.1f dB\n", i+1, p.Frequency, p.Magnitude, p.LevelDB)
	}
	return tw.Flush()
}
