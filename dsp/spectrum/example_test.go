package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/spectrum"
)

func ExampleAnalyze() {
	const sr = 48000.0
	samples := make([]float64, 4800)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 2000 * float64(i) / sr)
	}

	s, err := spectrum.Analyze(samples, sr)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	peak := s.Peaks(1)[0]
	fmt.Printf("%.0f Hz\n", math.Round(peak.Frequency/10)*10)

	// Output:
	// 2000 Hz
}
