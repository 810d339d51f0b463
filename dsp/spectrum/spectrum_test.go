package spectrum

import (
	"math"
	"testing"
)

func sine(freq, sampleRate, amp float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestAnalyzeValidation(t *testing.T) {
	if _, err := Analyze([]float64{1}, 48000); err == nil {
		t.Fatal("expected error for single sample")
	}
	if _, err := Analyze(make([]float64, 16), 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestAnalyzeSizes(t *testing.T) {
	s, err := Analyze(make([]float64, 1000), 48000)
	if err != nil {
		t.Fatal(err)
	}
	if s.FFTSize() != 1024 {
		t.Fatalf("FFTSize = %d, want 1024", s.FFTSize())
	}
	if s.Len() != 513 {
		t.Fatalf("Len = %d, want 513", s.Len())
	}
	if got, want := s.BinHz(), 48000.0/1024; got != want {
		t.Fatalf("BinHz = %v, want %v", got, want)
	}
	if peaks := s.Peaks(3); len(peaks) != 0 {
		t.Fatalf("silence produced peaks: %+v", peaks)
	}
}

func TestPeakOfSine(t *testing.T) {
	const sr = 48000.0
	s, err := Analyze(sine(1000, sr, 0.5, 9600), sr)
	if err != nil {
		t.Fatal(err)
	}

	peaks := s.Peaks(1)
	if len(peaks) != 1 {
		t.Fatalf("got %d peaks, want 1", len(peaks))
	}
	if math.Abs(peaks[0].Frequency-1000) > 1 {
		t.Fatalf("peak frequency = %v, want ~1000", peaks[0].Frequency)
	}
	if math.Abs(peaks[0].Magnitude-0.5) > 0.05 {
		t.Fatalf("peak magnitude = %v, want ~0.5", peaks[0].Magnitude)
	}
	if math.Abs(peaks[0].LevelDB-LevelDB(0.5)) > 1 {
		t.Fatalf("peak level = %v dB, want ~%v", peaks[0].LevelDB, LevelDB(0.5))
	}
}

func TestPeaksOrderedByMagnitude(t *testing.T) {
	const sr = 48000.0
	a := sine(500, sr, 1, 16384)
	b := sine(3000, sr, 0.25, 16384)
	for i := range a {
		a[i] += b[i]
	}

	s, err := Analyze(a, sr)
	if err != nil {
		t.Fatal(err)
	}
	peaks := s.Peaks(2)
	if len(peaks) != 2 {
		t.Fatalf("got %d peaks, want 2", len(peaks))
	}
	if math.Abs(peaks[0].Frequency-500) > 2 || math.Abs(peaks[1].Frequency-3000) > 2 {
		t.Fatalf("unexpected peaks %+v", peaks)
	}
}

func TestLevelDB(t *testing.T) {
	if !math.IsInf(LevelDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if got := LevelDB(1); math.Abs(got) > 1e-3 {
		t.Fatalf("LevelDB(1) = %v, want 0", got)
	}
	if got := LevelDB(0.1); math.Abs(got+20) > 0.05 {
		t.Fatalf("LevelDB(0.1) = %v, want -20", got)
	}
}

func TestMagnitudesIsCopy(t *testing.T) {
	s, err := Analyze(sine(440, 8000, 1, 256), 8000)
	if err != nil {
		t.Fatal(err)
	}
	m := s.Magnitudes()
	m[0] = 123
	if s.Magnitudes()[0] == 123 {
		t.Fatal("Magnitudes must return a copy")
	}
}
