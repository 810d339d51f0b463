// Command amsynth plays or analyzes a synthesis patch.
//
// Usage:
//
//	amsynth [flags]
//
// Without -config it plays a built-in demo: a two-octave minor chord,
// gated inside a four-second cycle and thickened by the double comb.
//
// Examples:
//
//	amsynth
//	amsynth -config cluster.json -watch
//	amsynth -config chord.json -analyze -seconds 4 -peaks 6
//	amsynth -rate 44100 -seconds 10
//
// The default build plays through oto. Build with -tags portaudio to use
// PortAudio instead, or -tags headless to render without an audio device.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/patch"
)

const defaultPatch = `{
  "sampleRate": 48000,
  "blockSize": 512,
  "seed": 1,
  "gainDB": -9,
  "source": {
    "type": "chord",
    "waveform": "sine",
    "frequency": 220,
    "quality": "minor",
    "octaves": 2
  },
  "gate": {"pieceLength": 4, "start": 0.25, "end": 3.75},
  "chorus": {
    "maxDelay": 0.05,
    "tapOne": 0.011,
    "tapTwo": 0.017,
    "feedbackOne": 0.5,
    "feedbackTwo": 0.5
  }
}`

func main() {
	configFile := flag.String("config", "", "path to a JSON patch; the built-in demo is used if empty")
	seconds := flag.Float64("seconds", 0, "stop after this many seconds (0 plays until interrupted; -analyze defaults to 2)")
	analyze := flag.Bool("analyze", false, "render offline and print the strongest spectral peaks")
	peaks := flag.Int("peaks", 8, "number of peaks printed by -analyze")
	watch := flag.Bool("watch", false, "reload the patch whenever -config changes")
	rate := flag.Float64("rate", 0, "override the patch sample rate in Hz")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: amsynth [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays or analyzes a synthesis patch.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadPatch(*configFile)
	if err != nil {
		log.Fatalf("can't read patch: %v", err)
	}
	opts := []core.ProcessorOption{core.WithSampleRate(*rate)}
	cfg = cfg.Apply(opts...)

	if *analyze {
		dur := *seconds
		if dur <= 0 {
			dur = 2
		}
		if err := analyzePatch(os.Stdout, cfg, dur, *peaks); err != nil {
			log.Fatalf("analyze: %v", err)
		}
		return
	}

	if *watch && *configFile == "" {
		log.Fatal("-watch needs -config")
	}

	if err := play(cfg, *configFile, *watch, *seconds, opts...); err != nil {
		log.Fatal(err)
	}
}

func loadPatch(path string) (patch.Config, error) {
	if path == "" {
		return patch.Load(strings.NewReader(defaultPatch))
	}
	return patch.LoadFile(path)
}

// play streams cfg until interrupted or seconds elapse. opts are applied
// to every reloaded patch as they were to cfg.
func play(cfg patch.Config, configFile string, watch bool, seconds float64, opts ...core.ProcessorOption) error {
	voice, err := patch.Build(cfg)
	if err != nil {
		return fmt.Errorf("can't build patch: %w", err)
	}

	e := &engine{}
	e.Swap(voice)

	out, err := openBackend(cfg.SampleRate, e)
	if err != nil {
		return fmt.Errorf("can't open audio output: %w", err)
	}
	defer out.Close()

	if err := out.Start(); err != nil {
		return fmt.Errorf("can't start audio output: %w", err)
	}

	done := make(chan struct{})
	defer close(done)

	var configs chan patch.Config
	var watchErrs chan error
	if watch {
		configs = make(chan patch.Config)
		watchErrs = make(chan error)
		if err := Watch(configFile, configs, watchErrs, done, opts...); err != nil {
			return fmt.Errorf("can't start watcher: %w", err)
		}
	}

	if m := newMeter(os.Stderr, e); m != nil {
		go m.run(done)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var timeout <-chan time.Time
	if seconds > 0 {
		timeout = time.After(time.Duration(seconds * float64(time.Second)))
	}

	for {
		select {
		case next := <-configs:
			if err := reload(e, next, cfg.SampleRate); err != nil {
				log.Printf("patch rejected: %v", err)
				continue
			}
			log.Printf("patch reloaded: %s source", next.Source.Type)
		case err := <-watchErrs:
			log.Printf("watch: %v", err)
		case <-interrupt:
			return nil
		case <-timeout:
			return nil
		}
	}
}

var errRateChange = errors.New("sample rate can't change while playing")

// reload builds next off the audio thread and publishes it.
func reload(e *engine, next patch.Config, runningRate float64) error {
	if !core.NearlyEqual(next.SampleRate, runningRate, 1e-9) {
		return fmt.Errorf("%w: %g -> %g", errRateChange, runningRate, next.SampleRate)
	}
	v, err := patch.Build(next)
	if err != nil {
		return err
	}
	e.Swap(v)
	return nil
}
