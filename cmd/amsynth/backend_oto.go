//go:build !headless && !portaudio

package main

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const otoBufferDuration = 50 * time.Millisecond

type otoBackend struct {
	ctx       *oto.Context
	player    *oto.Player
	engine    *engine
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex
}

func openBackend(sampleRate float64, e *engine) (backend, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(math.Round(sampleRate)),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBufferDuration,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &otoBackend{
		ctx:       ctx,
		engine:    e,
		sampleBuf: make([]float32, 4096),
	}
	b.player = ctx.NewPlayer(b)
	return b, nil
}

// Read implements io.Reader for the oto player.
func (b *otoBackend) Read(p []byte) (int, error) {
	numSamples := len(p) / 4
	b.sampleBuf = core.EnsureLen(b.sampleBuf, numSamples)
	samples := b.sampleBuf
	b.engine.Fill(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	return numSamples * 4, nil
}

func (b *otoBackend) Start() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if !b.started {
		b.player.Play()
		b.started = true
	}
	return b.player.Err()
}

func (b *otoBackend) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	b.started = false
	return err
}
