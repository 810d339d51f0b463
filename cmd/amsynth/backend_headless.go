//go:build headless

package main

import (
	"sync"
	"time"
)

const headlessBlock = 512

// headlessBackend renders blocks at real-time pace and discards them.
type headlessBackend struct {
	engine *engine
	period time.Duration
	stop   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func openBackend(sampleRate float64, e *engine) (backend, error) {
	return &headlessBackend{
		engine: e,
		period: time.Duration(float64(headlessBlock) / sampleRate * float64(time.Second)),
		stop:   make(chan struct{}),
	}, nil
}

func (b *headlessBackend) Start() error {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		buf := make([]float32, headlessBlock)
		ticker := time.NewTicker(b.period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.engine.Fill(buf)
			case <-b.stop:
				return
			}
		}
	}()
	return nil
}

func (b *headlessBackend) Close() error {
	b.once.Do(func() { close(b.stop) })
	b.wg.Wait()
	return nil
}
