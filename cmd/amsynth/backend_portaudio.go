//go:build portaudio && !headless

package main

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type portaudioBackend struct {
	stream *portaudio.Stream
}

func openBackend(sampleRate float64, e *engine) (backend, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("can't init portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, portaudio.FramesPerBufferUnspecified, e.Fill)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("can't open default stream: %w", err)
	}
	return &portaudioBackend{stream: stream}, nil
}

func (b *portaudioBackend) Start() error {
	return b.stream.Start()
}

func (b *portaudioBackend) Close() error {
	err := b.stream.Close()
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
