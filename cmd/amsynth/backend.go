package main

// backend drives engine.Fill from an audio device or a timer.
type backend interface {
	Start() error
	Close() error
}
