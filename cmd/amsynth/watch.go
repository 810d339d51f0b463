package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/patch"
)

// Watch reloads the patch at path whenever it is written or replaced and
// sends each successfully parsed config to configs. Parse and watcher
// errors go to errs. opts override each loaded config before it is sent.
// Closing done stops the watcher.
func Watch(path string, configs chan<- patch.Config, errs chan<- error, done <-chan struct{}, opts ...core.ProcessorOption) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// editors may save by rename
				if event.Op&(fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if event.Op&fsnotify.Rename != 0 {
					// the old inode is gone; follow the new file
					_ = watcher.Remove(path)
					if err := watcher.Add(path); err != nil {
						if !send(errs, err, done) {
							return
						}
						continue
					}
				}
				cfg, err := patch.LoadFile(path)
				if err != nil {
					if !send(errs, err, done) {
						return
					}
					continue
				}
				if !send(configs, cfg.Apply(opts...), done) {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if !send(errs, err, done) {
					return
				}
			case <-done:
				return
			}
		}
	}()
	return nil
}

// send delivers v unless done closes first.
func send[T any](ch chan<- T, v T, done <-chan struct{}) bool {
	select {
	case ch <- v:
		return true
	case <-done:
		return false
	}
}
