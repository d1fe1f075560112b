// Package devicewatch implements C5: a worker that watches /dev/input
// for evdev nodes appearing and disappearing and emits a snapshot-diff
// onto the pipeline. Grounded on
// zaolin-framework-powerd/internal/monitor/idle.go's handleHotplug
// (watch /dev/input, react to fsnotify.Create), generalized to also
// react to fsnotify.Remove and to diff a held snapshot rather than
// forward raw fsnotify events, per spec.md §4.5.
package devicewatch

import (
	"log"
	"path/filepath"

	"github.com/DrStormWalker/comb/internal/pipeline"
	"github.com/fsnotify/fsnotify"
)

// devInputDir is a var rather than a const so tests can point the
// watcher at a scratch directory instead of the real /dev/input.
var devInputDir = "/dev/input"

// Watcher watches devInputDir non-recursively and emits a
// pipeline.DeviceWatchEvent whenever the set of /dev/input/event*
// nodes changes.
type Watcher struct {
	tx   pipeline.Sender
	done chan struct{}

	fsWatcher *fsnotify.Watcher
	snapshot  map[string]struct{}
}

// New creates a Watcher, taking an initial snapshot of devInputDir's
// event* nodes before any fsnotify event can race it.
func New(tx pipeline.Sender) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsWatcher.Add(devInputDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	snapshot, err := scan()
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		tx:        tx,
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
		snapshot:  snapshot,
	}, nil
}

// scan lists the current event* nodes under devInputDir.
func scan() (map[string]struct{}, error) {
	matches, err := filepath.Glob(filepath.Join(devInputDir, "event*"))
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		set[m] = struct{}{}
	}

	return set, nil
}

// Run drives the watcher's event loop until Stop is called or the
// underlying fsnotify channels close. Meant to run as its own
// goroutine.
func (w *Watcher) Run() {
	defer w.fsWatcher.Close()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			base := filepath.Base(event.Name)
			if match, _ := filepath.Match("event*", base); !match {
				continue
			}

			w.diff()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("comb: devicewatch: %v", err)
		}
	}
}

// diff recomputes the current snapshot, computes added/removed paths
// against the held snapshot, replaces the snapshot atomically (from
// the single goroutine's point of view — there is no concurrent
// writer), and emits a DeviceWatchEvent when anything changed.
func (w *Watcher) diff() {
	current, err := scan()
	if err != nil {
		log.Printf("comb: devicewatch: %v", err)
		return
	}

	var added, removed []string

	for path := range current {
		if _, ok := w.snapshot[path]; !ok {
			added = append(added, path)
		}
	}

	for path := range w.snapshot {
		if _, ok := current[path]; !ok {
			removed = append(removed, path)
		}
	}

	w.snapshot = current

	if len(added) == 0 && len(removed) == 0 {
		return
	}

	w.tx.Send(pipeline.NewDeviceWatchEvent(added, removed))
}

// Stop ends the watcher's goroutine.
func (w *Watcher) Stop() {
	close(w.done)
}
