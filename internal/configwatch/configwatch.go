// Package configwatch implements C3: a worker that watches the config
// file for changes and emits a debounced reload event onto the
// pipeline. Grounded on writerslogic-witnessd/internal/watcher/watcher.go's
// debounceLoop/debounceTimer idiom, adapted from a multi-file polling
// loop to a single-path, timer-reset debounce.
package configwatch

import (
	"log"
	"path/filepath"
	"time"

	"github.com/DrStormWalker/comb/internal/pipeline"
	"github.com/fsnotify/fsnotify"
)

// debounce is the quiet period spec.md §4.3 requires before a burst of
// writes to the config file collapses into a single reload event.
const debounce = 1 * time.Second

// Watcher watches a single config file path and emits a
// pipeline.ConfigWatchEvent after debounce seconds of quiet following
// the most recent fsnotify event of any kind touching that path.
type Watcher struct {
	path string
	tx   pipeline.Sender

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
}

// New creates a Watcher for path. fsnotify has no single-file watch
// mode on Linux, so the underlying watch is placed on path's parent
// directory (matching zaolin-framework-powerd/internal/monitor/idle.go's
// watcher.Add(dir) pattern) and events are filtered to path itself.
func New(path string, tx pipeline.Sender) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		path:      path,
		tx:        tx,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
	}, nil
}

// Run drives the watcher's event loop until Stop is called or the
// underlying fsnotify channels close. It is meant to run as its own
// goroutine — one of comb's four long-lived workers.
func (w *Watcher) Run() {
	defer w.fsWatcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
				fire = timer.C
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("comb: configwatch: %v", err)

		case <-fire:
			fire = nil
			w.tx.Send(pipeline.NewConfigWatchEvent(w.path))
		}
	}
}

// Stop ends the watcher's goroutine.
func (w *Watcher) Stop() {
	close(w.done)
}
