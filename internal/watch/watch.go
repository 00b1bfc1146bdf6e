// Package watch implements the file-change watch hub: one OS-level watcher
// goroutine owns every watched path, debounces bursts of events per file,
// and dispatches the settled event to its handler on a bounded worker pool.
//
// Grounded line for line on _examples/original_source/src/fs/watcher.rs: the
// single event-loop goroutine, the pending-event debounce cache keyed by
// canonical path, the periodic-flush-over-ticker shape, and the
// canonicalize-parent-when-file-missing rule for Watch. The OS backend is
// github.com/fsnotify/fsnotify in place of the original's notify crate; the
// Rayon thread pool becomes a channel-fed goroutine pool.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hatlonely/goflux/internal/component"
)

// EventKind identifies which filesystem change occurred.
type EventKind int

const (
	Created EventKind = iota
	Modified
	Deleted
	Error
)

// Event is delivered to a path's handler once its debounce window settles.
type Event struct {
	Kind EventKind
	Path string
	Err  error
}

// Handler processes a settled Event. It runs on one of the hub's worker
// goroutines, never on the event-loop goroutine itself.
type Handler func(Event)

// Config mirrors the original's FileWatcherConfig: a fixed worker pool size
// and a debounce window applied per watched path.
type Config struct {
	WorkerThreads   int
	DebounceDelayMs int64
}

// DefaultConfig matches the original's #[serde(default = ...)] values.
func DefaultConfig() Config {
	return Config{WorkerThreads: 1, DebounceDelayMs: 100}
}

func (c Config) debounceDelay() time.Duration {
	return time.Duration(c.DebounceDelayMs) * time.Millisecond
}

type watchRequest struct {
	path    string
	handler Handler
}

type pendingEvent struct {
	event Event
	at    time.Time
}

// Hub owns one fsnotify watcher and one event-loop goroutine, and dispatches
// settled events to a bounded pool of worker goroutines.
type Hub struct {
	requests chan watchRequest
	jobs     chan func()
	wg       sync.WaitGroup
	closed   chan struct{}
	once     sync.Once
}

// New starts the event loop and worker pool described by cfg. Callers must
// call Close to release the underlying OS watcher and worker goroutines.
func New(cfg Config) (*Hub, error) {
	if cfg.WorkerThreads <= 0 {
		cfg.WorkerThreads = 1
	}
	if cfg.DebounceDelayMs <= 0 {
		cfg.DebounceDelayMs = 100
	}

	osWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", component.ErrWatchError, err)
	}

	h := &Hub{
		requests: make(chan watchRequest),
		jobs:     make(chan func(), 256),
		closed:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerThreads; i++ {
		h.wg.Add(1)
		go h.worker()
	}

	go h.loop(osWatcher, cfg.debounceDelay())

	return h, nil
}

func (h *Hub) worker() {
	defer h.wg.Done()
	for job := range h.jobs {
		job()
	}
}

// loop is the single goroutine that owns the OS watcher, the handler table,
// and the pending-event debounce cache. Nothing else may touch osWatcher.
func (h *Hub) loop(osWatcher *fsnotify.Watcher, debounceDelay time.Duration) {
	defer osWatcher.Close()

	handlers := map[string]Handler{}
	pending := map[string]pendingEvent{}
	ticker := time.NewTicker(debounceDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case req, ok := <-h.requests:
			if !ok {
				close(h.jobs)
				return
			}
			handlers[req.path] = req.handler
			watchTarget := req.path
			if _, err := os.Stat(req.path); os.IsNotExist(err) {
				watchTarget = filepath.Dir(req.path)
			}
			if err := osWatcher.Add(watchTarget); err != nil {
				h.dispatchTo(req.handler, Event{Kind: Error, Path: req.path, Err: err})
			}

		case ev, ok := <-osWatcher.Events:
			if !ok {
				close(h.jobs)
				return
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil {
				path = ev.Name
			}

			var kind EventKind
			switch {
			case ev.Op&fsnotify.Create != 0:
				kind = Created
			case ev.Op&(fsnotify.Write|fsnotify.Chmod) != 0:
				kind = Modified
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				kind = Deleted
			default:
				continue
			}

			// Overwrite-on-insert: whichever event arrived last for this
			// path wins the debounce window, matching pending_events.insert
			// in the original (no special-casing of kind transitions).
			pending[path] = pendingEvent{event: Event{Kind: kind, Path: path}, at: time.Now()}

		case err, ok := <-osWatcher.Errors:
			if !ok {
				close(h.jobs)
				return
			}
			for path, handler := range handlers {
				h.dispatchTo(handler, Event{Kind: Error, Path: path, Err: err})
			}

		case <-ticker.C:
			now := time.Now()
			for path, pe := range pending {
				if now.Sub(pe.at) < debounceDelay {
					continue
				}
				delete(pending, path)
				if handler, ok := handlers[path]; ok {
					h.dispatchTo(handler, pe.event)
				}
			}

		case <-h.closed:
			close(h.jobs)
			return
		}
	}
}

func (h *Hub) dispatchTo(handler Handler, ev Event) {
	h.jobs <- func() {
		handler(ev)
	}
}

// Watch registers handler to receive settled events for path. If path does
// not yet exist, its parent directory is watched instead (the parent must
// exist); handler still only fires for path itself once events on it begin
// to arrive (e.g. once the file is created).
func (h *Hub) Watch(path string, handler Handler) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("%w: path is a directory: %s", component.ErrWatchError, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %v", component.ErrWatchError, err)
	}

	resolved := abs
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		parent := filepath.Dir(abs)
		if _, perr := os.Stat(parent); os.IsNotExist(perr) {
			return fmt.Errorf("%w: parent directory does not exist: %s", component.ErrWatchError, parent)
		}
		if realParent, rerr := filepath.EvalSymlinks(parent); rerr == nil {
			resolved = filepath.Join(realParent, filepath.Base(abs))
		}
	} else if real, rerr := filepath.EvalSymlinks(abs); rerr == nil {
		resolved = real
	}

	select {
	case h.requests <- watchRequest{path: resolved, handler: handler}:
		return nil
	case <-h.closed:
		return fmt.Errorf("%w: hub closed", component.ErrWatchError)
	}
}

// Close stops the event loop and worker pool, releasing the OS watcher.
func (h *Hub) Close() {
	h.once.Do(func() {
		close(h.closed)
	})
	h.wg.Wait()
}
