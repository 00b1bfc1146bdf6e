package watch_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatlonely/goflux/internal/watch"
)

func TestHubCreateDefault(t *testing.T) {
	h, err := watch.New(watch.DefaultConfig())
	require.NoError(t, err)
	defer h.Close()
}

func TestHubCreateWithConfig(t *testing.T) {
	h, err := watch.New(watch.Config{WorkerThreads: 4, DebounceDelayMs: 200})
	require.NoError(t, err)
	defer h.Close()
}

type eventSink struct {
	mu     sync.Mutex
	events []watch.Event
}

func (s *eventSink) record(ev watch.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *eventSink) snapshot() []watch.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]watch.Event, len(s.events))
	copy(out, s.events)
	return out
}

func TestHubWatchModify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0o644))

	h, err := watch.New(watch.DefaultConfig())
	require.NoError(t, err)
	defer h.Close()

	sink := &eventSink{}
	require.NoError(t, h.Watch(path, sink.record))

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("modified"), 0o644))
	time.Sleep(500 * time.Millisecond)

	hasModify := false
	for _, ev := range sink.snapshot() {
		if ev.Kind == watch.Modified {
			hasModify = true
		}
	}
	assert.True(t, hasModify, "expected a Modified event")
}

func TestHubWatchDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0o644))

	h, err := watch.New(watch.Config{WorkerThreads: 1, DebounceDelayMs: 100})
	require.NoError(t, err)
	defer h.Close()

	sink := &eventSink{}
	require.NoError(t, h.Watch(path, sink.record))
	time.Sleep(200 * time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	modifyCount := 0
	for _, ev := range sink.snapshot() {
		if ev.Kind == watch.Modified {
			modifyCount++
		}
	}
	assert.Equal(t, 1, modifyCount, "rapid writes within the debounce window should coalesce to one event")
}

func TestHubWatchNonexistentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.txt")

	h, err := watch.New(watch.DefaultConfig())
	require.NoError(t, err)
	defer h.Close()

	err = h.Watch(path, func(watch.Event) {})
	assert.NoError(t, err, "watching a not-yet-existing file should succeed by watching its parent")
}

func TestHubWatchDirectoryRejected(t *testing.T) {
	dir := t.TempDir()

	h, err := watch.New(watch.DefaultConfig())
	require.NoError(t, err)
	defer h.Close()

	err = h.Watch(dir, func(watch.Event) {})
	assert.Error(t, err)
}

func TestHubWatchMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	file1 := filepath.Join(dir, "file1.txt")
	file2 := filepath.Join(dir, "file2.txt")
	file3 := filepath.Join(dir, "file3.txt")
	for _, f := range []string{file1, file2, file3} {
		require.NoError(t, os.WriteFile(f, []byte("content"), 0o644))
	}

	h, err := watch.New(watch.DefaultConfig())
	require.NoError(t, err)
	defer h.Close()

	sink := &eventSink{}
	require.NoError(t, h.Watch(file1, sink.record))
	require.NoError(t, h.Watch(file2, sink.record))
	require.NoError(t, h.Watch(file3, sink.record))

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(file1, []byte("modified1"), 0o644))
	require.NoError(t, os.WriteFile(file2, []byte("modified2"), 0o644))
	require.NoError(t, os.WriteFile(file3, []byte("modified3"), 0o644))
	time.Sleep(1500 * time.Millisecond)

	assert.NotEmpty(t, sink.snapshot())
}

func TestHubCloseStopsWorkers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	h, err := watch.New(watch.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, h.Watch(path, func(watch.Event) {}))

	time.Sleep(100 * time.Millisecond)
	h.Close()
}
