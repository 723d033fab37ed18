package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Input watcher: detect changes to watched files, debounce, stop cleanly
// =============================================================================

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "run.pin")
	require.NoError(t, os.WriteFile(input, []byte("Label\tscore\n"), 0644))

	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{input}, func(path string) {
		changed <- path
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(input, []byte("Label\tscore\n1\t2\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file change")
	assert.Equal(t, input, path)
}

func TestWatcher_DetectsRenameOver(t *testing.T) {
	// Editors and pipelines replace files by renaming a temp file over them.
	dir := t.TempDir()
	input := filepath.Join(dir, "run.pin")
	require.NoError(t, os.WriteFile(input, []byte("v1"), 0644))

	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{input}, func(path string) { changed <- path }))
	time.Sleep(50 * time.Millisecond)

	tmp := filepath.Join(dir, "run.pin.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0644))
	require.NoError(t, os.Rename(tmp, input))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback after rename")
	assert.Equal(t, input, path)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "run.pin")
	require.NoError(t, os.WriteFile(input, []byte("v1"), 0644))

	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{input}, func(path string) { changed <- path }))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.pin"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".run.pin.swp"), []byte("x"), 0644))

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "sibling files must not trigger")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "run.pin")
	require.NoError(t, os.WriteFile(input, []byte(""), 0644))

	w, err := NewWatcher(WithDebounce(150 * time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	calls := 0
	require.NoError(t, w.Watch([]string{input}, func(string) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	time.Sleep(50 * time.Millisecond)

	f, err := os.OpenFile(input, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err := f.WriteString("1\t2\n")
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	time.Sleep(500 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "a burst of writes fires once")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch([]string{filepath.Join(t.TempDir(), "nope", "run.pin")}, func(string) {})
	assert.Error(t, err)
}

func TestWatcher_StopCleanup(t *testing.T) {
	// After Stop(), no more callbacks fire.
	dir := t.TempDir()
	input := filepath.Join(dir, "run.pin")
	require.NoError(t, os.WriteFile(input, []byte("v1"), 0644))

	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	err = w.Watch([]string{input}, func(path string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	err = w.Stop()
	require.NoError(t, err)

	mu.Lock()
	countAfterStop := callCount
	mu.Unlock()

	// Write file after stop: should NOT trigger callback
	os.WriteFile(input, []byte("v2"), 0644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	countAfterWrite := callCount
	mu.Unlock()

	assert.Equal(t, countAfterStop, countAfterWrite, "callbacks fired after Stop()")

	// Double-stop should be safe
	err = w.Stop()
	assert.NoError(t, err)
}
