package watcher

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, exclude []string) (*Watcher, chan []string) {
	t.Helper()

	changes := make(chan []string, 8)
	w, err := New(50*time.Millisecond, exclude, nil, func(paths []string) {
		changes <- paths
	})
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w, changes
}

func waitFor(t *testing.T, changes chan []string, path string) {
	t.Helper()

	timeout := time.After(3 * time.Second)
	for {
		select {
		case paths := <-changes:
			if slices.Contains(paths, path) {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for a change to %s", path)
		}
	}
}

func TestWatchDirectory(t *testing.T) {
	dir := t.TempDir()
	w, changes := newTestWatcher(t, []string{"*.tmp.nx"})
	require.NoError(t, w.Watch([]string{dir}))

	source := filepath.Join(dir, "main.nx")
	require.NoError(t, os.WriteFile(source, []byte("module Main {}"), 0o644))
	waitFor(t, changes, source)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft.tmp.nx"), []byte("x"), 0o644))
	quiet := time.After(300 * time.Millisecond)
	for waiting := true; waiting; {
		select {
		case paths := <-changes:
			assert.Equal(t, []string{source}, paths)
		case <-quiet:
			waiting = false
		}
	}

	subdir := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(subdir, 0o755))
	nested := filepath.Join(subdir, "util.nx")
	require.NoError(t, os.WriteFile(nested, []byte("module util {}"), 0o644))
	waitFor(t, changes, nested)
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.nx")
	require.NoError(t, os.WriteFile(source, []byte("module Main {}"), 0o644))

	w, changes := newTestWatcher(t, nil)
	require.NoError(t, w.Watch([]string{source, filepath.Join(dir, "missing")}))

	require.NoError(t, os.WriteFile(source, []byte("module Main { }"), 0o644))
	waitFor(t, changes, source)
}

func TestDebounceGroupsChanges(t *testing.T) {
	w, changes := newTestWatcher(t, nil)

	w.scheduleChange("b.nx")
	w.scheduleChange("a.nx")
	w.scheduleChange("b.nx")

	select {
	case paths := <-changes:
		assert.Equal(t, []string{"a.nx", "b.nx"}, paths)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced change")
	}
}

func TestIsSource(t *testing.T) {
	w, _ := newTestWatcher(t, []string{"gen_*"})

	assert.True(t, w.isSource("/src/main.nx"))
	assert.False(t, w.isSource("/src/main.go"))
	assert.False(t, w.isSource("/src/gen_table.nx"))
}

func TestInvalidExclude(t *testing.T) {
	_, err := New(time.Millisecond, []string{"[abc"}, nil, func([]string) {})
	assert.Error(t, err)
}
