package browse

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsCreate(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(dir))
	assert.Equal(t, dir, w.Dir())

	type result struct {
		dir string
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := w.Next()
		done <- result{d, err}
	}()

	writeFile(t, filepath.Join(dir, "new.py"), "print(1)\n")

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, dir, r.dir)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for create event")
	}
}

func TestWatcher_SwitchDir(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(a))
	require.NoError(t, w.Watch(b))
	assert.Equal(t, b, w.Dir())

	err = w.Watch(filepath.Join(a, "missing"))
	require.Error(t, err)
	assert.Equal(t, "", w.Dir())
}

func TestWatcher_CloseUnblocksNext(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Watch(t.TempDir()))

	done := make(chan error, 1)
	go func() {
		_, err := w.Next()
		done <- err
	}()
	require.NoError(t, w.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrWatcherClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("Next did not return after Close")
	}
}
