package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReportsLevelFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	level := filepath.Join(dir, "room.yaml")
	require.NoError(t, os.WriteFile(level, []byte("name: room\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, level, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for room.yaml")
	}

	// create and write of the same file collapse into one event
	time.Sleep(3 * debounce)
	assert.Empty(t, w.Drain())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, open := <-w.Events
	assert.False(t, open)
}

func TestWatcherMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
