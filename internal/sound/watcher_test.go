package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	got := make(chan any, 1)
	go func() { got <- w.Listen()() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.wav"), []byte("x"), 0600))

	select {
	case msg := <-got:
		require.Equal(t, ChangedMsg{Dir: dir}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ChangedMsg")
	}
}

func TestWatcher_CloseUnblocksListen(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 20*time.Millisecond)
	require.NoError(t, err)

	got := make(chan any, 1)
	go func() { got <- w.Listen()() }()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "Close is idempotent")

	select {
	case msg := <-got:
		require.Nil(t, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after Close")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), time.Millisecond)
	require.Error(t, err)
}
