package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLog_NoOpBeforeInit(t *testing.T) {
	require.NotPanics(t, func() {
		Debug(CatGame, "ignored", "k", 1)
		ErrorErr(CatDB, "ignored", errors.New("boom"))
	})
}

func TestLog_WritesCategoryAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.DebugLevel)
	t.Cleanup(func() { _ = Close() })

	Info(CatSound, "loaded sounds", "count", 12, "dir", "sounds")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "sound", line["cat"])
	require.Equal(t, "loaded sounds", line["message"])
	require.Equal(t, float64(12), line["count"])
	require.Equal(t, "sounds", line["dir"])
}

func TestLog_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.WarnLevel)
	t.Cleanup(func() { _ = Close() })

	Debug(CatGame, "hidden")
	require.Zero(t, buf.Len())

	ErrorErr(CatGame, "visible", errors.New("boom"))
	require.Contains(t, buf.String(), "boom")
}

func TestLog_OddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.DebugLevel)
	t.Cleanup(func() { _ = Close() })

	Warn(CatUI, "odd", "lonely")
	require.Contains(t, buf.String(), "!BADKEY")
}

func TestInit_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	closeFn, err := Init(path, zerolog.InfoLevel)
	require.NoError(t, err)

	Info(CatConfig, "hello")
	require.NoError(t, closeFn())
	require.FileExists(t, path)
}

// closingWriter records writes that arrive after it was closed.
type closingWriter struct {
	mu          sync.Mutex
	closed      bool
	lateWrites  int
	totalWrites int
}

func (w *closingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.totalWrites++
	if w.closed {
		w.lateWrites++
	}
	return len(p), nil
}

func (w *closingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestClose_WaitsForInFlightWrites(t *testing.T) {
	w := &closingWriter{}
	SetOutput(w, zerolog.DebugLevel)
	mu.Lock()
	closer = w
	mu.Unlock()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 200 {
				Debug(CatSound, "reaped", "worker", i, "n", j)
			}
		}()
	}
	Info(CatSound, "before close")
	require.NoError(t, Close())
	wg.Wait()

	require.Positive(t, w.totalWrites)
	require.Zero(t, w.lateWrites)
}
