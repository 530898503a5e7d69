// Package log provides categorized structured logging for soundpairs.
//
// Output goes to a debug file rather than stdout/stderr so it never
// corrupts the terminal UI. Until Init is called every call is a no-op.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatGame   Category = "game"
	CatSound  Category = "sound"
	CatDB     Category = "db"
	CatUI     Category = "ui"
	CatConfig Category = "config"
	CatTrace  Category = "trace"
)

var (
	mu     sync.RWMutex
	logger = zerolog.Nop()
	closer io.Closer
)

// Init opens (or creates) the log file at path and routes all logging to it.
// The returned function flushes and closes the file.
func Init(path string, level zerolog.Level) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	SetOutput(f, level)

	mu.Lock()
	closer = f
	mu.Unlock()

	return Close, nil
}

// SetOutput routes logging to w. Used by Init and by tests that want to
// inspect log lines.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Close disables logging and closes the file opened by Init, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.Nop()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// write builds and emits one line. The read lock stays held until Msg
// returns so Close cannot close the file mid-write.
func write(level zerolog.Level, cat Category, msg string, err error, kv []any) {
	mu.RLock()
	defer mu.RUnlock()

	e := logger.WithLevel(level)
	if e == nil {
		return
	}
	e = e.Str("cat", string(cat))
	if err != nil {
		e = e.Err(err)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	if len(kv)%2 == 1 {
		e = e.Interface("!BADKEY", kv[len(kv)-1])
	}
	e.Msg(msg)
}

// Debug logs a debug message with alternating key/value pairs.
func Debug(cat Category, msg string, kv ...any) {
	write(zerolog.DebugLevel, cat, msg, nil, kv)
}

// Info logs an informational message.
func Info(cat Category, msg string, kv ...any) {
	write(zerolog.InfoLevel, cat, msg, nil, kv)
}

// Warn logs a warning.
func Warn(cat Category, msg string, kv ...any) {
	write(zerolog.WarnLevel, cat, msg, nil, kv)
}

// Error logs an error message without an error value.
func Error(cat Category, msg string, kv ...any) {
	write(zerolog.ErrorLevel, cat, msg, nil, kv)
}

// ErrorErr logs an error message with the error attached under "error".
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	write(zerolog.ErrorLevel, cat, msg, err, kv)
}
