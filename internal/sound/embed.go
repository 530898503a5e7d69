// Package sound loads the audio assets cards are paired by, probes their
// playback durations, and plays them through OS-native audio commands.
package sound

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/zjrosen/soundpairs/internal/log"
)

// soundFiles contains the built-in tone pack used when no sound directory is
// configured or the configured one is empty.
//
//go:embed sounds/*.wav
var soundFiles embed.FS

// Embedded extracts the built-in tone pack into dir and returns its assets.
// Files already present with the same size are left untouched.
func (l *Library) Embedded(dir string) ([]Asset, error) {
	entries, err := fs.ReadDir(soundFiles, "sounds")
	if err != nil {
		return nil, fmt.Errorf("reading embedded sounds: %w", err)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating sound cache directory: %w", err)
	}

	assets := make([]Asset, 0, len(entries))
	for _, entry := range entries {
		data, err := soundFiles.ReadFile(path.Join("sounds", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded sound %s: %w", entry.Name(), err)
		}

		target := filepath.Join(dir, entry.Name())
		if info, err := os.Stat(target); err != nil || info.Size() != int64(len(data)) {
			if err := os.WriteFile(target, data, 0600); err != nil {
				return nil, fmt.Errorf("extracting %s: %w", entry.Name(), err)
			}
		}

		duration, err := probe(filepath.Ext(entry.Name()), bytes.NewReader(data))
		if err != nil {
			log.Warn(log.CatSound, "Skipping embedded sound", "file", entry.Name(), "error", err)
			continue
		}
		assets = append(assets, Asset{Name: nameOf(entry.Name()), Path: target, Duration: duration})
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	log.Debug(log.CatSound, "Extracted embedded sounds", "dir", dir, "count", len(assets))
	return assets, nil
}

// EmbeddedCount returns how many sounds the built-in pack holds.
func EmbeddedCount() int {
	entries, err := fs.ReadDir(soundFiles, "sounds")
	if err != nil {
		return 0
	}
	return len(entries)
}
