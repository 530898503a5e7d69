package sound

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/soundpairs/internal/log"
)

// DefaultExtensions are the file extensions picked up from a sound directory.
var DefaultExtensions = []string{".mp3", ".wav"}

// ErrUnsupportedFormat is returned when a file's extension has no duration probe.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Library scans sound directories and remembers probed durations so a
// directory reload only decodes new or changed files.
type Library struct {
	extensions []string
	durations  *cache.Cache
}

// NewLibrary creates a Library accepting the given extensions.
// A nil or empty list means DefaultExtensions.
func NewLibrary(extensions []string) *Library {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &Library{
		extensions: normalized,
		durations:  cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

// Extensions returns the normalized extension filter.
func (l *Library) Extensions() []string {
	return l.extensions
}

// Load returns every accepted sound file in dir, sorted by name.
// Files whose duration cannot be probed are skipped and logged.
// A missing directory is an error; an empty one is not.
func (l *Library) Load(dir string) ([]Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading sound directory: %w", err)
	}

	assets := make([]Asset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.accepts(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		duration, err := l.duration(path)
		if err != nil {
			log.Warn(log.CatSound, "Skipping unreadable sound", "path", path, "error", err)
			continue
		}
		assets = append(assets, Asset{Name: nameOf(path), Path: path, Duration: duration})
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	log.Info(log.CatSound, "Loaded sounds", "dir", dir, "count", len(assets))
	return assets, nil
}

func (l *Library) accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range l.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// duration probes path, using the cache when size and mtime are unchanged.
func (l *Library) duration(path string) (time.Duration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	key := fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano())
	if v, ok := l.durations.Get(key); ok {
		return v.(time.Duration), nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the configured sound directory
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	d, err := probe(filepath.Ext(path), f)
	if err != nil {
		return 0, err
	}
	l.durations.Set(key, d, cache.NoExpiration)
	return d, nil
}

// probe decodes just enough of r to compute its playback length.
func probe(ext string, r io.ReadSeeker) (time.Duration, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		dec := wav.NewDecoder(r)
		if !dec.IsValidFile() {
			return 0, errors.New("invalid wav file")
		}
		return dec.Duration()
	case ".mp3":
		dec, err := mp3.NewDecoder(r)
		if err != nil {
			return 0, fmt.Errorf("decoding mp3: %w", err)
		}
		rate := dec.SampleRate()
		if rate <= 0 || dec.Length() <= 0 {
			return 0, errors.New("mp3 length unknown")
		}
		// go-mp3 decodes to 16-bit stereo: four bytes per sample frame.
		samples := dec.Length() / 4
		return time.Duration(samples) * time.Second / time.Duration(rate), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
