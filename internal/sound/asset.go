package sound

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Asset is one playable sound file. The zero Asset means "no sound bound".
type Asset struct {
	Name     string        // display name, file name without extension
	Path     string        // absolute or working-directory relative path
	Duration time.Duration // playback length, 0 when unknown
}

// IsZero reports whether no sound is bound.
func (a Asset) IsZero() bool {
	return a.Path == "" && a.Name == ""
}

// Same reports whether a and b refer to the same sound.
// Assets are compared by path, falling back to name for path-less assets.
func (a Asset) Same(b Asset) bool {
	if a.Path != "" || b.Path != "" {
		return a.Path == b.Path
	}
	return a.Name == b.Name
}

// String implements fmt.Stringer.
func (a Asset) String() string {
	if a.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Duration.Round(time.Millisecond))
}

func nameOf(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
