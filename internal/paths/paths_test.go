package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SOUNDPAIRS_TEST_DIR", "/srv/sounds")

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"home only", "~", home},
		{"home relative", "~/.soundpairs/history.db", filepath.Join(home, ".soundpairs", "history.db")},
		{"env var", "$SOUNDPAIRS_TEST_DIR/bells", "/srv/sounds/bells"},
		{"braced env var", "${SOUNDPAIRS_TEST_DIR}", "/srv/sounds"},
		{"relative", "./sounds/", "sounds"},
		{"absolute", "/a/b/../c", "/a/c"},
		{"tilde inside name", "notes~/x", "notes~/x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, filepath.FromSlash(tc.expected), Expand(tc.input))
		})
	}
}
