// Package paths normalizes file locations taken from config files and flags.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves a leading "~" to the home directory and expands $VAR
// references, then cleans the result. An empty path stays empty.
func Expand(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return filepath.Clean(p)
}
