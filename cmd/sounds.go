package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundpairs/internal/sound"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List the sounds a game would use",
	Long:  `Scan the configured sound folder (or the built-in pack when it is empty) and print each sound with its duration, plus the largest boards it can fill.`,
	RunE:  runSounds,
}

func init() {
	rootCmd.AddCommand(soundsCmd)
}

func runSounds(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	lib := sound.NewLibrary(cfg.Sounds.Extensions)

	assets, _, err := loadSounds(lib, cfg.Sounds)
	if err != nil {
		return err
	}

	source := cfg.SoundsDir()
	if len(assets) > 0 && filepath.Dir(assets[0].Path) != source {
		source = "built-in"
	}
	_, _ = fmt.Fprintf(out, "Sounds (%s):\n", source)
	if len(assets) == 0 {
		_, _ = fmt.Fprintln(out, "  (none)")
	} else {
		width := maxNameLen(assets)
		for _, a := range assets {
			_, _ = fmt.Fprintf(out, "  %-*s  %s\n", width, a.Name, a.Duration.Round(10*time.Millisecond))
		}
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "Up to %d cards (%d pairs).", 2*len(assets), len(assets))
	_, _ = fmt.Fprintf(out, " Current grid %dx%d needs %d sounds.\n", cfg.Rows, cfg.Cols, cfg.Rows*cfg.Cols/2)
	return nil
}

// maxNameLen returns the length of the longest sound name.
func maxNameLen(assets []sound.Asset) int {
	n := 0
	for _, a := range assets {
		n = max(n, len(a.Name))
	}
	return n
}
