// Package cmd implements the soundpairs command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/soundpairs/internal/app"
	"github.com/zjrosen/soundpairs/internal/config"
	"github.com/zjrosen/soundpairs/internal/game"
	"github.com/zjrosen/soundpairs/internal/history"
	"github.com/zjrosen/soundpairs/internal/infrastructure/sqlite"
	"github.com/zjrosen/soundpairs/internal/log"
	"github.com/zjrosen/soundpairs/internal/paths"
	"github.com/zjrosen/soundpairs/internal/sound"
	"github.com/zjrosen/soundpairs/internal/tracing"
	"github.com/zjrosen/soundpairs/internal/ui/howto"
	"github.com/zjrosen/soundpairs/internal/ui/styles"
)

// Version is the released game version.
const Version = "1.0.0"

const watchDebounce = 300 * time.Millisecond

var (
	cfgFile string
	cfg     config.Config
)

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"debug":  "debug",
	"rows":   "rows",
	"cols":   "cols",
	"seed":   "seed",
	"sounds": "sounds.dir",
}

// UsageError marks errors caused by bad input rather than a failure to run.
// They exit with status 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

var rootCmd = &cobra.Command{
	Use:   "soundpairs",
	Short: "A concentration game played by ear",
	Long: `soundpairs deals a grid of face-down cards. Every card hides a sound and
every sound sits on exactly two cards. Open cards two at a time and clear the
board by finding the pairs: +3 for a match, -1 for a mismatch.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runGame,
}

func init() {
	rootCmd.SetVersionTemplate("soundpairs {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default ./.soundpairs.yaml or ~/.config/soundpairs/config.yaml)")
	pf.Bool("debug", false, "write a debug log to ~/.soundpairs/debug.log")

	f := rootCmd.Flags()
	f.Int("rows", 4, "number of card rows")
	f.Int("cols", 4, "number of card columns")
	f.Uint64("seed", 0, "shuffle seed (0 for random)")
	f.String("sounds", "", "directory of sound files")
	f.Bool("no-audio", false, "play silently")
}

// Execute runs the command line and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var usage *UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// asUsageError marks errors the player can fix by changing flags or config.
func asUsageError(err error) error {
	if errors.Is(err, game.ErrInvalidBoardSize) || errors.Is(err, game.ErrInsufficientAssets) {
		return &UsageError{Err: err}
	}
	return err
}

func configCandidates() []string {
	candidates := []string{".soundpairs.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "soundpairs", "config.yaml"))
	}
	return candidates
}

// defaultConfigPath is where init writes the config file.
func defaultConfigPath() string {
	candidates := configCandidates()
	return candidates[len(candidates)-1]
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	config.SetDefaults(v)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	v.SetEnvPrefix("SOUNDPAIRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		for _, path := range configCandidates() {
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				break
			}
		}
	}
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return &UsageError{Err: fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)}
		}
	}

	if f := cmd.Flags().Lookup("no-audio"); f != nil && f.Changed {
		v.Set("audio.enabled", false)
	}

	loaded, err := config.Load(v)
	if err != nil {
		return &UsageError{Err: err}
	}
	cfg = loaded

	if cfg.Debug {
		if _, err := log.Init(filepath.Join(config.DataDir(), "debug.log"), zerolog.DebugLevel); err != nil {
			return err
		}
		cobra.OnFinalize(func() { _ = log.Close() })
	}
	log.Debug(log.CatConfig, "Config loaded", "file", v.ConfigFileUsed(), "rows", cfg.Rows, "cols", cfg.Cols)
	return nil
}

func runGame(cmd *cobra.Command, _ []string) error {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		styles.DisableColor()
	}
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.Colors,
	}); err != nil {
		return &UsageError{Err: fmt.Errorf("theme: %w", err)}
	}

	lib := sound.NewLibrary(cfg.Sounds.Extensions)
	assets, watchDir, err := loadSounds(lib, cfg.Sounds)
	if err != nil {
		return err
	}
	// Reject the grid before anything is written to the data directory.
	if err := game.ValidateGrid(cfg.Rows, cfg.Cols, len(assets)); err != nil {
		return asUsageError(err)
	}

	var repo history.Repository
	if cfg.History.Enabled {
		db, err := sqlite.NewDB(cfg.HistoryPath())
		if err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: history disabled:", err)
		} else {
			defer func() { _ = db.Close() }()
			repo = db.Results()
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceCfg := cfg.Trace
	traceCfg.File = cfg.TracePath()
	provider, err := tracing.Setup(ctx, traceCfg, traceCfg.File, Version)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.ErrorErr(log.CatTrace, "Trace shutdown failed", err)
		}
	}()
	rounds := tracing.NewRoundTracer(provider.Tracer(), cfg.Rows, cfg.Cols)
	defer rounds.Close()

	zones := zone.New()
	defer zones.Close()

	opts := app.Options{
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Sounds:  assets,
		Seed:    cfg.Seed,
		Player:  newPlayer(cmd.ErrOrStderr(), cfg.Audio),
		Library: lib,
		History: repo,
		Hooks:   rounds.Hooks(),
		Zones:   zones,
		Rules: &game.Rules{
			MatchPoints:     cfg.Rules.MatchPoints,
			MismatchPenalty: cfg.Rules.MismatchPenalty,
			SafetyMargin:    cfg.Rules.SafetyMargin,
		},
		HelpStyle: helpStyle(),
		ShowNames: cfg.Debug,
		Version:   Version,
	}

	if cfg.Sounds.Watch && watchDir != "" {
		w, err := sound.NewWatcher(watchDir, watchDebounce)
		if err != nil {
			log.Warn(log.CatSound, "Sound folder not watched", "dir", watchDir, "error", err)
		} else {
			defer func() { _ = w.Close() }()
			opts.Watcher = w
		}
	}

	model, err := app.New(opts)
	if err != nil {
		return asUsageError(err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadSounds reads the configured folder, falling back to the built-in pack
// when it is missing or empty. It returns the folder worth watching, if any.
func loadSounds(lib *sound.Library, sc config.SoundsConfig) ([]sound.Asset, string, error) {
	sc.Dir = paths.Expand(sc.Dir)
	if sc.Dir != "" {
		assets, err := lib.Load(sc.Dir)
		switch {
		case err == nil && len(assets) > 0:
			return assets, sc.Dir, nil
		case err != nil && !sc.Fallback:
			return nil, "", &UsageError{Err: err}
		case err != nil:
			log.Warn(log.CatSound, "Sound folder unavailable, using built-in sounds", "dir", sc.Dir, "error", err)
		}
	}
	if !sc.Fallback {
		return nil, sc.Dir, nil
	}

	assets, err := lib.Embedded(filepath.Join(config.DataDir(), "sounds"))
	if err != nil {
		return nil, "", fmt.Errorf("built-in sounds: %w", err)
	}
	watchDir := ""
	if _, err := os.Stat(sc.Dir); sc.Dir != "" && err == nil {
		watchDir = sc.Dir
	}
	return assets, watchDir, nil
}

func newPlayer(stderr io.Writer, ac config.AudioConfig) sound.Player {
	if !ac.Enabled {
		return sound.NopPlayer{}
	}
	if ac.Player != "" {
		return sound.NewCommandPlayer(ac.Player)
	}
	p, err := sound.DetectPlayer()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Warning: no audio player found, playing silently:", err)
		return sound.NopPlayer{}
	}
	log.Info(log.CatSound, "Using audio player", "player", p.Name())
	return p
}

func helpStyle() string {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return howto.StylePlain
	}
	if lipgloss.HasDarkBackground() {
		return howto.StyleDark
	}
	return howto.StyleLight
}
