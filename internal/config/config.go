// Package config provides configuration types and defaults for soundpairs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/zjrosen/soundpairs/internal/paths"
)

// Config holds all configuration options for soundpairs.
type Config struct {
	Rows    int           `mapstructure:"rows" yaml:"rows" validate:"min=1,max=12"`
	Cols    int           `mapstructure:"cols" yaml:"cols" validate:"min=1,max=12"`
	Seed    uint64        `mapstructure:"seed" yaml:"seed"` // 0 picks a random seed per run
	Sounds  SoundsConfig  `mapstructure:"sounds" yaml:"sounds"`
	Audio   AudioConfig   `mapstructure:"audio" yaml:"audio"`
	Rules   RulesConfig   `mapstructure:"rules" yaml:"rules"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Trace   TraceConfig   `mapstructure:"trace" yaml:"trace"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Debug   bool          `mapstructure:"debug" yaml:"debug"`
}

// SoundsConfig controls where sound assets come from.
type SoundsConfig struct {
	// Dir is globbed for files with one of Extensions.
	Dir        string   `mapstructure:"dir" yaml:"dir"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions" validate:"min=1,dive,required"`

	// Fallback uses the built-in tone pack when Dir is empty or missing.
	Fallback bool `mapstructure:"fallback" yaml:"fallback"`

	// Watch reloads Dir when files change; new sounds apply at the next reset.
	Watch bool `mapstructure:"watch" yaml:"watch"`
}

// AudioConfig controls playback.
type AudioConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Player  string `mapstructure:"player" yaml:"player"` // empty auto-detects
}

// RulesConfig holds scoring and lock timing.
type RulesConfig struct {
	MatchPoints     int           `mapstructure:"match_points" yaml:"match_points" validate:"min=0"`
	MismatchPenalty int           `mapstructure:"mismatch_penalty" yaml:"mismatch_penalty" validate:"min=0"`
	SafetyMargin    time.Duration `mapstructure:"safety_margin" yaml:"safety_margin" validate:"min=0"`
}

// HistoryConfig controls the finished-game database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"` // empty means ~/.soundpairs/history.db
}

// TraceConfig controls OpenTelemetry span export.
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// File receives stdout-exporter JSON when OTLPEndpoint is empty.
	File string `mapstructure:"file" yaml:"file"`

	// OTLPEndpoint sends spans over OTLP/gRPC (host:port) instead of File.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset" yaml:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode" yaml:"mode" validate:"omitempty,oneof=light dark"`

	// Colors allows overriding individual color tokens.
	// Keys use dot notation: "card.hidden", "text.primary", etc.
	Colors map[string]string `mapstructure:"colors" yaml:"colors,omitempty"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Rows: 4,
		Cols: 4,
		Sounds: SoundsConfig{
			Dir:        "sounds",
			Extensions: []string{".mp3", ".wav"},
			Fallback:   true,
			Watch:      true,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Rules: RulesConfig{
			MatchPoints:     3,
			MismatchPenalty: 1,
			SafetyMargin:    500 * time.Millisecond,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Theme: ThemeConfig{
			Preset: "default",
		},
	}
}

// SetDefaults registers every default with v so that keys missing from the
// config file and environment still unmarshal to Defaults().
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("rows", d.Rows)
	v.SetDefault("cols", d.Cols)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("sounds.dir", d.Sounds.Dir)
	v.SetDefault("sounds.extensions", d.Sounds.Extensions)
	v.SetDefault("sounds.fallback", d.Sounds.Fallback)
	v.SetDefault("sounds.watch", d.Sounds.Watch)
	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.player", d.Audio.Player)
	v.SetDefault("rules.match_points", d.Rules.MatchPoints)
	v.SetDefault("rules.mismatch_penalty", d.Rules.MismatchPenalty)
	v.SetDefault("rules.safety_margin", d.Rules.SafetyMargin)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("trace.enabled", d.Trace.Enabled)
	v.SetDefault("trace.file", d.Trace.File)
	v.SetDefault("trace.otlp_endpoint", d.Trace.OTLPEndpoint)
	v.SetDefault("theme.preset", d.Theme.Preset)
	v.SetDefault("theme.mode", d.Theme.Mode)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges. Grid parity and sound pool size are checked
// by the game itself once the sounds are loaded.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// configKey turns a validator namespace like "Config.Rules.SafetyMargin"
// into the config file key "rules.safetymargin".
func configKey(ns string) string {
	ns = strings.TrimPrefix(ns, "Config.")
	return strings.ToLower(ns)
}

// DataDir returns the directory holding the history database and logs.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".soundpairs"
	}
	return filepath.Join(home, ".soundpairs")
}

// HistoryPath returns the configured history database path or the default.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return paths.Expand(c.History.Path)
	}
	return filepath.Join(DataDir(), "history.db")
}

// TracePath returns the configured trace file or the default.
func (c Config) TracePath() string {
	if c.Trace.File != "" {
		return paths.Expand(c.Trace.File)
	}
	return filepath.Join(DataDir(), "traces.jsonl")
}

// SoundsDir returns the sound folder with "~" and $VARs expanded.
func (c Config) SoundsDir() string {
	return paths.Expand(c.Sounds.Dir)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# soundpairs configuration

# Grid size. rows * cols must be even and at most twice the number of sounds.
rows: 4
cols: 4

# Shuffle seed. 0 picks a new random layout every run.
seed: 0

sounds:
  # Folder scanned for sound files (relative to the working directory)
  dir: sounds
  extensions: [".mp3", ".wav"]
  # Use the built-in tone pack when the folder is empty or missing
  fallback: true
  # Pick up added or removed files; they take effect at the next reset
  watch: true

audio:
  enabled: true
  # Audio command to use. Empty auto-detects afplay, paplay, pw-play, aplay or ffplay.
  # player: ffplay

# Scoring and timing
rules:
  match_points: 3
  mismatch_penalty: 1
  # Extra lock time after a sound finishes before cards accept input again
  safety_margin: 500ms

# Finished games are recorded here; see 'soundpairs history'
history:
  enabled: true
  # path: ~/.soundpairs/history.db

# OpenTelemetry spans for each round
trace:
  enabled: false
  # file: ~/.soundpairs/traces.jsonl
  # otlp_endpoint: localhost:4317

theme:
  # Available presets: default, dracula, nord, high-contrast
  preset: default
  #
  # Force light or dark mode (default: detect from terminal)
  # mode: dark
  #
  # Override specific colors:
  # colors:
  #   card.hidden: "#54A0FF"
  #   card.revealed: "#FECA57"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
