package styles

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorToken names a themeable color.
type ColorToken string

const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextMuted     ColorToken = "text.muted"
	TokenCardHidden    ColorToken = "card.hidden"
	TokenCardRevealed  ColorToken = "card.revealed"
	TokenCardRemoved   ColorToken = "card.removed"
	TokenCardLocked    ColorToken = "card.locked"
	TokenCardCursor    ColorToken = "card.cursor"
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"
	TokenScorePositive ColorToken = "score.positive"
	TokenScoreNegative ColorToken = "score.negative"
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusError   ColorToken = "status.error"
)

// ThemeConfig selects a preset and per-token overrides.
type ThemeConfig struct {
	Preset string
	Mode   string // "light", "dark" or "" to detect
	Colors map[string]string
}

// Preset is a named set of token colors.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPreset is applied first; other presets and overrides layer on top.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default soundpairs theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextMuted:     "#696969",
		TokenCardHidden:    "#54A0FF",
		TokenCardRevealed:  "#FECA57",
		TokenCardRemoved:   "#3A3A3A",
		TokenCardLocked:    "#2E5A88",
		TokenCardCursor:    "#FFFFFF",
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#7D56F4",
		TokenScorePositive: "#73F59F",
		TokenScoreNegative: "#FF8787",
		TokenStatusSuccess: "#73F59F",
		TokenStatusError:   "#FF8787",
	},
}

// Presets holds every built-in theme by name.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"dracula": {
		Name:        "dracula",
		Description: "Dark theme with vibrant colors",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#F8F8F2",
			TokenTextMuted:     "#6272A4",
			TokenCardHidden:    "#BD93F9",
			TokenCardRevealed:  "#F1FA8C",
			TokenCardRemoved:   "#44475A",
			TokenCardLocked:    "#6272A4",
			TokenBorderFocus:   "#FF79C6",
			TokenScorePositive: "#50FA7B",
			TokenScoreNegative: "#FF5555",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish palette",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#ECEFF4",
			TokenTextMuted:     "#4C566A",
			TokenCardHidden:    "#81A1C1",
			TokenCardRevealed:  "#EBCB8B",
			TokenCardRemoved:   "#3B4252",
			TokenCardLocked:    "#5E81AC",
			TokenBorderFocus:   "#88C0D0",
			TokenScorePositive: "#A3BE8C",
			TokenScoreNegative: "#BF616A",
		},
	},
	"high-contrast": {
		Name:        "high-contrast",
		Description: "High contrast for accessibility",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#FFFFFF",
			TokenTextMuted:     "#C0C0C0",
			TokenCardHidden:    "#0000FF",
			TokenCardRevealed:  "#FFFF00",
			TokenCardRemoved:   "#000000",
			TokenCardLocked:    "#808080",
			TokenCardCursor:    "#FF00FF",
			TokenBorderFocus:   "#FFFFFF",
			TokenScorePositive: "#00FF00",
			TokenScoreNegative: "#FF0000",
		},
	},
}

// PresetNames returns the preset names sorted alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func isValidHexColor(s string) bool {
	return hexColor.MatchString(s)
}

func isValidToken(t ColorToken) bool {
	_, ok := DefaultPreset.Colors[t]
	return ok
}

// ApplyTheme resolves cfg into the package color variables and rebuilds
// the derived styles. The default preset fills any token the chosen preset
// leaves unset; explicit overrides win over both.
func ApplyTheme(cfg ThemeConfig) error {
	colors := make(map[ColorToken]string, len(DefaultPreset.Colors))
	for k, v := range DefaultPreset.Colors {
		colors[k] = v
	}

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset %q (available: %v)", cfg.Preset, PresetNames())
		}
		for k, v := range preset.Colors {
			colors[k] = v
		}
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token %q", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color %q for %s", value, key)
		}
		colors[token] = value
	}

	switch cfg.Mode {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}

	setColors(colors)
	rebuildStyles()
	return nil
}

// DisableColor renders everything without color, e.g. when NO_COLOR is set
// or output is compared in tests.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
