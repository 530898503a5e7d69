// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors. Light variants are fixed; Dark variants follow the theme.
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1A1A1A"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8A8A8A"}
	CardHiddenColor    = lipgloss.AdaptiveColor{Light: "#2E86DE"}
	CardRevealedColor  = lipgloss.AdaptiveColor{Light: "#E1A500"}
	CardRemovedColor   = lipgloss.AdaptiveColor{Light: "#DDDDDD"}
	CardLockedColor    = lipgloss.AdaptiveColor{Light: "#9DB7D5"}
	CardCursorColor    = lipgloss.AdaptiveColor{Light: "#000000"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#BBBBBB"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#5A3FD6"}
	ScorePositiveColor = lipgloss.AdaptiveColor{Light: "#1E9E4A"}
	ScoreNegativeColor = lipgloss.AdaptiveColor{Light: "#D63031"}
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#1E9E4A"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D63031"}
)

// Derived styles, rebuilt by ApplyTheme.
var (
	TitleStyle       lipgloss.Style
	MutedStyle       lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	ButtonStyle      lipgloss.Style
	ButtonFocusStyle lipgloss.Style
)

func init() {
	setColors(DefaultPreset.Colors)
	rebuildStyles()
}

func setColors(c map[ColorToken]string) {
	TextPrimaryColor.Dark = c[TokenTextPrimary]
	TextMutedColor.Dark = c[TokenTextMuted]
	CardHiddenColor.Dark = c[TokenCardHidden]
	CardRevealedColor.Dark = c[TokenCardRevealed]
	CardRemovedColor.Dark = c[TokenCardRemoved]
	CardLockedColor.Dark = c[TokenCardLocked]
	CardCursorColor.Dark = c[TokenCardCursor]
	BorderDefaultColor.Dark = c[TokenBorderDefault]
	BorderFocusColor.Dark = c[TokenBorderFocus]
	ScorePositiveColor.Dark = c[TokenScorePositive]
	ScoreNegativeColor.Dark = c[TokenScoreNegative]
	StatusSuccessColor.Dark = c[TokenStatusSuccess]
	StatusErrorColor.Dark = c[TokenStatusError]
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	ButtonStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor).
		Padding(0, 2)
	ButtonFocusStyle = ButtonStyle.
		BorderForeground(BorderFocusColor).
		Bold(true)
}

// ScoreStyle returns the style for a score value: green above zero, red below.
func ScoreStyle(score int) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch {
	case score > 0:
		return style.Foreground(ScorePositiveColor)
	case score < 0:
		return style.Foreground(ScoreNegativeColor)
	default:
		return style.Foreground(TextPrimaryColor)
	}
}
