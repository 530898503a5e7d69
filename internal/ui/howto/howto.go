// Package howto renders the "how to play" overlay.
package howto

import (
	_ "embed"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/soundpairs/internal/keys"
	"github.com/zjrosen/soundpairs/internal/log"
	"github.com/zjrosen/soundpairs/internal/ui/styles"
)

//go:embed how_to_play.md
var content string

// Glamour style names accepted by New.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "notty"
)

// CloseMsg is sent when the overlay is dismissed.
type CloseMsg struct{}

// Model is a scrollable help page.
type Model struct {
	style    string
	viewport viewport.Model
	width    int
	height   int
}

// New creates the overlay using a glamour standard style.
func New(style string) Model {
	if style == "" {
		style = StyleDark
	}
	return Model{style: style, viewport: viewport.New(0, 0)}
}

// SetSize resizes the overlay and re-renders the page for the new width.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height

	innerW := max(min(width-4, 72), 20)
	innerH := max(height-4, 3)
	m.viewport.Width = innerW
	m.viewport.Height = innerH
	m.viewport.SetContent(render(m.style, innerW))
	return m
}

// Update handles scrolling and dismissal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Game.Help, keys.Game.Escape, keys.Game.Quit) {
		return m, func() tea.Msg { return CloseMsg{} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the overlay centered in the available area.
func (m Model) View() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Padding(0, 1).
		Render(m.viewport.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func render(style string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.ErrorErr(log.CatUI, "Help renderer unavailable", err)
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		log.ErrorErr(log.CatUI, "Help render failed", err)
		return content
	}
	return out
}
