// Package finished provides the end-of-game modal offering End and Reset.
package finished

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/soundpairs/internal/keys"
	"github.com/zjrosen/soundpairs/internal/ui/styles"
)

// Option represents a modal button.
type Option int

const (
	OptionEnd Option = iota
	OptionReset
)

var optionLabels = map[Option]string{
	OptionEnd:   "END",
	OptionReset: "Reset",
}

// String returns the button label.
func (o Option) String() string {
	return optionLabels[o]
}

// SelectMsg is sent when a button is chosen.
type SelectMsg struct {
	Option Option
}

// Model holds the modal state.
type Model struct {
	score          int
	selected       Option
	viewportWidth  int
	viewportHeight int
	zones          *zone.Manager
}

// New creates a modal for a round that ended with score.
func New(score int, zones *zone.Manager) Model {
	return Model{score: score, selected: OptionReset, zones: zones}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// Score returns the final score shown by the modal.
func (m Model) Score() int {
	return m.score
}

// Selected returns the focused button.
func (m Model) Selected() Option {
	return m.selected
}

// ZoneID returns the mouse zone identifier of a button.
func ZoneID(o Option) string {
	return "finished-" + strings.ToLower(o.String())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Game.Left, keys.Game.Prev):
			m.selected = OptionEnd
		case key.Matches(msg, keys.Game.Right, keys.Game.Next):
			m.selected = OptionReset
		case key.Matches(msg, keys.Game.Reset):
			return m, selectCmd(OptionReset)
		case key.Matches(msg, keys.Game.Quit, keys.Game.Escape):
			return m, selectCmd(OptionEnd)
		case key.Matches(msg, keys.Game.Open):
			return m, selectCmd(m.selected)
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft || m.zones == nil {
			return m, nil
		}
		for _, o := range []Option{OptionEnd, OptionReset} {
			if m.zones.Get(ZoneID(o)).InBounds(msg) {
				m.selected = o
				return m, selectCmd(o)
			}
		}
	}
	return m, nil
}

func selectCmd(o Option) tea.Cmd {
	return func() tea.Msg {
		return SelectMsg{Option: o}
	}
}

// View renders the modal box (without positioning).
func (m Model) View() string {
	width := 28

	titleStyle := styles.TitleStyle.Width(width).Align(lipgloss.Center)
	scoreStyle := styles.ScoreStyle(m.score).Width(width).Align(lipgloss.Center)

	buttons := make([]string, 0, 3)
	for _, o := range []Option{OptionEnd, OptionReset} {
		style := styles.ButtonStyle
		if o == m.selected {
			style = styles.ButtonFocusStyle
		}
		btn := style.Render(o.String())
		if m.zones != nil {
			btn = m.zones.Mark(ZoneID(o), btn)
		}
		if len(buttons) > 0 {
			buttons = append(buttons, "  ")
		}
		buttons = append(buttons, btn)
	}
	row := lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	content := titleStyle.Render("Congratulations!") + "\n\n" +
		scoreStyle.Render(fmt.Sprintf("Score: %d", m.score)) + "\n\n" +
		row

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Padding(1, 2).
		Render(content)
}

// Overlay renders the modal centered in the viewport.
func (m Model) Overlay() string {
	return lipgloss.Place(
		m.viewportWidth, m.viewportHeight,
		lipgloss.Center, lipgloss.Center,
		m.View(),
	)
}
