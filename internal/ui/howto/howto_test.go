package howto

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestView_RendersContent(t *testing.T) {
	m := New(StylePlain).SetSize(80, 40)
	view := ansi.Strip(m.View())

	require.Contains(t, view, "How to play")
	require.Contains(t, view, "Mismatch")
	require.Equal(t, 80, lipgloss.Width(m.View()))
	require.Equal(t, 40, lipgloss.Height(m.View()))
}

func TestUpdate_Close(t *testing.T) {
	m := New(StylePlain).SetSize(80, 24)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'?'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, k.String())
		require.IsType(t, CloseMsg{}, cmd())
	}
}

func TestUpdate_Scrolls(t *testing.T) {
	m := New(StylePlain).SetSize(80, 8)
	require.Equal(t, 0, m.viewport.YOffset)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.viewport.YOffset)
}

func TestNew_DefaultStyle(t *testing.T) {
	require.Equal(t, StyleDark, New("").style)
}
