package finished

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selected(t *testing.T, cmd tea.Cmd) Option {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectMsg)
	require.True(t, ok, "expected SelectMsg")
	return msg.Option
}

func TestNew_DefaultsToReset(t *testing.T) {
	m := New(9, nil)
	require.Equal(t, OptionReset, m.Selected())
	require.Equal(t, 9, m.Score())
}

func TestUpdate_Navigation(t *testing.T) {
	m := New(0, nil)

	m, cmd := m.Update(keyMsg("left"))
	require.Nil(t, cmd)
	require.Equal(t, OptionEnd, m.Selected())

	m, _ = m.Update(keyMsg("l"))
	require.Equal(t, OptionReset, m.Selected())

	m, _ = m.Update(keyMsg("h"))
	require.Equal(t, OptionEnd, m.Selected())
}

func TestUpdate_EnterSelectsFocused(t *testing.T) {
	m := New(0, nil)
	_, cmd := m.Update(keyMsg("enter"))
	require.Equal(t, OptionReset, selected(t, cmd))

	m, _ = m.Update(keyMsg("left"))
	_, cmd = m.Update(keyMsg("enter"))
	require.Equal(t, OptionEnd, selected(t, cmd))
}

func TestUpdate_Shortcuts(t *testing.T) {
	m := New(0, nil)

	_, cmd := m.Update(keyMsg("r"))
	require.Equal(t, OptionReset, selected(t, cmd))

	_, cmd = m.Update(keyMsg("q"))
	require.Equal(t, OptionEnd, selected(t, cmd))

	_, cmd = m.Update(keyMsg("esc"))
	require.Equal(t, OptionEnd, selected(t, cmd))
}

func TestView_Content(t *testing.T) {
	view := ansi.Strip(New(-2, nil).View())
	require.Contains(t, view, "Congratulations!")
	require.Contains(t, view, "Score: -2")
	require.Contains(t, view, "END")
	require.Contains(t, view, "Reset")
}

func TestOverlay_FillsViewport(t *testing.T) {
	m := New(6, nil).SetSize(80, 24)
	out := m.Overlay()
	require.Equal(t, 80, lipgloss.Width(out))
	require.Equal(t, 24, lipgloss.Height(out))
}

func TestUpdate_MouseClick(t *testing.T) {
	zones := zone.New()
	t.Cleanup(zones.Close)

	m := New(3, zones)
	_ = zones.Scan(m.View())

	var end *zone.ZoneInfo
	require.Eventually(t, func() bool {
		end = zones.Get(ZoneID(OptionEnd))
		return end != nil && !end.IsZero()
	}, time.Second, 10*time.Millisecond)

	click := tea.MouseMsg{X: end.StartX, Y: end.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	m, cmd := m.Update(click)
	require.Equal(t, OptionEnd, selected(t, cmd))
	require.Equal(t, OptionEnd, m.Selected())

	press := click
	press.Action = tea.MouseActionPress
	_, cmd = m.Update(press)
	require.Nil(t, cmd, "only releases select")
}

func TestUpdate_TabCyclesButtons(t *testing.T) {
	m := New(0, nil)

	m, cmd := m.Update(keyMsg("shift+tab"))
	require.Nil(t, cmd)
	require.Equal(t, OptionEnd, m.Selected())

	m, _ = m.Update(keyMsg("tab"))
	require.Equal(t, OptionReset, m.Selected())

	m, _ = m.Update(keyMsg("h"))
	require.Equal(t, OptionEnd, m.Selected())

	_, cmd = m.Update(keyMsg(" "))
	require.Equal(t, OptionEnd, selected(t, cmd))
}
