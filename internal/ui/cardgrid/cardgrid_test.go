package cardgrid

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundpairs/internal/game"
	"github.com/zjrosen/soundpairs/internal/sound"
)

func newBoard(t *testing.T) (*game.Board, *game.ManualScheduler) {
	t.Helper()
	sched := game.NewManualScheduler()
	pool := []sound.Asset{
		{Name: "bell", Path: "/s/bell.wav", Duration: time.Second},
		{Name: "drum", Path: "/s/drum.wav", Duration: time.Second},
	}
	b, err := game.NewBoard(2, 2, pool, game.Options{Scheduler: sched})
	require.NoError(t, err)
	return b, sched
}

func TestMove_Clamps(t *testing.T) {
	m := New(2, 3, nil)

	m = m.Move(-1, -1)
	require.Equal(t, game.Position{}, m.Cursor())

	m = m.Move(5, 5)
	require.Equal(t, game.Position{Row: 1, Col: 2}, m.Cursor())

	m = m.Move(0, -1)
	require.Equal(t, game.Position{Row: 1, Col: 1}, m.Cursor())
}

func TestCellSize(t *testing.T) {
	m := New(4, 4, nil)
	w, h := m.CellSize()
	require.Equal(t, minCellWidth, w, "unsized grid uses minimums")
	require.Equal(t, minCellHeight, h)

	m = m.SetSize(43, 23)
	w, h = m.CellSize()
	require.Equal(t, 10, w)
	require.Equal(t, 5, h)

	m = m.SetSize(10, 5)
	w, h = m.CellSize()
	require.Equal(t, minCellWidth, w, "never below the minimum")
	require.Equal(t, minCellHeight, h)
}

func TestView_Labels(t *testing.T) {
	b, _ := newBoard(t)
	m := New(2, 2, nil).SetSize(40, 12)

	view := ansi.Strip(m.View(b.Cards()))
	require.Equal(t, 4, strings.Count(view, LabelHidden))

	require.True(t, b.Select(game.Position{Row: 0, Col: 0}))
	view = ansi.Strip(m.View(b.Cards()))
	require.Equal(t, 3, strings.Count(view, LabelHidden))
	require.Contains(t, view, LabelRevealed)
}

func TestView_ShowNames(t *testing.T) {
	b, _ := newBoard(t)
	require.True(t, b.Select(game.Position{Row: 1, Col: 1}))
	name := b.Card(game.Position{Row: 1, Col: 1}).Sound().Name

	hidden := ansi.Strip(New(2, 2, nil).SetSize(40, 12).View(b.Cards()))
	require.NotContains(t, hidden, name)

	shown := ansi.Strip(New(2, 2, nil).SetSize(40, 12).SetShowNames(true).View(b.Cards()))
	require.Contains(t, shown, name)
}

func TestView_Dimensions(t *testing.T) {
	b, _ := newBoard(t)
	m := New(2, 2, nil).SetSize(41, 11)

	view := m.View(b.Cards())
	require.Equal(t, 41, lipgloss.Width(view))
	require.Equal(t, 11, lipgloss.Height(view))
}

func TestView_RemovedCardsAreBlank(t *testing.T) {
	b, sched := newBoard(t)
	for _, c := range b.Cards() {
		// Open the card and its twin to clear the board.
		if c.Status() != game.StatusHidden {
			continue
		}
		require.True(t, b.Select(c.Position()))
		sched.RunAll()
		for _, twin := range b.Cards() {
			if twin != c && twin.Sound().Same(c.Sound()) {
				require.True(t, b.Select(twin.Position()))
			}
		}
		sched.RunAll()
	}
	require.True(t, b.Finished())

	view := ansi.Strip(New(2, 2, nil).SetSize(40, 12).View(b.Cards()))
	require.NotContains(t, view, LabelHidden)
	require.NotContains(t, view, LabelRevealed)
}

func TestCardAt_WithZones(t *testing.T) {
	zones := zone.New()
	t.Cleanup(zones.Close)

	b, _ := newBoard(t)
	m := New(2, 2, zones).SetSize(41, 11)
	_ = zones.Scan(m.View(b.Cards()))

	// Cells are 20x5 with a one-column gap; (25, 7) is inside card (1,1).
	click := tea.MouseMsg{X: 25, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	require.Eventually(t, func() bool {
		pos, ok := m.CardAt(click)
		return ok && pos == game.Position{Row: 1, Col: 1}
	}, time.Second, 10*time.Millisecond)

	_, ok := m.CardAt(tea.MouseMsg{X: 200, Y: 200})
	require.False(t, ok)
}

func TestCardAt_NoZones(t *testing.T) {
	_, ok := New(2, 2, nil).CardAt(tea.MouseMsg{})
	require.False(t, ok)
}
