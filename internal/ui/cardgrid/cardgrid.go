// Package cardgrid renders the board's cards as a grid of clickable cells.
package cardgrid

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/soundpairs/internal/game"
	"github.com/zjrosen/soundpairs/internal/ui/styles"
)

const (
	minCellWidth  = 7
	minCellHeight = 3
	gap           = 1
)

// Labels shown on the card face for each status.
const (
	LabelHidden   = "?"
	LabelRevealed = "..."
)

// Model holds the grid cursor and layout.
type Model struct {
	rows, cols int
	cursor     game.Position
	width      int
	height     int
	showNames  bool
	zones      *zone.Manager
}

// New creates a grid for rows x cols cards. zones may be nil to disable
// mouse hit testing.
func New(rows, cols int, zones *zone.Manager) Model {
	return Model{rows: rows, cols: cols, zones: zones}
}

// SetSize sets the area available to the grid.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetShowNames toggles printing the sound name on revealed cards.
func (m Model) SetShowNames(show bool) Model {
	m.showNames = show
	return m
}

// Cursor returns the keyboard cursor position.
func (m Model) Cursor() game.Position {
	return m.cursor
}

// Move shifts the cursor, clamping at the edges.
func (m Model) Move(dRow, dCol int) Model {
	m.cursor.Row = min(max(m.cursor.Row+dRow, 0), m.rows-1)
	m.cursor.Col = min(max(m.cursor.Col+dCol, 0), m.cols-1)
	return m
}

// CellSize returns the width and height of one card cell.
func (m Model) CellSize() (int, int) {
	w := minCellWidth
	h := minCellHeight
	if m.cols > 0 && m.width > 0 {
		w = max((m.width-gap*(m.cols-1))/m.cols, minCellWidth)
	}
	if m.rows > 0 && m.height > 0 {
		h = max((m.height-gap*(m.rows-1))/m.rows, minCellHeight)
	}
	return w, h
}

// ZoneID returns the mouse zone identifier of the card at pos.
func ZoneID(pos game.Position) string {
	return fmt.Sprintf("card-%d-%d", pos.Row, pos.Col)
}

// CardAt returns the card under a mouse event, if any.
func (m Model) CardAt(msg tea.MouseMsg) (game.Position, bool) {
	if m.zones == nil {
		return game.Position{}, false
	}
	for row := range m.rows {
		for col := range m.cols {
			pos := game.Position{Row: row, Col: col}
			if m.zones.Get(ZoneID(pos)).InBounds(msg) {
				return pos, true
			}
		}
	}
	return game.Position{}, false
}

// View renders cards, given in row-major order.
func (m Model) View(cards []*game.Card) string {
	cellW, cellH := m.CellSize()

	rows := make([]string, 0, m.rows*2)
	for row := range m.rows {
		if row > 0 {
			rows = append(rows, strings.Repeat("\n", gap-1))
		}
		cells := make([]string, 0, m.cols*2)
		for col := range m.cols {
			idx := row*m.cols + col
			if idx >= len(cards) {
				break
			}
			if col > 0 {
				cells = append(cells, strings.Repeat(" ", gap))
			}
			card := cards[idx]
			cell := m.renderCard(card, cellW, cellH, card.Position() == m.cursor)
			if m.zones != nil {
				cell = m.zones.Mark(ZoneID(card.Position()), cell)
			}
			cells = append(cells, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(card *game.Card, width, height int, focused bool) string {
	var fill lipgloss.TerminalColor
	label := ""

	switch card.Status() {
	case game.StatusHidden:
		label = LabelHidden
		fill = styles.CardHiddenColor
		if !card.Enabled() {
			fill = styles.CardLockedColor
		}
	case game.StatusRevealed:
		label = LabelRevealed
		fill = styles.CardRevealedColor
		if m.showNames && height > minCellHeight {
			name := truncate.StringWithTail(card.Sound().Name, uint(max(width-4, 1)), "…") //nolint:gosec // width is positive
			label += "\n" + name
		}
	case game.StatusRemoved:
		fill = styles.CardRemovedColor
	}

	border := lipgloss.RoundedBorder()
	if card.Status() == game.StatusRemoved {
		border = lipgloss.HiddenBorder()
	}
	borderColor := fill
	if focused {
		borderColor = styles.CardCursorColor
		if card.Status() != game.StatusRemoved {
			border = lipgloss.ThickBorder()
		}
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Foreground(fill).
		Bold(true).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}
