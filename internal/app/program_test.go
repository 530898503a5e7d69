package app

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundpairs/internal/game"
)

// sendMoves drives the cursor from one cell to another through the program.
func sendMoves(tm *teatest.TestModel, from, to game.Position) {
	for r := from.Row; r < to.Row; r++ {
		tm.Send(keyPress("j"))
	}
	for r := from.Row; r > to.Row; r-- {
		tm.Send(keyPress("k"))
	}
	for c := from.Col; c < to.Col; c++ {
		tm.Send(keyPress("l"))
	}
	for c := from.Col; c > to.Col; c-- {
		tm.Send(keyPress("h"))
	}
}

func TestProgram_PlayThrough(t *testing.T) {
	repo := &memRepo{}
	m, err := New(Options{
		Rows:    2,
		Cols:    2,
		Sounds:  pool,
		Rules:   &game.Rules{MatchPoints: 3, MismatchPenalty: 1, SafetyMargin: 5 * time.Millisecond},
		Seed:    11,
		History: repo,
		Version: "1.0.0",
	})
	require.NoError(t, err)
	board := m.Board()

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Sound Concentration 1.0.0"))
	}, teatest.WithDuration(3*time.Second))

	cursor := game.Position{}
	for _, p := range pairs(board) {
		for _, pos := range p {
			sendMoves(tm, cursor, pos)
			cursor = pos
			tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
			// Let the card's lock expire before the next selection.
			time.Sleep(50 * time.Millisecond)
		}
	}

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Congratulations!"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyPress("q"))
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)

	require.True(t, final.Board().Finished())
	require.Equal(t, 6, final.Board().Score())
	require.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 10*time.Millisecond)
}
