package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestTaskQueue_RunOnce(t *testing.T) {
	q := NewTaskQueue()
	calls := 0
	q.Schedule(time.Millisecond, func() { calls++ })
	require.Equal(t, 1, q.Len())

	require.True(t, q.Run(TaskDueMsg{ID: 1}))
	require.False(t, q.Run(TaskDueMsg{ID: 1}), "a task runs once")
	require.False(t, q.Run(TaskDueMsg{ID: 99}))
	require.Equal(t, 1, calls)
	require.Zero(t, q.Len())
}

func TestTaskQueue_DrainEmitsDueMessages(t *testing.T) {
	q := NewTaskQueue()
	require.Nil(t, q.Drain(), "nothing scheduled")

	q.Schedule(time.Millisecond, func() {})
	cmd := q.Drain()
	require.NotNil(t, cmd)
	require.Nil(t, q.Drain(), "pending cleared")

	// A single command is returned unwrapped by tea.Batch.
	msg := cmd()
	require.Equal(t, TaskDueMsg{ID: 1}, msg)
}

func TestTaskQueue_DrainBatches(t *testing.T) {
	q := NewTaskQueue()
	q.Schedule(time.Millisecond, func() {})
	q.Schedule(-time.Second, func() {})

	batch, ok := q.Drain()().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	got := make([]tea.Msg, 0, 2)
	for _, c := range batch {
		got = append(got, c())
	}
	require.ElementsMatch(t, []tea.Msg{TaskDueMsg{ID: 1}, TaskDueMsg{ID: 2}}, got)
}
