package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TaskDueMsg reports that a scheduled board callback is due.
type TaskDueMsg struct {
	ID uint64
}

// TaskQueue implements game.Scheduler on top of the Bubble Tea event loop.
// Schedule only records the task; Drain turns recorded tasks into tick
// commands and Run executes a task when its TaskDueMsg arrives in Update,
// so callbacks never race with key handling.
type TaskQueue struct {
	next    uint64
	tasks   map[uint64]func()
	pending []pendingTask
}

type pendingTask struct {
	id    uint64
	delay time.Duration
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{tasks: make(map[uint64]func())}
}

// Schedule implements game.Scheduler.
func (q *TaskQueue) Schedule(delay time.Duration, fn func()) {
	q.next++
	q.tasks[q.next] = fn
	q.pending = append(q.pending, pendingTask{id: q.next, delay: max(delay, 0)})
}

// Drain returns tick commands for every task scheduled since the last call.
func (q *TaskQueue) Drain() tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(q.pending))
	for _, p := range q.pending {
		id := p.id
		cmds = append(cmds, tea.Tick(p.delay, func(time.Time) tea.Msg {
			return TaskDueMsg{ID: id}
		}))
	}
	q.pending = q.pending[:0]
	return tea.Batch(cmds...)
}

// Run executes and forgets the task behind msg. It reports false for an
// unknown or already-run task.
func (q *TaskQueue) Run(msg TaskDueMsg) bool {
	fn, ok := q.tasks[msg.ID]
	if !ok {
		return false
	}
	delete(q.tasks, msg.ID)
	fn()
	return true
}

// Len returns how many tasks have not run yet.
func (q *TaskQueue) Len() int {
	return len(q.tasks)
}
