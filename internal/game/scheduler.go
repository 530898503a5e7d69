package game

import (
	"sort"
	"time"
)

// Scheduler runs fn once after delay, on the same logical thread that
// mutates the board. Schedule must return without waiting.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// ManualScheduler is a Scheduler driven by a virtual clock. Tasks run only
// when Advance moves the clock past their deadline; tasks sharing a deadline
// run in the order they were scheduled.
type ManualScheduler struct {
	now   time.Duration
	seq   int
	tasks []manualTask
}

type manualTask struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManualScheduler creates a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) {
	s.seq++
	s.tasks = append(s.tasks, manualTask{at: s.now + max(delay, 0), seq: s.seq, fn: fn})
}

// Now returns the virtual clock.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns how many tasks have not run yet.
func (s *ManualScheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by d and runs every task that became due,
// including tasks scheduled by those tasks within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		idx := s.nextDue(target)
		if idx < 0 {
			break
		}
		task := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		s.now = task.at
		task.fn()
	}
	s.now = target
}

// RunAll advances the clock until no tasks remain.
func (s *ManualScheduler) RunAll() {
	for len(s.tasks) > 0 {
		sort.Slice(s.tasks, func(i, j int) bool { return s.less(s.tasks[i], s.tasks[j]) })
		s.Advance(s.tasks[len(s.tasks)-1].at - s.now)
	}
}

func (s *ManualScheduler) nextDue(limit time.Duration) int {
	best := -1
	for i, t := range s.tasks {
		if t.at > limit {
			continue
		}
		if best < 0 || s.less(t, s.tasks[best]) {
			best = i
		}
	}
	return best
}

func (s *ManualScheduler) less(a, b manualTask) bool {
	if a.at != b.at {
		return a.at < b.at
	}
	return a.seq < b.seq
}
