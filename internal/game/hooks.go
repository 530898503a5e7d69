package game

import "time"

// Resolution describes a settled pair.
type Resolution struct {
	Round   int
	Matched bool
	First   Position
	Second  Position
	Score   int // score after the pair was applied
}

// Result summarizes a finished round.
type Result struct {
	Round      int
	Rows       int
	Cols       int
	Score      int
	Matches    int
	Mismatches int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the round took.
func (r Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Hooks observe board lifecycle events. Every field is optional.
// Hooks run synchronously on the board's thread and must not call back
// into the board.
type Hooks struct {
	OnReset   func(round int)
	OnOpen    func(c *Card)
	OnResolve func(r Resolution)
	OnFinish  func(r Result)
}

// ChainHooks returns Hooks that invoke each of hooks in order.
func ChainHooks(hooks ...Hooks) Hooks {
	return Hooks{
		OnReset: func(round int) {
			for _, h := range hooks {
				if h.OnReset != nil {
					h.OnReset(round)
				}
			}
		},
		OnOpen: func(c *Card) {
			for _, h := range hooks {
				if h.OnOpen != nil {
					h.OnOpen(c)
				}
			}
		},
		OnResolve: func(r Resolution) {
			for _, h := range hooks {
				if h.OnResolve != nil {
					h.OnResolve(r)
				}
			}
		},
		OnFinish: func(r Result) {
			for _, h := range hooks {
				if h.OnFinish != nil {
					h.OnFinish(r)
				}
			}
		},
	}
}
