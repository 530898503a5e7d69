package game

import (
	"math/rand/v2"
	"time"

	"github.com/zjrosen/soundpairs/internal/log"
	"github.com/zjrosen/soundpairs/internal/sound"
)

// Rules holds the scoring and timing constants.
type Rules struct {
	MatchPoints     int           // added for a matching pair
	MismatchPenalty int           // subtracted for a mismatching pair
	SafetyMargin    time.Duration // added to the sound duration to size the lock
}

// DefaultRules returns +3 per match, -1 per mismatch and a 500ms margin.
func DefaultRules() Rules {
	return Rules{
		MatchPoints:     3,
		MismatchPenalty: 1,
		SafetyMargin:    500 * time.Millisecond,
	}
}

// Options configure a Board. Nil fields get defaults.
type Options struct {
	Rules     *Rules
	Scheduler Scheduler        // defaults to a ManualScheduler, which only runs when advanced
	Player    sound.Player     // defaults to sound.NopPlayer
	Rand      *rand.Rand       // defaults to a randomly seeded source
	Now       func() time.Time // defaults to time.Now
	Hooks     Hooks
}

// Stats counts resolved pairs in the current round.
type Stats struct {
	Matches    int
	Mismatches int
}

// Board owns the cards, the sound pool, the score, and the round lifecycle.
type Board struct {
	rows, cols int
	cards      []*Card
	sounds     []sound.Asset

	rules     Rules
	scheduler Scheduler
	player    sound.Player
	rng       *rand.Rand
	now       func() time.Time
	hooks     Hooks

	selected  []*Card
	locked    bool
	score     int
	stats     Stats
	round     int
	finished  bool
	startedAt time.Time
}

// NewBoard validates the grid against the sound pool, creates rows*cols
// cards and deals the first round. No card exists if validation fails.
func NewBoard(rows, cols int, sounds []sound.Asset, opts Options) (*Board, error) {
	if err := ValidateGrid(rows, cols, len(sounds)); err != nil {
		return nil, err
	}

	b := &Board{
		rows:      rows,
		cols:      cols,
		sounds:    append([]sound.Asset(nil), sounds...),
		rules:     DefaultRules(),
		scheduler: opts.Scheduler,
		player:    opts.Player,
		rng:       opts.Rand,
		now:       opts.Now,
		hooks:     opts.Hooks,
		selected:  make([]*Card, 0, 2),
	}
	if opts.Rules != nil {
		b.rules = *opts.Rules
	}
	if b.scheduler == nil {
		b.scheduler = NewManualScheduler()
	}
	if b.player == nil {
		b.player = sound.NopPlayer{}
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // game shuffling
	}
	if b.now == nil {
		b.now = time.Now
	}

	b.cards = make([]*Card, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			b.cards = append(b.cards, newCard(Position{Row: row, Col: col}))
		}
	}

	b.Reset()
	return b, nil
}

// Rows returns the grid height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the grid width.
func (b *Board) Cols() int { return b.cols }

// Score returns the current score.
func (b *Board) Score() int { return b.score }

// Stats returns resolved pair counts for the current round.
func (b *Board) Stats() Stats { return b.stats }

// Locked reports whether the board is refusing selections.
func (b *Board) Locked() bool { return b.locked }

// Finished reports whether every card of the round has been removed.
func (b *Board) Finished() bool { return b.finished }

// Round returns the number of resets so far, starting at 1.
func (b *Board) Round() int { return b.round }

// Rules returns the scoring and timing constants in use.
func (b *Board) Rules() Rules { return b.rules }

// Sounds returns the pool the next reset deals from.
func (b *Board) Sounds() []sound.Asset {
	return append([]sound.Asset(nil), b.sounds...)
}

// Cards returns the cards in row-major order.
func (b *Board) Cards() []*Card {
	return append([]*Card(nil), b.cards...)
}

// Card returns the card at pos, or nil when pos is off the grid.
func (b *Board) Card(pos Position) *Card {
	if pos.Row < 0 || pos.Row >= b.rows || pos.Col < 0 || pos.Col >= b.cols {
		return nil
	}
	return b.cards[pos.Row*b.cols+pos.Col]
}

// Selected returns the revealed cards awaiting resolution, at most two.
func (b *Board) Selected() []*Card {
	return append([]*Card(nil), b.selected...)
}

// SetSounds replaces the sound pool. The current layout is kept; the new
// pool is dealt at the next Reset. The pool must still cover the grid.
func (b *Board) SetSounds(sounds []sound.Asset) error {
	if err := ValidateGrid(b.rows, b.cols, len(sounds)); err != nil {
		return err
	}
	b.sounds = append([]sound.Asset(nil), sounds...)
	log.Debug(log.CatGame, "Sound pool replaced", "count", len(sounds))
	return nil
}

// Reset deals a new layout and starts a new round: every card hidden and
// enabled, nothing selected, the lock released and the score zeroed.
// Callbacks still pending from the previous round become no-ops.
func (b *Board) Reset() {
	layout, err := Pairing(b.sounds, len(b.cards), b.rng)
	if err != nil {
		// Unreachable: the pool is validated by NewBoard and SetSounds.
		log.ErrorErr(log.CatGame, "Dealing failed", err)
		return
	}

	for i, c := range b.cards {
		c.Revert()
		c.sound = layout[i]
	}

	b.selected = b.selected[:0]
	b.locked = false
	b.score = 0
	b.stats = Stats{}
	b.finished = false
	b.round++
	b.startedAt = b.now()

	log.Info(log.CatGame, "Round started", "round", b.round, "rows", b.rows, "cols", b.cols)
	if b.hooks.OnReset != nil {
		b.hooks.OnReset(b.round)
	}
}

// Select handles a player choosing the card at pos. It reports whether the
// card was opened. Selections are ignored while the board is locked, when
// the card is not hidden, or when it is disabled.
//
// The opened card's sound duration plus the safety margin sizes a lock on
// every other card. When the card completes a pair, the pair is resolved
// once that lock expires.
func (b *Board) Select(pos Position) bool {
	card := b.Card(pos)
	if card == nil || b.locked || b.finished || len(b.selected) >= 2 {
		return false
	}

	duration, ok := card.Open(b.player)
	if !ok {
		return false
	}
	b.selected = append(b.selected, card)
	b.lockOthers()

	if b.hooks.OnOpen != nil {
		b.hooks.OnOpen(card)
	}

	wait := duration + b.rules.SafetyMargin
	round := b.round

	if len(b.selected) == 1 {
		b.scheduler.Schedule(wait, func() { b.release(round, card) })
		log.Debug(log.CatGame, "Opened first card", "card", pos.String(), "lock", wait)
		return true
	}

	first, second := b.selected[0], b.selected[1]
	matched := first.sound.Same(second.sound)
	b.scheduler.Schedule(wait, func() { b.settle(round, first, second, matched) })
	log.Debug(log.CatGame, "Opened second card", "card", pos.String(), "lock", wait, "matched", matched)
	return true
}

// release ends the lock after the first card of a pair.
func (b *Board) release(round int, first *Card) {
	if round != b.round || len(b.selected) != 1 || b.selected[0] != first {
		return
	}
	b.unlockOthers()
}

// settle ends the lock after the second card and applies the pair outcome.
// Unlocking runs first so the pair's own state change is what remains.
func (b *Board) settle(round int, first, second *Card, matched bool) {
	if round != b.round || len(b.selected) != 2 || b.selected[0] != first || b.selected[1] != second {
		return
	}
	b.unlockOthers()
	if matched {
		b.resolveMatch()
	} else {
		b.resolveMismatch()
	}
}

func (b *Board) resolveMatch() {
	first, second := b.selected[0], b.selected[1]
	first.Remove()
	second.Remove()
	b.score += b.rules.MatchPoints
	b.stats.Matches++
	b.selected = b.selected[:0]

	b.notifyResolved(first, second, true)

	for _, c := range b.cards {
		if c.status != StatusRemoved {
			return
		}
	}
	b.finish()
}

func (b *Board) resolveMismatch() {
	first, second := b.selected[0], b.selected[1]
	first.Revert()
	second.Revert()
	b.score -= b.rules.MismatchPenalty
	b.stats.Mismatches++
	b.selected = b.selected[:0]

	b.notifyResolved(first, second, false)
}

func (b *Board) notifyResolved(first, second *Card, matched bool) {
	log.Debug(log.CatGame, "Pair resolved", "first", first.pos.String(), "second", second.pos.String(),
		"matched", matched, "score", b.score)
	if b.hooks.OnResolve != nil {
		b.hooks.OnResolve(Resolution{
			Round:   b.round,
			Matched: matched,
			First:   first.pos,
			Second:  second.pos,
			Score:   b.score,
		})
	}
}

func (b *Board) finish() {
	b.finished = true
	result := Result{
		Round:      b.round,
		Rows:       b.rows,
		Cols:       b.cols,
		Score:      b.score,
		Matches:    b.stats.Matches,
		Mismatches: b.stats.Mismatches,
		StartedAt:  b.startedAt,
		FinishedAt: b.now(),
	}
	log.Info(log.CatGame, "Round finished", "round", b.round, "score", b.score)
	if b.hooks.OnFinish != nil {
		b.hooks.OnFinish(result)
	}
}

func (b *Board) isSelected(c *Card) bool {
	for _, s := range b.selected {
		if s == c {
			return true
		}
	}
	return false
}

// lockOthers engages the board lock and disables every unselected card.
func (b *Board) lockOthers() {
	b.locked = true
	for _, c := range b.cards {
		if !b.isSelected(c) {
			c.Lock()
		}
	}
}

// unlockOthers releases the board lock and re-enables every unselected card.
func (b *Board) unlockOthers() {
	b.locked = false
	for _, c := range b.cards {
		if !b.isSelected(c) {
			c.Unlock()
		}
	}
}
