package game

import (
	"fmt"
	"time"

	"github.com/zjrosen/soundpairs/internal/log"
	"github.com/zjrosen/soundpairs/internal/sound"
)

// Status is the visible state of a card within a round.
type Status int

const (
	// StatusHidden is face down and selectable.
	StatusHidden Status = iota
	// StatusRevealed is face up, its sound playing or awaiting pair resolution.
	StatusRevealed
	// StatusRemoved is matched and out of play until the next reset.
	StatusRemoved
)

// String returns a human-readable representation of the Status.
func (s Status) String() string {
	switch s {
	case StatusHidden:
		return "hidden"
	case StatusRevealed:
		return "revealed"
	case StatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Position identifies a card cell on the grid.
type Position struct {
	Row int
	Col int
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Card is one grid cell bound to a sound for the current round.
//
// Status and the interaction flag are independent: Lock and Unlock never
// change status, and a removed card stays disabled whatever Unlock says.
type Card struct {
	pos     Position
	sound   sound.Asset
	status  Status
	enabled bool
}

func newCard(pos Position) *Card {
	return &Card{pos: pos, enabled: true}
}

// Position returns the card's grid cell.
func (c *Card) Position() Position { return c.pos }

// Sound returns the sound bound for the current round.
func (c *Card) Sound() sound.Asset { return c.sound }

// Status returns the card's visible state.
func (c *Card) Status() Status { return c.status }

// Enabled reports whether the card currently accepts interaction.
func (c *Card) Enabled() bool { return c.enabled }

// CanOpen reports whether Open would succeed.
func (c *Card) CanOpen() bool {
	return c.status == StatusHidden && c.enabled
}

// Open reveals the card and starts its sound without waiting for playback.
// It returns the sound's duration and true, or 0 and false when the card is
// not hidden or not enabled. A card with no sound opens with duration 0.
func (c *Card) Open(p sound.Player) (time.Duration, bool) {
	if !c.CanOpen() {
		return 0, false
	}
	c.status = StatusRevealed

	if c.sound.IsZero() {
		return 0, true
	}
	if p != nil {
		if err := p.Play(c.sound); err != nil {
			log.ErrorErr(log.CatSound, "Playback failed", err, "card", c.pos.String(), "sound", c.sound.Name)
		}
	}
	return c.sound.Duration, true
}

// Revert turns the card face down and re-enables it.
// Valid from any status; a removed card comes back only through a reset.
func (c *Card) Revert() {
	c.status = StatusHidden
	c.enabled = true
}

// Remove takes a revealed card out of play. It reports false, changing
// nothing, when the card is not revealed.
func (c *Card) Remove() bool {
	if c.status != StatusRevealed {
		return false
	}
	c.status = StatusRemoved
	c.enabled = false
	return true
}

// Lock disables interaction.
func (c *Card) Lock() {
	c.enabled = false
}

// Unlock enables interaction unless the card was removed.
func (c *Card) Unlock() {
	if c.status == StatusRemoved {
		return
	}
	c.enabled = true
}
