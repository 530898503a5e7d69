// Package history defines finished-game records and the repository that
// stores them.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/soundpairs/internal/game"
)

// Result is one finished round.
type Result struct {
	ID         int64 // zero until saved
	GUID       string
	Rows       int
	Cols       int
	Score      int
	Matches    int
	Mismatches int
	StartedAt  time.Time
	FinishedAt time.Time
}

// FromGame converts a board result into a record with a fresh GUID.
func FromGame(r game.Result) *Result {
	return &Result{
		GUID:       uuid.NewString(),
		Rows:       r.Rows,
		Cols:       r.Cols,
		Score:      r.Score,
		Matches:    r.Matches,
		Mismatches: r.Mismatches,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

// Grid returns the board size as "RxC".
func (r *Result) Grid() string {
	return fmt.Sprintf("%dx%d", r.Rows, r.Cols)
}

// Duration returns how long the round took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Repository persists results.
type Repository interface {
	// Save inserts r and sets its ID.
	Save(r *Result) error

	// FindByGUID returns ResultNotFoundError when no row matches.
	FindByGUID(guid string) (*Result, error)

	// Recent returns up to limit results, newest first.
	Recent(limit int) ([]*Result, error)

	// Best returns up to limit results for a grid size, highest score
	// first, ties broken by the faster round.
	Best(rows, cols, limit int) ([]*Result, error)
}

// ResultNotFoundError indicates no result has the requested GUID.
type ResultNotFoundError struct {
	GUID string
}

// Error implements the error interface.
func (e *ResultNotFoundError) Error() string {
	return fmt.Sprintf("result not found: guid=%q", e.GUID)
}
