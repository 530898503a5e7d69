package history

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundpairs/internal/game"
)

func TestFromGame(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := FromGame(game.Result{
		Round:      2,
		Rows:       4,
		Cols:       4,
		Score:      19,
		Matches:    8,
		Mismatches: 5,
		StartedAt:  start,
		FinishedAt: start.Add(95 * time.Second),
	})

	_, err := uuid.Parse(r.GUID)
	require.NoError(t, err, "GUID should be a UUID")
	assert.Zero(t, r.ID)
	assert.Equal(t, 19, r.Score)
	assert.Equal(t, 8, r.Matches)
	assert.Equal(t, 5, r.Mismatches)
	assert.Equal(t, "4x4", r.Grid())
	assert.Equal(t, 95*time.Second, r.Duration())
}

func TestFromGame_UniqueGUIDs(t *testing.T) {
	a := FromGame(game.Result{})
	b := FromGame(game.Result{})
	assert.NotEqual(t, a.GUID, b.GUID)
}

func TestResultNotFoundError(t *testing.T) {
	var err error = &ResultNotFoundError{GUID: "abc"}
	assert.Equal(t, `result not found: guid="abc"`, err.Error())

	var target *ResultNotFoundError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "abc", target.GUID)
}
