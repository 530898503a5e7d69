package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestProperty_PairingUsesEachSoundTwice checks that any valid grid and pool
// yields exactly cards/2 distinct sounds, each on exactly two cards.
func TestProperty_PairingUsesEachSoundTwice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.IntRange(1, 8).Draw(t, "rows")
		cols := rapid.IntRange(1, 8).Draw(t, "cols")
		if (rows*cols)%2 != 0 {
			cols++
		}
		cards := rows * cols
		poolSize := rapid.IntRange(cards/2, cards/2+10).Draw(t, "poolSize")
		seed := rapid.Uint64().Draw(t, "seed")

		b, err := NewBoard(rows, cols, makeSounds(poolSize), Options{Rand: rand.New(rand.NewPCG(seed, seed))})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		counts := map[string]int{}
		for _, c := range b.Cards() {
			if c.Sound().IsZero() {
				t.Fatalf("card %s has no sound", c.Position())
			}
			counts[c.Sound().Path]++
		}
		if len(counts) != cards/2 {
			t.Fatalf("got %d distinct sounds, want %d", len(counts), cards/2)
		}
		for path, n := range counts {
			if n != 2 {
				t.Fatalf("sound %s used %d times", path, n)
			}
		}
	})
}

// TestProperty_ValidationMatchesRules checks construction errors against the
// even-count and pool-size rules.
func TestProperty_ValidationMatchesRules(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.IntRange(-1, 7).Draw(t, "rows")
		cols := rapid.IntRange(-1, 7).Draw(t, "cols")
		poolSize := rapid.IntRange(0, 30).Draw(t, "poolSize")

		_, err := NewBoard(rows, cols, makeSounds(poolSize), Options{})

		switch {
		case rows <= 0 || cols <= 0 || (rows*cols)%2 != 0:
			if err == nil || !isErr(err, ErrInvalidBoardSize) {
				t.Fatalf("want ErrInvalidBoardSize, got %v", err)
			}
		case rows*cols > 2*poolSize:
			if err == nil || !isErr(err, ErrInsufficientAssets) {
				t.Fatalf("want ErrInsufficientAssets, got %v", err)
			}
		default:
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	})
}

func TestPairing_DeterministicForSeed(t *testing.T) {
	pool := makeSounds(10)
	a, err := Pairing(pool, 12, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)
	b, err := Pairing(pool, 12, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestPairing_Errors(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	_, err := Pairing(makeSounds(4), 3, rng)
	require.ErrorIs(t, err, ErrInvalidBoardSize)
	require.EqualError(t, err, "invalid board size: 3 cards cannot be paired")

	_, err = Pairing(makeSounds(4), 0, rng)
	require.EqualError(t, err, "invalid board size: 0 cards cannot be paired")

	_, err = Pairing(makeSounds(4), 10, rng)
	require.ErrorIs(t, err, ErrInsufficientAssets)
}

func isErr(err, target error) bool {
	return errors.Is(err, target)
}
