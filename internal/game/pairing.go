package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/zjrosen/soundpairs/internal/sound"
)

// Pairing picks cards/2 distinct sounds from pool uniformly at random and
// returns a layout of length cards in which each picked sound appears
// exactly twice, in uniformly random positions.
//
// The doubled multiset is shuffled once and read off in order, so the layout
// is fully determined by rng's state.
func Pairing(pool []sound.Asset, cards int, rng *rand.Rand) ([]sound.Asset, error) {
	if cards <= 0 || cards%2 != 0 {
		return nil, fmt.Errorf("%w: %d cards cannot be paired", ErrInvalidBoardSize, cards)
	}
	if cards > 2*len(pool) {
		return nil, &InsufficientAssetsError{Cards: cards, Available: len(pool)}
	}

	picked := rng.Perm(len(pool))[:cards/2]
	layout := make([]sound.Asset, 0, cards)
	for _, idx := range picked {
		layout = append(layout, pool[idx], pool[idx])
	}
	rng.Shuffle(len(layout), func(i, j int) {
		layout[i], layout[j] = layout[j], layout[i]
	})
	return layout, nil
}
