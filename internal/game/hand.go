package game

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/lox/dominoes/internal/tile"
)

// Hand is one player's unordered tiles.
type Hand struct {
	tiles []*tile.Tile
}

// NewHand creates an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// Add puts t into the hand.
func (h *Hand) Add(t *tile.Tile) {
	h.tiles = append(h.tiles, t)
}

// Remove takes t out of the hand, matching by identity. The hand is
// untouched when t is absent.
func (h *Hand) Remove(t *tile.Tile) error {
	for i, held := range h.tiles {
		if held == t {
			h.tiles = append(h.tiles[:i], h.tiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTileNotInHand, t)
}

// Contains reports whether t (by identity) is held.
func (h *Hand) Contains(t *tile.Tile) bool {
	for _, held := range h.tiles {
		if held == t {
			return true
		}
	}
	return false
}

// Len returns the number of held tiles.
func (h *Hand) Len() int {
	return len(h.tiles)
}

// Empty reports whether the hand has been played out.
func (h *Hand) Empty() bool {
	return len(h.tiles) == 0
}

// Tiles returns a copy of the container. The tiles themselves are shared;
// only the match moves them between boneyard, hand, and board.
func (h *Hand) Tiles() []*tile.Tile {
	out := make([]*tile.Tile, len(h.tiles))
	copy(out, h.tiles)
	return out
}

// Score is the hand's pip total, the player's penalty when a match ends.
func (h *Hand) Score() int {
	total := 0
	for _, t := range h.tiles {
		total += t.PipTotal()
	}
	return total
}

// Playable lazily yields the held tiles that fit the board's current open
// ends.
func (h *Hand) Playable(b *Board) iter.Seq[*tile.Tile] {
	return func(yield func(*tile.Tile) bool) {
		for _, t := range h.tiles {
			if b.CanPlace(t) {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// HasPlayable reports whether any held tile fits the board.
func (h *Hand) HasPlayable(b *Board) bool {
	for range h.Playable(b) {
		return true
	}
	return false
}

// String renders the hand sorted by notation, e.g. "[0|3] [2|5] [6|6]".
func (h *Hand) String() string {
	parts := make([]string, len(h.tiles))
	for i, t := range h.tiles {
		parts[i] = t.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
