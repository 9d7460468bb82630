// Package tile models double-six dominoes: the tiles themselves and the
// shuffled boneyard they are drawn from.
package tile

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxPip is the highest pip value in a double-six set.
	MaxPip = 6
	// SetSize is the number of unique tiles in a double-six set.
	SetSize = 28
	// HandSize is the traditional initial hand size.
	HandSize = 7
)

// ErrInvalidPip rejects pip values outside 0..MaxPip.
var ErrInvalidPip = errors.New("pip value out of range")

// Tile is a single domino. Tiles are identity-bearing: the same *Tile moves
// from boneyard to hand to board. Orientation (which pip is exposed on
// which side) is mutable via Flip; the pip values themselves never change.
type Tile struct {
	left, right int
}

// New creates a tile with the given pips in the given orientation.
func New(left, right int) (*Tile, error) {
	if left < 0 || left > MaxPip {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPip, left)
	}
	if right < 0 || right > MaxPip {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPip, right)
	}
	return &Tile{left: left, right: right}, nil
}

// MustNew is New but panics on invalid pips. For fixtures and tests.
func MustNew(left, right int) *Tile {
	t, err := New(left, right)
	if err != nil {
		panic(err)
	}
	return t
}

// Left returns the pip currently exposed on the left side.
func (t *Tile) Left() int { return t.left }

// Right returns the pip currently exposed on the right side.
func (t *Tile) Right() int { return t.right }

// Flip swaps the exposed sides. Flipping a double changes nothing
// observable but is still legal.
func (t *Tile) Flip() {
	t.left, t.right = t.right, t.left
}

// Matches reports whether either side shows v.
func (t *Tile) Matches(v int) bool {
	return t.left == v || t.right == v
}

// IsDouble reports whether both sides show the same pip.
func (t *Tile) IsDouble() bool {
	return t.left == t.right
}

// PipTotal is the tile's scoring weight: the sum of both pips.
func (t *Tile) PipTotal() int {
	return t.left + t.right
}

// Pips returns the current orientation as a value snapshot.
func (t *Tile) Pips() Pair {
	return Pair{Left: t.left, Right: t.right}
}

// String renders the tile in its current orientation, e.g. "[3|5]".
func (t *Tile) String() string {
	return fmt.Sprintf("[%d|%d]", t.left, t.right)
}

// Parse reads a tile from "[3|5]" or "3-5" notation.
func Parse(s string) (*Tile, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")

	var sep string
	switch {
	case strings.Contains(trimmed, "|"):
		sep = "|"
	case strings.Contains(trimmed, "-"):
		sep = "-"
	default:
		return nil, fmt.Errorf("invalid tile notation %q", s)
	}

	parts := strings.SplitN(trimmed, sep, 2)
	var left, right int
	if _, err := fmt.Sscanf(parts[0], "%d", &left); err != nil {
		return nil, fmt.Errorf("invalid tile notation %q: %w", s, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &right); err != nil {
		return nil, fmt.Errorf("invalid tile notation %q: %w", s, err)
	}
	return New(left, right)
}

// Pair is a value snapshot of a tile's pips in a fixed orientation. Board
// snapshots are built from Pairs so callers can never mutate placed tiles.
type Pair struct {
	Left, Right int
}

// String renders the pair in tile notation.
func (p Pair) String() string {
	return fmt.Sprintf("[%d|%d]", p.Left, p.Right)
}

// PipTotal is the sum of both pips.
func (p Pair) PipTotal() int {
	return p.Left + p.Right
}
