package game

import (
	"fmt"
	"strings"

	"github.com/lox/dominoes/internal/tile"
)

// Board is the chain of placed tiles. Placement legality depends only on
// the open pip at each end; the chain itself is kept so the full layout can
// be rendered and audited.
type Board struct {
	tiles []*tile.Tile
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Ends returns the open pip at each end of the chain. ok is false while the
// board is empty; 0 is a legal pip, so there is no sentinel value.
func (b *Board) Ends() (left, right int, ok bool) {
	if len(b.tiles) == 0 {
		return 0, 0, false
	}
	return b.tiles[0].Left(), b.tiles[len(b.tiles)-1].Right(), true
}

// CanPlace reports whether t matches either open end. Any tile opens an
// empty board.
func (b *Board) CanPlace(t *tile.Tile) bool {
	left, right, ok := b.Ends()
	if !ok {
		return true
	}
	return t.Matches(left) || t.Matches(right)
}

// fits reports whether t is legal at the named end, without mutating
// anything. SideAuto never fits: callers resolve it to a concrete end first.
func (b *Board) fits(t *tile.Tile, side Side) bool {
	left, right, ok := b.Ends()
	if !ok {
		return side == SideLeft || side == SideRight
	}
	switch side {
	case SideLeft:
		return t.Matches(left)
	case SideRight:
		return t.Matches(right)
	default:
		return false
	}
}

// Place adds t at the named end, flipping it if needed so the matching pip
// faces the chain and the other pip becomes the new open end. A rejection
// leaves both board and tile untouched. The board only validates sides;
// resolving SideAuto is the match's job.
func (b *Board) Place(t *tile.Tile, side Side) error {
	if len(b.tiles) == 0 {
		// First tile keeps its constructed orientation and opens both ends.
		b.tiles = append(b.tiles, t)
		return nil
	}

	left, right, _ := b.Ends()
	switch side {
	case SideLeft:
		if !t.Matches(left) {
			return fmt.Errorf("%w: %s against open end %d", ErrIllegalPlacement, t, left)
		}
		// A prepended tile touches the chain with its right side.
		if t.Right() != left {
			t.Flip()
		}
		b.tiles = append([]*tile.Tile{t}, b.tiles...)
	case SideRight:
		if !t.Matches(right) {
			return fmt.Errorf("%w: %s against open end %d", ErrIllegalPlacement, t, right)
		}
		// An appended tile touches the chain with its left side.
		if t.Left() != right {
			t.Flip()
		}
		b.tiles = append(b.tiles, t)
	default:
		return fmt.Errorf("%w: no %s end to place against", ErrIllegalPlacement, side)
	}

	b.auditChain()
	return nil
}

// auditChain verifies that adjacent pips still agree. A failure can only
// mean engine corruption, never caller error.
func (b *Board) auditChain() {
	for i := 1; i < len(b.tiles); i++ {
		if b.tiles[i-1].Right() != b.tiles[i].Left() {
			panic(fmt.Sprintf("game: board chain broken between %s and %s",
				b.tiles[i-1], b.tiles[i]))
		}
	}
}

// Tiles returns the placed sequence as value snapshots in placed
// orientation.
func (b *Board) Tiles() []tile.Pair {
	out := make([]tile.Pair, len(b.tiles))
	for i, t := range b.tiles {
		out[i] = t.Pips()
	}
	return out
}

// Len returns the number of placed tiles.
func (b *Board) Len() int {
	return len(b.tiles)
}

// Empty reports whether nothing has been placed yet.
func (b *Board) Empty() bool {
	return len(b.tiles) == 0
}

// Snapshot captures the board for choosers and UIs.
func (b *Board) Snapshot() BoardSnapshot {
	left, right, ok := b.Ends()
	return BoardSnapshot{
		Tiles:    b.Tiles(),
		LeftEnd:  left,
		RightEnd: right,
		Empty:    !ok,
	}
}

// BoardSnapshot is an immutable view of the chain. LeftEnd and RightEnd are
// only meaningful when Empty is false.
type BoardSnapshot struct {
	Tiles    []tile.Pair
	LeftEnd  int
	RightEnd int
	Empty    bool
}

// Len returns the number of placed tiles in the snapshot.
func (s BoardSnapshot) Len() int {
	return len(s.Tiles)
}

// String renders the chain left to right, e.g. "[2|3][3|3][3|5]".
func (s BoardSnapshot) String() string {
	if s.Empty {
		return "(empty board)"
	}
	var sb strings.Builder
	for _, p := range s.Tiles {
		sb.WriteString(p.String())
	}
	return sb.String()
}
