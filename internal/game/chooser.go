package game

import (
	"context"
	"fmt"

	"github.com/lox/dominoes/internal/tile"
)

// Side names an open end of the board.
type Side int

const (
	// SideAuto lets the match pick an end. When a tile fits both ends the
	// match plays it on the right.
	SideAuto Side = iota
	SideLeft
	SideRight
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case SideAuto:
		return "auto"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Move is a chooser's answer to a move request. A nil Tile means no play:
// the match then draws for the player, or passes once the boneyard is
// empty.
type Move struct {
	Tile *tile.Tile
	Side Side
}

// IsPlay reports whether the move places a tile.
func (m Move) IsPlay() bool {
	return m.Tile != nil
}

// MoveRequest is the read-only view a chooser decides from. Choosers never
// see the board or boneyard themselves, only snapshots and counts.
type MoveRequest struct {
	Board         BoardSnapshot
	Hand          []*tile.Tile
	Playable      []*tile.Tile
	BoneyardCount int

	// Rejected carries the reason the previous selection was refused when
	// the same player is prompted again. Nil on a first prompt.
	Rejected error
}

// CanPlay reports whether t is in the request's playable set.
func (r MoveRequest) CanPlay(t *tile.Tile) bool {
	for _, p := range r.Playable {
		if p == t {
			return true
		}
	}
	return false
}

// Validate classifies a move against the request: nil for an acceptable
// move, ErrTileNotInHand or ErrIllegalPlacement otherwise. The match
// re-validates against live state; this is the early check used when a move
// is submitted from outside.
func (r MoveRequest) Validate(mv Move) error {
	if mv.Tile == nil {
		return nil
	}
	held := false
	for _, t := range r.Hand {
		if t == mv.Tile {
			held = true
			break
		}
	}
	if !held {
		return fmt.Errorf("%w: %s", ErrTileNotInHand, mv.Tile)
	}
	if !r.CanPlay(mv.Tile) {
		return fmt.Errorf("%w: %s fits neither open end", ErrIllegalPlacement, mv.Tile)
	}
	return nil
}

// Chooser decides one move for one player. Implementations receive
// immutable state and must not mutate anything reachable from the request.
// ChooseMove may block (interactive play); cancelling ctx abandons the turn
// with no state change, so the same turn can be attempted again.
type Chooser interface {
	ChooseMove(ctx context.Context, req MoveRequest) (Move, error)
}
