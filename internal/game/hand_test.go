package game

import (
	"errors"
	"slices"
	"testing"

	"github.com/lox/dominoes/internal/tile"
)

func TestHandAddRemove(t *testing.T) {
	t.Parallel()
	h := NewHand()
	t1 := tile.MustNew(2, 5)
	t2 := tile.MustNew(3, 3)
	h.Add(t1)
	h.Add(t2)

	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	if !h.Contains(t1) {
		t.Error("Hand should contain the added tile")
	}

	if err := h.Remove(t1); err != nil {
		t.Fatalf("Removing held tile: %v", err)
	}
	if h.Contains(t1) {
		t.Error("Removed tile still reported as held")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d after removal, want 1", h.Len())
	}
}

func TestHandRemoveMatchesByIdentity(t *testing.T) {
	t.Parallel()
	h := NewHand()
	held := tile.MustNew(2, 5)
	h.Add(held)

	// A distinct tile with the same pips is not the held one.
	twin := tile.MustNew(2, 5)
	if err := h.Remove(twin); !errors.Is(err, ErrTileNotInHand) {
		t.Fatalf("Expected ErrTileNotInHand for a twin tile, got %v", err)
	}
	if h.Len() != 1 {
		t.Errorf("Failed removal should leave the hand untouched, Len = %d", h.Len())
	}
}

func TestHandEmpty(t *testing.T) {
	t.Parallel()
	h := NewHand()
	if !h.Empty() {
		t.Error("New hand should be empty")
	}
	t1 := tile.MustNew(0, 0)
	h.Add(t1)
	if h.Empty() {
		t.Error("Hand with a tile should not be empty")
	}
	h.Remove(t1)
	if !h.Empty() {
		t.Error("Hand should be empty after playing its last tile")
	}
}

func TestHandScore(t *testing.T) {
	t.Parallel()
	h := NewHand()
	if h.Score() != 0 {
		t.Errorf("Empty hand score = %d, want 0", h.Score())
	}
	h.Add(tile.MustNew(2, 5))
	h.Add(tile.MustNew(0, 0))
	h.Add(tile.MustNew(6, 6))
	if h.Score() != 19 {
		t.Errorf("Score = %d, want 19", h.Score())
	}
}

func TestHandPlayable(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	b.Place(tile.MustNew(2, 5), SideRight)

	h := NewHand()
	t22 := tile.MustNew(2, 2)
	t56 := tile.MustNew(5, 6)
	t13 := tile.MustNew(1, 3)
	h.Add(t22)
	h.Add(t56)
	h.Add(t13)

	got := slices.Collect(h.Playable(b))
	if len(got) != 2 {
		t.Fatalf("Playable returned %d tiles, want 2", len(got))
	}
	if !slices.Contains(got, t22) || !slices.Contains(got, t56) {
		t.Errorf("Playable = %v, want [2|2] and [5|6]", got)
	}
	if slices.Contains(got, t13) {
		t.Error("[1|3] matches neither end and should not be playable")
	}
}

func TestHandPlayableEmptyBoard(t *testing.T) {
	t.Parallel()
	h := NewHand()
	h.Add(tile.MustNew(1, 3))
	h.Add(tile.MustNew(6, 6))

	got := slices.Collect(h.Playable(NewBoard()))
	if len(got) != 2 {
		t.Errorf("Every tile should open an empty board, got %d playable", len(got))
	}
}

func TestHandHasPlayable(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	b.Place(tile.MustNew(2, 5), SideRight)

	h := NewHand()
	h.Add(tile.MustNew(1, 3))
	if h.HasPlayable(b) {
		t.Error("[1|3] against ends 2 and 5 should not be playable")
	}
	h.Add(tile.MustNew(5, 6))
	if !h.HasPlayable(b) {
		t.Error("[5|6] against end 5 should be playable")
	}
}

func TestHandTilesReturnsCopy(t *testing.T) {
	t.Parallel()
	h := NewHand()
	h.Add(tile.MustNew(2, 5))

	tiles := h.Tiles()
	tiles[0] = nil
	if h.Tiles()[0] == nil {
		t.Error("Mutating the returned slice should not affect the hand")
	}
}

func TestHandString(t *testing.T) {
	t.Parallel()
	h := NewHand()
	h.Add(tile.MustNew(6, 6))
	h.Add(tile.MustNew(0, 3))
	h.Add(tile.MustNew(2, 5))

	if got := h.String(); got != "[0|3] [2|5] [6|6]" {
		t.Errorf("String = %q, want %q", got, "[0|3] [2|5] [6|6]")
	}
}
