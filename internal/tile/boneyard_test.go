package tile

import (
	"testing"

	"github.com/lox/dominoes/internal/randutil"
)

// pairKey normalizes a tile to its unordered pip pair.
func pairKey(t *Tile) [2]int {
	lo, hi := t.Left(), t.Right()
	if lo > hi {
		lo, hi = hi, lo
	}
	return [2]int{lo, hi}
}

func TestNewBoneyardFullSet(t *testing.T) {
	b := NewBoneyard(nil)

	if b.Remaining() != SetSize {
		t.Fatalf("Remaining() = %d, want %d", b.Remaining(), SetSize)
	}

	seen := make(map[[2]int]bool)
	for {
		tile, ok := b.Draw()
		if !ok {
			break
		}
		key := pairKey(tile)
		if seen[key] {
			t.Errorf("duplicate tile %s in boneyard", tile)
		}
		seen[key] = true
	}

	if len(seen) != SetSize {
		t.Errorf("boneyard held %d unique tiles, want %d", len(seen), SetSize)
	}
}

func TestNewBoneyardUnshuffledOrder(t *testing.T) {
	// A nil rng leaves the construction order intact: [0|0], [0|1], ...
	b := NewBoneyard(nil)

	first, ok := b.Draw()
	if !ok || first.Left() != 0 || first.Right() != 0 {
		t.Errorf("first unshuffled draw = %v, want [0|0]", first)
	}
	second, ok := b.Draw()
	if !ok || second.Left() != 0 || second.Right() != 1 {
		t.Errorf("second unshuffled draw = %v, want [0|1]", second)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	drawAll := func(seed int64) []string {
		b := NewBoneyard(randutil.New(seed))
		var order []string
		for {
			tile, ok := b.Draw()
			if !ok {
				return order
			}
			order = append(order, tile.String())
		}
	}

	first := drawAll(42)
	second := drawAll(42)
	if len(first) != SetSize || len(second) != SetSize {
		t.Fatalf("expected %d draws, got %d and %d", SetSize, len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed diverged at draw %d: %s vs %s", i, first[i], second[i])
		}
	}

	other := drawAll(43)
	same := true
	for i := range first {
		if first[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 42 and 43 produced identical draw orders")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	b := NewBoneyard(randutil.New(7))

	seen := make(map[[2]int]bool)
	for {
		tile, ok := b.Draw()
		if !ok {
			break
		}
		seen[pairKey(tile)] = true
	}

	if len(seen) != SetSize {
		t.Errorf("shuffle lost tiles: %d unique, want %d", len(seen), SetSize)
	}
}

func TestDrawExhaustion(t *testing.T) {
	b := NewBoneyard(randutil.New(1))

	for i := 0; i < SetSize; i++ {
		if b.IsEmpty() {
			t.Fatalf("boneyard empty after %d draws", i)
		}
		if _, ok := b.Draw(); !ok {
			t.Fatalf("draw %d failed with tiles remaining", i)
		}
	}

	if !b.IsEmpty() {
		t.Errorf("boneyard not empty after %d draws", SetSize)
	}
	if b.Remaining() != 0 {
		t.Errorf("Remaining() = %d after exhaustion, want 0", b.Remaining())
	}
	tile, ok := b.Draw()
	if ok || tile != nil {
		t.Errorf("draw from empty boneyard = (%v, %v), want (nil, false)", tile, ok)
	}
}
