package tile

import (
	"fmt"
	rand "math/rand/v2"
)

// Boneyard is the face-down draw pile. It starts holding the full
// double-six set and only ever shrinks.
type Boneyard struct {
	tiles []*Tile
}

// NewBoneyard builds the full 28-tile set and shuffles it with rng. A nil
// rng leaves the pile in construction order, which gives tests a
// deterministic layout.
func NewBoneyard(rng *rand.Rand) *Boneyard {
	b := &Boneyard{tiles: make([]*Tile, 0, SetSize)}
	for low := 0; low <= MaxPip; low++ {
		for high := low; high <= MaxPip; high++ {
			b.tiles = append(b.tiles, &Tile{left: low, right: high})
		}
	}
	if len(b.tiles) != SetSize {
		panic(fmt.Sprintf("tile: boneyard built %d tiles, want %d", len(b.tiles), SetSize))
	}
	if rng != nil {
		b.Shuffle(rng)
	}
	return b
}

// Shuffle re-permutes the remaining pile using Fisher-Yates.
func (b *Boneyard) Shuffle(rng *rand.Rand) {
	for i := len(b.tiles) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	}
}

// Draw removes and returns the next tile. ok is false once the pile is
// empty; exhaustion is a normal signal, never an error.
func (b *Boneyard) Draw() (*Tile, bool) {
	if len(b.tiles) == 0 {
		return nil, false
	}
	t := b.tiles[0]
	b.tiles = b.tiles[1:]
	return t, true
}

// Remaining returns the number of tiles left in the pile.
func (b *Boneyard) Remaining() int {
	return len(b.tiles)
}

// IsEmpty reports whether the pile is exhausted.
func (b *Boneyard) IsEmpty() bool {
	return len(b.tiles) == 0
}
