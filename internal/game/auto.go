package game

import (
	"context"
	rand "math/rand/v2"
)

// Auto plays the first playable tile found in a randomized scan of the hand
// and otherwise asks to draw. It is pure and synchronous: no waiting, no
// errors, and with a fixed RNG the same request always yields the same
// move. Side selection is left to the match.
type Auto struct {
	rng *rand.Rand
}

// NewAuto creates an automatic chooser. The RNG is the only source of
// variety, so it is required.
func NewAuto(rng *rand.Rand) *Auto {
	if rng == nil {
		panic("rng is required for automatic play")
	}
	return &Auto{rng: rng}
}

// ChooseMove implements Chooser.
func (a *Auto) ChooseMove(_ context.Context, req MoveRequest) (Move, error) {
	for _, i := range a.rng.Perm(len(req.Hand)) {
		if t := req.Hand[i]; req.CanPlay(t) {
			return Move{Tile: t}, nil
		}
	}
	return Move{}, nil
}
