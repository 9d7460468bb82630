// Package game implements the rules engine for draw dominoes.
//
// The main type is Match, which manages one complete game: dealing from a
// shuffled boneyard, the turn rotation, placement legality on the board
// chain, draw-then-pass semantics, block detection, and final scoring.
//
// # Basic Usage
//
// Create a match, deal, and run turns until play ends:
//
//	m, err := game.NewMatch([]game.Seat{{Name: "Alice"}, {Name: "Bob"}})
//	// Deal hands and start play
//	m.Deal()
//	for !m.State().Terminal() {
//	    m.AttemptTurn(ctx)
//	}
//	result, err := m.Resolve()
//
// A Seat with a nil Chooser plays automatically from the match RNG. Supply
// a Chooser to drive a seat yourself; Interactive adapts a request/submit
// channel pair for UIs.
//
// # Deterministic Testing
//
// The shuffle and every automatic choice derive from a single seed, so a
// seeded match replays identically:
//
//	m, err := game.NewMatch(seats, game.WithSeed(42))
//
// # Architecture
//
// Match delegates responsibilities to specialized components:
//   - Board: Maintains the tile chain and validates placements
//   - Hand: Tracks a player's tiles and finds playable ones
//   - tile.Boneyard: Provides the shuffled draw pile with RNG injection
//   - Chooser: Decides moves; Auto and Interactive are the two built-ins
//   - EventBus: Broadcasts match events to subscribers
//
// Commands (Deal, AttemptTurn, ForceDraw, Resolve) are serialized; queries
// take a read lock, so observers stay responsive while a chooser thinks.
package game
