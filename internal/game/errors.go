package game

import "errors"

// Recoverable rejections. The offending action is refused, nothing mutates,
// and the caller (or the prompted player) can try again.
var (
	ErrIllegalPlacement = errors.New("tile does not match the open end")
	ErrTileNotInHand    = errors.New("tile is not in hand")
	ErrNoPendingRequest = errors.New("no pending move request")
	ErrChoiceTimeout    = errors.New("move request timed out")
	ErrAlreadyStarted   = errors.New("match already started")
	ErrNotStarted       = errors.New("match not started")
	ErrMatchOver        = errors.New("match is over")
	ErrMatchNotOver     = errors.New("match is not over")
	ErrMatchNotFinished = errors.New("match is not finished")
)

// Fatal setup violations. Construction fails and no playable match comes
// into existence.
var (
	ErrInsufficientTiles = errors.New("not enough tiles for the requested deal")
	ErrTooFewPlayers     = errors.New("a match needs at least two players")
	ErrDuplicateName     = errors.New("player names must be unique")
	ErrInvalidHandSize   = errors.New("hand size must be at least one")
)
