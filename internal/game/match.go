package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/dominoes/internal/randutil"
	"github.com/lox/dominoes/internal/tile"
)

// State is the match lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateDealing
	StateInProgress
	StatePlayerWon
	StateBlocked
	StateFinished
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateDealing:
		return "dealing"
	case StateInProgress:
		return "in_progress"
	case StatePlayerWon:
		return "player_won"
	case StateBlocked:
		return "blocked"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether play is over, resolved or not.
func (s State) Terminal() bool {
	return s == StatePlayerWon || s == StateBlocked || s == StateFinished
}

// TurnKind says how a turn resolved.
type TurnKind int

const (
	TurnPlayed TurnKind = iota
	TurnDrew
	TurnPassed
)

// String returns the string representation of the turn kind.
func (k TurnKind) String() string {
	switch k {
	case TurnPlayed:
		return "played"
	case TurnDrew:
		return "drew"
	case TurnPassed:
		return "passed"
	default:
		return "unknown"
	}
}

// TurnResult reports what one turn did. Tile is the tile played or drawn,
// meaningful only for those kinds; Side is the end played.
type TurnResult struct {
	Player *Player
	Kind   TurnKind
	Tile   tile.Pair
	Side   Side
	State  State // match state after the turn
}

// Match owns one game of dominoes end to end: players, board, boneyard,
// turn rotation, and the lifecycle state machine. All mutation funnels
// through a single serialized command path; queries are read-locked so they
// stay responsive while an interactive chooser holds a turn open.
type Match struct {
	id       string
	handSize int
	seed     int64
	rng      *rand.Rand
	logger   *log.Logger
	events   EventBus

	// turnMu serializes the commands (Deal, AttemptTurn, ForceDraw,
	// Resolve) end to end; mu guards the state below for readers.
	turnMu sync.Mutex
	mu     sync.RWMutex

	players  []*Player
	board    *Board
	boneyard *tile.Boneyard
	current  int
	state    State
	turns    int
	wonBy    *Player
	result   *Result
}

// NewMatch validates the seats and configuration and creates a match in
// StateNotStarted. Nothing is dealt yet. Setup violations (too few seats,
// duplicate names, a deal that outruns the tile set) fail here: no playable
// match comes into existence.
func NewMatch(seats []Seat, opts ...Option) (*Match, error) {
	cfg := defaultMatchConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(seats) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, len(seats))
	}
	if cfg.handSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHandSize, cfg.handSize)
	}
	if need := cfg.handSize * len(seats); need > tile.SetSize {
		return nil, fmt.Errorf("%w: %d players need %d tiles, the set has %d",
			ErrInsufficientTiles, len(seats), need, tile.SetSize)
	}

	m := &Match{
		id:       cfg.id,
		handSize: cfg.handSize,
		seed:     cfg.seed,
		rng:      randutil.New(cfg.seed),
		logger:   cfg.logger,
		events:   cfg.events,
		board:    NewBoard(),
		state:    StateNotStarted,
	}

	seen := make(map[string]bool, len(seats))
	for i, seat := range seats {
		if seat.Name == "" {
			return nil, fmt.Errorf("seat %d has no name", i)
		}
		if seen[seat.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, seat.Name)
		}
		seen[seat.Name] = true

		chooser := seat.Chooser
		if chooser == nil {
			chooser = NewAuto(m.rng)
		}
		m.players = append(m.players, newPlayer(i, seat.Name, chooser))
	}

	m.logger.Debug("Match created",
		"match", m.id,
		"players", len(seats),
		"handSize", cfg.handSize,
		"seed", cfg.seed)
	return m, nil
}

// Deal shuffles a fresh boneyard from the match seed and deals the
// configured hand size round-robin, one tile per player per pass. The match
// enters InProgress with seat 0 to act.
func (m *Match) Deal() error {
	m.turnMu.Lock()
	defer m.turnMu.Unlock()

	m.mu.Lock()
	if m.state != StateNotStarted {
		st := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: state is %s", ErrAlreadyStarted, st)
	}
	m.state = StateDealing
	m.boneyard = tile.NewBoneyard(m.rng)

	for i := 0; i < m.handSize; i++ {
		for _, p := range m.players {
			t, ok := m.boneyard.Draw()
			if !ok {
				// NewMatch bounds handSize*players, so the pile cannot
				// run dry here.
				panic("game: boneyard exhausted during deal")
			}
			p.hand.Add(t)
		}
	}

	m.state = StateInProgress
	m.current = 0
	m.auditConservation()
	remaining := m.boneyard.Remaining()
	m.mu.Unlock()

	m.logger.Info("Match dealt",
		"match", m.id,
		"players", len(m.players),
		"handSize", m.handSize,
		"boneyard", remaining)
	m.events.Publish(NewMatchStartEvent(m.id, m.players, m.handSize, remaining))
	return nil
}

// AttemptTurn runs one turn for the current player: ask its chooser for a
// move, re-prompting the same player over rejected selections; apply
// draw-then-pass when there is no play; detect a block; advance the
// rotation. A chooser error (cancellation, timeout) leaves all state
// untouched, so the same turn can be attempted again.
func (m *Match) AttemptTurn(ctx context.Context) (*TurnResult, error) {
	m.turnMu.Lock()
	defer m.turnMu.Unlock()

	player, err := m.actingPlayer()
	if err != nil {
		return nil, err
	}

	var rejected error
	for {
		req := m.moveRequest(player, rejected)
		move, err := player.chooser.ChooseMove(ctx, req)
		if err != nil {
			m.logger.Debug("Turn abandoned",
				"match", m.id, "player", player.name, "error", err)
			return nil, fmt.Errorf("choosing move for %s: %w", player.name, err)
		}

		if !move.IsPlay() {
			res := m.drawOrPass(player)
			m.publishTurn(res)
			return res, nil
		}

		res, err := m.applyPlay(player, move)
		if err != nil {
			m.logger.Debug("Move rejected",
				"match", m.id,
				"player", player.name,
				"tile", move.Tile,
				"side", move.Side,
				"reason", err)
			m.events.Publish(NewMoveRejectedEvent(player, move.Tile.Pips(), move.Side, err))
			rejected = err
			continue
		}
		m.publishTurn(res)
		return res, nil
	}
}

// ForceDraw makes the current player draw even while holding playable
// tiles: the explicit draw button, distinct from the automatic no-move
// draw. At an empty boneyard it degrades to a pass. Turn semantics are
// otherwise identical to AttemptTurn's no-play path.
func (m *Match) ForceDraw() (*TurnResult, error) {
	m.turnMu.Lock()
	defer m.turnMu.Unlock()

	player, err := m.actingPlayer()
	if err != nil {
		return nil, err
	}

	res := m.drawOrPass(player)
	m.publishTurn(res)
	return res, nil
}

// Resolve computes the final scores, ranking, and winner set, and moves the
// match to Finished. Valid only once play has reached PlayerWon or Blocked.
func (m *Match) Resolve() (*Result, error) {
	m.turnMu.Lock()
	defer m.turnMu.Unlock()

	m.mu.Lock()
	switch m.state {
	case StatePlayerWon, StateBlocked:
	default:
		st := m.state
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: state is %s", ErrMatchNotOver, st)
	}

	reason := EndReasonBlocked
	if m.state == StatePlayerWon {
		reason = EndReasonPlayerWon
	}
	m.result = newResult(reason, m.players, m.wonBy)
	m.state = StateFinished
	result := m.result
	turns := m.turns
	m.mu.Unlock()

	m.logger.Info("Match resolved",
		"match", m.id,
		"reason", reason,
		"winners", result.WinnerNames(),
		"turns", turns)
	m.events.Publish(NewMatchEndEvent(m.id, result, turns))
	return result, nil
}

// actingPlayer returns the player on turn, or the state-appropriate error.
func (m *Match) actingPlayer() (*Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch m.state {
	case StateInProgress:
		return m.players[m.current], nil
	case StateNotStarted, StateDealing:
		return nil, fmt.Errorf("%w: state is %s", ErrNotStarted, m.state)
	default:
		return nil, fmt.Errorf("%w: state is %s", ErrMatchOver, m.state)
	}
}

// moveRequest snapshots what a chooser may see. Taken under the read lock;
// the chooser itself runs with no locks held, so queries stay responsive
// while an interactive player thinks.
func (m *Match) moveRequest(player *Player, rejected error) MoveRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MoveRequest{
		Board:         m.board.Snapshot(),
		Hand:          player.hand.Tiles(),
		Playable:      slices.Collect(player.hand.Playable(m.board)),
		BoneyardCount: m.boneyard.Remaining(),
		Rejected:      rejected,
	}
}

// applyPlay validates and applies a tile placement. Rejections leave the
// match untouched and are recoverable; the caller re-prompts.
func (m *Match) applyPlay(player *Player, move Move) (*TurnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := move.Tile
	if !player.hand.Contains(t) {
		return nil, fmt.Errorf("%w: %s", ErrTileNotInHand, t)
	}

	side := m.resolveSide(t, move.Side)
	if !m.board.fits(t, side) {
		left, right, _ := m.board.Ends()
		return nil, fmt.Errorf("%w: %s against ends %d and %d",
			ErrIllegalPlacement, t, left, right)
	}

	// Both operations were validated above; a failure now is corruption.
	if err := player.hand.Remove(t); err != nil {
		panic(fmt.Sprintf("game: removing verified tile: %v", err))
	}
	if err := m.board.Place(t, side); err != nil {
		panic(fmt.Sprintf("game: placing verified tile: %v", err))
	}
	m.turns++

	if player.hand.Empty() {
		m.state = StatePlayerWon
		m.wonBy = player
	} else {
		m.detectBlock()
	}
	if m.state == StateInProgress {
		m.advance()
	}
	m.auditConservation()

	return &TurnResult{
		Player: player,
		Kind:   TurnPlayed,
		Tile:   t.Pips(),
		Side:   side,
		State:  m.state,
	}, nil
}

// drawOrPass applies the no-play path: draw one tile (the turn ends without
// playing it), or pass once the boneyard is empty.
func (m *Match) drawOrPass(player *Player) *TurnResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &TurnResult{Player: player, Kind: TurnPassed}
	if t, ok := m.boneyard.Draw(); ok {
		player.hand.Add(t)
		res.Kind = TurnDrew
		res.Tile = t.Pips()
	}
	m.turns++

	m.detectBlock()
	if m.state == StateInProgress {
		m.advance()
	}
	m.auditConservation()

	res.State = m.state
	return res
}

// resolveSide turns SideAuto into a concrete end. The right end wins when
// the tile fits both.
func (m *Match) resolveSide(t *tile.Tile, side Side) Side {
	if side != SideAuto {
		return side
	}
	_, right, ok := m.board.Ends()
	if !ok || t.Matches(right) {
		return SideRight
	}
	return SideLeft
}

// detectBlock moves the match to Blocked when the boneyard is empty and no
// hand holds a playable tile.
func (m *Match) detectBlock() {
	if m.state != StateInProgress || !m.boneyard.IsEmpty() {
		return
	}
	for _, p := range m.players {
		if p.hand.HasPlayable(m.board) {
			return
		}
	}
	m.state = StateBlocked
}

// advance moves the rotation to the next seat.
func (m *Match) advance() {
	m.current = (m.current + 1) % len(m.players)
}

// auditConservation re-checks that every tile of the set sits in exactly
// one place. A failure can only mean engine corruption, so it panics.
func (m *Match) auditConservation() {
	if m.boneyard == nil {
		return
	}
	total := m.boneyard.Remaining() + m.board.Len()
	for _, p := range m.players {
		total += p.hand.Len()
	}
	if total != tile.SetSize {
		panic(fmt.Sprintf("game: tile conservation broken: %d accounted for, want %d",
			total, tile.SetSize))
	}

	seen := make(map[*tile.Tile]bool, tile.SetSize)
	track := func(t *tile.Tile) {
		if seen[t] {
			panic(fmt.Sprintf("game: tile %s held in two places", t))
		}
		seen[t] = true
	}
	for _, t := range m.board.tiles {
		track(t)
	}
	for _, p := range m.players {
		for _, t := range p.hand.tiles {
			track(t)
		}
	}
}

// publishTurn logs and emits the events for a completed turn.
func (m *Match) publishTurn(res *TurnResult) {
	switch res.Kind {
	case TurnPlayed:
		m.logger.Debug("Tile played",
			"match", m.id,
			"player", res.Player.name,
			"tile", res.Tile,
			"side", res.Side)
		m.events.Publish(NewTilePlayedEvent(res.Player, res.Tile, res.Side, m.BoardSnapshot()))
	case TurnDrew:
		m.logger.Debug("Tile drawn",
			"match", m.id,
			"player", res.Player.name,
			"remaining", m.BoneyardCount())
		m.events.Publish(NewTileDrawnEvent(res.Player, res.Tile, m.BoneyardCount()))
	case TurnPassed:
		m.logger.Debug("Turn passed", "match", m.id, "player", res.Player.name)
		m.events.Publish(NewTurnPassedEvent(res.Player))
	}
}

// ID returns the match identifier.
func (m *Match) ID() string {
	return m.id
}

// Seed returns the RNG seed the match was created with.
func (m *Match) Seed() int64 {
	return m.seed
}

// Events exposes the match's event bus for subscription.
func (m *Match) Events() EventBus {
	return m.events
}

// State returns the current lifecycle state.
func (m *Match) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentPlayer returns the player on turn, or nil outside InProgress.
func (m *Match) CurrentPlayer() *Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateInProgress {
		return nil
	}
	return m.players[m.current]
}

// Players returns the seats in rotation order.
func (m *Match) Players() []*Player {
	out := make([]*Player, len(m.players))
	copy(out, m.players)
	return out
}

// BoardSnapshot returns an immutable view of the chain.
func (m *Match) BoardSnapshot() BoardSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.board.Snapshot()
}

// HandOf returns the named player's tiles, or nil for an unknown name.
func (m *Match) HandOf(name string) []*tile.Tile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.players {
		if p.name == name {
			return p.hand.Tiles()
		}
	}
	return nil
}

// BoneyardCount returns the tiles left to draw; zero before the deal.
func (m *Match) BoneyardCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.boneyard == nil {
		return 0
	}
	return m.boneyard.Remaining()
}

// Turns returns how many turns have been taken so far.
func (m *Match) Turns() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.turns
}

// FinalResult returns the resolved outcome; ErrMatchNotFinished until
// Resolve has run.
func (m *Match) FinalResult() (*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateFinished {
		return nil, fmt.Errorf("%w: state is %s", ErrMatchNotFinished, m.state)
	}
	return m.result, nil
}
