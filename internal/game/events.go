package game

import (
	"time"

	"github.com/lox/dominoes/internal/tile"
)

// EventType identifies a match event.
type EventType string

const (
	EventTypeMatchStart   EventType = "match_start"
	EventTypeTilePlayed   EventType = "tile_played"
	EventTypeTileDrawn    EventType = "tile_drawn"
	EventTypeTurnPassed   EventType = "turn_passed"
	EventTypeMoveRejected EventType = "move_rejected"
	EventTypeMatchEnd     EventType = "match_end"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// MatchEvent is anything the match publishes while a game runs.
type MatchEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// MatchStartEvent is published once the deal completes.
type MatchStartEvent struct {
	MatchID       string
	Players       []*Player
	HandSize      int
	BoneyardCount int
	timestamp     time.Time
}

func (e MatchStartEvent) EventType() EventType { return EventTypeMatchStart }
func (e MatchStartEvent) Timestamp() time.Time { return e.timestamp }

// NewMatchStartEvent creates a match start event.
func NewMatchStartEvent(matchID string, players []*Player, handSize, boneyardCount int) MatchStartEvent {
	ps := make([]*Player, len(players))
	copy(ps, players)
	return MatchStartEvent{
		MatchID:       matchID,
		Players:       ps,
		HandSize:      handSize,
		BoneyardCount: boneyardCount,
		timestamp:     time.Now(),
	}
}

// TilePlayedEvent is published after a tile lands on the board.
type TilePlayedEvent struct {
	Player    *Player
	Tile      tile.Pair // placed orientation
	Side      Side
	Board     BoardSnapshot // board after the placement
	timestamp time.Time
}

func (e TilePlayedEvent) EventType() EventType { return EventTypeTilePlayed }
func (e TilePlayedEvent) Timestamp() time.Time { return e.timestamp }

// NewTilePlayedEvent creates a tile played event.
func NewTilePlayedEvent(player *Player, placed tile.Pair, side Side, board BoardSnapshot) TilePlayedEvent {
	return TilePlayedEvent{
		Player:    player,
		Tile:      placed,
		Side:      side,
		Board:     board,
		timestamp: time.Now(),
	}
}

// TileDrawnEvent is published when a player draws instead of playing. The
// drawn tile is in the event; the formatter decides who gets to see it.
type TileDrawnEvent struct {
	Player        *Player
	Tile          tile.Pair
	BoneyardCount int // tiles left after the draw
	timestamp     time.Time
}

func (e TileDrawnEvent) EventType() EventType { return EventTypeTileDrawn }
func (e TileDrawnEvent) Timestamp() time.Time { return e.timestamp }

// NewTileDrawnEvent creates a tile drawn event.
func NewTileDrawnEvent(player *Player, drawn tile.Pair, boneyardCount int) TileDrawnEvent {
	return TileDrawnEvent{
		Player:        player,
		Tile:          drawn,
		BoneyardCount: boneyardCount,
		timestamp:     time.Now(),
	}
}

// TurnPassedEvent is published when a player can neither play nor draw.
type TurnPassedEvent struct {
	Player    *Player
	timestamp time.Time
}

func (e TurnPassedEvent) EventType() EventType { return EventTypeTurnPassed }
func (e TurnPassedEvent) Timestamp() time.Time { return e.timestamp }

// NewTurnPassedEvent creates a turn passed event.
func NewTurnPassedEvent(player *Player) TurnPassedEvent {
	return TurnPassedEvent{
		Player:    player,
		timestamp: time.Now(),
	}
}

// MoveRejectedEvent is published when a selection is refused and the same
// player re-prompted.
type MoveRejectedEvent struct {
	Player    *Player
	Tile      tile.Pair
	Side      Side
	Reason    error
	timestamp time.Time
}

func (e MoveRejectedEvent) EventType() EventType { return EventTypeMoveRejected }
func (e MoveRejectedEvent) Timestamp() time.Time { return e.timestamp }

// NewMoveRejectedEvent creates a move rejected event.
func NewMoveRejectedEvent(player *Player, attempted tile.Pair, side Side, reason error) MoveRejectedEvent {
	return MoveRejectedEvent{
		Player:    player,
		Tile:      attempted,
		Side:      side,
		Reason:    reason,
		timestamp: time.Now(),
	}
}

// MatchEndEvent is published when Resolve finishes the match.
type MatchEndEvent struct {
	MatchID   string
	Result    *Result
	Turns     int
	timestamp time.Time
}

func (e MatchEndEvent) EventType() EventType { return EventTypeMatchEnd }
func (e MatchEndEvent) Timestamp() time.Time { return e.timestamp }

// NewMatchEndEvent creates a match end event.
func NewMatchEndEvent(matchID string, result *Result, turns int) MatchEndEvent {
	return MatchEndEvent{
		MatchID:   matchID,
		Result:    result,
		Turns:     turns,
		timestamp: time.Now(),
	}
}

// EventSubscriber receives match events.
type EventSubscriber interface {
	OnEvent(event MatchEvent)
}

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event MatchEvent)
}

// SimpleEventBus is a basic in-memory event bus. Subscribe before the deal;
// delivery is synchronous on the publishing goroutine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers.
func (bus *SimpleEventBus) Publish(event MatchEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
