package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lox/dominoes/internal/tile"
)

func TestEventFormatter_FormatTilePlayed(t *testing.T) {
	opening := NewBoard()
	opening.Place(tile.MustNew(3, 5), SideRight)

	extended := NewBoard()
	extended.Place(tile.MustNew(3, 5), SideRight)
	extended.Place(tile.MustNew(5, 2), SideRight)

	tests := []struct {
		name     string
		event    TilePlayedEvent
		expected string
	}{
		{
			name: "opening tile",
			event: TilePlayedEvent{
				Player:    newPlayer(0, "Alice", nil),
				Tile:      tile.Pair{Left: 3, Right: 5},
				Side:      SideRight,
				Board:     opening.Snapshot(),
				timestamp: time.Now(),
			},
			expected: "Alice: opens with [3|5]",
		},
		{
			name: "played on the right",
			event: TilePlayedEvent{
				Player:    newPlayer(1, "Bob", nil),
				Tile:      tile.Pair{Left: 5, Right: 2},
				Side:      SideRight,
				Board:     extended.Snapshot(),
				timestamp: time.Now(),
			},
			expected: "Bob: plays [5|2] on the right (ends now 3 and 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewEventFormatter(FormattingOptions{})
			result := formatter.FormatTilePlayed(tt.event)
			if result != tt.expected {
				t.Errorf("FormatTilePlayed() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestEventFormatter_FormatTileDrawn(t *testing.T) {
	event := TileDrawnEvent{
		Player:        newPlayer(0, "Alice", nil),
		Tile:          tile.Pair{Left: 2, Right: 6},
		BoneyardCount: 11,
		timestamp:     time.Now(),
	}

	tests := []struct {
		name     string
		opts     FormattingOptions
		expected string
	}{
		{
			name:     "owner sees the tile",
			opts:     FormattingOptions{Perspective: "Alice"},
			expected: "Alice: draws [2|6] (11 left)",
		},
		{
			name:     "others see only the draw",
			opts:     FormattingOptions{Perspective: "Bob"},
			expected: "Alice: draws a tile (11 left)",
		},
		{
			name:     "no perspective hides the tile",
			opts:     FormattingOptions{},
			expected: "Alice: draws a tile (11 left)",
		},
		{
			name:     "show hidden reveals everything",
			opts:     FormattingOptions{Perspective: "Bob", ShowHidden: true},
			expected: "Alice: draws [2|6] (11 left)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewEventFormatter(tt.opts)
			result := formatter.FormatTileDrawn(event)
			if result != tt.expected {
				t.Errorf("FormatTileDrawn() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestEventFormatter_FormatTurnPassed(t *testing.T) {
	event := TurnPassedEvent{
		Player:    newPlayer(2, "Carol", nil),
		timestamp: time.Now(),
	}

	formatter := NewEventFormatter(FormattingOptions{})
	result := formatter.FormatTurnPassed(event)
	expected := "Carol: passes (nothing playable, boneyard empty)"
	if result != expected {
		t.Errorf("FormatTurnPassed() = %q, expected %q", result, expected)
	}
}

func TestEventFormatter_FormatMoveRejected(t *testing.T) {
	event := MoveRejectedEvent{
		Player:    newPlayer(0, "Alice", nil),
		Tile:      tile.Pair{Left: 1, Right: 4},
		Side:      SideLeft,
		Reason:    errors.New("it fits neither open end"),
		timestamp: time.Now(),
	}

	tests := []struct {
		name     string
		opts     FormattingOptions
		expected string
	}{
		{
			name:     "offender sees the refusal",
			opts:     FormattingOptions{Perspective: "Alice"},
			expected: "Alice: move refused (it fits neither open end)",
		},
		{
			name:     "others do not",
			opts:     FormattingOptions{Perspective: "Bob"},
			expected: "",
		},
		{
			name:     "show hidden reveals it",
			opts:     FormattingOptions{Perspective: "Bob", ShowHidden: true},
			expected: "Alice: move refused (it fits neither open end)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewEventFormatter(tt.opts)
			result := formatter.FormatMoveRejected(event)
			if result != tt.expected {
				t.Errorf("FormatMoveRejected() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestEventFormatter_FormatMatchStart(t *testing.T) {
	event := MatchStartEvent{
		MatchID:       "match-123",
		Players:       []*Player{newPlayer(0, "Alice", nil), newPlayer(1, "Bob", nil)},
		HandSize:      7,
		BoneyardCount: 14,
		timestamp:     time.Now(),
	}

	formatter := NewEventFormatter(FormattingOptions{})
	result := formatter.FormatMatchStart(event)

	if !strings.Contains(result, "Match match-123") {
		t.Errorf("FormatMatchStart() should contain the match ID, got %q", result)
	}
	if !strings.Contains(result, "Alice vs Bob") {
		t.Errorf("FormatMatchStart() should list the players, got %q", result)
	}
	if !strings.Contains(result, "7 tiles each, 14 in the boneyard") {
		t.Errorf("FormatMatchStart() should describe the deal, got %q", result)
	}
}

func TestEventFormatter_FormatMatchEnd(t *testing.T) {
	winner := rankedPlayer(0, "Alice")
	loser := rankedPlayer(1, "Bob", tile.MustNew(2, 3))
	won := newResult(EndReasonPlayerWon, []*Player{winner, loser}, winner)

	tiedA := rankedPlayer(0, "Alice", tile.MustNew(1, 3))
	tiedB := rankedPlayer(1, "Bob", tile.MustNew(0, 4))
	blocked := newResult(EndReasonBlocked, []*Player{tiedA, tiedB}, nil)

	tests := []struct {
		name     string
		event    MatchEndEvent
		expected []string
	}{
		{
			name: "won match",
			event: MatchEndEvent{
				MatchID:   "match-456",
				Result:    won,
				Turns:     9,
				timestamp: time.Now(),
			},
			expected: []string{
				"=== Match match-456 Complete ===",
				"Alice played out in 9 turns",
				"1. Alice (0 pips)",
				"2. Bob (5 pips)",
			},
		},
		{
			name: "blocked match with a tie",
			event: MatchEndEvent{
				MatchID:   "match-789",
				Result:    blocked,
				Turns:     12,
				timestamp: time.Now(),
			},
			expected: []string{
				"=== Match match-789 Complete ===",
				"Blocked after 12 turns",
				"1. Alice (4 pips)",
				"1. Bob (4 pips)",
				"Tie between Alice and Bob",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewEventFormatter(FormattingOptions{})
			result := formatter.FormatMatchEnd(tt.event)

			for _, expectedStr := range tt.expected {
				if !strings.Contains(result, expectedStr) {
					t.Errorf("FormatMatchEnd() result missing expected string %q\nGot: %q", expectedStr, result)
				}
			}
		})
	}
}

type recordingSubscriber struct {
	events []MatchEvent
}

func (r *recordingSubscriber) OnEvent(event MatchEvent) {
	r.events = append(r.events, event)
}

func TestSimpleEventBus(t *testing.T) {
	bus := NewEventBus()
	sub := &recordingSubscriber{}
	bus.Subscribe(sub)

	bus.Publish(NewTurnPassedEvent(newPlayer(0, "Alice", nil)))
	if len(sub.events) != 1 {
		t.Fatalf("Subscriber received %d events, want 1", len(sub.events))
	}
	if sub.events[0].EventType() != EventTypeTurnPassed {
		t.Errorf("EventType = %s, want %s", sub.events[0].EventType(), EventTypeTurnPassed)
	}

	bus.Unsubscribe(sub)
	bus.Publish(NewTurnPassedEvent(newPlayer(1, "Bob", nil)))
	if len(sub.events) != 1 {
		t.Errorf("Unsubscribed subscriber still received events, have %d", len(sub.events))
	}
}
