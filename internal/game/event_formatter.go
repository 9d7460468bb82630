package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events render for different audiences.
type FormattingOptions struct {
	Perspective string // player whose draws are visible
	ShowHidden  bool   // reveal every draw (debug output, transcripts)
}

// EventFormatter renders match events as console lines.
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options.
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any match event. It returns "" for events this audience
// should not see.
func (ef *EventFormatter) Format(event MatchEvent) string {
	switch e := event.(type) {
	case MatchStartEvent:
		return ef.FormatMatchStart(e)
	case TilePlayedEvent:
		return ef.FormatTilePlayed(e)
	case TileDrawnEvent:
		return ef.FormatTileDrawn(e)
	case TurnPassedEvent:
		return ef.FormatTurnPassed(e)
	case MoveRejectedEvent:
		return ef.FormatMoveRejected(e)
	case MatchEndEvent:
		return ef.FormatMatchEnd(e)
	default:
		return ""
	}
}

// FormatMatchStart formats a match start event into a human-readable string.
func (ef *EventFormatter) FormatMatchStart(event MatchStartEvent) string {
	names := make([]string, len(event.Players))
	for i, p := range event.Players {
		names[i] = p.Name()
	}
	return fmt.Sprintf("Match %s • %s • %d tiles each, %d in the boneyard",
		event.MatchID, strings.Join(names, " vs "), event.HandSize, event.BoneyardCount)
}

// FormatTilePlayed formats a tile placement.
func (ef *EventFormatter) FormatTilePlayed(event TilePlayedEvent) string {
	if event.Board.Len() == 1 {
		return fmt.Sprintf("%s: opens with %s", event.Player.Name(), event.Tile)
	}
	return fmt.Sprintf("%s: plays %s on the %s (ends now %d and %d)",
		event.Player.Name(), event.Tile, event.Side, event.Board.LeftEnd, event.Board.RightEnd)
}

// FormatTileDrawn formats a draw. The drawn tile is shown only to its owner
// unless ShowHidden is set.
func (ef *EventFormatter) FormatTileDrawn(event TileDrawnEvent) string {
	name := event.Player.Name()
	if ef.opts.ShowHidden || (ef.opts.Perspective != "" && name == ef.opts.Perspective) {
		return fmt.Sprintf("%s: draws %s (%d left)", name, event.Tile, event.BoneyardCount)
	}
	return fmt.Sprintf("%s: draws a tile (%d left)", name, event.BoneyardCount)
}

// FormatTurnPassed formats a pass.
func (ef *EventFormatter) FormatTurnPassed(event TurnPassedEvent) string {
	return fmt.Sprintf("%s: passes (nothing playable, boneyard empty)", event.Player.Name())
}

// FormatMoveRejected formats a refused selection. Only the offending player
// sees it unless ShowHidden is set.
func (ef *EventFormatter) FormatMoveRejected(event MoveRejectedEvent) string {
	name := event.Player.Name()
	if !ef.opts.ShowHidden && ef.opts.Perspective != "" && name != ef.opts.Perspective {
		return ""
	}
	return fmt.Sprintf("%s: move refused (%v)", name, event.Reason)
}

// FormatMatchEnd formats the final summary.
func (ef *EventFormatter) FormatMatchEnd(event MatchEndEvent) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("=== Match %s Complete ===\n", event.MatchID))
	switch event.Result.Reason {
	case EndReasonPlayerWon:
		result.WriteString(fmt.Sprintf("%s played out in %d turns\n",
			event.Result.Winners[0].Name(), event.Turns))
	case EndReasonBlocked:
		result.WriteString(fmt.Sprintf("Blocked after %d turns\n", event.Turns))
	}

	for _, s := range event.Result.Ranking {
		result.WriteString(fmt.Sprintf("%d. %s (%d pips)\n", s.Rank, s.Player.Name(), s.Score))
	}

	if len(event.Result.Winners) > 1 {
		result.WriteString(fmt.Sprintf("Tie between %s\n",
			strings.Join(event.Result.WinnerNames(), " and ")))
	}

	return result.String()
}
