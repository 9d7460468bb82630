package game

import "sort"

// EndReason says how a match reached its terminal state.
type EndReason int

const (
	// EndReasonPlayerWon means a player emptied their hand.
	EndReasonPlayerWon EndReason = iota
	// EndReasonBlocked means the boneyard was empty and nobody could play.
	EndReasonBlocked
)

// String returns the string representation of the end reason.
func (r EndReason) String() string {
	switch r {
	case EndReasonPlayerWon:
		return "player_won"
	case EndReasonBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Standing is one row of the final ranking.
type Standing struct {
	Rank   int
	Player *Player
	Score  int
}

// Result is the outcome of a resolved match. Ranking is ordered by
// ascending pip score with standard competition ranks: tied players share a
// rank and the following rank skips past them. Winners is the hand-emptier
// for a won match, or every minimum-score player for a blocked one. Ties
// are reported as a set, never broken.
type Result struct {
	Reason  EndReason
	Winners []*Player
	Ranking []Standing
}

// WinnerNames lists the winners' names in ranking order.
func (r *Result) WinnerNames() []string {
	names := make([]string, len(r.Winners))
	for i, p := range r.Winners {
		names[i] = p.Name()
	}
	return names
}

// IsTie reports whether more than one player shares the win.
func (r *Result) IsTie() bool {
	return len(r.Winners) > 1
}

// newResult scores every hand and builds the ranking. wonBy is non-nil for
// a won match: the emptier is the sole winner and sorts ahead of any other
// zero-score hand (a player can hold [0|0] and score zero without winning).
func newResult(reason EndReason, players []*Player, wonBy *Player) *Result {
	standings := make([]Standing, len(players))
	for i, p := range players {
		standings[i] = Standing{Player: p, Score: p.Hand().Score()}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score < standings[j].Score
		}
		return standings[i].Player == wonBy && standings[j].Player != wonBy
	})

	for i := range standings {
		switch {
		case i == 0:
			standings[i].Rank = 1
		case standings[i].Score == standings[i-1].Score:
			standings[i].Rank = standings[i-1].Rank
		default:
			standings[i].Rank = i + 1
		}
	}

	var winners []*Player
	if wonBy != nil {
		winners = []*Player{wonBy}
	} else {
		for _, s := range standings {
			if s.Rank != 1 {
				break
			}
			winners = append(winners, s.Player)
		}
	}

	return &Result{Reason: reason, Winners: winners, Ranking: standings}
}
