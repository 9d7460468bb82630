package simulator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lox/dominoes/internal/game"
)

// MatchOutcome is one finished match reduced to what the aggregate tracks.
type MatchOutcome struct {
	Index    int
	Seed     int64
	Reason   game.EndReason
	Winners  []string
	Tied     bool
	Turns    int
	Scores   map[string]int // leftover pips per player
	Rejected int            // rejected moves during the match
}

// PlayerStats accumulates one player's record across a batch.
type PlayerStats struct {
	Name       string
	Matches    int
	Wins       int // solo and shared
	SoloWins   int
	SharedWins int
	SumScore   int // leftover pips summed across matches
	WorstScore int // largest single-match leftover observed
}

// WinRate is the fraction of matches this player won, shared wins included.
func (p *PlayerStats) WinRate() float64 {
	if p.Matches == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Matches)
}

// MeanScore is the average leftover pip count per match.
func (p *PlayerStats) MeanScore() float64 {
	if p.Matches == 0 {
		return 0
	}
	return float64(p.SumScore) / float64(p.Matches)
}

// WinRateCI95 returns a 95% confidence interval for the win rate, using the
// normal approximation to the binomial.
func (p *PlayerStats) WinRateCI95() (float64, float64) {
	if p.Matches == 0 {
		return 0, 0
	}
	rate := p.WinRate()
	margin := 1.96 * math.Sqrt(rate*(1-rate)/float64(p.Matches))
	return rate - margin, rate + margin
}

// Results aggregates a batch of match outcomes. Every counter is
// order-independent, so worker partials merge the same way regardless of
// scheduling.
type Results struct {
	Seed    int64
	Elapsed time.Duration

	Matches  int
	WonOut   int // matches ended by an emptied hand
	Blocked  int // matches ended blocked
	Ties     int // blocked matches with a shared win
	Rejected int // rejected moves across the batch

	SumTurns  float64
	SumTurns2 float64 // sum of squares for variance calculation
	MinTurns  int
	MaxTurns  int
	Turns     []int // per-match turn counts for median/percentile calculation

	Players map[string]*PlayerStats

	order []string // seat order for stable reporting
}

// NewResults creates an empty aggregate with one entry per seat name.
func NewResults(names []string) *Results {
	r := &Results{
		Players: make(map[string]*PlayerStats, len(names)),
		order:   make([]string, 0, len(names)),
	}
	for _, name := range names {
		r.Players[name] = &PlayerStats{Name: name}
		r.order = append(r.order, name)
	}
	return r
}

// Add folds one match outcome into the aggregate.
func (r *Results) Add(outcome MatchOutcome) {
	if r.Matches == 0 || outcome.Turns < r.MinTurns {
		r.MinTurns = outcome.Turns
	}
	if outcome.Turns > r.MaxTurns {
		r.MaxTurns = outcome.Turns
	}

	r.Matches++
	switch outcome.Reason {
	case game.EndReasonPlayerWon:
		r.WonOut++
	case game.EndReasonBlocked:
		r.Blocked++
	}
	if outcome.Tied {
		r.Ties++
	}
	r.Rejected += outcome.Rejected

	turns := float64(outcome.Turns)
	r.SumTurns += turns
	r.SumTurns2 += turns * turns
	r.Turns = append(r.Turns, outcome.Turns)

	winners := make(map[string]bool, len(outcome.Winners))
	for _, name := range outcome.Winners {
		winners[name] = true
	}

	for name, score := range outcome.Scores {
		stats := r.player(name)
		stats.Matches++
		stats.SumScore += score
		if score > stats.WorstScore {
			stats.WorstScore = score
		}
		if winners[name] {
			stats.Wins++
			if outcome.Tied {
				stats.SharedWins++
			} else {
				stats.SoloWins++
			}
		}
	}
}

// Merge folds another aggregate into this one.
func (r *Results) Merge(other *Results) {
	if other.Matches == 0 {
		return
	}
	if r.Matches == 0 || other.MinTurns < r.MinTurns {
		r.MinTurns = other.MinTurns
	}
	if other.MaxTurns > r.MaxTurns {
		r.MaxTurns = other.MaxTurns
	}

	r.Matches += other.Matches
	r.WonOut += other.WonOut
	r.Blocked += other.Blocked
	r.Ties += other.Ties
	r.Rejected += other.Rejected
	r.SumTurns += other.SumTurns
	r.SumTurns2 += other.SumTurns2
	r.Turns = append(r.Turns, other.Turns...)

	for _, name := range other.names() {
		theirs := other.Players[name]
		mine := r.player(name)
		mine.Matches += theirs.Matches
		mine.Wins += theirs.Wins
		mine.SoloWins += theirs.SoloWins
		mine.SharedWins += theirs.SharedWins
		mine.SumScore += theirs.SumScore
		if theirs.WorstScore > mine.WorstScore {
			mine.WorstScore = theirs.WorstScore
		}
	}
}

func (r *Results) player(name string) *PlayerStats {
	stats := r.Players[name]
	if stats == nil {
		stats = &PlayerStats{Name: name}
		r.Players[name] = stats
		r.order = append(r.order, name)
	}
	return stats
}

// names returns the seat names in their original order.
func (r *Results) names() []string {
	return r.order
}

// MeanTurns is the average match length in turns.
func (r *Results) MeanTurns() float64 {
	if r.Matches == 0 {
		return 0
	}
	return r.SumTurns / float64(r.Matches)
}

// VarianceTurns is the sample variance of match length.
func (r *Results) VarianceTurns() float64 {
	if r.Matches < 2 {
		return 0
	}
	mean := r.MeanTurns()
	return (r.SumTurns2 - float64(r.Matches)*mean*mean) / float64(r.Matches-1)
}

// StdDevTurns is the sample standard deviation of match length.
func (r *Results) StdDevTurns() float64 {
	return math.Sqrt(r.VarianceTurns())
}

// MedianTurns is the median match length in turns.
func (r *Results) MedianTurns() float64 {
	if len(r.Turns) == 0 {
		return 0
	}
	sorted := make([]int, len(r.Turns))
	copy(sorted, r.Turns)
	sort.Ints(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// PercentileTurns returns the p-th percentile of match length, with linear
// interpolation between adjacent values. p is in [0, 1].
func (r *Results) PercentileTurns(p float64) float64 {
	if len(r.Turns) == 0 {
		return 0
	}
	sorted := make([]int, len(r.Turns))
	copy(sorted, r.Turns)
	sort.Ints(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// Validate cross-checks the aggregate for internal consistency. Automatic
// play must never have a move rejected, so a nonzero rejection count fails
// here too: it means the auto chooser and the board disagree about legality.
func (r *Results) Validate() error {
	if r.WonOut+r.Blocked != r.Matches {
		return fmt.Errorf("end reasons don't cover the batch: %d won + %d blocked != %d matches",
			r.WonOut, r.Blocked, r.Matches)
	}
	if r.Ties > r.Blocked {
		return fmt.Errorf("more ties (%d) than blocked matches (%d)", r.Ties, r.Blocked)
	}
	if len(r.Turns) != r.Matches {
		return fmt.Errorf("recorded %d turn counts for %d matches", len(r.Turns), r.Matches)
	}
	if r.Rejected != 0 {
		return fmt.Errorf("automatic play produced %d rejected moves", r.Rejected)
	}

	soloTotal := 0
	sharedTotal := 0
	for name, stats := range r.Players {
		if stats.Matches != r.Matches {
			return fmt.Errorf("player %s sat %d of %d matches", name, stats.Matches, r.Matches)
		}
		if stats.SoloWins+stats.SharedWins != stats.Wins {
			return fmt.Errorf("player %s: %d solo + %d shared != %d wins",
				name, stats.SoloWins, stats.SharedWins, stats.Wins)
		}
		soloTotal += stats.SoloWins
		sharedTotal += stats.SharedWins
	}

	if soloTotal != r.Matches-r.Ties {
		return fmt.Errorf("%d solo wins across players, want %d", soloTotal, r.Matches-r.Ties)
	}
	if sharedTotal < 2*r.Ties {
		return fmt.Errorf("%d shared wins across players cannot cover %d ties", sharedTotal, r.Ties)
	}

	return nil
}
