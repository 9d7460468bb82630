package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/dominoes/internal/game"
)

// A legal match ends well inside this bound: plays are capped by the tile
// set, draws by the boneyard, and passes by the rotation between plays.
const maxMatchTurns = 500

// Simulator plays batches of automatic matches and aggregates the outcomes.
// Match i always runs on seed base+i, so a batch reproduces exactly from its
// seed regardless of how many workers ran it.
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a simulator for the given configuration. A zero seed is
// replaced with a time-based one so every run still reports the seed that
// reproduces it.
func New(config Config, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if config.Simulation.Seed == 0 {
		config.Simulation.Seed = time.Now().UnixNano()
	}
	return &Simulator{config: config, logger: logger}
}

// Run plays the configured number of matches and returns the aggregated
// results. Matches are split across workers; cancelling the context stops
// the run between matches.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	total := s.config.Simulation.Matches
	workers := s.config.Simulation.Parallel
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}

	names := make([]string, len(s.config.Players))
	for i, player := range s.config.Players {
		names[i] = player.Name
	}

	s.logger.Info("Simulation starting",
		"matches", total,
		"players", len(names),
		"workers", workers,
		"seed", s.config.Simulation.Seed)

	started := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	partials := make(chan *Results, workers)

	// Divide matches among workers
	perWorker := total / workers
	remainder := total % workers

	next := 0
	for w := 0; w < workers; w++ {
		count := perWorker
		if w < remainder {
			count++ // Distribute remainder matches
		}
		start := next
		next += count

		g.Go(func() error {
			local := NewResults(names)
			for index := start; index < start+count; index++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				outcome, err := s.playMatch(ctx, index)
				if err != nil {
					return fmt.Errorf("match %d: %w", index, err)
				}
				local.Add(outcome)
			}

			select {
			case partials <- local:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	results := NewResults(names)
	results.Seed = s.config.Simulation.Seed

	go func() {
		defer close(partials)
		g.Wait()
	}()

	for partial := range partials {
		results.Merge(partial)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results.Elapsed = time.Since(started)

	// Validate results before returning
	if err := results.Validate(); err != nil {
		return nil, fmt.Errorf("results validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"matches", results.Matches,
		"wonOut", results.WonOut,
		"blocked", results.Blocked,
		"elapsed", results.Elapsed.Round(time.Millisecond))

	return results, nil
}

// playMatch runs one automatic match on its own seed and reduces it to an
// outcome. Every seat uses the default chooser.
func (s *Simulator) playMatch(ctx context.Context, index int) (MatchOutcome, error) {
	seed := s.config.Simulation.Seed + int64(index)

	seats := make([]game.Seat, len(s.config.Players))
	for i, player := range s.config.Players {
		seats[i] = game.Seat{Name: player.Name}
	}

	bus := game.NewEventBus()
	rejections := &rejectionCounter{}
	bus.Subscribe(rejections)

	match, err := game.NewMatch(seats,
		game.WithID(fmt.Sprintf("sim-%d", index)),
		game.WithSeed(seed),
		game.WithHandSize(s.config.Simulation.HandSize),
		game.WithEventBus(bus),
		game.WithLogger(s.logger),
	)
	if err != nil {
		return MatchOutcome{}, err
	}
	if err := match.Deal(); err != nil {
		return MatchOutcome{}, err
	}

	for !match.State().Terminal() {
		if match.Turns() >= maxMatchTurns {
			return MatchOutcome{}, fmt.Errorf("no terminal state after %d turns (seed %d)", match.Turns(), seed)
		}
		if _, err := match.AttemptTurn(ctx); err != nil {
			return MatchOutcome{}, fmt.Errorf("turn %d (seed %d): %w", match.Turns()+1, seed, err)
		}
	}

	result, err := match.Resolve()
	if err != nil {
		return MatchOutcome{}, err
	}

	scores := make(map[string]int, len(result.Ranking))
	for _, standing := range result.Ranking {
		scores[standing.Player.Name()] = standing.Score
	}

	return MatchOutcome{
		Index:    index,
		Seed:     seed,
		Reason:   result.Reason,
		Winners:  result.WinnerNames(),
		Tied:     result.IsTie(),
		Turns:    match.Turns(),
		Scores:   scores,
		Rejected: rejections.count,
	}, nil
}

// rejectionCounter tallies move_rejected events. The auto chooser only
// offers legal moves, so automatic matches must never produce one.
type rejectionCounter struct {
	count int
}

func (c *rejectionCounter) OnEvent(event game.MatchEvent) {
	if event.EventType() == game.EventTypeMoveRejected {
		c.count++
	}
}
