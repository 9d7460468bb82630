package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Interactive suspends a turn until a move arrives from outside the engine.
// A UI watches Requests for the prompt, gathers input, and calls Submit;
// the match blocks inside ChooseMove until then. Cancelling the context or
// hitting the optional timeout abandons the turn with no state change, so
// the same turn can be attempted again.
type Interactive struct {
	clock   quartz.Clock
	timeout time.Duration

	requests chan MoveRequest
	moves    chan Move

	mu      sync.Mutex
	pending *MoveRequest
}

// InteractiveOption configures an Interactive chooser.
type InteractiveOption func(*Interactive)

// WithTimeout bounds how long ChooseMove waits for a submission. Zero, the
// default, waits until the context says otherwise.
func WithTimeout(d time.Duration) InteractiveOption {
	return func(ic *Interactive) {
		ic.timeout = d
	}
}

// WithClock injects the clock that drives timeouts. Tests pass a quartz
// mock so nothing really sleeps.
func WithClock(clock quartz.Clock) InteractiveOption {
	return func(ic *Interactive) {
		ic.clock = clock
	}
}

// NewInteractive creates an interactive chooser.
func NewInteractive(opts ...InteractiveOption) *Interactive {
	ic := &Interactive{
		clock:    quartz.NewReal(),
		requests: make(chan MoveRequest, 1),
		moves:    make(chan Move, 1),
	}
	for _, opt := range opts {
		opt(ic)
	}
	return ic
}

// Requests exposes pending prompts. The channel holds at most one request;
// a re-prompt after a rejected move arrives as a fresh request with
// Rejected set.
func (ic *Interactive) Requests() <-chan MoveRequest {
	return ic.requests
}

// Submit answers the pending prompt. It fails with ErrNoPendingRequest when
// nothing is waiting, and rejects moves that name a tile outside the
// prompt's hand or playable set so the caller can correct and retry.
func (ic *Interactive) Submit(mv Move) error {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if ic.pending == nil {
		return ErrNoPendingRequest
	}
	if err := ic.pending.Validate(mv); err != nil {
		return err
	}

	select {
	case ic.moves <- mv:
		ic.pending = nil
		return nil
	default:
		return fmt.Errorf("%w: a move was already submitted", ErrNoPendingRequest)
	}
}

// ChooseMove implements Chooser. It publishes the request and waits for a
// submission, the context, or the timeout, whichever comes first.
func (ic *Interactive) ChooseMove(ctx context.Context, req MoveRequest) (Move, error) {
	ic.publish(req)
	defer ic.clearPending()

	var timedOut <-chan struct{}
	if ic.timeout > 0 {
		fired := make(chan struct{})
		timer := ic.clock.AfterFunc(ic.timeout, func() {
			close(fired)
		})
		defer timer.Stop()
		timedOut = fired
	}

	select {
	case mv := <-ic.moves:
		return mv, nil
	case <-timedOut:
		return Move{}, fmt.Errorf("%w after %s", ErrChoiceTimeout, ic.timeout)
	case <-ctx.Done():
		return Move{}, ctx.Err()
	}
}

// publish installs req as the pending prompt, discarding any stale prompt
// or stale submission from an abandoned turn.
func (ic *Interactive) publish(req MoveRequest) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	ic.pending = &req
	select {
	case <-ic.requests:
	default:
	}
	select {
	case <-ic.moves:
	default:
	}
	ic.requests <- req
}

func (ic *Interactive) clearPending() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.pending = nil
}
