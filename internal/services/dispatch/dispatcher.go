// Package dispatch implements the read-authorize-apply-commit loop
// that applies one inbound action to a room's versioned state.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/partybox-games/roomserver/internal/dependencies/clock"
	"github.com/partybox-games/roomserver/internal/dependencies/random"
	"github.com/partybox-games/roomserver/internal/gamedef"
	"github.com/partybox-games/roomserver/internal/model"
	"github.com/partybox-games/roomserver/internal/storage"
)

const (
	// MaxRetries bounds the number of commit attempts per dispatch.
	// Exhaustion surfaces model.ErrConcurrentUpdate to the caller.
	MaxRetries = 5

	// DefaultBackoffBase is the initial delay before a retry. Each
	// subsequent attempt doubles it and adds random jitter.
	DefaultBackoffBase = 5 * time.Millisecond

	// DefaultTimeout bounds one whole dispatch, read through retries
	DefaultTimeout = 5 * time.Second
)

// Dispatcher orchestrates optimistic-concurrency updates against the
// room store. It is safe for concurrent use.
type Dispatcher struct {
	store    storage.RoomStore
	registry *gamedef.Registry
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	// BackoffBase is the initial retry delay. Zero disables waiting
	// between retries (useful in tests).
	BackoffBase time.Duration

	// Timeout bounds a whole dispatch including retries. Zero means
	// no bound beyond the caller's context.
	Timeout time.Duration
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	store storage.RoomStore,
	registry *gamedef.Registry,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		store:       store,
		registry:    registry,
		clock:       clock,
		random:      random,
		logger:      logger,
		BackoffBase: DefaultBackoffBase,
		Timeout:     DefaultTimeout,
	}
}

// Mutate re-reads the room's current snapshot, applies fn to it, and
// commits with compare-and-swap, retrying on version conflict up to
// MaxRetries. fn runs against a fresh snapshot on every attempt, so
// merge logic is recomputed against whatever the winning writer left
// behind. Any error from fn is terminal and skips the commit.
func (d *Dispatcher) Mutate(ctx context.Context, code model.RoomCode, fn func(state *model.RoomState) error) (*model.RoomState, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state, err := d.store.Get(ctx, code)
		if err != nil {
			return nil, err
		}
		expected := state.Version

		if err := fn(state); err != nil {
			return nil, err
		}

		newVersion, err := d.store.Update(ctx, code, state, expected)
		if err == nil {
			state.Version = newVersion
			return state, nil
		}
		if !errors.Is(err, model.ErrVersionConflict) {
			return nil, err
		}

		d.logger.Debug("version conflict, retrying",
			slog.String("room_code", string(code)),
			slog.Int("attempt", attempt+1),
		)

		if err := d.wait(ctx, attempt); err != nil {
			return nil, err
		}
	}

	d.logger.Warn("retry budget exhausted",
		slog.String("room_code", string(code)),
		slog.Int("max_retries", MaxRetries),
	)
	return nil, model.ErrConcurrentUpdate
}

// Dispatch applies one game action: authorize via the module's guard,
// reduce, and commit. The deterministic random seed is drawn once per
// dispatch and re-used on every retry, so a retried reducer reproduces
// the same draws against the freshly re-read state.
func (d *Dispatcher) Dispatch(ctx context.Context, code model.RoomCode, action model.Action) (*model.RoomState, error) {
	seed1, seed2 := d.random.Uint64(), d.random.Uint64()

	return d.Mutate(ctx, code, func(state *model.RoomState) error {
		if !state.InGame() {
			return model.ErrNoGameInProgress
		}

		def, err := d.registry.Lookup(state.GameID)
		if err != nil {
			return err
		}

		gctx := gamedef.NewContext(d.clock, seed1, seed2, state.Room, action.PlayerID)

		allowed, err := def.ActionAllowed(state.GameState, action, gctx)
		if err != nil {
			return err
		}
		if !allowed {
			d.logger.Info("action rejected",
				slog.String("room_code", string(code)),
				slog.String("action_type", string(action.Type)),
				slog.String("player_id", string(action.PlayerID)),
			)
			return model.ErrActionNotAllowed
		}

		next, err := def.Reduce(state.GameState, action, gctx)
		if err != nil {
			return err
		}

		state.GameState = next
		state.Room.UpdatedAt = d.clock.Now()
		return nil
	})
}

// wait sleeps for the backoff interval of the given attempt, doubling
// the base per attempt with random jitter, and returns early if the
// context is cancelled.
func (d *Dispatcher) wait(ctx context.Context, attempt int) error {
	if d.BackoffBase <= 0 {
		return nil
	}

	backoff := d.BackoffBase << attempt
	jitter := time.Duration(d.random.Intn(int(backoff)))

	timer := time.NewTimer(backoff + jitter)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
