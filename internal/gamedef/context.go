package gamedef

import (
	"math/rand/v2"
	"time"

	"github.com/partybox-games/roomserver/internal/dependencies/clock"
	"github.com/partybox-games/roomserver/internal/model"
)

// Context is the capability bundle handed to a game module for one
// dispatch. All randomness must come from Rand and all time reads from
// Now; the dispatcher seeds Rand identically for every retry of one
// dispatch, so a retried reducer reproduces the same draws.
type Context struct {
	// Rand is the seeded deterministic source for this dispatch
	Rand *rand.Rand

	// Room is an immutable snapshot of the room's membership
	Room model.Room

	// PlayerID is the actor submitting the action (empty for
	// system-initiated operations such as game start)
	PlayerID model.PlayerID

	clock clock.Clock
}

// NewContext builds a dispatch context. The two seed words fix the
// deterministic random stream.
func NewContext(clk clock.Clock, seed1, seed2 uint64, room model.Room, playerID model.PlayerID) Context {
	return Context{
		Rand:     rand.New(rand.NewPCG(seed1, seed2)),
		Room:     room,
		PlayerID: playerID,
		clock:    clk,
	}
}

// Now returns the current time from the injected clock
func (c Context) Now() time.Time {
	return c.clock.Now()
}

// IsHost reports whether the acting player is the room's host
func (c Context) IsHost() bool {
	return c.Room.IsHost(c.PlayerID)
}

// Shuffle randomizes the order of n elements using the seeded source
func (c Context) Shuffle(n int, swap func(i, j int)) {
	c.Rand.Shuffle(n, swap)
}
