// Package gamedef defines the contract a game module implements to be
// dispatched safely under concurrent writers: a pure reducer, a phase
// projection, and an action-permission guard over a versioned, opaque
// state blob.
package gamedef

import (
	"encoding/json"

	"github.com/partybox-games/roomserver/internal/model"
)

// Info is the static descriptor of a game module. One instance exists
// per process; it has no per-room lifecycle.
type Info struct {
	ID         model.GameID
	Name       string
	MinPlayers int
	MaxPlayers int
}

// Definition is the untyped game-module contract the dispatcher and
// registry operate on. State is an opaque JSON document owned entirely
// by the module; the engine never inspects its shape.
//
// All four operations must be pure: no I/O, no wall-clock reads outside
// ctx.Now, no randomness outside ctx.Rand. Reduce must be total: an
// action unrecognized or structurally invalid for the current phase
// returns the input state unchanged, never an error.
type Definition interface {
	// Info returns the module's static descriptor
	Info() Info

	// InitialState builds a fresh game state for a confirmed player
	// list. Deterministic given the same players and context.
	InitialState(players []model.Player, ctx Context) (json.RawMessage, error)

	// Reduce maps (state, action, ctx) to a new state. The returned
	// document must be a new value; committed state is never mutated
	// in place.
	Reduce(state json.RawMessage, action model.Action, ctx Context) (json.RawMessage, error)

	// Phase is a pure projection of the current phase. It is used by
	// generic host/UI affordances and must not itself gate actions.
	Phase(state json.RawMessage) (model.Phase, error)

	// ActionAllowed is the authoritative permission guard, evaluated
	// before Reduce. It encodes phase membership, actor identity, and
	// state-shape preconditions.
	ActionAllowed(state json.RawMessage, action model.Action, ctx Context) (bool, error)
}
