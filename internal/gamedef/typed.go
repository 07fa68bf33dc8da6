package gamedef

import (
	"encoding/json"
	"fmt"

	"github.com/partybox-games/roomserver/internal/model"
)

// Game is the typed contract a game module implements over its own
// state struct. Wrap adapts it to the untyped Definition used by the
// dispatcher, so the marshal/unmarshal boundary lives in exactly one
// place.
type Game[S any] interface {
	Info() Info

	// InitialState builds a fresh state for the confirmed player list
	InitialState(players []model.Player, ctx Context) (S, error)

	// Reduce is total: an unrecognized or malformed action for the
	// current phase returns state unchanged
	Reduce(state S, action model.Action, ctx Context) S

	// Phase projects the current phase
	Phase(state S) model.Phase

	// ActionAllowed gates the action before Reduce runs
	ActionAllowed(state S, action model.Action, ctx Context) bool
}

// Wrap adapts a typed game module to the untyped Definition contract
func Wrap[S any](g Game[S]) Definition {
	return &typedDefinition[S]{game: g}
}

type typedDefinition[S any] struct {
	game Game[S]
}

func (d *typedDefinition[S]) Info() Info {
	return d.game.Info()
}

func (d *typedDefinition[S]) InitialState(players []model.Player, ctx Context) (json.RawMessage, error) {
	state, err := d.game.InitialState(players, ctx)
	if err != nil {
		return nil, err
	}
	return marshalState(d.game.Info().ID, state)
}

func (d *typedDefinition[S]) Reduce(state json.RawMessage, action model.Action, ctx Context) (json.RawMessage, error) {
	decoded, err := unmarshalState[S](d.game.Info().ID, state)
	if err != nil {
		return nil, err
	}
	next := d.game.Reduce(decoded, action, ctx)
	return marshalState(d.game.Info().ID, next)
}

func (d *typedDefinition[S]) Phase(state json.RawMessage) (model.Phase, error) {
	decoded, err := unmarshalState[S](d.game.Info().ID, state)
	if err != nil {
		return "", err
	}
	return d.game.Phase(decoded), nil
}

func (d *typedDefinition[S]) ActionAllowed(state json.RawMessage, action model.Action, ctx Context) (bool, error) {
	decoded, err := unmarshalState[S](d.game.Info().ID, state)
	if err != nil {
		return false, err
	}
	return d.game.ActionAllowed(decoded, action, ctx), nil
}

func marshalState[S any](id model.GameID, state S) (json.RawMessage, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal %s state: %w", id, err)
	}
	return data, nil
}

func unmarshalState[S any](id model.GameID, raw json.RawMessage) (S, error) {
	var state S
	if err := json.Unmarshal(raw, &state); err != nil {
		return state, fmt.Errorf("unmarshal %s state: %w", id, err)
	}
	return state, nil
}
