// Package venture implements a startup-investment party game: each
// round players pick a sector to bet on, commit funds, draft assets,
// and a customer-demand draw pays out matching portfolios.
package venture

import (
	"github.com/partybox-games/roomserver/internal/gamedef"
	"github.com/partybox-games/roomserver/internal/model"
)

// ID is the registry key for this game module
const ID model.GameID = "venture"

// Game implements the typed game-module contract
type Game struct{}

// New creates the module; register the result with the game registry
func New() gamedef.Definition {
	return gamedef.Wrap[State](Game{})
}

func (Game) Info() gamedef.Info {
	return gamedef.Info{
		ID:         ID,
		Name:       "Venture",
		MinPlayers: 2,
		MaxPlayers: 6,
	}
}

// InitialState deals a shuffled asset deck and an open market, and
// puts every player on equal footing for round one.
func (Game) InitialState(players []model.Player, ctx gamedef.Context) (State, error) {
	deck := baseDeck()
	ctx.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	marketSize := len(players) + 1
	market := append([]Card(nil), deck[:marketSize]...)
	deck = deck[marketSize:]

	states := make([]PlayerState, len(players))
	for i, p := range players {
		states[i] = PlayerState{
			ID:         p.ID,
			Funds:      StartingFunds,
			Investment: NotInvested,
		}
	}

	return State{
		Round:   1,
		Phase:   PhasePlanning,
		Players: states,
		Market:  market,
		Deck:    deck,
	}, nil
}

// Phase projects the current phase
func (Game) Phase(state State) model.Phase {
	return state.Phase
}

// ActionAllowed is the authoritative guard: phase membership, actor
// identity, and state preconditions. A false here means the dispatcher
// never runs the reducer.
func (g Game) ActionAllowed(state State, action model.Action, ctx gamedef.Context) bool {
	if !phaseActions[state.Phase][action.Type] {
		return false
	}

	actor := state.player(action.PlayerID)

	switch action.Type {
	case ActionSetPlan:
		payload, ok := decodePayload[setPlanPayload](action.Payload)
		return ok && actor != nil && actor.Plan == "" && validSector(payload.Plan)

	case ActionInvest:
		payload, ok := decodePayload[investPayload](action.Payload)
		return ok && actor != nil && actor.Investment == NotInvested &&
			payload.Amount >= 0 && payload.Amount <= actor.Funds

	case ActionDraftPick:
		payload, ok := decodePayload[draftPickPayload](action.Payload)
		return ok && action.PlayerID == state.currentDrafter() &&
			payload.Index >= 0 && payload.Index < len(state.Market)

	case ActionResolve, ActionEndRound:
		return ctx.IsHost()

	default:
		return false
	}
}

// Reduce applies one action. The guard is re-checked first, so an
// unrecognized or disallowed action returns the input state unchanged.
func (g Game) Reduce(state State, action model.Action, ctx gamedef.Context) State {
	if !g.ActionAllowed(state, action, ctx) {
		return state
	}

	next := state.clone()

	switch action.Type {
	case ActionSetPlan:
		payload, _ := decodePayload[setPlanPayload](action.Payload)
		next.player(action.PlayerID).Plan = payload.Plan
		if next.allPlanned() {
			next.Phase = PhaseInvestment
		}

	case ActionInvest:
		payload, _ := decodePayload[investPayload](action.Payload)
		actor := next.player(action.PlayerID)
		actor.Investment = payload.Amount
		actor.Funds -= payload.Amount
		if next.allInvested() {
			next.Phase = PhaseDraft
			next.TurnIdx = 0
		}

	case ActionDraftPick:
		payload, _ := decodePayload[draftPickPayload](action.Payload)
		actor := next.player(action.PlayerID)
		card := next.Market[payload.Index]
		actor.Portfolio = append(actor.Portfolio, card)
		next.Market = append(next.Market[:payload.Index], next.Market[payload.Index+1:]...)
		if len(next.Deck) > 0 {
			next.Market = append(next.Market, next.Deck[0])
			next.Deck = next.Deck[1:]
		}
		next.TurnIdx++
		if next.TurnIdx >= len(next.Players) {
			next.Phase = PhaseResolution
		}

	case ActionResolve:
		demand := Sectors[ctx.Rand.IntN(len(Sectors))]
		payouts := make(map[model.PlayerID]int, len(next.Players))
		for i := range next.Players {
			p := &next.Players[i]
			payout := 0
			for _, card := range p.Portfolio {
				if card.Sector == demand {
					payout += card.Yield
				}
			}
			// A correct sector bet doubles the committed funds;
			// a wrong one forfeits them.
			if p.Plan == demand {
				payout += p.Investment * 2
			}
			p.Funds += payout
			p.Investment = NotInvested
			payouts[p.ID] = payout
		}
		next.LastResolution = &Resolution{Demand: demand, Payouts: payouts}
		next.Phase = PhaseCleanup

	case ActionEndRound:
		for i := range next.Players {
			next.Players[i].Plan = ""
			next.Players[i].Investment = NotInvested
		}
		next.Round++
		next.TurnIdx = 0
		next.Phase = PhasePlanning
	}

	return next
}

// Ensure Game satisfies the typed contract
var _ gamedef.Game[State] = Game{}
