package venture

import (
	"encoding/json"

	"github.com/partybox-games/roomserver/internal/model"
)

// Action types
const (
	ActionSetPlan   model.ActionType = "set_plan"
	ActionInvest    model.ActionType = "invest"
	ActionDraftPick model.ActionType = "draft_pick"
	ActionResolve   model.ActionType = "resolve_customers"
	ActionEndRound  model.ActionType = "end_round"
)

// setPlanPayload carries the sector a player bets their round on
type setPlanPayload struct {
	Plan string `json:"plan"`
}

// investPayload carries the funds a player commits this round
type investPayload struct {
	Amount int `json:"amount"`
}

// draftPickPayload carries the market index of the chosen asset
type draftPickPayload struct {
	Index int `json:"index"`
}

// decodePayload unmarshals an action payload into its typed variant.
// A nil payload decodes the zero value; malformed JSON reports false.
func decodePayload[P any](raw json.RawMessage) (P, bool) {
	var payload P
	if len(raw) == 0 {
		return payload, true
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, false
	}
	return payload, true
}

// phaseActions is the allow-list of action types per phase. An action
// absent from its phase's set is never admissible, whoever submits it.
var phaseActions = map[model.Phase]map[model.ActionType]bool{
	PhasePlanning:   {ActionSetPlan: true},
	PhaseInvestment: {ActionInvest: true},
	PhaseDraft:      {ActionDraftPick: true},
	PhaseResolution: {ActionResolve: true},
	PhaseCleanup:    {ActionEndRound: true},
}
