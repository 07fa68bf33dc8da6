package model

import "encoding/json"

// ActionType tags one kind of game action
type ActionType string

// Action is one inbound game action. Payload carries the fields for
// the action's type; each game module decodes it into a typed variant
// once at its own boundary.
type Action struct {
	Type     ActionType
	PlayerID PlayerID
	Payload  json.RawMessage
}
