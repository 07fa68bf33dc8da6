package request

import "encoding/json"

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	GameID   string `json:"gameId"`
}

// EndGameRequest is the request body for ending the current game
type EndGameRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// ActionRequest is the request body for submitting a game action
type ActionRequest struct {
	RoomCode string          `json:"roomCode"`
	PlayerID string          `json:"playerId"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}
