package model

import (
	"encoding/json"
	"strings"
	"time"
)

// RoomCode is a human-typed identifier for joining rooms.
// Codes are case-insensitive on input and stored upper-cased.
type RoomCode string

// NormalizeRoomCode upper-cases and trims a raw room code
func NormalizeRoomCode(raw string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// GameID identifies a registered game module
type GameID string

// Phase is a game-module-defined stage of play.
// The set of valid phases is owned entirely by each game module.
type Phase string

// Room holds the membership of one multiplayer session.
// The host is fixed at creation and never re-elected.
type Room struct {
	Code      RoomCode
	HostID    PlayerID
	Players   []Player
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the player with the given ID, or nil if not present
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// IsHost reports whether the given player is the room's host
func (r *Room) IsHost(id PlayerID) bool {
	return id != "" && r.HostID == id
}

// ActivePlayers returns all members with the player role
func (r *Room) ActivePlayers() []Player {
	var players []Player
	for _, p := range r.Players {
		if p.Role == RolePlayer {
			players = append(players, p)
		}
	}
	return players
}

// RoomState is the atomic unit of storage: one versioned record per
// room code. Version strictly increases by 1 on every committed write
// and is the sole concurrency token. GameState is nil until a game
// module produces an initial state and is opaque to everything outside
// that module thereafter.
type RoomState struct {
	Version   int64
	Room      Room
	GameID    GameID
	GameState json.RawMessage
}

// InGame reports whether a game module currently owns this room's state
func (s *RoomState) InGame() bool {
	return s.GameID != "" && s.GameState != nil
}
