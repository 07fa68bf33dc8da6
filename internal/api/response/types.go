package response

import (
	"encoding/json"
	"time"

	"github.com/partybox-games/roomserver/internal/gamedef"
	"github.com/partybox-games/roomserver/internal/model"
)

// Player represents a room member in API responses
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:   string(p.ID),
		Name: p.Name,
		Role: string(p.Role),
	}
}

// Room represents a room in API responses
type Room struct {
	RoomCode  string    `json:"roomCode"`
	HostID    string    `json:"hostId"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomFromModel converts a model.Room
func RoomFromModel(r model.Room) Room {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerFromModel(p)
	}
	return Room{
		RoomCode:  string(r.Code),
		HostID:    string(r.HostID),
		Players:   players,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RoomState is the full versioned room view including the opaque game
// state document. GameState is null before a game starts. Phase is a
// projection supplied by the owning game module, empty when no game is
// running.
type RoomState struct {
	Version   int64           `json:"version"`
	Room      Room            `json:"room"`
	GameID    string          `json:"gameId,omitempty"`
	GameState json.RawMessage `json:"gameState"`
	Phase     string          `json:"phase,omitempty"`
}

// RoomStateFromModel converts a model.RoomState with its projected phase
func RoomStateFromModel(s *model.RoomState, phase model.Phase) RoomState {
	return RoomState{
		Version:   s.Version,
		Room:      RoomFromModel(s.Room),
		GameID:    string(s.GameID),
		GameState: s.GameState,
		Phase:     string(phase),
	}
}

// JoinResult is the join-room response: the joined room plus the
// (possibly server-minted) player id the client must persist
type JoinResult struct {
	RoomState
	PlayerID string `json:"playerId"`
}

// GameInfo describes one registered game module
type GameInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MinPlayers int    `json:"minPlayers"`
	MaxPlayers int    `json:"maxPlayers"`
}

// GameInfoFromDef converts a gamedef.Info
func GameInfoFromDef(info gamedef.Info) GameInfo {
	return GameInfo{
		ID:         string(info.ID),
		Name:       info.Name,
		MinPlayers: info.MinPlayers,
		MaxPlayers: info.MaxPlayers,
	}
}
