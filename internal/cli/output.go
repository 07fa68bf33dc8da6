package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RoomState:
		o.printRoomState(v)
	case JoinResult:
		o.printJoinResult(v)
	case []GameInfo:
		o.printGameList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Room response type
type Room struct {
	RoomCode  string    `json:"roomCode"`
	HostID    string    `json:"hostId"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomState response type
type RoomState struct {
	Version   int64           `json:"version"`
	Room      Room            `json:"room"`
	GameID    string          `json:"gameId,omitempty"`
	GameState json.RawMessage `json:"gameState"`
	Phase     string          `json:"phase,omitempty"`
}

// JoinResult response type
type JoinResult struct {
	RoomState
	PlayerID string `json:"playerId"`
}

// GameInfo response type
type GameInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MinPlayers int    `json:"minPlayers"`
	MaxPlayers int    `json:"maxPlayers"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoomState(s RoomState) {
	fmt.Printf("Room: %s\n", s.Room.RoomCode)
	fmt.Printf("Version: %d\n", s.Version)
	if s.GameID != "" {
		fmt.Printf("Game: %s\n", s.GameID)
	}
	if s.Phase != "" {
		fmt.Printf("Phase: %s\n", s.Phase)
	}
	fmt.Printf("Players (%d):\n", len(s.Room.Players))
	for _, p := range s.Room.Players {
		hostStr := ""
		if p.ID == s.Room.HostID {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s (%s) - %s%s\n", p.Name, p.ID, p.Role, hostStr)
	}
	if len(s.GameState) > 0 {
		fmt.Println("\nGame State:")
		var pretty map[string]any
		if err := json.Unmarshal(s.GameState, &pretty); err == nil {
			o.printJSON(pretty)
		} else {
			fmt.Println(string(s.GameState))
		}
	}
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Player ID: %s\n", j.PlayerID)
	o.printRoomState(j.RoomState)
}

func (o *Output) printGameList(games []GameInfo) {
	fmt.Printf("Games (%d):\n", len(games))
	for _, g := range games {
		fmt.Printf("  - %s: %s (%d-%d players)\n", g.ID, g.Name, g.MinPlayers, g.MaxPlayers)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
