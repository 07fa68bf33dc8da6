package model

// PlayerID uniquely identifies a player across the system.
// It is chosen by the client (a UUID) and persisted client-side,
// so re-submitting the same ID is a rejoin rather than a new player.
type PlayerID string

// PlayerRole distinguishes active players from spectators
type PlayerRole string

const (
	RolePlayer    PlayerRole = "player"
	RoleSpectator PlayerRole = "spectator"
)

// Player represents a room participant
type Player struct {
	ID   PlayerID
	Name string
	Role PlayerRole
}
