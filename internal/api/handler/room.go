package handler

import (
	"encoding/json"
	"net/http"

	"github.com/partybox-games/roomserver/internal/api/apierr"
	"github.com/partybox-games/roomserver/internal/api/request"
	"github.com/partybox-games/roomserver/internal/api/response"
	"github.com/partybox-games/roomserver/internal/gamedef"
	"github.com/partybox-games/roomserver/internal/model"
	"github.com/partybox-games/roomserver/internal/services/room"
)

// RoomHandler handles room lifecycle and membership endpoints
type RoomHandler struct {
	rooms    room.ControllerInterface
	registry *gamedef.Registry
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms room.ControllerInterface, registry *gamedef.Registry) *RoomHandler {
	return &RoomHandler{
		rooms:    rooms,
		registry: registry,
	}
}

// roomStateView projects the phase through the owning game module and
// builds the response view of a room snapshot
func roomStateView(registry *gamedef.Registry, state *model.RoomState) response.RoomState {
	var phase model.Phase
	if state.InGame() {
		if def, err := registry.Lookup(state.GameID); err == nil {
			phase, _ = def.Phase(state.GameState)
		}
	}
	return response.RoomStateFromModel(state, phase)
}

// Get handles GET /api/get-room?roomCode=CODE
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("roomCode")

	state, err := h.rooms.GetRoom(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, roomStateView(h.registry, state))
}

// Create handles POST /api/create-room
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	state, err := h.rooms.CreateRoom(r.Context(), model.PlayerID(req.PlayerID), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinResult{
		RoomState: roomStateView(h.registry, state),
		PlayerID:  string(state.Room.HostID),
	})
}

// Join handles POST /api/join-room
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	state, playerID, err := h.rooms.JoinRoom(r.Context(), req.RoomCode, model.PlayerID(req.PlayerID), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResult{
		RoomState: roomStateView(h.registry, state),
		PlayerID:  string(playerID),
	})
}
