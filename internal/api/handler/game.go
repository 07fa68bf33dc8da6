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

// GameHandler handles game lifecycle and action endpoints
type GameHandler struct {
	rooms    room.ControllerInterface
	registry *gamedef.Registry
}

// NewGameHandler creates a new game handler
func NewGameHandler(rooms room.ControllerInterface, registry *gamedef.Registry) *GameHandler {
	return &GameHandler{
		rooms:    rooms,
		registry: registry,
	}
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	infos := h.registry.List()
	games := make([]response.GameInfo, len(infos))
	for i, info := range infos {
		games[i] = response.GameInfoFromDef(info)
	}
	response.JSON(w, http.StatusOK, games)
}

// Start handles POST /api/start-game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("gameId is required"))
		return
	}

	state, err := h.rooms.StartGame(r.Context(), req.RoomCode, model.PlayerID(req.PlayerID), model.GameID(req.GameID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, roomStateView(h.registry, state))
}

// End handles POST /api/end-game
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	var req request.EndGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	state, err := h.rooms.EndGame(r.Context(), req.RoomCode, model.PlayerID(req.PlayerID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, roomStateView(h.registry, state))
}

// Action handles POST /api/action
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req request.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Type == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("type is required"))
		return
	}

	action := model.Action{
		Type:     model.ActionType(req.Type),
		PlayerID: model.PlayerID(req.PlayerID),
		Payload:  req.Payload,
	}

	state, err := h.rooms.SubmitAction(r.Context(), req.RoomCode, action)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, roomStateView(h.registry, state))
}
