package room

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/partybox-games/roomserver/internal/dependencies/clock"
	"github.com/partybox-games/roomserver/internal/dependencies/random"
	"github.com/partybox-games/roomserver/internal/gamedef"
	"github.com/partybox-games/roomserver/internal/model"
	"github.com/partybox-games/roomserver/internal/services/dispatch"
	"github.com/partybox-games/roomserver/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages room lifecycle and membership
type Controller struct {
	store      storage.RoomStore
	dispatcher *dispatch.Dispatcher
	registry   *gamedef.Registry
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	store storage.RoomStore,
	dispatcher *dispatch.Dispatcher,
	registry *gamedef.Registry,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:      store,
		dispatcher: dispatcher,
		registry:   registry,
		clock:      clock,
		random:     random,
		logger:     logger,
	}
}

// CreateRoom creates a new room with the given player as host. If
// playerID is empty a fresh ID is minted server-side; clients that
// want rejoin to work must generate and persist their own.
func (c *Controller) CreateRoom(ctx context.Context, playerID model.PlayerID, name string) (*model.RoomState, error) {
	if name == "" {
		return nil, model.ErrMissingName
	}
	if playerID == "" {
		playerID = model.PlayerID(uuid.NewString())
	}

	now := c.clock.Now()

	for {
		code := model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))

		state := &model.RoomState{
			Room: model.Room{
				Code:   code,
				HostID: playerID,
				Players: []model.Player{
					{ID: playerID, Name: name, Role: model.RolePlayer},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		}

		err := c.store.Create(ctx, state)
		if err == nil {
			state.Version = 1
			c.logger.Info("room created",
				slog.String("room_code", string(code)),
				slog.String("host_id", string(playerID)),
			)
			return state, nil
		}
		if !errors.Is(err, model.ErrRoomExists) {
			return nil, err
		}
		// Code collision, generate another
	}
}

// GetRoom retrieves a room's current state by code
func (c *Controller) GetRoom(ctx context.Context, rawCode string) (*model.RoomState, error) {
	code := model.NormalizeRoomCode(rawCode)
	if code == "" {
		return nil, model.ErrMissingRoomCode
	}
	return c.store.Get(ctx, code)
}

// JoinRoom attaches or updates a player in the room's player list. A
// known player ID is a rejoin and only updates the stored name; an
// unknown ID appends a new member. The merge is recomputed against a
// fresh snapshot on every retry, so concurrent first-time joins all
// land.
func (c *Controller) JoinRoom(ctx context.Context, rawCode string, playerID model.PlayerID, name string) (*model.RoomState, model.PlayerID, error) {
	code := model.NormalizeRoomCode(rawCode)
	if code == "" {
		return nil, "", model.ErrMissingRoomCode
	}
	if name == "" {
		return nil, "", model.ErrMissingName
	}
	if playerID == "" {
		playerID = model.PlayerID(uuid.NewString())
	}

	state, err := c.dispatcher.Mutate(ctx, code, func(state *model.RoomState) error {
		if existing := state.Room.GetPlayer(playerID); existing != nil {
			existing.Name = name
		} else {
			// Late joiners spectate while a game is running
			role := model.RolePlayer
			if state.InGame() {
				role = model.RoleSpectator
			}
			state.Room.Players = append(state.Room.Players, model.Player{
				ID:   playerID,
				Name: name,
				Role: role,
			})
		}
		state.Room.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return state, playerID, nil
}

// StartGame begins a registered game module in the room. Only the host
// may start a game, and only while no game is running.
func (c *Controller) StartGame(ctx context.Context, rawCode string, playerID model.PlayerID, gameID model.GameID) (*model.RoomState, error) {
	code := model.NormalizeRoomCode(rawCode)
	if code == "" {
		return nil, model.ErrMissingRoomCode
	}

	def, err := c.registry.Lookup(gameID)
	if err != nil {
		return nil, err
	}
	info := def.Info()

	seed1, seed2 := c.random.Uint64(), c.random.Uint64()

	state, err := c.dispatcher.Mutate(ctx, code, func(state *model.RoomState) error {
		if !state.Room.IsHost(playerID) {
			return model.ErrNotHost
		}
		if state.InGame() {
			return model.ErrGameInProgress
		}

		players := state.Room.ActivePlayers()
		if len(players) < info.MinPlayers {
			return model.ErrInsufficientPlayers
		}
		if info.MaxPlayers > 0 && len(players) > info.MaxPlayers {
			return model.ErrTooManyPlayers
		}

		gctx := gamedef.NewContext(c.clock, seed1, seed2, state.Room, playerID)
		initial, err := def.InitialState(players, gctx)
		if err != nil {
			return err
		}

		state.GameID = gameID
		state.GameState = initial
		state.Room.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("room_code", string(code)),
		slog.String("game_id", string(gameID)),
		slog.Int64("version", state.Version),
	)
	return state, nil
}

// EndGame clears the room's game state so a new game can start. Host only.
func (c *Controller) EndGame(ctx context.Context, rawCode string, playerID model.PlayerID) (*model.RoomState, error) {
	code := model.NormalizeRoomCode(rawCode)
	if code == "" {
		return nil, model.ErrMissingRoomCode
	}

	return c.dispatcher.Mutate(ctx, code, func(state *model.RoomState) error {
		if !state.Room.IsHost(playerID) {
			return model.ErrNotHost
		}
		if !state.InGame() {
			return model.ErrNoGameInProgress
		}

		state.GameID = ""
		state.GameState = nil
		// Everyone who was spectating gets a seat for the next game
		for i := range state.Room.Players {
			state.Room.Players[i].Role = model.RolePlayer
		}
		state.Room.UpdatedAt = c.clock.Now()
		return nil
	})
}

// SubmitAction dispatches one game action against the room
func (c *Controller) SubmitAction(ctx context.Context, rawCode string, action model.Action) (*model.RoomState, error) {
	code := model.NormalizeRoomCode(rawCode)
	if code == "" {
		return nil, model.ErrMissingRoomCode
	}
	return c.dispatcher.Dispatch(ctx, code, action)
}

// ControllerInterface is the room controller contract used by handlers
type ControllerInterface interface {
	CreateRoom(ctx context.Context, playerID model.PlayerID, name string) (*model.RoomState, error)
	GetRoom(ctx context.Context, rawCode string) (*model.RoomState, error)
	JoinRoom(ctx context.Context, rawCode string, playerID model.PlayerID, name string) (*model.RoomState, model.PlayerID, error)
	StartGame(ctx context.Context, rawCode string, playerID model.PlayerID, gameID model.GameID) (*model.RoomState, error)
	EndGame(ctx context.Context, rawCode string, playerID model.PlayerID) (*model.RoomState, error)
	SubmitAction(ctx context.Context, rawCode string, action model.Action) (*model.RoomState, error)
}

var _ ControllerInterface = (*Controller)(nil)
