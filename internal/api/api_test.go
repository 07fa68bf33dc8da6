package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partybox-games/roomserver/internal/api"
	"github.com/partybox-games/roomserver/internal/api/response"
	"github.com/partybox-games/roomserver/internal/factory"
	"github.com/partybox-games/roomserver/internal/games/venture"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RoomController: app.RoomController,
		Registry:       app.Registry,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// envelope mirrors the response wire format
type envelope struct {
	OK        bool            `json:"ok"`
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"errorCode"`
	Message   string          `json:"message"`
}

// decode unwraps the envelope into result and returns the envelope
func decode(t *testing.T, rr *httptest.ResponseRecorder, result any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	if result != nil && env.Data != nil {
		require.NoError(t, json.Unmarshal(env.Data, result))
	}
	return env
}

// createRoom creates a room and returns its join result
func createRoom(t *testing.T, ts *testServer, name string) response.JoinResult {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/create-room", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rr.Code)

	var result response.JoinResult
	env := decode(t, rr, &result)
	require.True(t, env.OK)
	return result
}

// joinRoom joins an existing room and returns the join result
func joinRoom(t *testing.T, ts *testServer, code, name string) response.JoinResult {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/join-room", map[string]string{
		"roomCode": code,
		"name":     name,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var result response.JoinResult
	env := decode(t, rr, &result)
	require.True(t, env.OK)
	return result
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	env := decode(t, rr, nil)
	assert.True(t, env.OK)
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	result := createRoom(t, ts, "Alice")

	assert.Len(t, result.Room.RoomCode, 4)
	assert.NotEmpty(t, result.PlayerID)
	assert.Equal(t, result.PlayerID, result.Room.HostID)
	assert.Equal(t, int64(1), result.Version)
	require.Len(t, result.Room.Players, 1)
	assert.Equal(t, "Alice", result.Room.Players[0].Name)
	assert.Empty(t, result.Phase)
}

func TestCreateRoomMissingName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/create-room", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	env := decode(t, rr, nil)
	assert.False(t, env.OK)
	assert.Equal(t, "MISSING_NAME", env.ErrorCode)
}

func TestCreateRoomKeepsClientPlayerID(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/create-room", map[string]string{
		"playerId": "my-stable-uuid",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var result response.JoinResult
	decode(t, rr, &result)
	assert.Equal(t, "my-stable-uuid", result.PlayerID)
}

func TestGetRoom(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/get-room?roomCode="+url.QueryEscape(created.Room.RoomCode), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var result response.RoomState
	env := decode(t, rr, &result)
	assert.True(t, env.OK)
	assert.Equal(t, created.Room.RoomCode, result.Room.RoomCode)
	assert.Nil(t, result.GameState)
}

func TestGetRoomCodeIsCaseInsensitive(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")

	lower := "/api/get-room?roomCode=" + url.QueryEscape(string(bytes.ToLower([]byte(created.Room.RoomCode))))
	rr := ts.request(http.MethodGet, lower, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGetRoomMissingCode(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/get-room", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	env := decode(t, rr, nil)
	assert.Equal(t, "MISSING_ROOM_CODE", env.ErrorCode)
}

func TestGetRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/get-room?roomCode=QQQQ", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	env := decode(t, rr, nil)
	assert.Equal(t, "ROOM_NOT_FOUND", env.ErrorCode)
}

func TestJoinRoom(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")

	result := joinRoom(t, ts, created.Room.RoomCode, "Bob")

	assert.NotEmpty(t, result.PlayerID)
	assert.NotEqual(t, created.PlayerID, result.PlayerID)
	require.Len(t, result.Room.Players, 2)
	assert.Equal(t, "Bob", result.Room.Players[1].Name)
	assert.Equal(t, int64(2), result.Version)
}

func TestJoinRoomRejoin(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")
	joined := joinRoom(t, ts, created.Room.RoomCode, "Bob")

	rr := ts.request(http.MethodPost, "/api/join-room", map[string]string{
		"roomCode": created.Room.RoomCode,
		"playerId": joined.PlayerID,
		"name":     "Robert",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var result response.JoinResult
	decode(t, rr, &result)
	assert.Equal(t, joined.PlayerID, result.PlayerID)
	assert.Len(t, result.Room.Players, 2)
	assert.Equal(t, "Robert", result.Room.Players[1].Name)
}

func TestJoinRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/join-room", map[string]string{
		"roomCode": "QQQQ",
		"name":     "Bob",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	env := decode(t, rr, nil)
	assert.Equal(t, "ROOM_NOT_FOUND", env.ErrorCode)
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/games", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var games []response.GameInfo
	env := decode(t, rr, &games)
	assert.True(t, env.OK)
	require.Len(t, games, 1)
	assert.Equal(t, string(venture.ID), games[0].ID)
	assert.Equal(t, 2, games[0].MinPlayers)
}

func TestStartGameNotHost(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")
	joined := joinRoom(t, ts, created.Room.RoomCode, "Bob")

	rr := ts.request(http.MethodPost, "/api/start-game", map[string]string{
		"roomCode": created.Room.RoomCode,
		"playerId": joined.PlayerID,
		"gameId":   string(venture.ID),
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	env := decode(t, rr, nil)
	assert.Equal(t, "NOT_HOST", env.ErrorCode)
}

func TestStartGameInsufficientPlayers(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/start-game", map[string]string{
		"roomCode": created.Room.RoomCode,
		"playerId": created.PlayerID,
		"gameId":   string(venture.ID),
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	env := decode(t, rr, nil)
	assert.Equal(t, "INSUFFICIENT_PLAYERS", env.ErrorCode)
}

func TestStartGameUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")
	joinRoom(t, ts, created.Room.RoomCode, "Bob")

	rr := ts.request(http.MethodPost, "/api/start-game", map[string]string{
		"roomCode": created.Room.RoomCode,
		"playerId": created.PlayerID,
		"gameId":   "mystery",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	env := decode(t, rr, nil)
	assert.Equal(t, "GAME_NOT_FOUND", env.ErrorCode)
}

func TestActionWithoutGame(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/action", map[string]any{
		"roomCode": created.Room.RoomCode,
		"playerId": created.PlayerID,
		"type":     "set_plan",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	env := decode(t, rr, nil)
	assert.Equal(t, "NO_GAME_IN_PROGRESS", env.ErrorCode)
}

func TestFullGameFlow(t *testing.T) {
	ts := newTestServer(t)
	host := createRoom(t, ts, "Alice")
	code := host.Room.RoomCode
	guest := joinRoom(t, ts, code, "Bob")

	// Host starts the game
	rr := ts.request(http.MethodPost, "/api/start-game", map[string]string{
		"roomCode": code,
		"playerId": host.PlayerID,
		"gameId":   string(venture.ID),
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var started response.RoomState
	decode(t, rr, &started)
	assert.Equal(t, string(venture.ID), started.GameID)
	assert.Equal(t, string(venture.PhasePlanning), started.Phase)
	assert.NotNil(t, started.GameState)

	// Starting twice conflicts
	rr = ts.request(http.MethodPost, "/api/start-game", map[string]string{
		"roomCode": code,
		"playerId": host.PlayerID,
		"gameId":   string(venture.ID),
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	env := decode(t, rr, nil)
	assert.Equal(t, "GAME_IN_PROGRESS", env.ErrorCode)

	// A wrong-phase action is rejected without changing state
	rr = ts.request(http.MethodPost, "/api/action", map[string]any{
		"roomCode": code,
		"playerId": host.PlayerID,
		"type":     "invest",
		"payload":  map[string]int{"amount": 10},
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	env = decode(t, rr, nil)
	assert.Equal(t, "ACTION_NOT_ALLOWED", env.ErrorCode)

	// Both players lock in a plan; the phase advances
	for i, p := range []string{host.PlayerID, guest.PlayerID} {
		plan := []string{"tech", "food"}[i]
		rr = ts.request(http.MethodPost, "/api/action", map[string]any{
			"roomCode": code,
			"playerId": p,
			"type":     "set_plan",
			"payload":  map[string]string{"plan": plan},
		})
		require.Equal(t, http.StatusOK, rr.Code, "set_plan for player %d", i)
	}

	var after response.RoomState
	rr = ts.request(http.MethodGet, fmt.Sprintf("/api/get-room?roomCode=%s", url.QueryEscape(code)), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &after)
	assert.Equal(t, string(venture.PhaseInvestment), after.Phase)
	assert.Greater(t, after.Version, started.Version)

	// Host ends the game; the room is reusable
	rr = ts.request(http.MethodPost, "/api/end-game", map[string]string{
		"roomCode": code,
		"playerId": host.PlayerID,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var ended response.RoomState
	decode(t, rr, &ended)
	assert.Empty(t, ended.GameID)
	assert.Empty(t, ended.Phase)
	assert.Nil(t, ended.GameState)
}

func TestInvalidJSONBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/create-room", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decode(t, rr, nil)
	assert.Equal(t, "INVALID_REQUEST", env.ErrorCode)
}
