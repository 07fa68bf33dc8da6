package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partybox-games/roomserver/internal/api"
	"github.com/partybox-games/roomserver/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath   string
	serverURL    string
	playerIDFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "roomctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/roomctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath:   binaryPath,
		serverURL:    serverURL,
		playerIDFile: filepath.Join(t.TempDir(), "player-id"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--player-id-file", r.playerIDFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// withIDFile returns a runner sharing the server but acting as a
// different player
func (r *cliRunner) withIDFile(path string) *cliRunner {
	return &cliRunner{
		binaryPath:   r.binaryPath,
		serverURL:    r.serverURL,
		playerIDFile: path,
	}
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RoomController: app.RoomController,
		Registry:       app.Registry,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type roomStateResponse struct {
	Version int64 `json:"version"`
	Room    struct {
		RoomCode string           `json:"roomCode"`
		HostID   string           `json:"hostId"`
		Players  []playerResponse `json:"players"`
	} `json:"room"`
	GameID   string `json:"gameId"`
	Phase    string `json:"phase"`
	PlayerID string `json:"playerId"`
}

type gameInfoResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MinPlayers int    `json:"minPlayers"`
	MaxPlayers int    `json:"maxPlayers"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_GameList(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "list")
	require.NoError(t, err, "output: %s", output)

	var games []gameInfoResponse
	require.NoError(t, json.Unmarshal([]byte(output), &games))
	require.Len(t, games, 1)
	assert.Equal(t, "venture", games[0].ID)
}

func TestCLI_RoomLifecycle(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	host := newCLIRunner(t, ts.addr)

	// Create a room; the minted player id is persisted
	output, err := host.run("room", "create", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var created roomStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	code := created.Room.RoomCode
	require.Len(t, code, 4)
	assert.Equal(t, created.PlayerID, created.Room.HostID)

	savedID, err := os.ReadFile(host.playerIDFile)
	require.NoError(t, err)
	assert.Equal(t, created.PlayerID, string(savedID))

	// A second player joins with their own identity file
	guest := host.withIDFile(filepath.Join(t.TempDir(), "player-id"))
	output, err = guest.run("room", "join", code, "--name", "Bob")
	require.NoError(t, err, "output: %s", output)

	var joined roomStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &joined))
	assert.Len(t, joined.Room.Players, 2)

	// Get reflects both members
	output, err = guest.run("room", "get", code)
	require.NoError(t, err, "output: %s", output)

	var fetched roomStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &fetched))
	assert.Len(t, fetched.Room.Players, 2)
}

func TestCLI_GameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	host := newCLIRunner(t, ts.addr)

	output, err := host.run("room", "create", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var created roomStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	code := created.Room.RoomCode

	guest := host.withIDFile(filepath.Join(t.TempDir(), "player-id"))
	output, err = guest.run("room", "join", code, "--name", "Bob")
	require.NoError(t, err, "output: %s", output)

	// Only the host can start
	output, err = guest.run("game", "start", code, "venture")
	require.Error(t, err, "output: %s", output)
	assert.Contains(t, output, "NOT_HOST")

	output, err = host.run("game", "start", code, "venture")
	require.NoError(t, err, "output: %s", output)

	var started roomStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &started))
	assert.Equal(t, "venture", started.GameID)
	assert.Equal(t, "planning", started.Phase)

	// Both players plan and the phase advances
	output, err = host.run("game", "action", code, "set_plan", "--payload", `{"plan":"tech"}`)
	require.NoError(t, err, "output: %s", output)

	output, err = guest.run("game", "action", code, "set_plan", "--payload", `{"plan":"food"}`)
	require.NoError(t, err, "output: %s", output)

	var after roomStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &after))
	assert.Equal(t, "investment", after.Phase)

	// Host ends the game
	output, err = host.run("game", "end", code)
	require.NoError(t, err, "output: %s", output)

	var ended roomStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &ended))
	assert.Empty(t, ended.GameID)
}
