package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/patchworkgame-go/internal/api"
	"github.com/mcoot/patchworkgame-go/internal/api/response"
	"github.com/mcoot/patchworkgame-go/internal/dependencies/random"
	"github.com/mcoot/patchworkgame-go/internal/factory"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/history"
	"github.com/mcoot/patchworkgame-go/internal/services/stats"
	"github.com/mcoot/patchworkgame-go/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	matchFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "patchwork-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/patchwork")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		matchFile:  filepath.Join(t.TempDir(), "match"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--match-file", r.matchFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runJSON(t *testing.T, out any, args ...string) {
	t.Helper()
	output, err := r.run(args...)
	require.NoError(t, err, "%v: %s", args, output)
	require.NoError(t, json.Unmarshal([]byte(output), out), output)
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
	server *api.Server
	addr   string
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
	})

	// Port 0 lets the listener pick a free port
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = "127.0.0.1"
	serverConfig.Port = 0
	server := api.NewServer(router, serverConfig, logger)
	require.NoError(t, server.Listen())

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{server: server, addr: serverURL}
}

func (ts *testServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = ts.server.Shutdown(ctx)
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

type healthResponse struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var resp healthResponse
	cli.runJSON(t, &resp, "health")
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ts.addr, resp.Server)
}

func TestCLI_MatchCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create remembers the match for later commands
	var match response.Match
	cli.runJSON(t, &match, "match", "create", "Alice", "Bob", "--seed", "7", "--board-size", "9")
	assert.Equal(t, "Alice", match.Players[0].Name)
	assert.Equal(t, []string{"XX"}, match.Market[0].Shape)

	var got response.Match
	cli.runJSON(t, &got, "match", "get")
	assert.Equal(t, match.ID, got.ID)

	// Buy the starter patch
	var turn response.TurnResponse
	cli.runJSON(t, &turn, "match", "buy", "--player", "0", "--slot", "0", "--x", "2", "--y", "3", "--rotation", "1")
	require.NotNil(t, turn.Turn.Patch)
	assert.Equal(t, turn.Turn.Patch.ID, turn.Match.Players[0].Board[3][2])
	assert.Equal(t, turn.Turn.Patch.ID, turn.Match.Players[0].Board[4][2])

	// Wrong player is rejected with the API error code
	output, err := cli.run("match", "skip", match.ID, "--player", "0")
	require.Error(t, err)
	assert.Contains(t, output, "NOT_YOUR_TURN")

	cli.runJSON(t, &turn, "match", "skip", match.ID, "--player", "1")
	assert.Nil(t, turn.Turn.Patch)
	assert.Equal(t, 2, turn.Match.Players[1].Position)

	// History is written in the interchange format
	historyFile := filepath.Join(t.TempDir(), "history.json")
	output, err = cli.run("match", "history", "--file", historyFile)
	require.NoError(t, err, output)
	data, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	h, err := history.Decode(data)
	require.NoError(t, err)
	assert.Len(t, h.Actions, 2)
	assert.Equal(t, uint32(7), h.Seed)

	var summary stats.Summary
	cli.runJSON(t, &summary, "match", "stats")
	assert.Equal(t, 2, summary.TotalActions)
	assert.False(t, summary.Finished)

	// Delete forgets the match on the server
	var msg messageResponse
	cli.runJSON(t, &msg, "match", "delete")
	assert.Equal(t, "Match deleted", msg.Message)

	output, err = cli.run("match", "get")
	require.Error(t, err)
	assert.Contains(t, output, "MATCH_NOT_FOUND")
}

func TestCLI_FullMatchAndReplays(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var match response.Match
	cli.runJSON(t, &match, "match", "create", "Alice", "Bob", "--board-size", "7", "--seed", "2024")

	player := testutil.NewRandomPlayer(random.NewSeeded(3))
	historyFile := filepath.Join(t.TempDir(), "history.json")

	for !match.GameOver {
		output, err := cli.run("match", "history", "--file", historyFile)
		require.NoError(t, err, output)
		data, err := os.ReadFile(historyFile)
		require.NoError(t, err)
		h, err := history.Decode(data)
		require.NoError(t, err)
		c, err := history.CatalogFor(h)
		require.NoError(t, err)

		// Decide on a scratch replay, then submit the decision through the CLI
		scratch, err := history.Replay(h, c)
		require.NoError(t, err)
		action, err := player.Next(scratch)
		require.NoError(t, err)

		seat := fmt.Sprint(action.PlayerIndex)
		switch action.Type {
		case model.ActionBuyPatch:
			var turn response.TurnResponse
			cli.runJSON(t, &turn, append([]string{"match", "buy", "--player", seat, "--slot", fmt.Sprint(action.PatchIndex)},
				placementArgs(action.Placement)...)...)
			match = turn.Match
		case model.ActionSkip:
			var turn response.TurnResponse
			cli.runJSON(t, &turn, "match", "skip", "--player", seat)
			match = turn.Match
		case model.ActionLeatherPatch:
			var leather response.LeatherResponse
			cli.runJSON(t, &leather, append([]string{"match", "leather", "--player", seat},
				placementArgs(action.Placement)...)...)
			assert.Equal(t, action.Placement == nil, leather.Leather.Forfeited)
			match = leather.Match
		}
	}

	require.NotEmpty(t, match.ReplayID)
	require.NotNil(t, match.Winner)

	// The archive is listed and can be fetched
	var list response.ReplayList
	cli.runJSON(t, &list, "replay", "list")
	assert.Equal(t, []string{match.ReplayID}, list.Replays)

	replayFile := filepath.Join(t.TempDir(), "replay.json")
	output, err := cli.run("replay", "get", match.ReplayID, "--file", replayFile)
	require.NoError(t, err, output)

	// Server and offline replays agree
	var serverStats stats.Summary
	cli.runJSON(t, &serverStats, "replay", "stats", match.ReplayID)
	assert.True(t, serverStats.Finished)
	assert.Equal(t, *match.Winner, serverStats.Winner)

	var uploaded stats.Summary
	cli.runJSON(t, &uploaded, "replay", "upload", replayFile)
	assert.Equal(t, serverStats, uploaded)

	var offline struct {
		Match response.Match `json:"match"`
		Stats stats.Summary  `json:"stats"`
	}
	cli.runJSON(t, &offline, "replay", "run", replayFile)
	assert.Equal(t, serverStats, offline.Stats)
	assert.Equal(t, match.Scores, offline.Match.Scores)
	assert.Equal(t, match.Players[0].Board, offline.Match.Players[0].Board)
}

func TestCLI_Catalog(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var c response.Catalog
	cli.runJSON(t, &c, "catalog")
	assert.Equal(t, "classic", c.Name)
	assert.NotEmpty(t, c.Patches)
}

func placementArgs(p *model.Placement) []string {
	if p == nil {
		return nil
	}
	args := []string{
		"--x", fmt.Sprint(p.X),
		"--y", fmt.Sprint(p.Y),
		"--rotation", fmt.Sprint(p.Rotation),
	}
	if p.Reflected {
		args = append(args, "--reflect")
	}
	return args
}
