package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/patchworkgame-go/internal/api/response"
	"github.com/mcoot/patchworkgame-go/internal/dependencies/random"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
	"github.com/mcoot/patchworkgame-go/internal/services/history"
	"github.com/mcoot/patchworkgame-go/internal/services/scoring"
	"github.com/mcoot/patchworkgame-go/internal/testutil"
)

func playedHistory(t *testing.T, catalogName string) []byte {
	t.Helper()

	c, err := catalog.Lookup(catalogName)
	require.NoError(t, err)
	state, err := engine.NewGameState(9, [2]string{"Alice", "Bob"}, 0, 11, c)
	require.NoError(t, err)

	actions, err := testutil.NewRandomPlayer(random.NewSeeded(5)).Play(state)
	require.NoError(t, err)

	h := history.New(11, [2]string{"Alice", "Bob"}, 0, 9, catalogName)
	h.Actions = actions
	history.Finalize(h, scoring.Totals(scoring.ScoreGame(state)))

	data, err := history.Encode(h)
	require.NoError(t, err)
	return data
}

func TestReplayFile(t *testing.T) {
	data := playedHistory(t, catalog.NameCompact)

	result, err := ReplayFile(data, catalog.NameClassic)
	require.NoError(t, err)

	assert.True(t, result.Match.GameOver)
	require.Len(t, result.Match.Scores, 2)
	require.NotNil(t, result.Stats)
	assert.True(t, result.Stats.Finished)
	assert.Equal(t, result.Match.ActionCount, result.Stats.TotalActions)
	assert.Equal(t, result.Match.Scores[0].Total, result.Stats.Players[0].Score.Total)
	assert.Equal(t, *result.Match.Winner, result.Stats.Winner)
}

func TestReplayFileFallbackCatalog(t *testing.T) {
	h := history.New(3, [2]string{"Alice", "Bob"}, 0, 9, "")
	data, err := history.Encode(h)
	require.NoError(t, err)

	result, err := ReplayFile(data, catalog.NameCompact)
	require.NoError(t, err)
	assert.Equal(t, catalog.Compact().Len(), result.Match.DeckSize)

	_, err = ReplayFile(data, "deluxe")
	assert.ErrorIs(t, err, model.ErrUnknownCatalog)
}

func TestReplayFileRejectsBadInput(t *testing.T) {
	_, err := ReplayFile([]byte("{"), catalog.NameClassic)
	assert.ErrorIs(t, err, model.ErrMalformedHistory)

	h := history.New(3, [2]string{"Alice", "Bob"}, 0, 9, catalog.NameClassic)
	h.Actions = []model.GameAction{model.NewSkipAction(1, 1)}
	data, err := history.Encode(h)
	require.NoError(t, err)

	_, err = ReplayFile(data, catalog.NameClassic)
	assert.ErrorIs(t, err, model.ErrReplayDiverged)
}

func TestMatchIDRemembered(t *testing.T) {
	c := &Config{MatchFile: filepath.Join(t.TempDir(), "nested", "match")}

	id, err := c.LoadMatchID()
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = c.ResolveMatchID(nil)
	assert.Error(t, err)

	require.NoError(t, c.SaveMatchID("ABC123"))

	id, err = c.ResolveMatchID(nil)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", id)

	id, err = c.ResolveMatchID([]string{"OTHER"})
	require.NoError(t, err)
	assert.Equal(t, "OTHER", id)
}

func TestOutputTextMatch(t *testing.T) {
	result, err := ReplayFile(playedHistory(t, catalog.NameClassic), catalog.NameClassic)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewOutputTo("text", &buf).Print(*result)

	text := buf.String()
	assert.Contains(t, text, "State: finished")
	assert.Contains(t, text, "Player 0: Alice")
	assert.Contains(t, text, "Final Scores:")
	assert.Contains(t, text, "Actions: ")
}

func TestOutputJSONFallback(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutputTo("json", &buf)

	out.Print(response.ReplayList{Replays: []string{"a", "b"}})
	assert.JSONEq(t, `{"replays":["a","b"]}`, buf.String())

	buf.Reset()
	out.PrintMessage("done")
	assert.JSONEq(t, `{"message":"done"}`, buf.String())
}

func TestOutputTextBoard(t *testing.T) {
	var buf bytes.Buffer
	NewOutputTo("text", &buf).printBoard([][]int{{0, 1}, {-1, 10}})

	assert.Equal(t, "     0 1\n   +-----+\n 0 | . 1 |\n 1 | # A |\n   +-----+\n", buf.String())
}

func TestOutputTextHealth(t *testing.T) {
	var buf bytes.Buffer
	NewOutputTo("text", &buf).Print(HealthResult{Status: "ok", Server: "http://localhost:8080"})

	assert.Equal(t, "Server: http://localhost:8080\nStatus: ok\n", buf.String())
}
