package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/patchworkgame-go/internal/dependencies/random"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
	"github.com/mcoot/patchworkgame-go/internal/services/scoring"
	"github.com/mcoot/patchworkgame-go/internal/testutil"
)

type HistorySuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func TestHistorySuite(t *testing.T) {
	suite.Run(t, new(HistorySuite))
}

func (s *HistorySuite) SetupTest() {
	s.catalog = catalog.Classic()
}

// playGame records a full random match
func (s *HistorySuite) playGame(seed uint32, boardSize int) (*model.GameHistory, *model.GameState) {
	h := New(seed, [2]string{"Alice", "Bob"}, 1, boardSize, s.catalog.Name())
	state, err := InitialState(h, s.catalog)
	s.Require().NoError(err)

	actions, err := testutil.NewRandomPlayer(random.NewSeeded(seed+1)).Play(state)
	s.Require().NoError(err)
	for _, a := range actions {
		s.Require().NoError(Record(h, a))
	}
	s.Require().True(Finalize(h, scoring.Totals(scoring.ScoreGame(state))))
	return h, state
}

func (s *HistorySuite) marshal(v any) string {
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	return string(data)
}

// Log tests

func (s *HistorySuite) TestNewHistory() {
	h := New(42, [2]string{"Alice", "Bob"}, 1, 7, "compact")

	s.Equal(model.HistoryVersion, h.Version)
	s.Equal(uint32(42), h.Seed)
	s.Equal(1, h.FirstPlayerIndex)
	s.Equal(7, h.BoardSize)
	s.Equal("compact", h.Catalog)
	s.Empty(h.Actions)
	s.False(h.IsFinalized())
}

func (s *HistorySuite) TestFinalizeOnlyOnce() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")

	s.True(Finalize(h, []int{10, -4}))
	s.False(Finalize(h, []int{0, 0}))
	s.Equal([]int{10, -4}, h.FinalScores)
	s.ErrorIs(Append(h, model.NewSkipAction(0, 1)), model.ErrGameOver)
}

func (s *HistorySuite) TestAppendKeepsOrder() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	s.Require().NoError(Append(h, model.NewSkipAction(0, 1)))
	s.Require().NoError(Append(h, model.NewSkipAction(1, 2)))

	s.Len(h.Actions, 2)
	s.Equal(1, h.Actions[1].PlayerIndex)
}

func (s *HistorySuite) TestRecordUsesNameOrderWhenSecondPlayerStarts() {
	h := New(1, [2]string{"Alice", "Bob"}, 1, 9, "")
	state, err := InitialState(h, s.catalog)
	s.Require().NoError(err)
	s.Equal("Bob", state.Players[0].Name)

	s.Require().NoError(Record(h, model.NewSkipAction(0, 1)))
	s.Require().NoError(Record(h, model.NewSkipAction(1, 2)))

	s.Equal("Bob", h.PlayerNames[h.Actions[0].PlayerIndex])
	s.Equal("Alice", h.PlayerNames[h.Actions[1].PlayerIndex])

	s.True(Finalize(h, []int{10, 20}))
	s.Equal([]int{20, 10}, h.FinalScores)
	s.Equal([]int{10, 20}, SeatScores(h))
}

func (s *HistorySuite) TestSeatMapping() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	s.Equal(0, Seat(h, 0))
	s.Equal(1, NameIndex(h, 1))

	h.FirstPlayerIndex = 1
	s.Equal(1, Seat(h, 0))
	s.Equal(0, NameIndex(h, 1))
	s.Nil(SeatScores(h))
}

// Codec tests

func (s *HistorySuite) TestEncodeDecodeRoundTrip() {
	h, _ := s.playGame(99, 9)

	data, err := Encode(h)
	s.Require().NoError(err)
	decoded, err := Decode(data)
	s.Require().NoError(err)

	s.Equal(h, decoded)
}

func (s *HistorySuite) TestEncodeUsesCamelCaseTags() {
	h := New(7, [2]string{"Alice", "Bob"}, 0, 9, "")
	s.Require().NoError(Append(h, model.NewBuyPatchAction(0, 2, 5, model.Placement{X: 1, Y: 2, Rotation: 3, Reflected: true})))
	s.Require().NoError(Append(h, model.NewLeatherPatchAction(1, 8, nil)))

	data, err := Encode(h)
	s.Require().NoError(err)

	s.JSONEq(`{
		"version": 1,
		"seed": 7,
		"playerNames": ["Alice", "Bob"],
		"firstPlayerIndex": 0,
		"boardSize": 9,
		"actions": [
			{"type": "buyPatch", "playerIndex": 0, "patchIndex": 2, "patchId": 5,
			 "placement": {"x": 1, "y": 2, "rotation": 3, "reflected": true}},
			{"type": "leatherPatch", "playerIndex": 1, "trackPosition": 8}
		]
	}`, string(data))
}

func (s *HistorySuite) TestDecodeRejectsUnknownVersion() {
	_, err := Decode([]byte(`{"version": 2, "boardSize": 9, "actions": []}`))
	s.ErrorIs(err, model.ErrUnsupportedHistoryVersion)
}

func (s *HistorySuite) TestDecodeRejectsBadBoardSize() {
	_, err := Decode([]byte(`{"version": 1, "boardSize": 8, "actions": []}`))
	s.ErrorIs(err, model.ErrInvalidBoardSize)
}

func (s *HistorySuite) TestDecodeRejectsMalformedJSON() {
	_, err := Decode([]byte(`{"version":`))
	s.ErrorIs(err, model.ErrMalformedHistory)
}

func (s *HistorySuite) TestDecodeRejectsWrongScoreCount() {
	_, err := Decode([]byte(`{"version": 1, "boardSize": 9, "actions": [], "finalScores": [1, 2, 3]}`))
	s.ErrorIs(err, model.ErrMalformedHistory)

	_, err = Decode([]byte(`{"version": 1, "boardSize": 9, "actions": [], "finalScores": []}`))
	s.ErrorIs(err, model.ErrMalformedHistory)
}

func (s *HistorySuite) TestDecodeDefaultsActions() {
	h, err := Decode([]byte(`{"version": 1, "boardSize": 9, "playerNames": ["A", "B"]}`))
	s.Require().NoError(err)
	s.NotNil(h.Actions)
}

func (s *HistorySuite) TestCatalogFor() {
	c, err := CatalogFor(&model.GameHistory{})
	s.Require().NoError(err)
	s.Equal(catalog.NameClassic, c.Name())

	c, err = CatalogFor(&model.GameHistory{Catalog: catalog.NameCompact})
	s.Require().NoError(err)
	s.Equal(catalog.NameCompact, c.Name())

	_, err = CatalogFor(&model.GameHistory{Catalog: "deluxe"})
	s.ErrorIs(err, model.ErrUnknownCatalog)
}

// Replay tests

func (s *HistorySuite) TestReplayReproducesLiveGame() {
	for _, size := range model.SupportedBoardSizes() {
		h, live := s.playGame(2024, size)

		replayed, err := Replay(h, s.catalog)
		s.Require().NoError(err)

		s.Equal(s.marshal(live), s.marshal(replayed))
		s.True(engine.IsFinished(replayed))
		s.Equal(SeatScores(h), scoring.Totals(scoring.ScoreGame(replayed)))
	}
}

func (s *HistorySuite) TestReplayReadsActionsInNameOrder() {
	h, live := s.playGame(31, 7)
	s.Require().Equal(1, h.FirstPlayerIndex)

	_, err := ReplayEach(h, s.catalog, func(step int, action model.GameAction, state *model.GameState) error {
		seat := Seat(h, action.PlayerIndex)
		s.Equal(h.PlayerNames[action.PlayerIndex], state.Players[seat].Name)
		return nil
	})
	s.Require().NoError(err)

	for seat, p := range live.Players {
		s.Equal(h.FinalScores[NameIndex(h, seat)], scoring.CalculateScore(p))
	}
}

func (s *HistorySuite) TestReplayDetectsTamperedFinalScores() {
	h, _ := s.playGame(8, 9)
	h.FinalScores[0] += 5

	_, err := Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
	s.Contains(err.Error(), "final scores")
}

func (s *HistorySuite) TestReplayDetectsScoresBeforeGameOver() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	h.Actions = append(h.Actions, model.NewSkipAction(0, 1))
	h.FinalScores = []int{0, 0}

	_, err := Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
}

func (s *HistorySuite) TestTwoReplaysAreByteIdentical() {
	h, _ := s.playGame(7, 9)

	first, err := Replay(h, s.catalog)
	s.Require().NoError(err)
	second, err := Replay(h, s.catalog)
	s.Require().NoError(err)

	s.Equal(s.marshal(first), s.marshal(second))
}

func (s *HistorySuite) TestReplayEachMatchesLiveIntermediateStates() {
	h := New(5, [2]string{"Alice", "Bob"}, 0, 9, s.catalog.Name())
	live, err := InitialState(h, s.catalog)
	s.Require().NoError(err)

	player := testutil.NewRandomPlayer(random.NewSeeded(11))
	var snapshots []string
	for !engine.IsFinished(live) {
		action, err := player.Next(live)
		s.Require().NoError(err)
		s.Require().NoError(Record(h, action))
		snapshots = append(snapshots, s.marshal(live))
	}

	steps := 0
	_, err = ReplayEach(h, s.catalog, func(step int, action model.GameAction, state *model.GameState) error {
		s.Equal(h.Actions[step], action)
		s.Equal(snapshots[step], s.marshal(state))
		steps++
		return nil
	})
	s.Require().NoError(err)
	s.Equal(len(h.Actions), steps)
}

func (s *HistorySuite) TestReplayEachStopsOnCallbackError() {
	h, _ := s.playGame(3, 9)
	stop := model.ErrHistoryNotFound

	_, err := ReplayEach(h, s.catalog, func(step int, _ model.GameAction, _ *model.GameState) error {
		if step == 2 {
			return stop
		}
		return nil
	})

	s.ErrorIs(err, stop)
}

func (s *HistorySuite) TestEmptyHistoryReplaysToInitialState() {
	h := New(8, [2]string{"Alice", "Bob"}, 0, 11, "")
	state, err := Replay(h, s.catalog)
	s.Require().NoError(err)

	initial, err := engine.NewGameState(11, [2]string{"Alice", "Bob"}, 0, 8, s.catalog)
	s.Require().NoError(err)
	s.Equal(initial, state)
}

func (s *HistorySuite) TestReplayDetectsWrongPatch() {
	h, _ := s.playGame(12, 9)
	for i := range h.Actions {
		if h.Actions[i].Type == model.ActionBuyPatch {
			h.Actions[i].PatchID += 1000
			break
		}
	}

	_, err := Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
}

func (s *HistorySuite) TestReplayDetectsWrongPlayer() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	h.Actions = append(h.Actions, model.NewSkipAction(1, 1))

	_, err := Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
	s.Contains(err.Error(), "action 0")
}

func (s *HistorySuite) TestReplayDetectsWrongSkipDistance() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	h.Actions = append(h.Actions, model.NewSkipAction(0, 4))

	_, err := Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
}

func (s *HistorySuite) TestReplayWrapsEngineRejection() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	state, err := InitialState(h, s.catalog)
	s.Require().NoError(err)
	starter := engine.AvailablePatches(state)[0]
	h.Actions = append(h.Actions, model.NewBuyPatchAction(0, 0, starter.ID, model.Placement{X: 8, Y: 8}))

	_, err = Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
	s.ErrorIs(err, model.ErrInvalidPlacement)
}

func (s *HistorySuite) TestReplayDetectsLeatherNeverCrossed() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	h.Actions = append(h.Actions,
		model.NewSkipAction(0, 1),
		model.NewLeatherPatchAction(1, 8, &model.Placement{}),
	)

	_, err := Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
}

func (s *HistorySuite) TestReplayRejectsForfeitWithRoom() {
	h := New(1, [2]string{"Alice", "Bob"}, 0, 9, "")
	h.Actions = append(h.Actions,
		model.NewSkipAction(0, 1),
		model.NewSkipAction(1, 2),
		model.NewSkipAction(0, 2),
		model.NewSkipAction(1, 2),
		model.NewSkipAction(0, 2),
		model.NewSkipAction(1, 2),
		model.NewSkipAction(0, 2),
		model.NewSkipAction(1, 2),
		model.NewLeatherPatchAction(1, 8, nil),
	)

	_, err := Replay(h, s.catalog)
	s.ErrorIs(err, model.ErrReplayDiverged)
	s.Contains(err.Error(), "action 8")
}
