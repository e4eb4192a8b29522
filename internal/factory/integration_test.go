package factory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/patchworkgame-go/internal/dependencies/random"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
	"github.com/mcoot/patchworkgame-go/internal/services/game"
	"github.com/mcoot/patchworkgame-go/internal/services/history"
	"github.com/mcoot/patchworkgame-go/internal/services/scoring"
	redisstorage "github.com/mcoot/patchworkgame-go/internal/storage/redis"
	"github.com/mcoot/patchworkgame-go/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a complete match played through the controller replays to the same result
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	// Setup: Queue random values
	s.app.MockRandom.QueueUint32(424242)
	s.app.MockRandom.QueueString("MATCH1")

	// Step 1: Create a match
	match, err := s.app.GameController.CreateMatch(s.ctx, game.CreateMatchParams{
		PlayerNames: [2]string{"Alice", "Bob"},
		BoardSize:   7,
	})
	s.Require().NoError(err)
	s.Equal(model.MatchID("MATCH1"), match.ID)

	// Step 2: Both players take turns until the match is finished
	player := testutil.NewRandomPlayer(random.NewSeeded(1))
	for {
		current, err := s.app.GameController.GetMatch(s.ctx, match.ID)
		s.Require().NoError(err)
		if engine.IsFinished(current.State) {
			break
		}

		// Decide on a scratch copy, then submit the decision
		scratch, err := history.Replay(current.History, s.app.Catalog)
		s.Require().NoError(err)
		action, err := player.Next(scratch)
		s.Require().NoError(err)
		s.app.MockClock.Advance(time.Second)

		switch action.Type {
		case model.ActionBuyPatch:
			_, _, err = s.app.GameController.BuyPatch(s.ctx, match.ID, action.PlayerIndex, action.PatchIndex, *action.Placement)
		case model.ActionSkip:
			_, _, err = s.app.GameController.Skip(s.ctx, match.ID, action.PlayerIndex)
		case model.ActionLeatherPatch:
			placement := model.Placement{}
			if action.Placement != nil {
				placement = *action.Placement
			}
			_, _, err = s.app.GameController.PlaceLeatherPatch(s.ctx, match.ID, action.PlayerIndex, placement)
		}
		s.Require().NoError(err)
	}

	// Step 3: The match is finalized and archived
	final, err := s.app.GameController.GetMatch(s.ctx, match.ID)
	s.Require().NoError(err)
	s.True(final.History.IsFinalized())
	s.NotEmpty(final.ReplayID)
	s.Equal(35, final.State.Players[0].Position)
	s.Equal(35, final.State.Players[1].Position)

	// Step 4: The archived replay reproduces the final scores
	archived, err := s.app.GameController.GetReplay(s.ctx, final.ReplayID)
	s.Require().NoError(err)
	replayed, err := history.Replay(archived, catalog.Classic())
	s.Require().NoError(err)
	s.Equal(archived.FinalScores, scoring.Totals(scoring.ScoreGame(replayed)))
	s.Equal(final.State, replayed)

	// Step 5: Stats agree with the live match
	summary, err := s.app.GameController.GetStats(s.ctx, match.ID)
	s.Require().NoError(err)
	s.True(summary.Finished)
	s.Equal(len(final.History.Actions), summary.TotalActions)
}

func (s *IntegrationSuite) TestNewRejectsUnknownCatalog() {
	_, err := New(Config{Catalog: "deluxe"})
	s.ErrorIs(err, model.ErrUnknownCatalog)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(Config{StorageType: "postgres"})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewRedisRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewDefaultsToMemoryAndClassic() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.Equal(catalog.NameClassic, app.Catalog.Name())
	s.NotNil(app.Storage)
}

func (s *IntegrationSuite) TestNewWithRedis() {
	mini := miniredis.RunT(s.T())
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg, Catalog: catalog.NameCompact})
	s.Require().NoError(err)

	match, err := app.GameController.CreateMatch(s.ctx, game.CreateMatchParams{
		PlayerNames: [2]string{"Alice", "Bob"},
		BoardSize:   9,
	})
	s.Require().NoError(err)

	stored, err := app.GameController.GetMatch(s.ctx, match.ID)
	s.Require().NoError(err)
	s.Equal(match.State, stored.State)
	s.Equal(catalog.NameCompact, stored.History.Catalog)
}
