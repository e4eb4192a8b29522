package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/patchworkgame-go/internal/dependencies/clock"
	"github.com/mcoot/patchworkgame-go/internal/dependencies/random"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
	"github.com/mcoot/patchworkgame-go/internal/services/history"
	"github.com/mcoot/patchworkgame-go/internal/services/scoring"
	"github.com/mcoot/patchworkgame-go/internal/services/stats"
	"github.com/mcoot/patchworkgame-go/internal/storage"
)

const (
	// MatchIDAlphabet is the character set for generated match IDs
	MatchIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// MatchIDLength is the length of generated match IDs
	MatchIDLength = 12
)

// CreateMatchParams describes a new match
type CreateMatchParams struct {
	PlayerNames      [2]string
	FirstPlayerIndex int
	BoardSize        int
	// Seed fixes the market shuffle; nil draws a random seed
	Seed *uint32
}

// Controller runs matches on top of the engine. Every decision is applied to
// the stored state and recorded in the match history; finished histories are
// archived under a replay ID.
type Controller struct {
	storage     storage.Storage
	catalog     *catalog.Catalog
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	newReplayID func() string

	// Matches are loaded, mutated and saved as a unit
	mu sync.Mutex
}

// NewController creates a new Controller
func NewController(
	storage storage.Storage,
	c *catalog.Catalog,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     storage,
		catalog:     c,
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "game-controller")),
		newReplayID: uuid.NewString,
	}
}

// Catalog returns the catalog new matches are dealt from
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// CreateMatch deals a new match and stores it
func (c *Controller) CreateMatch(ctx context.Context, params CreateMatchParams) (*model.Match, error) {
	seed := c.random.Uint32()
	if params.Seed != nil {
		seed = *params.Seed
	}

	state, err := engine.NewGameState(params.BoardSize, params.PlayerNames, params.FirstPlayerIndex, seed, c.catalog)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	match := &model.Match{
		ID:        model.MatchID(c.random.String(MatchIDLength, MatchIDAlphabet)),
		State:     state,
		History:   history.New(seed, params.PlayerNames, params.FirstPlayerIndex, params.BoardSize, c.catalog.Name()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match created",
		slog.String("match_id", string(match.ID)),
		slog.Int("board_size", params.BoardSize),
		slog.Any("seed", seed),
		slog.String("catalog", c.catalog.Name()),
	)

	return match, nil
}

// GetMatch retrieves a match by ID
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.GetMatch(ctx, id)
}

// DeleteMatch abandons a match. Archived histories are kept.
func (c *Controller) DeleteMatch(ctx context.Context, id model.MatchID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetMatch(ctx, id); err != nil {
		return err
	}
	if err := c.storage.DeleteMatch(ctx, id); err != nil {
		return err
	}

	c.logger.Info("match deleted", slog.String("match_id", string(id)))
	return nil
}

// BuyPatch buys a market patch for the acting player
func (c *Controller) BuyPatch(ctx context.Context, id model.MatchID, playerIndex, marketIndex int, placement model.Placement) (*model.Match, *engine.TurnResult, error) {
	var result *engine.TurnResult
	match, err := c.mutate(ctx, id, playerIndex, func(match *model.Match) (model.GameAction, error) {
		var err error
		result, err = engine.BuyPatch(match.State, marketIndex, placement)
		if err != nil {
			return model.GameAction{}, err
		}
		return model.NewBuyPatchAction(result.PlayerIndex, marketIndex, result.Patch.ID, placement), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return match, result, nil
}

// Skip moves the acting player one space past the opponent
func (c *Controller) Skip(ctx context.Context, id model.MatchID, playerIndex int) (*model.Match, *engine.TurnResult, error) {
	var result *engine.TurnResult
	match, err := c.mutate(ctx, id, playerIndex, func(match *model.Match) (model.GameAction, error) {
		var err error
		result, err = engine.SkipAhead(match.State)
		if err != nil {
			return model.GameAction{}, err
		}
		return model.NewSkipAction(result.PlayerIndex, result.SpacesMoved()), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return match, result, nil
}

// PlaceLeatherPatch resolves the next pending leather patch. When the board
// has no room the patch is forfeited and the placement is ignored.
func (c *Controller) PlaceLeatherPatch(ctx context.Context, id model.MatchID, playerIndex int, placement model.Placement) (*model.Match, *engine.LeatherResult, error) {
	var result *engine.LeatherResult
	match, err := c.mutate(ctx, id, playerIndex, func(match *model.Match) (model.GameAction, error) {
		var err error
		result, err = engine.ResolveLeatherPatch(match.State, placement)
		if err != nil {
			return model.GameAction{}, err
		}
		return model.NewLeatherPatchAction(result.PlayerIndex, result.TrackPosition, result.Placement), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return match, result, nil
}

// GetHistory returns a match's action log. Player indexes in it refer to
// the history's player names, not to engine seats.
func (c *Controller) GetHistory(ctx context.Context, id model.MatchID) (*model.GameHistory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return match.History, nil
}

// GetStats replays a match's history into statistics
func (c *Controller) GetStats(ctx context.Context, id model.MatchID) (*stats.Summary, error) {
	h, err := c.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.ComputeStats(h)
}

// GetReplay returns an archived history
func (c *Controller) GetReplay(ctx context.Context, replayID string) (*model.GameHistory, error) {
	return c.storage.GetHistory(ctx, replayID)
}

// ListReplays returns the IDs of all archived histories
func (c *Controller) ListReplays(ctx context.Context) ([]string, error) {
	return c.storage.ListHistories(ctx)
}

// ComputeStats replays any history, such as an uploaded one, using the
// catalog it was recorded with
func (c *Controller) ComputeStats(h *model.GameHistory) (*stats.Summary, error) {
	cat, err := history.CatalogFor(h)
	if err != nil {
		return nil, err
	}
	return stats.Compute(h, cat)
}

type decision func(match *model.Match) (model.GameAction, error)

// mutate loads a match, checks the acting player, applies one decision and
// records it. The loaded match is a private copy, so nothing is stored
// unless every step succeeds.
func (c *Controller) mutate(ctx context.Context, id model.MatchID, playerIndex int, apply decision) (*model.Match, error) {
	if playerIndex != 0 && playerIndex != 1 {
		return nil, model.ErrInvalidPlayer
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	match, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if engine.IsFinished(match.State) {
		return nil, model.ErrGameOver
	}
	if engine.CurrentPlayerIndex(match.State) != playerIndex {
		return nil, model.ErrNotPlayerTurn
	}

	action, err := apply(match)
	if err != nil {
		c.logger.Debug("decision rejected",
			slog.String("match_id", string(id)),
			slog.Int("player_index", playerIndex),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if err := history.Record(match.History, action); err != nil {
		return nil, err
	}
	match.UpdatedAt = c.clock.Now()

	if engine.IsFinished(match.State) {
		if err := c.finish(ctx, match); err != nil {
			return nil, err
		}
	}

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return match, nil
}

// finish writes the final scores and archives the history
func (c *Controller) finish(ctx context.Context, match *model.Match) error {
	totals := scoring.Totals(scoring.ScoreGame(match.State))
	if !history.Finalize(match.History, totals) {
		return nil
	}

	replayID := c.newReplayID()
	if err := c.storage.SaveHistory(ctx, replayID, match.History); err != nil {
		c.logger.Error("failed to archive history",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	match.ReplayID = replayID

	c.logger.Info("match finished",
		slog.String("match_id", string(match.ID)),
		slog.String("replay_id", replayID),
		slog.Int("score_0", totals[0]),
		slog.Int("score_1", totals[1]),
		slog.Int("winner", scoring.DetermineWinner(totals)),
	)
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateMatch(ctx context.Context, params CreateMatchParams) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	BuyPatch(ctx context.Context, id model.MatchID, playerIndex, marketIndex int, placement model.Placement) (*model.Match, *engine.TurnResult, error)
	Skip(ctx context.Context, id model.MatchID, playerIndex int) (*model.Match, *engine.TurnResult, error)
	PlaceLeatherPatch(ctx context.Context, id model.MatchID, playerIndex int, placement model.Placement) (*model.Match, *engine.LeatherResult, error)
	GetHistory(ctx context.Context, id model.MatchID) (*model.GameHistory, error)
	GetStats(ctx context.Context, id model.MatchID) (*stats.Summary, error)
	GetReplay(ctx context.Context, replayID string) (*model.GameHistory, error)
	ListReplays(ctx context.Context) ([]string, error)
	ComputeStats(h *model.GameHistory) (*stats.Summary, error)
}

var _ ControllerInterface = (*Controller)(nil)
