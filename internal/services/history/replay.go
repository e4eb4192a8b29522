package history

import (
	"fmt"

	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
	"github.com/mcoot/patchworkgame-go/internal/services/scoring"
)

// StepFunc observes the state after each replayed action. The action is as
// recorded, so its PlayerIndex is in PlayerNames order. Returning an error
// stops the replay.
type StepFunc func(step int, action model.GameAction, state *model.GameState) error

// InitialState recreates the state a history starts from
func InitialState(h *model.GameHistory, c *catalog.Catalog) (*model.GameState, error) {
	return engine.NewGameState(h.BoardSize, h.PlayerNames, h.FirstPlayerIndex, h.Seed, c)
}

// Replay rebuilds the final state of a history
func Replay(h *model.GameHistory, c *catalog.Catalog) (*model.GameState, error) {
	return ReplayEach(h, c, nil)
}

// ReplayEach rebuilds the state of a history action by action, calling fn
// after each one. A recorded action that the engine rejects, or that does
// not match what the engine did, fails with ErrReplayDiverged. So do final
// scores that the replayed game does not produce.
func ReplayEach(h *model.GameHistory, c *catalog.Catalog, fn StepFunc) (*model.GameState, error) {
	state, err := InitialState(h, c)
	if err != nil {
		return nil, err
	}
	for i, action := range h.Actions {
		seated := action
		seated.PlayerIndex = Seat(h, action.PlayerIndex)
		if err := Apply(state, seated); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		if fn != nil {
			if err := fn(i, action, state); err != nil {
				return nil, err
			}
		}
	}
	if err := checkFinalScores(h, state); err != nil {
		return nil, err
	}
	return state, nil
}

func checkFinalScores(h *model.GameHistory, state *model.GameState) error {
	if !h.IsFinalized() {
		return nil
	}
	if !engine.IsFinished(state) {
		return diverged("history has final scores but the game is not over")
	}
	replayed := scoring.Totals(scoring.ScoreGame(state))
	if len(h.FinalScores) != len(replayed) {
		return diverged("history has %d final scores", len(h.FinalScores))
	}
	recorded := SeatScores(h)
	for seat := range replayed {
		if recorded[seat] != replayed[seat] {
			return diverged("final scores %v do not match replayed scores %v",
				h.FinalScores, []int{replayed[NameIndex(h, 0)], replayed[NameIndex(h, 1)]})
		}
	}
	return nil
}

// Apply performs one action through the engine. The action's PlayerIndex is
// an engine seat.
func Apply(state *model.GameState, action model.GameAction) error {
	if engine.CurrentPlayerIndex(state) != action.PlayerIndex {
		return diverged("expected player %d to act, history has player %d",
			engine.CurrentPlayerIndex(state), action.PlayerIndex)
	}

	switch action.Type {
	case model.ActionBuyPatch:
		return applyBuy(state, action)
	case model.ActionSkip:
		return applySkip(state, action)
	case model.ActionLeatherPatch:
		return applyLeather(state, action)
	default:
		return diverged("unknown action type %q", action.Type)
	}
}

func applyBuy(state *model.GameState, action model.GameAction) error {
	if action.Placement == nil {
		return diverged("buy without placement")
	}
	available := engine.AvailablePatches(state)
	if action.PatchIndex >= 0 && action.PatchIndex < len(available) &&
		available[action.PatchIndex].ID != action.PatchID {
		return diverged("market slot %d holds patch %d, history has patch %d",
			action.PatchIndex, available[action.PatchIndex].ID, action.PatchID)
	}
	if _, err := engine.BuyPatch(state, action.PatchIndex, *action.Placement); err != nil {
		return fmt.Errorf("%w: %w", model.ErrReplayDiverged, err)
	}
	return nil
}

func applySkip(state *model.GameState, action model.GameAction) error {
	result, err := engine.SkipAhead(state)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrReplayDiverged, err)
	}
	if result.SpacesMoved() != action.SpacesSkipped {
		return diverged("skip moved %d spaces, history has %d", result.SpacesMoved(), action.SpacesSkipped)
	}
	return nil
}

func applyLeather(state *model.GameState, action model.GameAction) error {
	if len(state.PendingLeather) == 0 || state.ActiveLeather != nil {
		return diverged("no leather patch waiting at %d", action.TrackPosition)
	}
	if next := state.PendingLeather[0]; next != action.TrackPosition {
		return diverged("next leather patch is at %d, history has %d", next, action.TrackPosition)
	}

	if action.Placement == nil {
		result, err := engine.CollectLeatherPatch(state)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrReplayDiverged, err)
		}
		if !result.Forfeited {
			return diverged("leather patch at %d has room but was not placed", action.TrackPosition)
		}
		return nil
	}

	result, err := engine.ResolveLeatherPatch(state, *action.Placement)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrReplayDiverged, err)
	}
	if result.Forfeited {
		return diverged("leather patch at %d was forfeited but history has a placement", action.TrackPosition)
	}
	return nil
}

func diverged(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrReplayDiverged, fmt.Sprintf(format, args...))
}
