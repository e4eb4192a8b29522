package testutil

import (
	"github.com/mcoot/patchworkgame-go/internal/dependencies/random"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/board"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
)

// RandomPlayer makes random legal decisions for whichever seat is to move.
// Tests use it to drive whole matches.
type RandomPlayer struct {
	random random.Random
}

// NewRandomPlayer creates a RandomPlayer
func NewRandomPlayer(rnd random.Random) *RandomPlayer {
	return &RandomPlayer{random: rnd}
}

type buyOption struct {
	index     int
	patch     model.Patch
	placement model.Placement
}

// Next applies one decision to the state and returns it as a history action
func (p *RandomPlayer) Next(state *model.GameState) (model.GameAction, error) {
	if state.HasPendingLeather() {
		return p.resolveLeather(state)
	}

	playerIndex := engine.CurrentPlayerIndex(state)
	player := state.Players[playerIndex]

	var options []buyOption
	for i, patch := range engine.AvailablePatches(state) {
		if patch.ButtonCost > player.Buttons {
			continue
		}
		if placement, ok := p.ChoosePlacement(&player.Board, patch.Shape); ok {
			options = append(options, buyOption{index: i, patch: patch, placement: placement})
		}
	}

	// Skip roughly one turn in four even when a buy is possible
	if len(options) > 0 && p.random.Intn(4) != 0 {
		o := options[p.random.Intn(len(options))]
		if _, err := engine.BuyPatch(state, o.index, o.placement); err != nil {
			return model.GameAction{}, err
		}
		return model.NewBuyPatchAction(playerIndex, o.index, o.patch.ID, o.placement), nil
	}

	result, err := engine.SkipAhead(state)
	if err != nil {
		return model.GameAction{}, err
	}
	return model.NewSkipAction(playerIndex, result.SpacesMoved()), nil
}

// Play makes decisions until the match is finished and returns them in order
func (p *RandomPlayer) Play(state *model.GameState) ([]model.GameAction, error) {
	var actions []model.GameAction
	for !engine.IsFinished(state) {
		action, err := p.Next(state)
		if err != nil {
			return actions, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// ChoosePlacement picks a random legal placement for the shape
func (p *RandomPlayer) ChoosePlacement(b *model.Board, shape model.Shape) (model.Placement, bool) {
	placements := board.LegalPlacements(b, shape)
	if len(placements) == 0 {
		return model.Placement{}, false
	}
	return placements[p.random.Intn(len(placements))], true
}

func (p *RandomPlayer) resolveLeather(state *model.GameState) (model.GameAction, error) {
	playerIndex := state.PendingPlayer
	var position int
	if state.ActiveLeather != nil {
		position = state.ActiveLeatherPosition
	} else {
		position = state.PendingLeather[0]
	}
	placement, _ := p.ChoosePlacement(&state.Players[playerIndex].Board, model.ParseShape("X"))

	result, err := engine.ResolveLeatherPatch(state, placement)
	if err != nil {
		return model.GameAction{}, err
	}
	if result.Forfeited {
		return model.NewLeatherPatchAction(playerIndex, position, nil), nil
	}
	return model.NewLeatherPatchAction(playerIndex, position, result.Placement), nil
}
