package track

import (
	"github.com/mcoot/patchworkgame-go/internal/model"
)

// Movement describes what happened while a player advanced along the track
type Movement struct {
	From              int
	To                int
	IncomeCheckpoints []int // Income checkpoints passed, in order
	IncomeCollected   int
	CrossedLeather    []int // Uncollected leather slots passed, in order
}

// MovePlayer advances a player by spaces, clamped to the end of the track.
// Income checkpoints in (from, to] pay out immediately. Uncollected leather
// slots in (from, to] are only reported; collecting them is up to the caller.
func MovePlayer(state *model.GameState, playerIndex, spaces int) Movement {
	player := state.Players[playerIndex]
	from := player.Position
	to := min(from+max(spaces, 0), state.TimeTrackLength)

	move := Movement{From: from, To: to}
	for _, pos := range state.IncomePositions {
		if pos > from && pos <= to {
			move.IncomeCheckpoints = append(move.IncomeCheckpoints, pos)
			move.IncomeCollected += player.Income
		}
	}
	for _, slot := range state.LeatherPatches {
		if !slot.Collected && slot.Position > from && slot.Position <= to {
			move.CrossedLeather = append(move.CrossedLeather, slot.Position)
		}
	}

	player.Buttons += move.IncomeCollected
	player.Position = to
	return move
}

// CurrentPlayerIndex returns the player furthest behind on the track.
// Ties go to player 0.
func CurrentPlayerIndex(state *model.GameState) int {
	if state.Players[1].Position < state.Players[0].Position {
		return 1
	}
	return 0
}

// Opponent returns the index of the other player
func Opponent(playerIndex int) int {
	return 1 - playerIndex
}

// OvertakeDistance is how far the current player moves when skipping:
// exactly one space past the opponent
func OvertakeDistance(state *model.GameState) int {
	current := CurrentPlayerIndex(state)
	return state.Players[Opponent(current)].Position - state.Players[current].Position + 1
}

// IsGameOver returns true once both players have reached the end of the track
func IsGameOver(state *model.GameState) bool {
	return state.Players[0].Position == state.TimeTrackLength &&
		state.Players[1].Position == state.TimeTrackLength
}
