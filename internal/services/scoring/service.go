package scoring

import (
	"github.com/mcoot/patchworkgame-go/internal/model"
)

// EmptyCellPenalty is the number of buttons lost per uncovered board cell
const EmptyCellPenalty = 2

// CalculateScore returns buttons minus the empty cell penalty
func CalculateScore(player *model.Player) int {
	return player.Buttons - EmptyCellPenalty*player.Board.EmptyCount()
}

// ScorePlayer calculates the score breakdown for one player
func ScorePlayer(playerIndex int, player *model.Player) model.ScoreBreakdown {
	empty := player.Board.EmptyCount()
	return model.ScoreBreakdown{
		PlayerIndex: playerIndex,
		Buttons:     player.Buttons,
		EmptyCells:  empty,
		Penalty:     EmptyCellPenalty * empty,
		HasBonus:    player.Bonus7x7Area != nil,
		Total:       player.Buttons - EmptyCellPenalty*empty,
	}
}

// ScoreGame scores both players, indexed by player
func ScoreGame(state *model.GameState) [2]model.ScoreBreakdown {
	return [2]model.ScoreBreakdown{
		ScorePlayer(0, state.Players[0]),
		ScorePlayer(1, state.Players[1]),
	}
}

// Totals extracts the total of each breakdown
func Totals(scores [2]model.ScoreBreakdown) []int {
	return []int{scores[0].Total, scores[1].Total}
}

// DetermineWinner returns the index of the higher total, or model.Tie
func DetermineWinner(totals []int) int {
	if len(totals) != 2 {
		return model.Tie
	}
	switch {
	case totals[0] > totals[1]:
		return 0
	case totals[1] > totals[0]:
		return 1
	default:
		return model.Tie
	}
}
