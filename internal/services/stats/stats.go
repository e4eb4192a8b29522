// Package stats derives read-only statistics from a match history by
// replaying it. Nothing here mutates a live match.
package stats

import (
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
	"github.com/mcoot/patchworkgame-go/internal/services/history"
	"github.com/mcoot/patchworkgame-go/internal/services/scoring"
)

// NoBonus is reported when nobody holds the 7x7 bonus
const NoBonus = -1

// PlayerStats aggregates one player's decisions
type PlayerStats struct {
	Name             string               `json:"name"`
	Turns            int                  `json:"turns"`
	Buys             int                  `json:"buys"`
	Skips            int                  `json:"skips"`
	LeatherPlaced    int                  `json:"leather_placed"`
	LeatherForfeited int                  `json:"leather_forfeited"`
	ButtonsSpent     int                  `json:"buttons_spent"`
	TimeSpent        int                  `json:"time_spent"`
	ButtonsFromSkips int                  `json:"buttons_from_skips"`
	IncomeCollected  int                  `json:"income_collected"`
	FinalIncome      int                  `json:"final_income"`
	CellsCovered     int                  `json:"cells_covered"`
	Score            model.ScoreBreakdown `json:"score"`
}

// Point is a snapshot of both players after a number of actions
type Point struct {
	Step        int              `json:"step"`
	Action      model.ActionType `json:"action,omitempty"`
	PlayerIndex int              `json:"player_index"`
	Buttons     [2]int           `json:"buttons"`
	Positions   [2]int           `json:"positions"`
	Income      [2]int           `json:"income"`
	Scores      [2]int           `json:"scores"`
}

// Summary is the full projection of a history. Every player index and
// per-player array follows the history's player names.
type Summary struct {
	TotalActions int            `json:"total_actions"`
	Finished     bool           `json:"finished"`
	Winner       int            `json:"winner"` // Player index, or model.Tie; only set when finished
	BonusPlayer  int            `json:"bonus_player"`
	Players      [2]PlayerStats `json:"players"`
	Series       []Point        `json:"series"`
}

// Compute replays the history and aggregates it. A history that does not
// replay cleanly is rejected with the replay error.
func Compute(h *model.GameHistory, c *catalog.Catalog) (*Summary, error) {
	initial, err := history.InitialState(h, c)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalActions: len(h.Actions),
		Winner:       model.Tie,
		BonusPlayer:  NoBonus,
		Series:       []Point{snapshot(h, 0, nil, initial)},
	}
	for i, name := range h.PlayerNames {
		summary.Players[i].Name = name
	}

	prev := [2]model.Player{*initial.Players[0], *initial.Players[1]}
	final, err := history.ReplayEach(h, c, func(step int, action model.GameAction, state *model.GameState) error {
		seat := history.Seat(h, action.PlayerIndex)
		accumulate(&summary.Players[action.PlayerIndex], action, prev[seat], state.Players[seat], c)
		summary.Series = append(summary.Series, snapshot(h, step+1, &action, state))
		prev = [2]model.Player{*state.Players[0], *state.Players[1]}
		return nil
	})
	if err != nil {
		return nil, err
	}

	scores := scoring.ScoreGame(final)
	var totals [2]int
	for seat, p := range final.Players {
		i := history.NameIndex(h, seat)
		stats := &summary.Players[i]
		stats.Score = scores[seat]
		stats.Score.PlayerIndex = i
		stats.FinalIncome = p.Income
		stats.CellsCovered = p.Board.Size*p.Board.Size - p.Board.EmptyCount()
		totals[i] = scores[seat].Total
		if p.Bonus7x7Area != nil {
			summary.BonusPlayer = i
		}
	}

	summary.Finished = engine.IsFinished(final)
	if summary.Finished {
		summary.Winner = scoring.DetermineWinner(totals[:])
	}
	return summary, nil
}

func accumulate(stats *PlayerStats, action model.GameAction, before model.Player, after *model.Player, c *catalog.Catalog) {
	buttonDelta := after.Buttons - before.Buttons
	moved := after.Position - before.Position

	switch action.Type {
	case model.ActionBuyPatch:
		patch, _ := c.Patch(action.PatchID)
		stats.Turns++
		stats.Buys++
		stats.ButtonsSpent += patch.ButtonCost
		stats.TimeSpent += moved
		stats.IncomeCollected += buttonDelta + patch.ButtonCost
	case model.ActionSkip:
		stats.Turns++
		stats.Skips++
		stats.TimeSpent += moved
		stats.ButtonsFromSkips += moved
		stats.IncomeCollected += buttonDelta - moved
	case model.ActionLeatherPatch:
		if action.Placement == nil {
			stats.LeatherForfeited++
		} else {
			stats.LeatherPlaced++
		}
	}
}

func snapshot(h *model.GameHistory, step int, action *model.GameAction, state *model.GameState) Point {
	p := Point{Step: step, PlayerIndex: history.NameIndex(h, engine.CurrentPlayerIndex(state))}
	if action != nil {
		p.Action = action.Type
		p.PlayerIndex = action.PlayerIndex
	}
	for seat, player := range state.Players {
		i := history.NameIndex(h, seat)
		p.Buttons[i] = player.Buttons
		p.Positions[i] = player.Position
		p.Income[i] = player.Income
		p.Scores[i] = scoring.CalculateScore(player)
	}
	return p
}
