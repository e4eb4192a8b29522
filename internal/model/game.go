package model

import "time"

// MarketWindow is the number of patches a player may choose from
const MarketWindow = 3

// BonusSquareSize is the side length of the filled square that earns the bonus
const BonusSquareSize = 7

// GameState is the authoritative state of a single two-player match.
// It is mutated in place by the engine and frozen once the game is over.
type GameState struct {
	BoardSize       int
	Players         [2]*Player
	Patches         []Patch // Remaining market deck, in circle order
	MarketPosition  int     // Index of the first purchasable patch
	TimeTrackLength int
	IncomePositions []int
	LeatherPatches  []LeatherPatchOnTrack
	Bonus7x7Claimed bool

	// Leather patches crossed by PendingPlayer's last move, resolved in order
	PendingLeather []int
	PendingPlayer  int
	// Collected leather patch awaiting placement, and the slot it came from
	ActiveLeather         *Patch
	ActiveLeatherPosition int
}

// HasPendingLeather returns true while a leather patch still needs resolving
func (g *GameState) HasPendingLeather() bool {
	return len(g.PendingLeather) > 0 || g.ActiveLeather != nil
}

// LeatherSlot returns the leather patch slot at a track position, or nil
func (g *GameState) LeatherSlot(position int) *LeatherPatchOnTrack {
	for i := range g.LeatherPatches {
		if g.LeatherPatches[i].Position == position {
			return &g.LeatherPatches[i]
		}
	}
	return nil
}

// MatchID uniquely identifies a stored match
type MatchID string

// Match pairs a live game state with its action log
type Match struct {
	ID        MatchID
	State     *GameState
	History   *GameHistory
	ReplayID  string // Set once the finished history has been archived
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tie is the winner index reported when both scores are equal
const Tie = -1

// ScoreBreakdown explains a player's final score
type ScoreBreakdown struct {
	PlayerIndex int  `json:"player_index"`
	Buttons     int  `json:"buttons"`
	EmptyCells  int  `json:"empty_cells"`
	Penalty     int  `json:"penalty"`   // 2 per empty cell
	HasBonus    bool `json:"has_bonus"` // Informational; not added to Total
	Total       int  `json:"total"`
}
