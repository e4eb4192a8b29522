package model

// StartingButtons is the currency each player begins a match with
const StartingButtons = 5

// Player holds one participant's economy, track position and quilt
type Player struct {
	Name          string
	Buttons       int
	Income        int // Gained at every income checkpoint
	Position      int // 0..TimeTrackLength
	Board         Board
	PlacedPatches []PlacedPatch
	Bonus7x7Area  *Rect // nil unless this player claimed the 7x7 bonus
}

// NewPlayer creates a player at the start of the track with an empty board
func NewPlayer(name string, boardSize int) *Player {
	return &Player{
		Name:          name,
		Buttons:       StartingButtons,
		Board:         NewBoard(boardSize),
		PlacedPatches: []PlacedPatch{},
	}
}
