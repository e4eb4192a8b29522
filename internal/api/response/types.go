package response

import (
	"strings"
	"time"

	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/engine"
	"github.com/mcoot/patchworkgame-go/internal/services/scoring"
)

// Patch represents a patch in API responses. Shape rows use X for filled
// cells and . for gaps.
type Patch struct {
	ID           int      `json:"id"`
	Shape        []string `json:"shape"`
	ButtonCost   int      `json:"button_cost"`
	TimeCost     int      `json:"time_cost"`
	ButtonIncome int      `json:"button_income"`
}

// PatchFromModel converts model.Patch
func PatchFromModel(p model.Patch) Patch {
	return Patch{
		ID:           int(p.ID),
		Shape:        strings.Split(p.Shape.String(), "\n"),
		ButtonCost:   p.ButtonCost,
		TimeCost:     p.TimeCost,
		ButtonIncome: p.ButtonIncome,
	}
}

// PatchesFromModel converts a list of patches
func PatchesFromModel(patches []model.Patch) []Patch {
	out := make([]Patch, len(patches))
	for i, p := range patches {
		out[i] = PatchFromModel(p)
	}
	return out
}

// Rect is a square area of a board
type Rect struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Size int `json:"size"`
}

// RectFromModel converts a nullable model.Rect
func RectFromModel(r *model.Rect) *Rect {
	if r == nil {
		return nil
	}
	return &Rect{X: r.X, Y: r.Y, Size: r.Size}
}

// PlacedPatch records where a patch was stamped
type PlacedPatch struct {
	PatchID   int  `json:"patch_id"`
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Rotation  int  `json:"rotation"`
	Reflected bool `json:"reflected"`
}

// Player represents one seat of a match
type Player struct {
	Name          string        `json:"name"`
	Buttons       int           `json:"buttons"`
	Income        int           `json:"income"`
	Position      int           `json:"position"`
	Board         [][]int       `json:"board"` // Patch ID per cell, 0 when empty, negative for leather
	PlacedPatches []PlacedPatch `json:"placed_patches"`
	EmptyCells    int           `json:"empty_cells"`
	Score         int           `json:"score"`
	Bonus7x7      *Rect         `json:"bonus_7x7,omitempty"`
}

// PlayerFromModel converts model.Player
func PlayerFromModel(p *model.Player) Player {
	cells := make([][]int, p.Board.Size)
	for y := range cells {
		cells[y] = make([]int, p.Board.Size)
		for x := range cells[y] {
			cells[y][x] = int(p.Board.Get(x, y))
		}
	}

	placed := make([]PlacedPatch, len(p.PlacedPatches))
	for i, pp := range p.PlacedPatches {
		placed[i] = PlacedPatch{
			PatchID:   int(pp.Patch.ID),
			X:         pp.X,
			Y:         pp.Y,
			Rotation:  pp.Rotation,
			Reflected: pp.Reflected,
		}
	}

	return Player{
		Name:          p.Name,
		Buttons:       p.Buttons,
		Income:        p.Income,
		Position:      p.Position,
		Board:         cells,
		PlacedPatches: placed,
		EmptyCells:    p.Board.EmptyCount(),
		Score:         scoring.CalculateScore(p),
		Bonus7x7:      RectFromModel(p.Bonus7x7Area),
	}
}

// LeatherSlot is a leather patch position on the time track
type LeatherSlot struct {
	Position  int  `json:"position"`
	Collected bool `json:"collected"`
	PatchID   int  `json:"patch_id"`
}

// Match represents the full state of a match
type Match struct {
	ID              string                 `json:"id"`
	BoardSize       int                    `json:"board_size"`
	TrackLength     int                    `json:"track_length"`
	CurrentPlayer   int                    `json:"current_player"`
	Players         [2]Player              `json:"players"`
	Market          []Patch                `json:"market"`
	DeckSize        int                    `json:"deck_size"`
	IncomePositions []int                  `json:"income_positions"`
	LeatherPatches  []LeatherSlot          `json:"leather_patches"`
	PendingLeather  []int                  `json:"pending_leather"`
	Bonus7x7Claimed bool                   `json:"bonus_7x7_claimed"`
	GameOver        bool                   `json:"game_over"`
	ActionCount     int                    `json:"action_count"`
	Scores          []model.ScoreBreakdown `json:"scores,omitempty"`
	Winner          *int                   `json:"winner,omitempty"` // Seat index, or -1 on a tie
	ReplayID        string                 `json:"replay_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// MatchFromModel converts model.Match. Scores and the winner are only
// included once the match is finished.
func MatchFromModel(m *model.Match) Match {
	state := m.State

	leather := make([]LeatherSlot, len(state.LeatherPatches))
	for i, l := range state.LeatherPatches {
		leather[i] = LeatherSlot{Position: l.Position, Collected: l.Collected, PatchID: int(l.PatchID)}
	}

	pending := append([]int{}, state.PendingLeather...)
	if state.ActiveLeather != nil {
		pending = append([]int{state.ActiveLeatherPosition}, pending...)
	}

	resp := Match{
		ID:              string(m.ID),
		BoardSize:       state.BoardSize,
		TrackLength:     state.TimeTrackLength,
		CurrentPlayer:   engine.CurrentPlayerIndex(state),
		Players:         [2]Player{PlayerFromModel(state.Players[0]), PlayerFromModel(state.Players[1])},
		Market:          PatchesFromModel(engine.AvailablePatches(state)),
		DeckSize:        len(state.Patches),
		IncomePositions: state.IncomePositions,
		LeatherPatches:  leather,
		PendingLeather:  pending,
		Bonus7x7Claimed: state.Bonus7x7Claimed,
		GameOver:        engine.IsFinished(state),
		ActionCount:     len(m.History.Actions),
		ReplayID:        m.ReplayID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if resp.GameOver {
		scores := scoring.ScoreGame(state)
		winner := scoring.DetermineWinner(scoring.Totals(scores))
		resp.Scores = scores[:]
		resp.Winner = &winner
	}
	return resp
}

// Turn summarises a buy or skip
type Turn struct {
	PlayerIndex     int    `json:"player_index"`
	MarketIndex     *int   `json:"market_index,omitempty"`
	Patch           *Patch `json:"patch,omitempty"`
	SpacesMoved     int    `json:"spaces_moved"`
	ButtonsEarned   int    `json:"buttons_earned"`
	IncomeCollected int    `json:"income_collected"`
	PendingLeather  []int  `json:"pending_leather"`
	BonusAwarded    *Rect  `json:"bonus_awarded,omitempty"`
	GameOver        bool   `json:"game_over"`
}

// TurnFromResult converts an engine turn result
func TurnFromResult(r *engine.TurnResult) Turn {
	turn := Turn{
		PlayerIndex:     r.PlayerIndex,
		SpacesMoved:     r.SpacesMoved(),
		ButtonsEarned:   r.ButtonsEarned,
		IncomeCollected: r.Movement.IncomeCollected,
		PendingLeather:  append([]int{}, r.PendingLeather...),
		BonusAwarded:    RectFromModel(r.BonusAwarded),
		GameOver:        r.GameOver,
	}
	if r.Patch != nil {
		p := PatchFromModel(*r.Patch)
		idx := r.MarketIndex
		turn.Patch = &p
		turn.MarketIndex = &idx
	}
	return turn
}

// TurnResponse is the response after a buy or skip
type TurnResponse struct {
	Match Match `json:"match"`
	Turn  Turn  `json:"turn"`
}

// Leather summarises a resolved leather patch
type Leather struct {
	PlayerIndex   int   `json:"player_index"`
	TrackPosition int   `json:"track_position"`
	PatchID       int   `json:"patch_id"`
	Forfeited     bool  `json:"forfeited"`
	BonusAwarded  *Rect `json:"bonus_awarded,omitempty"`
	GameOver      bool  `json:"game_over"`
}

// LeatherFromResult converts an engine leather result
func LeatherFromResult(r *engine.LeatherResult) Leather {
	return Leather{
		PlayerIndex:   r.PlayerIndex,
		TrackPosition: r.TrackPosition,
		PatchID:       int(r.Patch.ID),
		Forfeited:     r.Forfeited,
		BonusAwarded:  RectFromModel(r.BonusAwarded),
		GameOver:      r.GameOver,
	}
}

// LeatherResponse is the response after placing a leather patch
type LeatherResponse struct {
	Match   Match   `json:"match"`
	Leather Leather `json:"leather"`
}

// ReplayList lists archived replay IDs
type ReplayList struct {
	Replays []string `json:"replays"`
}

// Catalog lists the patches new matches are dealt from
type Catalog struct {
	Name    string  `json:"name"`
	Patches []Patch `json:"patches"`
}
