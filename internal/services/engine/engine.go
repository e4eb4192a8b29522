// Package engine implements the turn rules of a match: market purchases,
// skipping ahead, leather patch resolution and the 7x7 bonus. All functions
// mutate the given state in place and leave it untouched when they fail.
package engine

import (
	"strings"

	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/board"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/track"
)

// TurnResult reports the effects of a buy or skip
type TurnResult struct {
	PlayerIndex    int
	MarketIndex    int
	Patch          *model.Patch // nil for a skip
	Placement      *model.Placement
	Movement       track.Movement
	ButtonsEarned  int   // Skip payout
	PendingLeather []int // Leather slots the player must now resolve, in order
	BonusAwarded   *model.Rect
	GameOver       bool
}

// SpacesMoved returns how far the player travelled
func (r *TurnResult) SpacesMoved() int {
	return r.Movement.To - r.Movement.From
}

// LeatherResult reports the effects of collecting or placing a leather patch
type LeatherResult struct {
	PlayerIndex   int
	TrackPosition int
	Patch         model.Patch
	Placement     *model.Placement // nil until placed, and for forfeited patches
	Forfeited     bool             // Collected onto a board with no empty cell
	BonusAwarded  *model.Rect
	GameOver      bool
}

// NewGameState creates a fresh match. Seat 0 is always the starting player,
// so names are reordered when firstPlayerIndex is 1. The market deck is the
// seeded shuffle of the catalog.
func NewGameState(boardSize int, playerNames [2]string, firstPlayerIndex int, seed uint32, c *catalog.Catalog) (*model.GameState, error) {
	cfg, err := model.LookupBoardConfig(boardSize)
	if err != nil {
		return nil, err
	}
	if firstPlayerIndex != 0 && firstPlayerIndex != 1 {
		return nil, model.ErrInvalidPlayer
	}
	for _, name := range playerNames {
		if strings.TrimSpace(name) == "" {
			return nil, model.ErrInvalidPlayerNames
		}
	}

	leather, err := catalog.LeatherPatches(boardSize)
	if err != nil {
		return nil, err
	}

	first := playerNames[firstPlayerIndex]
	second := playerNames[1-firstPlayerIndex]

	return &model.GameState{
		BoardSize:       boardSize,
		Players:         [2]*model.Player{model.NewPlayer(first, boardSize), model.NewPlayer(second, boardSize)},
		Patches:         catalog.SeededDeck(c, seed),
		MarketPosition:  0,
		TimeTrackLength: cfg.TrackLength,
		IncomePositions: cfg.IncomePositions,
		LeatherPatches:  leather,
		PendingLeather:  []int{},
	}, nil
}

// AvailablePatches returns the patches the current player may buy, in market order
func AvailablePatches(state *model.GameState) []model.Patch {
	n := min(model.MarketWindow, len(state.Patches))
	out := make([]model.Patch, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, state.Patches[(state.MarketPosition+i)%len(state.Patches)])
	}
	return out
}

// CurrentPlayerIndex returns whose turn it is. While a leather patch is
// pending, that is the player who crossed it.
func CurrentPlayerIndex(state *model.GameState) int {
	if state.HasPendingLeather() {
		return state.PendingPlayer
	}
	return track.CurrentPlayerIndex(state)
}

// IsGameOver returns true once both players are at the end of the track
func IsGameOver(state *model.GameState) bool {
	return track.IsGameOver(state)
}

// IsFinished returns true when the game is over and nothing remains to resolve
func IsFinished(state *model.GameState) bool {
	return track.IsGameOver(state) && !state.HasPendingLeather()
}

// BuyPatch buys the patch in the given market slot for the current player and
// places it on their board.
func BuyPatch(state *model.GameState, marketIndex int, placement model.Placement) (*TurnResult, error) {
	if err := checkCanDecide(state); err != nil {
		return nil, err
	}
	if marketIndex < 0 || marketIndex >= min(model.MarketWindow, len(state.Patches)) {
		return nil, model.ErrInvalidMarketSlot
	}

	deckIndex := (state.MarketPosition + marketIndex) % len(state.Patches)
	patch := state.Patches[deckIndex]
	playerIndex := track.CurrentPlayerIndex(state)
	player := state.Players[playerIndex]

	if player.Buttons < patch.ButtonCost {
		return nil, model.ErrInsufficientButtons
	}
	if err := board.ValidatePlacement(&player.Board, patch, placement); err != nil {
		return nil, err
	}

	player.Buttons -= patch.ButtonCost
	player.Income += patch.ButtonIncome
	move := track.MovePlayer(state, playerIndex, patch.TimeCost)
	board.Stamp(player, patch, placement)

	state.Patches = append(state.Patches[:deckIndex], state.Patches[deckIndex+1:]...)
	if len(state.Patches) > 0 {
		state.MarketPosition = deckIndex % len(state.Patches)
	} else {
		state.MarketPosition = 0
	}

	result := &TurnResult{
		PlayerIndex:  playerIndex,
		MarketIndex:  marketIndex,
		Patch:        &patch,
		Placement:    &placement,
		Movement:     move,
		BonusAwarded: awardBonus(state, playerIndex),
	}
	queueLeather(state, playerIndex, move.CrossedLeather)
	result.PendingLeather = append([]int(nil), state.PendingLeather...)
	result.GameOver = IsFinished(state)
	return result, nil
}

// SkipAhead moves the current player one space past the opponent and pays
// one button per space moved
func SkipAhead(state *model.GameState) (*TurnResult, error) {
	if err := checkCanDecide(state); err != nil {
		return nil, err
	}

	playerIndex := track.CurrentPlayerIndex(state)
	move := track.MovePlayer(state, playerIndex, track.OvertakeDistance(state))
	earned := move.To - move.From
	state.Players[playerIndex].Buttons += earned

	queueLeather(state, playerIndex, move.CrossedLeather)
	return &TurnResult{
		PlayerIndex:    playerIndex,
		Movement:       move,
		ButtonsEarned:  earned,
		PendingLeather: append([]int(nil), state.PendingLeather...),
		GameOver:       IsFinished(state),
	}, nil
}

// CollectLeatherPatch takes the next pending leather patch off the track and
// hands it to the player who crossed it. If their board has no room at all
// the patch is forfeited; otherwise it must be placed with PlaceLeatherPatch
// before anything else happens.
func CollectLeatherPatch(state *model.GameState) (*LeatherResult, error) {
	if state.ActiveLeather != nil {
		return nil, model.ErrLeatherActive
	}
	if len(state.PendingLeather) == 0 {
		return nil, model.ErrNoLeatherPending
	}

	position := state.PendingLeather[0]
	slot := state.LeatherSlot(position)
	state.PendingLeather = state.PendingLeather[1:]
	slot.Collected = true

	patch := model.NewLeatherPatch(slot.PatchID)
	player := state.Players[state.PendingPlayer]
	result := &LeatherResult{
		PlayerIndex:   state.PendingPlayer,
		TrackPosition: position,
		Patch:         patch,
	}

	if !board.HasRoomFor(&player.Board, patch.Shape) {
		result.Forfeited = true
		result.GameOver = IsFinished(state)
		return result, nil
	}

	state.ActiveLeather = &patch
	state.ActiveLeatherPosition = position
	return result, nil
}

// PlaceLeatherPatch places the collected leather patch. It cannot be declined;
// an illegal placement leaves the patch waiting.
func PlaceLeatherPatch(state *model.GameState, placement model.Placement) (*LeatherResult, error) {
	if state.ActiveLeather == nil {
		return nil, model.ErrNoLeatherPending
	}

	patch := *state.ActiveLeather
	playerIndex := state.PendingPlayer
	player := state.Players[playerIndex]
	if err := board.ValidatePlacement(&player.Board, patch, placement); err != nil {
		return nil, err
	}

	board.Stamp(player, patch, placement)
	position := state.ActiveLeatherPosition
	state.ActiveLeather = nil
	state.ActiveLeatherPosition = 0

	result := &LeatherResult{
		PlayerIndex:   playerIndex,
		TrackPosition: position,
		Patch:         patch,
		Placement:     &placement,
		BonusAwarded:  awardBonus(state, playerIndex),
	}
	result.GameOver = IsFinished(state)
	return result, nil
}

// ResolveLeatherPatch collects the next pending leather patch and places it in
// one step. The placement is validated before anything is collected, so a
// rejected placement leaves the state unchanged.
func ResolveLeatherPatch(state *model.GameState, placement model.Placement) (*LeatherResult, error) {
	if state.ActiveLeather != nil {
		return PlaceLeatherPatch(state, placement)
	}
	if len(state.PendingLeather) == 0 {
		return nil, model.ErrNoLeatherPending
	}

	slot := state.LeatherSlot(state.PendingLeather[0])
	patch := model.NewLeatherPatch(slot.PatchID)
	player := state.Players[state.PendingPlayer]
	if board.HasRoomFor(&player.Board, patch.Shape) {
		if err := board.ValidatePlacement(&player.Board, patch, placement); err != nil {
			return nil, err
		}
	}

	collected, err := CollectLeatherPatch(state)
	if err != nil {
		return nil, err
	}
	if collected.Forfeited {
		return collected, nil
	}
	return PlaceLeatherPatch(state, placement)
}

func checkCanDecide(state *model.GameState) error {
	if track.IsGameOver(state) {
		return model.ErrGameOver
	}
	if state.HasPendingLeather() {
		return model.ErrLeatherPending
	}
	return nil
}

func queueLeather(state *model.GameState, playerIndex int, positions []int) {
	if len(positions) == 0 {
		return
	}
	state.PendingLeather = append(state.PendingLeather, positions...)
	state.PendingPlayer = playerIndex
}

// awardBonus grants the 7x7 bonus to the player if nobody holds it yet and
// their board now contains a filled 7x7 square
func awardBonus(state *model.GameState, playerIndex int) *model.Rect {
	if state.Bonus7x7Claimed {
		return nil
	}
	player := state.Players[playerIndex]
	rect := board.FindFilledSquare(&player.Board, model.BonusSquareSize)
	if rect == nil {
		return nil
	}
	player.Bonus7x7Area = rect
	state.Bonus7x7Claimed = true
	return rect
}
