package history

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
)

// New starts an empty history for a match
func New(seed uint32, playerNames [2]string, firstPlayerIndex, boardSize int, catalogName string) *model.GameHistory {
	return &model.GameHistory{
		Version:          model.HistoryVersion,
		Seed:             seed,
		PlayerNames:      playerNames,
		FirstPlayerIndex: firstPlayerIndex,
		BoardSize:        boardSize,
		Catalog:          catalogName,
		Actions:          []model.GameAction{},
	}
}

// Player indexes in a history refer to PlayerNames. The engine always seats
// the starting player at 0, so the two orders differ when FirstPlayerIndex is 1.

// Seat returns the engine seat of the player at nameIndex
func Seat(h *model.GameHistory, nameIndex int) int {
	if h.FirstPlayerIndex == 0 {
		return nameIndex
	}
	return 1 - nameIndex
}

// NameIndex returns the PlayerNames index of the player in seat. It is the
// inverse of Seat.
func NameIndex(h *model.GameHistory, seat int) int {
	return Seat(h, seat)
}

// Append records a player decision whose PlayerIndex is already in
// PlayerNames order. Finalized histories are read-only.
func Append(h *model.GameHistory, action model.GameAction) error {
	if h.IsFinalized() {
		return model.ErrGameOver
	}
	h.Actions = append(h.Actions, action)
	return nil
}

// Record appends a decision taken by the engine seat in action.PlayerIndex
func Record(h *model.GameHistory, action model.GameAction) error {
	action.PlayerIndex = NameIndex(h, action.PlayerIndex)
	return Append(h, action)
}

// Finalize writes the final scores, given in seat order, in PlayerNames
// order. It only takes effect once; later calls return false and leave the
// scores alone.
func Finalize(h *model.GameHistory, seatScores []int) bool {
	if h.IsFinalized() {
		return false
	}
	scores := make([]int, len(seatScores))
	for seat, score := range seatScores {
		scores[NameIndex(h, seat)] = score
	}
	h.FinalScores = scores
	return true
}

// SeatScores returns the recorded final scores in seat order, or nil when the
// history is not finalized
func SeatScores(h *model.GameHistory) []int {
	if !h.IsFinalized() {
		return nil
	}
	scores := make([]int, len(h.FinalScores))
	for i, score := range h.FinalScores {
		scores[Seat(h, i)] = score
	}
	return scores
}

// Encode serializes a history to JSON
func Encode(h *model.GameHistory) ([]byte, error) {
	return json.Marshal(h)
}

// Decode parses and sanity-checks a serialized history
func Decode(data []byte) (*model.GameHistory, error) {
	var h model.GameHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedHistory, err)
	}
	if h.Version != model.HistoryVersion {
		return nil, fmt.Errorf("%w: %d", model.ErrUnsupportedHistoryVersion, h.Version)
	}
	if _, err := model.LookupBoardConfig(h.BoardSize); err != nil {
		return nil, err
	}
	if h.FirstPlayerIndex != 0 && h.FirstPlayerIndex != 1 {
		return nil, model.ErrInvalidPlayer
	}
	if h.FinalScores != nil && len(h.FinalScores) != 2 {
		return nil, fmt.Errorf("%w: expected 2 final scores, got %d", model.ErrMalformedHistory, len(h.FinalScores))
	}
	if h.Actions == nil {
		h.Actions = []model.GameAction{}
	}
	return &h, nil
}

// CatalogFor returns the catalog a history was recorded with. Histories
// without a catalog name use the classic catalog.
func CatalogFor(h *model.GameHistory) (*catalog.Catalog, error) {
	return catalog.Lookup(h.Catalog)
}
