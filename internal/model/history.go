package model

// HistoryVersion is the current GameHistory format version
const HistoryVersion = 1

// ActionType tags the variant held by a GameAction
type ActionType string

const (
	ActionBuyPatch     ActionType = "buyPatch"
	ActionSkip         ActionType = "skip"
	ActionLeatherPatch ActionType = "leatherPatch"
)

// GameAction is one recorded player decision. Only the fields relevant to
// Type are set.
type GameAction struct {
	Type        ActionType `json:"type"`
	PlayerIndex int        `json:"playerIndex"`

	// buyPatch
	PatchIndex int     `json:"patchIndex,omitempty"`
	PatchID    PatchID `json:"patchId,omitempty"`

	// skip
	SpacesSkipped int `json:"spacesSkipped,omitempty"`

	// leatherPatch
	TrackPosition int `json:"trackPosition,omitempty"`

	// buyPatch and leatherPatch; nil for a forfeited leather patch
	Placement *Placement `json:"placement,omitempty"`
}

// NewBuyPatchAction records a market purchase
func NewBuyPatchAction(playerIndex, patchIndex int, patchID PatchID, placement Placement) GameAction {
	return GameAction{
		Type:        ActionBuyPatch,
		PlayerIndex: playerIndex,
		PatchIndex:  patchIndex,
		PatchID:     patchID,
		Placement:   &placement,
	}
}

// NewSkipAction records a skip ahead on the time track
func NewSkipAction(playerIndex, spacesSkipped int) GameAction {
	return GameAction{
		Type:          ActionSkip,
		PlayerIndex:   playerIndex,
		SpacesSkipped: spacesSkipped,
	}
}

// NewLeatherPatchAction records a resolved leather patch. A nil placement
// means the patch was forfeited because the board had no room.
func NewLeatherPatchAction(playerIndex, trackPosition int, placement *Placement) GameAction {
	return GameAction{
		Type:          ActionLeatherPatch,
		PlayerIndex:   playerIndex,
		TrackPosition: trackPosition,
		Placement:     placement,
	}
}

// GameHistory is the append-only, serializable log of a match
type GameHistory struct {
	Version          int          `json:"version"`
	Seed             uint32       `json:"seed"`
	PlayerNames      [2]string    `json:"playerNames"`
	FirstPlayerIndex int          `json:"firstPlayerIndex"`
	BoardSize        int          `json:"boardSize"`
	Catalog          string       `json:"catalog,omitempty"`
	Actions          []GameAction `json:"actions"`
	FinalScores      []int        `json:"finalScores,omitempty"`
}

// IsFinalized returns true once final scores have been written
func (h *GameHistory) IsFinalized() bool {
	return h.FinalScores != nil
}
