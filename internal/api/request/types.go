package request

import "github.com/mcoot/patchworkgame-go/internal/model"

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	PlayerNames []string `json:"player_names"`
	FirstPlayer int      `json:"first_player,omitempty"`
	BoardSize   int      `json:"board_size,omitempty"`
	Seed        *uint32  `json:"seed,omitempty"`
}

// PlacementRequest positions a patch on a board
type PlacementRequest struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Rotation  int  `json:"rotation,omitempty"`
	Reflected bool `json:"reflected,omitempty"`
}

// Placement converts the request to a model placement
func (p PlacementRequest) Placement() model.Placement {
	return model.Placement{X: p.X, Y: p.Y, Rotation: p.Rotation, Reflected: p.Reflected}
}

// BuyRequest is the request body for buying a market patch
type BuyRequest struct {
	Player      *int `json:"player"`
	MarketIndex int  `json:"market_index"`
	PlacementRequest
}

// SkipRequest is the request body for skipping ahead
type SkipRequest struct {
	Player *int `json:"player"`
}

// LeatherRequest is the request body for placing a leather patch
type LeatherRequest struct {
	Player *int `json:"player"`
	PlacementRequest
}
