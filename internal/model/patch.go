package model

// PatchID identifies a patch. Market patches have positive IDs, leather
// patches negative ones. Zero is never a valid ID and marks an empty cell.
type PatchID int

// Patch is an immutable patch definition
type Patch struct {
	ID           PatchID
	Shape        Shape
	ButtonCost   int
	TimeCost     int
	ButtonIncome int
}

// IsLeather returns true for the free single-cell patches found on the track
func (p Patch) IsLeather() bool {
	return p.ID < 0
}

// Placement describes where and how a patch is stamped onto a board.
// Rotation counts clockwise quarter turns; reflection is applied after rotation.
type Placement struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Rotation  int  `json:"rotation"`
	Reflected bool `json:"reflected"`
}

// IsValidRotation returns true if the rotation is one of the four quarter turns
func (p Placement) IsValidRotation() bool {
	return p.Rotation >= 0 && p.Rotation <= 3
}

// PlacedPatch records a patch stamped on a player's board
type PlacedPatch struct {
	Patch     Patch
	X         int
	Y         int
	Rotation  int
	Reflected bool
}

// Placement returns the placement parameters this patch was stamped with
func (pp PlacedPatch) Placement() Placement {
	return Placement{X: pp.X, Y: pp.Y, Rotation: pp.Rotation, Reflected: pp.Reflected}
}

// LeatherPatchOnTrack is a free patch waiting on a fixed time-track slot
type LeatherPatchOnTrack struct {
	Position  int
	Collected bool
	PatchID   PatchID
}

// LeatherPatchID returns the ID assigned to the leather patch on the given slot
func LeatherPatchID(slotIndex int) PatchID {
	return PatchID(-(slotIndex + 1))
}

// NewLeatherPatch creates the free 1x1 patch for a track slot
func NewLeatherPatch(id PatchID) Patch {
	return Patch{
		ID:    id,
		Shape: ParseShape("X"),
	}
}
