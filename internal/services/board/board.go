package board

import (
	"github.com/mcoot/patchworkgame-go/internal/model"
)

// CanPlace reports whether every filled cell of shape, offset by (x, y),
// lands on an empty in-bounds cell of the board. It never mutates the board.
func CanPlace(b *model.Board, shape model.Shape, x, y int) bool {
	for row := range shape {
		for col, filled := range shape[row] {
			if !filled {
				continue
			}
			if !b.IsEmpty(x+col, y+row) {
				return false
			}
		}
	}
	return true
}

// ValidatePlacement checks a placement request for a patch
func ValidatePlacement(b *model.Board, patch model.Patch, placement model.Placement) error {
	if !placement.IsValidRotation() {
		return model.ErrInvalidRotation
	}
	shape := patch.Shape.Transform(placement.Rotation, placement.Reflected)
	if !CanPlace(b, shape, placement.X, placement.Y) {
		return model.ErrInvalidPlacement
	}
	return nil
}

// Stamp writes the patch onto the player's board and records it. The caller
// must have validated the placement; no bounds or overlap check is made here.
func Stamp(player *model.Player, patch model.Patch, placement model.Placement) {
	shape := patch.Shape.Transform(placement.Rotation, placement.Reflected)
	for row := range shape {
		for col, filled := range shape[row] {
			if filled {
				player.Board.Cells[placement.Y+row][placement.X+col] = patch.ID
			}
		}
	}
	player.PlacedPatches = append(player.PlacedPatches, model.PlacedPatch{
		Patch:     patch,
		X:         placement.X,
		Y:         placement.Y,
		Rotation:  placement.Rotation,
		Reflected: placement.Reflected,
	})
}

// HasRoomFor reports whether the shape fits anywhere on the board in any orientation
func HasRoomFor(b *model.Board, shape model.Shape) bool {
	found := false
	eachFit(b, shape, func(model.Placement) bool {
		found = true
		return false
	})
	return found
}

// LegalPlacements lists every placement of shape that fits the board, ordered
// by rotation, reflection, then row and column. Symmetric shapes yield the
// same footprint more than once.
func LegalPlacements(b *model.Board, shape model.Shape) []model.Placement {
	var out []model.Placement
	eachFit(b, shape, func(p model.Placement) bool {
		out = append(out, p)
		return true
	})
	return out
}

// eachFit calls fn for each legal placement until fn returns false
func eachFit(b *model.Board, shape model.Shape, fn func(model.Placement) bool) {
	for rotation := 0; rotation < 4; rotation++ {
		for _, reflected := range []bool{false, true} {
			s := shape.Transform(rotation, reflected)
			for y := 0; y <= b.Size-s.Rows(); y++ {
				for x := 0; x <= b.Size-s.Cols(); x++ {
					if !CanPlace(b, s, x, y) {
						continue
					}
					if !fn(model.Placement{X: x, Y: y, Rotation: rotation, Reflected: reflected}) {
						return
					}
				}
			}
		}
	}
}

// FindFilledSquare returns the first fully filled size x size square on the
// board, scanning rows top to bottom, or nil if none exists.
func FindFilledSquare(b *model.Board, size int) *model.Rect {
	if size <= 0 || size > b.Size {
		return nil
	}

	// filledRun[y][x] = side of the largest filled square whose bottom-right corner is (x, y)
	filledRun := make([][]int, b.Size)
	for y := 0; y < b.Size; y++ {
		filledRun[y] = make([]int, b.Size)
		for x := 0; x < b.Size; x++ {
			if b.Cells[y][x] == model.EmptyCell {
				continue
			}
			if x == 0 || y == 0 {
				filledRun[y][x] = 1
				continue
			}
			filledRun[y][x] = 1 + min(filledRun[y-1][x], filledRun[y][x-1], filledRun[y-1][x-1])
		}
	}

	for y := size - 1; y < b.Size; y++ {
		for x := size - 1; x < b.Size; x++ {
			if filledRun[y][x] >= size {
				return &model.Rect{X: x - size + 1, Y: y - size + 1, Size: size}
			}
		}
	}
	return nil
}
