package model

// EmptyCell marks an unoccupied board cell
const EmptyCell PatchID = 0

// Board is a player's square quilt grid, indexed Cells[y][x].
// Each cell holds the ID of the patch covering it or EmptyCell.
type Board struct {
	Size  int
	Cells [][]PatchID
}

// NewBoard creates an empty board of the given size
func NewBoard(size int) Board {
	cells := make([][]PatchID, size)
	for i := range cells {
		cells[i] = make([]PatchID, size)
	}
	return Board{
		Size:  size,
		Cells: cells,
	}
}

// Get returns the patch ID at (x, y), or EmptyCell if out of bounds
func (b *Board) Get(x, y int) PatchID {
	if !b.InBounds(x, y) {
		return EmptyCell
	}
	return b.Cells[y][x]
}

// IsEmpty returns true if the cell at (x, y) is in bounds and unoccupied
func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.Cells[y][x] == EmptyCell
}

// InBounds returns true if (x, y) lies on the board
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Size && y >= 0 && y < b.Size
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.Cells[y][x] == EmptyCell {
				count++
			}
		}
	}
	return count
}

// IsFull returns true if all cells are filled
func (b *Board) IsFull() bool {
	return b.EmptyCount() == 0
}

// Rect is an axis-aligned square region of a board
type Rect struct {
	X    int
	Y    int
	Size int
}
