package model

import "strings"

// Shape is a rectangular, row-major grid of filled (true) and empty cells.
// Shapes are treated as immutable; transforms always return a new Shape.
type Shape [][]bool

// ParseShape builds a Shape from rows where 'X' marks a filled cell and any
// other character an empty one. All rows must be the same length.
func ParseShape(rows ...string) Shape {
	shape := make(Shape, len(rows))
	for r, row := range rows {
		if len(row) != len(rows[0]) {
			panic("model: jagged shape row " + row)
		}
		shape[r] = make([]bool, len(row))
		for c, ch := range row {
			shape[r][c] = ch == 'X'
		}
	}
	return shape
}

// Rows returns the number of rows
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the number of columns
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// CellCount returns the number of filled cells
func (s Shape) CellCount() int {
	count := 0
	for _, row := range s {
		for _, filled := range row {
			if filled {
				count++
			}
		}
	}
	return count
}

// Rotate turns the shape 90° clockwise `times` times (mod 4).
func (s Shape) Rotate(times int) Shape {
	times = ((times % 4) + 4) % 4
	out := s.clone()
	for i := 0; i < times; i++ {
		out = out.rotateOnce()
	}
	return out
}

func (s Shape) rotateOnce() Shape {
	rows, cols := s.Rows(), s.Cols()
	rotated := make(Shape, cols)
	for c := 0; c < cols; c++ {
		rotated[c] = make([]bool, rows)
		for r := 0; r < rows; r++ {
			rotated[c][r] = s[rows-1-r][c]
		}
	}
	return rotated
}

// Reflect mirrors the shape horizontally
func (s Shape) Reflect() Shape {
	reflected := make(Shape, len(s))
	for r, row := range s {
		reflected[r] = make([]bool, len(row))
		for c := range row {
			reflected[r][c] = row[len(row)-1-c]
		}
	}
	return reflected
}

// Transform applies rotation first, then the optional reflection.
func (s Shape) Transform(rotation int, reflected bool) Shape {
	out := s.Rotate(rotation)
	if reflected {
		out = out.Reflect()
	}
	return out
}

// Equal reports whether both shapes have identical dimensions and cells
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if len(s[r]) != len(other[r]) {
			return false
		}
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the shape using the ParseShape notation, one row per line
func (s Shape) String() string {
	var b strings.Builder
	for r, row := range s {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

func (s Shape) clone() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = append([]bool(nil), row...)
	}
	return out
}
