package domain

import "encoding/json"

// Board is an immutable-by-convention snapshot of dimensions, clues, the
// active-cell mask, and the current assignment array. Callers obtain new
// boards via NewBoard or Copy; mutation happens only through
// PlaceRectangle (and the narrow SetAssignment escape hatch used by the
// canonicalizer to reproject cached solutions).
type Board struct {
	size       Size
	active     [][]bool
	clues      map[Coordinate]int
	assignment [][]int
}

// NewBoard validates and constructs a Board with a blank assignment.
// It enforces invariant 1 (every clue sits on an active cell) and rejects
// malformed clue values or dimensions as contract violations.
func NewBoard(size Size, active [][]bool, clues map[Coordinate]int) (*Board, error) {
	if size.Height < 1 || size.Width < 1 {
		return nil, violation("NewBoard", "dimensions must be >= 1, got %dx%d", size.Height, size.Width)
	}
	if len(active) != size.Height {
		return nil, violation("NewBoard", "active mask has %d rows, want %d", len(active), size.Height)
	}
	activeCopy := make([][]bool, size.Height)
	for y, row := range active {
		if len(row) != size.Width {
			return nil, violation("NewBoard", "active mask row %d has %d cols, want %d", y, len(row), size.Width)
		}
		activeCopy[y] = append([]bool(nil), row...)
	}
	cluesCopy := make(map[Coordinate]int, len(clues))
	for coord, value := range clues {
		if coord.Y < 0 || coord.Y >= size.Height || coord.X < 0 || coord.X >= size.Width {
			return nil, violation("NewBoard", "clue at %s is out of bounds", coord)
		}
		if !activeCopy[coord.Y][coord.X] {
			return nil, violation("NewBoard", "clue at %s sits on a void cell", coord)
		}
		if value < 1 {
			return nil, violation("NewBoard", "clue at %s has non-positive value %d", coord, value)
		}
		cluesCopy[coord] = value
	}
	assignment := make([][]int, size.Height)
	for y := range assignment {
		assignment[y] = make([]int, size.Width)
	}
	return &Board{size: size, active: activeCopy, clues: cluesCopy, assignment: assignment}, nil
}

// Size returns the board's dimensions.
func (b *Board) Size() Size { return b.size }

// IsActive reports whether (y, x) is part of the puzzle.
func (b *Board) IsActive(y, x int) bool { return b.active[y][x] }

// ClueAt returns the clue value at (y, x), if any.
func (b *Board) ClueAt(y, x int) (int, bool) {
	v, ok := b.clues[Coordinate{Y: y, X: x}]
	return v, ok
}

// Clues returns a defensive copy of the clue map.
func (b *Board) Clues() map[Coordinate]int {
	out := make(map[Coordinate]int, len(b.clues))
	for k, v := range b.clues {
		out[k] = v
	}
	return out
}

// AssignmentAt returns the rectangle ID occupying (y, x), or 0 if unassigned.
func (b *Board) AssignmentAt(y, x int) int { return b.assignment[y][x] }

// ActiveCellCount returns the number of active cells on the board.
func (b *Board) ActiveCellCount() int {
	n := 0
	for y := 0; y < b.size.Height; y++ {
		for x := 0; x < b.size.Width; x++ {
			if b.active[y][x] {
				n++
			}
		}
	}
	return n
}

// UnassignedActiveCells lists, in row-major order, every active cell that
// still carries no rectangle ID. It is both the propagator's cell-forced
// scan order and the canonicalizer's memoization key.
func (b *Board) UnassignedActiveCells() []Coordinate {
	cells := make([]Coordinate, 0)
	for y := 0; y < b.size.Height; y++ {
		for x := 0; x < b.size.Width; x++ {
			if b.active[y][x] && b.assignment[y][x] == 0 {
				cells = append(cells, Coordinate{Y: y, X: x})
			}
		}
	}
	return cells
}

// MaxAssignedID returns the largest rectangle ID currently on the board, or
// 0 if nothing has been placed yet. Used by the canonicalizer to allocate a
// disjoint offset when reprojecting a cached completion onto this board.
func (b *Board) MaxAssignedID() int {
	max := 0
	for y := 0; y < b.size.Height; y++ {
		for x := 0; x < b.size.Width; x++ {
			if b.assignment[y][x] > max {
				max = b.assignment[y][x]
			}
		}
	}
	return max
}

// Copy deep-copies the mutable active mask and assignment array; size and
// the clue map are shared by value semantics since neither ever mutates.
func (b *Board) Copy() *Board {
	active := make([][]bool, b.size.Height)
	assignment := make([][]int, b.size.Height)
	for y := 0; y < b.size.Height; y++ {
		active[y] = append([]bool(nil), b.active[y]...)
		assignment[y] = append([]int(nil), b.assignment[y]...)
	}
	return &Board{size: b.size, active: active, clues: b.clues, assignment: assignment}
}

// PlaceRectangle writes id into every cell of rect. Every cell of rect must
// be active and currently unassigned; violating this is a programming
// error, never a legitimate puzzle outcome.
func (b *Board) PlaceRectangle(rect Candidate, id int) error {
	if id <= 0 {
		return violation("PlaceRectangle", "rectangle id must be positive, got %d", id)
	}
	end := rect.End()
	if rect.Start.Y < 0 || rect.Start.X < 0 || end.Y > b.size.Height || end.X > b.size.Width {
		return violation("PlaceRectangle", "rectangle %s is out of bounds", rect)
	}
	cells := rect.Cells()
	for _, cell := range cells {
		if !b.active[cell.Y][cell.X] {
			return violation("PlaceRectangle", "cell %s is void", cell)
		}
		if b.assignment[cell.Y][cell.X] != 0 {
			return violation("PlaceRectangle", "cell %s is already assigned", cell)
		}
	}
	for _, cell := range cells {
		b.assignment[cell.Y][cell.X] = id
	}
	return nil
}

// SetAssignment writes a single cell's rectangle ID directly, bypassing the
// whole-rectangle precondition of PlaceRectangle. It exists solely for the
// canonicalizer's cache-reprojection path (canon.Reproject), which paints a
// cached completion's labels onto a scratch copy of the board cell by cell.
func (b *Board) SetAssignment(y, x, id int) error {
	if !b.active[y][x] {
		return violation("SetAssignment", "cell %s is void", Coordinate{Y: y, X: x})
	}
	b.assignment[y][x] = id
	return nil
}

type boardJSON struct {
	Height     int            `json:"height"`
	Width      int            `json:"width"`
	Active     [][]bool       `json:"active"`
	Clues      map[string]int `json:"clues"`
	Assignment [][]int        `json:"assignment,omitempty"`
}

// MarshalJSON serializes the board for persistence (internal/store).
func (b *Board) MarshalJSON() ([]byte, error) {
	clues := make(map[string]int, len(b.clues))
	for k, v := range b.clues {
		clues[k.Key()] = v
	}
	return json.Marshal(boardJSON{
		Height:     b.size.Height,
		Width:      b.size.Width,
		Active:     b.active,
		Clues:      clues,
		Assignment: b.assignment,
	})
}

// UnmarshalJSON restores a board previously written by MarshalJSON.
func (b *Board) UnmarshalJSON(data []byte) error {
	var bj boardJSON
	if err := json.Unmarshal(data, &bj); err != nil {
		return err
	}
	clues := make(map[Coordinate]int, len(bj.Clues))
	for k, v := range bj.Clues {
		coord, err := ParseCoordinate(k)
		if err != nil {
			return err
		}
		clues[coord] = v
	}
	nb, err := NewBoard(Size{Height: bj.Height, Width: bj.Width}, bj.Active, clues)
	if err != nil {
		return err
	}
	if bj.Assignment != nil {
		nb.assignment = bj.Assignment
	}
	*b = *nb
	return nil
}
