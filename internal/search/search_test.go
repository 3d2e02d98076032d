package search

import (
	"context"
	"testing"

	"shikaku.dev/solver/internal/domain"
)

func allActive(h, w int) [][]bool {
	rows := make([][]bool, h)
	for y := range rows {
		row := make([]bool, w)
		for x := range row {
			row[x] = true
		}
		rows[y] = row
	}
	return rows
}

func TestSolveSingleCellBoard(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{1, 1}, allActive(1, 1), map[domain.Coordinate]int{{0, 0}: 1})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	sols, err := NewDriver().Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1: %v", len(sols), sols)
	}
}

func TestSolveInfeasibleBoardReturnsEmptySet(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{1, 2}, allActive(1, 2), map[domain.Coordinate]int{{0, 0}: 3})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	sols, err := NewDriver().Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve returned an error for an infeasible board, want nil error with empty set: %v", err)
	}
	if len(sols) != 0 {
		t.Fatalf("got %d solutions, want 0", len(sols))
	}
}

func TestSolveTwoByTwoFourQuadrants(t *testing.T) {
	// Four 1x1 clues on a 2x2 board: exactly one tiling.
	b, err := domain.NewBoard(domain.Size{2, 2}, allActive(2, 2), map[domain.Coordinate]int{
		{0, 0}: 1, {0, 1}: 1, {1, 0}: 1, {1, 1}: 1,
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	sols, err := NewDriver().Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1: %v", len(sols), sols)
	}
	for s := range sols {
		assertValidTiling(t, b, s)
	}
}

func TestSolveTwoByTwoSingleRectangle(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{2, 2}, allActive(2, 2), map[domain.Coordinate]int{{0, 0}: 4})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	sols, err := NewDriver().Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1: %v", len(sols), sols)
	}
	for s := range sols {
		assertValidTiling(t, b, s)
	}
}

func TestSolveEnumeratesMultipleSolutions(t *testing.T) {
	// 2x2 board, opposite-corner clues of value 2. Nothing pins
	// orientation: both clues can pair up as two horizontal dominoes
	// (top row, bottom row) or as two vertical dominoes (left column,
	// right column); the cross combinations overlap and are rejected.
	// Exactly two tilings survive.
	b, err := domain.NewBoard(domain.Size{2, 2}, allActive(2, 2), map[domain.Coordinate]int{
		{0, 0}: 2, {1, 1}: 2,
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	sols, err := NewDriver().Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 2 {
		t.Fatalf("got %d solutions, want 2: %v", len(sols), sols)
	}
	for s := range sols {
		assertValidTiling(t, b, s)
	}
}

// TestSolveBranchesAfterALevelZeroPlacement covers a board where the
// propagator forces one rectangle before search has to branch at all, so
// the branch board inherits a non-empty assignment. This is the case a
// fresh per-branch ID counter would silently corrupt: it would reissue an
// ID already used by the inherited placement, and two disjoint rectangles
// would collapse onto the same canonical label.
func TestSolveBranchesAfterALevelZeroPlacement(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{2, 4}, allActive(2, 4), map[domain.Coordinate]int{
		{0, 0}: 2, {1, 1}: 2, {0, 3}: 4,
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	sols, err := NewDriver().Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 2 {
		t.Fatalf("got %d solutions, want 2: %v", len(sols), sols)
	}
	for s := range sols {
		assertValidTiling(t, b, s)
	}
}

// assertValidTiling checks the structural invariants a canonical string
// must satisfy: every non-void label forms a filled axis-aligned
// rectangle, distinct labels are disjoint, each rectangle contains exactly
// one clue, and its area equals that clue's value.
func assertValidTiling(t *testing.T, board *domain.Board, s string) {
	t.Helper()
	size := board.Size()
	if len(s) != 2*size.Height*size.Width {
		t.Fatalf("canonical string %q has length %d, want %d", s, len(s), 2*size.Height*size.Width)
	}

	cellsByLabel := make(map[string][]domain.Coordinate)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			idx := 2 * (y*size.Width + x)
			tok := s[idx : idx+2]
			if !board.IsActive(y, x) {
				if tok != "--" {
					t.Fatalf("void cell (%d,%d) carries label %q", y, x, tok)
				}
				continue
			}
			if tok == "--" {
				t.Fatalf("active cell (%d,%d) carries the void token", y, x)
			}
			cellsByLabel[tok] = append(cellsByLabel[tok], domain.Coordinate{Y: y, X: x})
		}
	}

	clues := board.Clues()
	for label, cells := range cellsByLabel {
		minY, minX := cells[0].Y, cells[0].X
		maxY, maxX := cells[0].Y, cells[0].X
		for _, c := range cells {
			if c.Y < minY {
				minY = c.Y
			}
			if c.Y > maxY {
				maxY = c.Y
			}
			if c.X < minX {
				minX = c.X
			}
			if c.X > maxX {
				maxX = c.X
			}
		}
		h, w := maxY-minY+1, maxX-minX+1
		if len(cells) != h*w {
			t.Fatalf("label %q covers %d cells but its bounding box is %dx%d (%d cells): not a filled rectangle (cells=%v)", label, len(cells), h, w, h*w, cells)
		}
		present := make(map[domain.Coordinate]bool, len(cells))
		for _, c := range cells {
			present[c] = true
		}
		var ownedClue domain.Coordinate
		clueCount := 0
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				c := domain.Coordinate{Y: y, X: x}
				if !present[c] {
					t.Fatalf("label %q's bounding box %d,%d-%d,%d has a hole at %s", label, minY, minX, maxY, maxX, c)
				}
				if v, ok := clues[c]; ok {
					clueCount++
					ownedClue = c
					if v != h*w {
						t.Fatalf("label %q has area %d but its clue at %s is %d", label, h*w, c, v)
					}
				}
			}
		}
		if clueCount != 1 {
			t.Fatalf("label %q's rectangle contains %d clues, want exactly 1 (last seen %s)", label, clueCount, ownedClue)
		}
	}
}

func TestSolveCancelledContext(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{1, 1}, allActive(1, 1), map[domain.Coordinate]int{{0, 0}: 1})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDriver().Solve(ctx, b); err == nil {
		t.Fatal("expected an error from a pre-cancelled context")
	}
}
