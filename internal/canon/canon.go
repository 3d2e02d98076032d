// Package canon produces the stable textual encoding of a Board assignment
// used both as solution identity and as the search driver's cache key.
package canon

import (
	"fmt"
	"strconv"
	"strings"

	"shikaku.dev/solver/internal/domain"
)

// VoidToken is the fixed two-character token emitted for a void cell.
const VoidToken = "--"

const labelSpace = 100

// Canonicalize walks board cells in row-major order, emitting a two-digit
// label for each active cell (first-seen order over rectangle IDs, wrapped
// modulo 100) and VoidToken for each void cell.
func Canonicalize(board *domain.Board) string {
	size := board.Size()
	var b strings.Builder
	b.Grow(2 * size.Height * size.Width)
	labels := make(map[int]int)
	next := 0
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			if !board.IsActive(y, x) {
				b.WriteString(VoidToken)
				continue
			}
			id := board.AssignmentAt(y, x)
			label, ok := labels[id]
			if !ok {
				label = next % labelSpace
				labels[id] = label
				next++
			}
			fmt.Fprintf(&b, "%02d", label)
		}
	}
	return b.String()
}

// MemoKey identifies a partial board by its set of unassigned active cells;
// two boards sharing a key are equivalent completion sub-problems, since
// candidate generation and propagation depend only on which cells remain
// free, never on how already-placed rectangles got their IDs.
func MemoKey(board *domain.Board) string {
	cells := board.UnassignedActiveCells()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.Key()
	}
	return strings.Join(parts, "|")
}

// Reproject rewrites a cached canonical string — produced for some other
// board sharing the current board's MemoKey — onto the current board's
// actual already-placed cells, returning the canonical string of the
// resulting completed assignment.
//
// It never mutates board: a scratch copy receives the cached completion's
// labels, offset above the board's own highest rectangle ID so the two
// label spaces cannot collide, and is then canonicalized fresh. This is
// what makes cache reuse sound even when the branch that populated the
// cache tiled its already-placed region differently from the branch
// consulting it now.
func Reproject(board *domain.Board, cached string) (string, error) {
	size := board.Size()
	if len(cached) != 2*size.Height*size.Width {
		return "", fmt.Errorf("shikaku: cached solution length %d, want %d", len(cached), 2*size.Height*size.Width)
	}
	merged := board.Copy()
	offset := merged.MaxAssignedID() + 1
	idx := 0
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			tok := cached[idx : idx+2]
			idx += 2
			if !merged.IsActive(y, x) || merged.AssignmentAt(y, x) != 0 {
				continue
			}
			label, err := strconv.Atoi(tok)
			if err != nil {
				return "", fmt.Errorf("shikaku: malformed cached token %q", tok)
			}
			if err := merged.SetAssignment(y, x, offset+label); err != nil {
				return "", err
			}
		}
	}
	return Canonicalize(merged), nil
}
