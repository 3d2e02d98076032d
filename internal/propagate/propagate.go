// Package propagate implements the fixed-point constraint propagation pass
// that runs between candidate generation and search branching. It applies
// two rules to exhaustion:
//
//   - R1, rectangle-unique-placement: a clue with exactly one geometrically
//     free candidate left must be placed.
//   - R2, cell-forced-reasoning: an unassigned cell that only one remaining
//     clue's candidates can still cover forces that clue's placement when
//     that clue itself has exactly one candidate covering the cell.
package propagate

import (
	"errors"
	"sort"

	"shikaku.dev/solver/internal/domain"
)

// ErrInfeasible signals that the current partial assignment admits no
// completion; it is an expected outcome of propagation, never a programming
// error, and callers must translate it into an empty solution set rather
// than propagating it as a failure.
var ErrInfeasible = errors.New("shikaku: infeasible")

// Run repeatedly applies R1 then R2 to board and remaining until neither
// pass changes anything, mutating board in place with every forced
// placement it makes and returning the surviving candidate lists for
// whatever clues are still unresolved.
func Run(board *domain.Board, remaining map[domain.Coordinate][]domain.Candidate, ids *IDs) (map[domain.Coordinate][]domain.Candidate, error) {
	current := remaining
	for {
		before := signature(current)

		next, err := passR1(board, current, ids)
		if err != nil {
			return nil, err
		}
		next, err = passR2(board, next, ids)
		if err != nil {
			return nil, err
		}

		if signature(next) == before {
			return next, nil
		}
		current = next
	}
}

// signature summarizes a remaining-candidates map as a clue-set plus
// per-clue candidate count, in sorted coordinate order so it does not
// depend on Go's undefined map iteration order. Two passes with equal
// signatures made no progress worth another iteration.
func signature(remaining map[domain.Coordinate][]domain.Candidate) string {
	keys := sortedKeys(remaining)
	var out []byte
	for _, k := range keys {
		out = append(out, k.Key()...)
		out = append(out, ':')
		out = appendInt(out, len(remaining[k]))
		out = append(out, '|')
	}
	return string(out)
}

func appendInt(dst []byte, n int) []byte {
	if n == 0 {
		return append(dst, '0')
	}
	start := len(dst)
	for n > 0 {
		dst = append(dst, byte('0'+n%10))
		n /= 10
	}
	// reverse the digits just appended
	for l, r := start, len(dst)-1; l < r; l, r = l+1, r-1 {
		dst[l], dst[r] = dst[r], dst[l]
	}
	return dst
}

func sortedKeys(remaining map[domain.Coordinate][]domain.Candidate) []domain.Coordinate {
	keys := make([]domain.Coordinate, 0, len(remaining))
	for k := range remaining {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// passR1 filters every clue's candidates down to those still geometrically
// free, placing any clue left with exactly one. Clues are visited in
// sorted order so results do not depend on map iteration order; a
// placement made partway through the pass is immediately visible to the
// clues visited afterward.
func passR1(board *domain.Board, remaining map[domain.Coordinate][]domain.Candidate, ids *IDs) (map[domain.Coordinate][]domain.Candidate, error) {
	out := make(map[domain.Coordinate][]domain.Candidate, len(remaining))
	for _, clue := range sortedKeys(remaining) {
		cands := remaining[clue]
		free := filterFree(board, cands)
		if len(free) == 0 {
			return nil, ErrInfeasible
		}
		if len(free) == 1 {
			if err := place(board, free[0], ids); err != nil {
				return nil, err
			}
			continue
		}
		out[clue] = free
	}
	return out, nil
}

// passR2 looks for unassigned cells with exactly one candidate-owning
// clue whose own candidate list has collapsed to one covering candidate,
// and forces that placement. Users are recomputed live against the
// working map on every cell, which only ever adds information (a
// placement earlier in the pass shrinks other clues' lists), so it can
// never manufacture a false forced placement.
func passR2(board *domain.Board, remaining map[domain.Coordinate][]domain.Candidate, ids *IDs) (map[domain.Coordinate][]domain.Candidate, error) {
	out := copyRemaining(remaining)
	for _, u := range board.UnassignedActiveCells() {
		if board.AssignmentAt(u.Y, u.X) != 0 {
			continue // placed earlier in this same pass
		}
		// Recompute live against out and drop anything a same-pass placement
		// has already invalidated; an empty covering list here just means
		// this clue no longer contests the cell, not that it is dead — R1's
		// next pass is what detects a clue with zero candidates left.
		users := make(map[domain.Coordinate][]domain.Candidate)
		for clue, cands := range out {
			var covering []domain.Candidate
			for _, c := range cands {
				if c.Contains(u) && isFree(board, c) {
					covering = append(covering, c)
				}
			}
			if len(covering) > 0 {
				users[clue] = covering
			}
		}
		switch len(users) {
		case 0:
			return nil, ErrInfeasible
		case 1:
			var clue domain.Coordinate
			for k := range users {
				clue = k
			}
			covering := users[clue]
			if len(covering) == 1 {
				if err := place(board, covering[0], ids); err != nil {
					return nil, err
				}
				delete(out, clue)
			} else {
				out[clue] = covering
			}
		}
	}
	return out, nil
}

// filterFree keeps only candidates whose cells are all still unassigned;
// activeness was already guaranteed at generation time.
func filterFree(board *domain.Board, cands []domain.Candidate) []domain.Candidate {
	var out []domain.Candidate
	for _, c := range cands {
		if isFree(board, c) {
			out = append(out, c)
		}
	}
	return out
}

func isFree(board *domain.Board, c domain.Candidate) bool {
	for _, cell := range c.Cells() {
		if board.AssignmentAt(cell.Y, cell.X) != 0 {
			return false
		}
	}
	return true
}

func place(board *domain.Board, cand domain.Candidate, ids *IDs) error {
	return board.PlaceRectangle(cand, ids.Next())
}

func copyRemaining(remaining map[domain.Coordinate][]domain.Candidate) map[domain.Coordinate][]domain.Candidate {
	out := make(map[domain.Coordinate][]domain.Candidate, len(remaining))
	for k, v := range remaining {
		out[k] = v
	}
	return out
}
