// Package explain implements a read-only Explainer that surfaces the same
// two deductions propagate applies, one at a time, for progressive hints:
// a clue left with a single admissible rectangle (R1), or a cell only one
// clue's remaining candidates can still reach (R2). Neither check mutates
// the board it's given.
package explain

import (
	"context"
	"fmt"
	"sort"

	"shikaku.dev/solver/internal/candidates"
	"shikaku.dev/solver/internal/domain"
)

// Deducer is a minimal Explainer built directly on candidate generation,
// with no propagation state to carry between calls.
type Deducer struct{}

func NewDeducer() *Deducer { return &Deducer{} }

// Explain returns the first deduction it can make, checking R1 before R2
// since a lone-candidate clue is the simplest thing to show a player.
func (d *Deducer) Explain(ctx context.Context, b *domain.Board) (domain.Explanation, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Explanation{}, false, err
	}

	all := candidates.GenerateAll(b)
	live := liveCandidates(b, all)

	if exp, ok := findSingleCandidateClue(live); ok {
		return exp, true, nil
	}
	if exp, ok := findForcedCell(b, live); ok {
		return exp, true, nil
	}
	return domain.Explanation{}, false, nil
}

// liveCandidates drops any clue already placed and any candidate no
// longer geometrically free, mirroring propagate's R1 filter without
// touching the board.
func liveCandidates(b *domain.Board, all map[domain.Coordinate][]domain.Candidate) map[domain.Coordinate][]domain.Candidate {
	out := make(map[domain.Coordinate][]domain.Candidate, len(all))
	for clue, cands := range all {
		if b.AssignmentAt(clue.Y, clue.X) != 0 {
			continue
		}
		var free []domain.Candidate
		for _, c := range cands {
			if cellsFree(b, c) {
				free = append(free, c)
			}
		}
		if len(free) > 0 {
			out[clue] = free
		}
	}
	return out
}

func cellsFree(b *domain.Board, c domain.Candidate) bool {
	for _, cell := range c.Cells() {
		if b.AssignmentAt(cell.Y, cell.X) != 0 {
			return false
		}
	}
	return true
}

func findSingleCandidateClue(live map[domain.Coordinate][]domain.Candidate) (domain.Explanation, bool) {
	for _, clue := range sortedKeys(live) {
		cands := live[clue]
		if len(cands) == 1 {
			return domain.Explanation{
				Message: fmt.Sprintf("Only one rectangle can satisfy the clue %d here", cands[0].Area()),
				Clue:    clue,
				Rect:    cands[0],
			}, true
		}
	}
	return domain.Explanation{}, false
}

func findForcedCell(b *domain.Board, live map[domain.Coordinate][]domain.Candidate) (domain.Explanation, bool) {
	for _, u := range b.UnassignedActiveCells() {
		var owner domain.Coordinate
		var covering []domain.Candidate
		users := 0
		for _, clue := range sortedKeys(live) {
			var hits []domain.Candidate
			for _, c := range live[clue] {
				if c.Contains(u) {
					hits = append(hits, c)
				}
			}
			if len(hits) > 0 {
				users++
				owner, covering = clue, hits
			}
		}
		if users == 1 && len(covering) == 1 {
			return domain.Explanation{
				Message: fmt.Sprintf("Cell (%d,%d) can only belong to the clue at (%d,%d)", u.Y, u.X, owner.Y, owner.X),
				Clue:    owner,
				Rect:    covering[0],
			}, true
		}
	}
	return domain.Explanation{}, false
}

func sortedKeys(m map[domain.Coordinate][]domain.Candidate) []domain.Coordinate {
	keys := make([]domain.Coordinate, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
