// Package search implements the branching driver that sits on top of
// propagate and canon: it drives propagation to a fixed point, memoizes on
// the set of cells still unassigned, and branches over one clue's
// remaining candidates when propagation alone cannot finish the board.
package search

import (
	"context"
	"sort"

	"shikaku.dev/solver/internal/canon"
	"shikaku.dev/solver/internal/candidates"
	"shikaku.dev/solver/internal/domain"
	"shikaku.dev/solver/internal/propagate"
)

// Solutions is a set of canonical strings, each identifying one distinct
// complete tiling of a board.
type Solutions map[string]struct{}

// Stats reports search effort for diagnostic and CLI display purposes.
type Stats struct {
	Nodes     int
	CacheHits int
}

// Driver owns the memoization cache for one top-level Solve invocation; a
// fresh Driver must be used per call since the cache keys are only valid
// relative to the board they were computed against.
type Driver struct {
	cache map[string]Solutions
	stats Stats
}

// NewDriver returns a Driver with an empty cache.
func NewDriver() *Driver {
	return &Driver{cache: make(map[string]Solutions)}
}

// Stats returns the effort counters accumulated by the most recent Solve
// call (and any it recursed into).
func (d *Driver) Stats() Stats { return d.stats }

// Solve returns the set of canonical strings for every complete tiling of
// board consistent with its clues. An empty, non-nil set with a nil error
// means the board is infeasible; a non-nil error means a contract
// violation was detected and must not be papered over.
func (d *Driver) Solve(ctx context.Context, board *domain.Board) (Solutions, error) {
	return d.solve(ctx, board, candidates.GenerateAll(board), propagate.NewIDs())
}

func (d *Driver) solve(ctx context.Context, board *domain.Board, remaining map[domain.Coordinate][]domain.Candidate, ids *propagate.IDs) (Solutions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.stats.Nodes++

	updated, err := propagate.Run(board, remaining, ids)
	if err != nil {
		if err == propagate.ErrInfeasible {
			return Solutions{}, nil
		}
		return nil, err
	}

	if len(updated) == 0 {
		return Solutions{canon.Canonicalize(board): {}}, nil
	}

	key := canon.MemoKey(board)
	if cached, ok := d.cache[key]; ok {
		d.stats.CacheHits++
		out := make(Solutions, len(cached))
		for s := range cached {
			reprojected, err := canon.Reproject(board, s)
			if err != nil {
				return nil, err
			}
			out[reprojected] = struct{}{}
		}
		return out, nil
	}

	clue := chooseBranch(updated)
	branches := updated[clue]

	acc := make(Solutions)
	for _, cand := range branches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		branchBoard := board.Copy()
		branchRemaining := narrowedCopy(updated, clue, cand)

		// ids is shared across the whole recursion, not reset per branch:
		// branchBoard inherits every rectangle the parent already placed, so a
		// fresh counter here would reissue IDs already in use on those cells
		// and corrupt canon.Canonicalize's first-seen labeling.
		sols, err := d.solve(ctx, branchBoard, branchRemaining, ids)
		if err != nil {
			return nil, err
		}
		for s := range sols {
			acc[s] = struct{}{}
		}
	}

	d.cache[key] = acc
	return acc, nil
}

// chooseBranch picks the clue to branch on: fewest remaining candidates
// first, ties broken by largest clue area, further ties broken by
// ascending (y,x) — which falls out automatically from visiting clues in
// sorted order and only replacing the incumbent on a strict improvement.
func chooseBranch(remaining map[domain.Coordinate][]domain.Candidate) domain.Coordinate {
	keys := make([]domain.Coordinate, 0, len(remaining))
	for k := range remaining {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	best := keys[0]
	bestCount := len(remaining[best])
	bestArea := remaining[best][0].Area()
	for _, k := range keys[1:] {
		count := len(remaining[k])
		area := remaining[k][0].Area()
		if count < bestCount || (count == bestCount && area > bestArea) {
			best, bestCount, bestArea = k, count, area
		}
	}
	return best
}

// narrowedCopy returns a shallow copy of remaining with clue's candidate
// list replaced by a singleton containing only cand. Other clues' slices
// are shared with the parent, which is safe since propagate never mutates
// a candidate slice in place — it only ever replaces a clue's entry
// wholesale.
func narrowedCopy(remaining map[domain.Coordinate][]domain.Candidate, clue domain.Coordinate, cand domain.Candidate) map[domain.Coordinate][]domain.Candidate {
	out := make(map[domain.Coordinate][]domain.Candidate, len(remaining))
	for k, v := range remaining {
		if k == clue {
			continue
		}
		out[k] = v
	}
	out[clue] = []domain.Candidate{cand}
	return out
}
