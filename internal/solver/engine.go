// Package solver adapts the search driver to the ports.Solver interface,
// adding the top-level precondition check and effort accounting that a
// bare search.Driver leaves to its caller.
package solver

import (
	"context"
	"sort"
	"time"

	"shikaku.dev/solver/internal/domain"
	"shikaku.dev/solver/internal/ports"
	"shikaku.dev/solver/internal/search"
)

// Engine is the exported Solver adapter; the zero value is ready to use.
type Engine struct{}

// NewEngine returns a ready-to-use Engine.
func NewEngine() *Engine { return &Engine{} }

// Solve returns every distinct rectangle tiling of b consistent with its
// clues. A board whose clue areas do not sum to its active cell count can
// never admit a tiling, so it short-circuits to an empty result rather
// than paying for a doomed search.
func (e *Engine) Solve(ctx context.Context, b *domain.Board) (ports.Result, error) {
	start := time.Now()

	total := 0
	for _, v := range b.Clues() {
		total += v
	}
	if total != b.ActiveCellCount() {
		return ports.Result{Solutions: nil, Stats: ports.Stats{Duration: time.Since(start)}}, nil
	}

	driver := search.NewDriver()
	sols, err := driver.Solve(ctx, b.Copy())
	if err != nil {
		return ports.Result{}, err
	}

	out := make([]string, 0, len(sols))
	for s := range sols {
		out = append(out, s)
	}
	sort.Strings(out)

	stats := driver.Stats()
	return ports.Result{
		Solutions: out,
		Stats: ports.Stats{
			Nodes:     stats.Nodes,
			CacheHits: stats.CacheHits,
			Duration:  time.Since(start),
		},
	}, nil
}
