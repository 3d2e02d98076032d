package ports

import (
	"context"
	"io"
	"time"

	"shikaku.dev/solver/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes     int
	CacheHits int
	Duration  time.Duration
}

// Result carries every distinct tiling found for a board, alongside the
// effort spent finding them.
type Result struct {
	Solutions []string
	Stats     Stats
}

// Solver enumerates every distinct rectangle tiling consistent with a
// board's clues.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board) (Result, error)
}

// Explainer surfaces the next logical deduction available on a board
// without committing it, for progressive hints.
type Explainer interface {
	Explain(ctx context.Context, b *domain.Board) (domain.Explanation, bool, error)
}

// Planter generates a fresh board from a seed. The board is solvable by
// construction; it is not checked to have a unique solution.
type Planter interface {
	Plant(ctx context.Context, seed int64, size domain.Size) (*domain.Puzzle, error)
}

// Store persists and retrieves puzzles as JSON.
type Store interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}

// Parser reads a board from its plain-text representation.
type Parser interface {
	Parse(r io.Reader) (*domain.Board, error)
}

// Renderer writes a board, optionally colored by rectangle, to w.
type Renderer interface {
	Render(w io.Writer, b *domain.Board, canonical string) error
}
