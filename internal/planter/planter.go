// Package planter generates fresh Shikaku boards for the CLI's "plant"
// command and for property-based solver tests. It builds a fully tiled
// board by recursively guillotine-splitting the active region into leaf
// rectangles and drops one clue per leaf, then hands back a blank board
// carrying only those clues — the filled board exists only long enough to
// read off clue values and, for tests, the planted partition's canonical
// string.
package planter

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"shikaku.dev/solver/internal/canon"
	"shikaku.dev/solver/internal/domain"
	"shikaku.dev/solver/internal/ports"
)

var _ ports.Planter = (*Planter)(nil)

// Planter builds boards deterministically from a seed.
type Planter struct{}

func NewPlanter() *Planter { return &Planter{} }

// Plant builds a puzzle of the given size from seed: the same seed and
// size always produce the same clues.
func (p *Planter) Plant(ctx context.Context, seed int64, size domain.Size) (*domain.Puzzle, error) {
	blank, _, err := p.partition(ctx, seed, size)
	if err != nil {
		return nil, err
	}
	return &domain.Puzzle{
		Seed:      seed,
		Board:     blank,
		CreatedAt: time.Now().UnixNano(),
	}, nil
}

// PlantWithSolution behaves like Plant but also returns the canonical
// string of the tiling used to seed the clues, so a caller can check that
// a solver rediscovers exactly this partition.
func (p *Planter) PlantWithSolution(ctx context.Context, seed int64, size domain.Size) (*domain.Puzzle, string, error) {
	blank, want, err := p.partition(ctx, seed, size)
	if err != nil {
		return nil, "", err
	}
	return &domain.Puzzle{
		Seed:      seed,
		Board:     blank,
		CreatedAt: time.Now().UnixNano(),
	}, want, nil
}

func (p *Planter) partition(ctx context.Context, seed int64, size domain.Size) (*domain.Board, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	rng := rand.New(rand.NewSource(seed))

	active := make([][]bool, size.Height)
	for y := range active {
		active[y] = make([]bool, size.Width)
		for x := range active[y] {
			active[y][x] = true
		}
	}

	leaves := split(rng, domain.Candidate{Start: domain.Coordinate{Y: 0, X: 0}, Size: size}, minLeafArea(size))

	filled, err := domain.NewBoard(size, active, nil)
	if err != nil {
		return nil, "", err
	}
	clues := make(map[domain.Coordinate]int, len(leaves))
	for i, leaf := range leaves {
		cells := leaf.Cells()
		clue := cells[rng.Intn(len(cells))]
		clues[clue] = leaf.Area()
		if err := filled.PlaceRectangle(leaf, i+1); err != nil {
			return nil, "", fmt.Errorf("shikaku: planted an inconsistent partition: %w", err)
		}
	}
	want := canon.Canonicalize(filled)

	blank, err := domain.NewBoard(size, active, clues)
	if err != nil {
		return nil, "", err
	}
	return blank, want, nil
}

func minLeafArea(size domain.Size) int {
	if size.Area() <= 4 {
		return 1
	}
	return 2
}

// split recursively partitions rect into leaf rectangles by picking a
// random axis and a random cut position, stopping a branch once its area
// drops to minArea or neither dimension can be cut cleanly.
func split(rng *rand.Rand, rect domain.Candidate, minArea int) []domain.Candidate {
	if rect.Area() <= minArea || (rect.Size.Height < 2 && rect.Size.Width < 2) {
		return []domain.Candidate{rect}
	}
	if rng.Intn(4) == 0 {
		// Stop early sometimes so leaves vary in size instead of always
		// splitting down to the minimum.
		return []domain.Candidate{rect}
	}

	splitHorizontal := rect.Size.Height >= 2 && (rect.Size.Width < 2 || rng.Intn(2) == 0)
	if splitHorizontal {
		cut := 1 + rng.Intn(rect.Size.Height-1)
		top := domain.Candidate{Start: rect.Start, Size: domain.Size{Height: cut, Width: rect.Size.Width}}
		bottom := domain.Candidate{
			Start: domain.Coordinate{Y: rect.Start.Y + cut, X: rect.Start.X},
			Size:  domain.Size{Height: rect.Size.Height - cut, Width: rect.Size.Width},
		}
		return append(split(rng, top, minArea), split(rng, bottom, minArea)...)
	}

	cut := 1 + rng.Intn(rect.Size.Width-1)
	left := domain.Candidate{Start: rect.Start, Size: domain.Size{Height: rect.Size.Height, Width: cut}}
	right := domain.Candidate{
		Start: domain.Coordinate{Y: rect.Start.Y, X: rect.Start.X + cut},
		Size:  domain.Size{Height: rect.Size.Height, Width: rect.Size.Width - cut},
	}
	return append(split(rng, left, minArea), split(rng, right, minArea)...)
}
