// Package candidates enumerates, for every clue on a board, the full set of
// geometrically admissible rectangles.
package candidates

import (
	"sort"

	"shikaku.dev/solver/internal/domain"
)

// GenerateAll returns, for each clue coordinate, its deterministically
// ordered list of candidate rectangles.
func GenerateAll(board *domain.Board) map[domain.Coordinate][]domain.Candidate {
	clues := board.Clues()
	out := make(map[domain.Coordinate][]domain.Candidate, len(clues))
	for coord, value := range clues {
		out[coord] = generateForClue(board, coord, value)
	}
	return out
}

func generateForClue(board *domain.Board, clue domain.Coordinate, area int) []domain.Candidate {
	seen := make(map[domain.Candidate]struct{})
	var result []domain.Candidate
	for _, dims := range divisorPairs(area) {
		orientations := [][2]int{dims}
		if dims[0] != dims[1] {
			orientations = append(orientations, [2]int{dims[1], dims[0]})
		}
		for _, hw := range orientations {
			h, w := hw[0], hw[1]
			for dh := 0; dh < h; dh++ {
				for dw := 0; dw < w; dw++ {
					start := domain.Coordinate{Y: clue.Y - dh, X: clue.X - dw}
					cand := domain.Candidate{Start: start, Size: domain.Size{Height: h, Width: w}}
					if _, dup := seen[cand]; dup {
						continue
					}
					seen[cand] = struct{}{}
					if admissible(board, cand, clue) {
						result = append(result, cand)
					}
				}
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Less(result[j]) })
	return result
}

// divisorPairs returns every unordered (p, q) with p*q == area and p <= q.
func divisorPairs(area int) [][2]int {
	var pairs [][2]int
	for p := 1; p*p <= area; p++ {
		if area%p == 0 {
			pairs = append(pairs, [2]int{p, area / p})
		}
	}
	return pairs
}

// admissible checks bounds, void cells, and foreign clues. Area equality
// holds automatically since cand's dimensions come from a divisor pair of
// area, so it is not re-checked here.
func admissible(board *domain.Board, cand domain.Candidate, clue domain.Coordinate) bool {
	size := board.Size()
	end := cand.End()
	if cand.Start.Y < 0 || cand.Start.X < 0 || end.Y > size.Height || end.X > size.Width {
		return false
	}
	containsClue := false
	for _, cell := range cand.Cells() {
		if !board.IsActive(cell.Y, cell.X) {
			return false
		}
		if cell == clue {
			containsClue = true
			continue
		}
		if _, isClue := board.ClueAt(cell.Y, cell.X); isClue {
			return false
		}
	}
	return containsClue
}
