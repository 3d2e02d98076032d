package candidates

import (
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

func TestGenerateForClueSingleCell(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{1, 1}, allActive(1, 1), map[domain.Coordinate]int{{0, 0}: 1})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	all := GenerateAll(b)
	cands := all[domain.Coordinate{0, 0}]
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1: %v", len(cands), cands)
	}
	want := domain.Candidate{Start: domain.Coordinate{0, 0}, Size: domain.Size{1, 1}}
	if cands[0] != want {
		t.Fatalf("candidate = %v, want %v", cands[0], want)
	}
}

func TestGenerateExcludesForeignClueOverlap(t *testing.T) {
	// A 1x4 strip with clues 2@(0,0) and 2@(0,2): the only 1x2 candidate
	// for the first clue may not swallow the second clue's cell.
	b, err := domain.NewBoard(domain.Size{1, 4}, allActive(1, 4), map[domain.Coordinate]int{
		{0, 0}: 2,
		{0, 2}: 2,
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	all := GenerateAll(b)
	for _, cand := range all[domain.Coordinate{0, 0}] {
		if cand.Contains(domain.Coordinate{0, 2}) {
			t.Fatalf("candidate %v illegally covers a foreign clue", cand)
		}
	}
}

func TestGenerateRespectsVoidCells(t *testing.T) {
	active := allActive(1, 3)
	active[0][2] = false
	b, err := domain.NewBoard(domain.Size{1, 3}, active, map[domain.Coordinate]int{{0, 0}: 2})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	for _, cand := range GenerateAll(b)[domain.Coordinate{0, 0}] {
		if cand.Contains(domain.Coordinate{0, 2}) {
			t.Fatalf("candidate %v covers a void cell", cand)
		}
	}
}

func TestGenerateOrderIsDeterministic(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{3, 3}, allActive(3, 3), map[domain.Coordinate]int{{1, 1}: 9})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	first := GenerateAll(b)[domain.Coordinate{1, 1}]
	second := GenerateAll(b)[domain.Coordinate{1, 1}]
	if len(first) != len(second) {
		t.Fatalf("nondeterministic candidate count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("nondeterministic order at %d: %v vs %v", i, first[i], second[i])
		}
		if i > 0 && !first[i-1].Less(first[i]) {
			t.Fatalf("candidates not sorted at %d: %v then %v", i, first[i-1], first[i])
		}
	}
}

func TestGenerateSkipsSquareRotationDuplicate(t *testing.T) {
	b, err := domain.NewBoard(domain.Size{4, 4}, allActive(4, 4), map[domain.Coordinate]int{{1, 1}: 4})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	seen := map[domain.Candidate]int{}
	for _, cand := range GenerateAll(b)[domain.Coordinate{1, 1}] {
		if cand.Size.Height == 2 && cand.Size.Width == 2 {
			seen[cand]++
		}
	}
	for cand, n := range seen {
		if n != 1 {
			t.Fatalf("candidate %v listed %d times, want exactly 1", cand, n)
		}
	}
}
