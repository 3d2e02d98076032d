package textformat

import (
	"strings"
	"testing"

	"shikaku.dev/solver/internal/domain"
)

func TestParseBasicGrid(t *testing.T) {
	input := "3 2\n" +
		"2 0 -\n" +
		"0 0 1\n"
	b, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Size() != (domain.Size{Height: 2, Width: 3}) {
		t.Fatalf("Size = %+v, want {2 3}", b.Size())
	}
	if v, ok := b.ClueAt(0, 0); !ok || v != 2 {
		t.Fatalf("ClueAt(0,0) = %d,%v, want 2,true", v, ok)
	}
	if b.IsActive(0, 2) {
		t.Fatal("expected (0,2) to be void")
	}
	if v, ok := b.ClueAt(1, 2); !ok || v != 1 {
		t.Fatalf("ClueAt(1,2) = %d,%v, want 1,true", v, ok)
	}
}

func TestParseRejectsBadHeader(t *testing.T) {
	if _, err := NewParser().Parse(strings.NewReader("not-a-header\n")); err == nil {
		t.Fatal("expected an error for a malformed header line")
	}
}

func TestParseRejectsTruncatedInput(t *testing.T) {
	if _, err := NewParser().Parse(strings.NewReader("2 2\n0 0\n")); err == nil {
		t.Fatal("expected an error for a grid missing rows")
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	input := "\n1 1\n\n1\n"
	b, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, ok := b.ClueAt(0, 0); !ok || v != 1 {
		t.Fatalf("ClueAt(0,0) = %d,%v, want 1,true", v, ok)
	}
}
