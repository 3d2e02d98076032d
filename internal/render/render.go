// Package render prints a solved (or partially solved) board to a
// terminal, optionally coloring each rectangle by cycling a fixed palette.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"shikaku.dev/solver/internal/canon"
	"shikaku.dev/solver/internal/domain"
	"shikaku.dev/solver/internal/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

var palette = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgHiRed),
	color.New(color.FgGreen),
	color.New(color.FgHiGreen),
	color.New(color.FgYellow),
	color.New(color.FgHiYellow),
	color.New(color.FgBlue),
	color.New(color.FgHiBlue),
	color.New(color.FgMagenta),
	color.New(color.FgHiMagenta),
	color.New(color.FgCyan),
	color.New(color.FgHiCyan),
	color.New(color.FgHiBlack),
	color.New(color.FgHiWhite),
}

var keepClueColor = color.New(color.FgWhite)

// Renderer prints a board's cells, colored by rectangle when Colorize is
// set. KeepClues prints each clue's original value over its cell instead
// of the rectangle label.
type Renderer struct {
	Colorize  bool
	KeepClues bool
}

func NewRenderer() *Renderer { return &Renderer{} }

// Render writes board, formatted according to canonical (the two-digit
// per-cell label string canon.Canonicalize produces), to w.
func (r *Renderer) Render(w io.Writer, board *domain.Board, canonical string) error {
	size := board.Size()
	if len(canonical) != 2*size.Height*size.Width {
		return fmt.Errorf("shikaku: canonical string length %d, want %d", len(canonical), 2*size.Height*size.Width)
	}

	fmt.Fprint(w, "   ")
	for x := 0; x < size.Width; x++ {
		fmt.Fprintf(w, "%02d ", x)
	}
	fmt.Fprintln(w)

	for y := 0; y < size.Height; y++ {
		fmt.Fprintf(w, "%02d ", y)
		for x := 0; x < size.Width; x++ {
			tok := canonical[2*(y*size.Width+x) : 2*(y*size.Width+x)+2]
			cell := r.cellText(board, y, x, tok)
			fmt.Fprintf(w, " %s ", cell)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (r *Renderer) cellText(board *domain.Board, y, x int, tok string) string {
	if !board.IsActive(y, x) {
		return canon.VoidToken
	}
	if r.KeepClues {
		if v, ok := board.ClueAt(y, x); ok {
			s := fmt.Sprintf("%02d", v)
			if !r.Colorize {
				return s
			}
			return keepClueColor.Sprint(s)
		}
	}
	label, err := strconv.Atoi(tok)
	if err != nil {
		label = 0
	}
	return r.colorAt(label, tok)
}

func (r *Renderer) colorAt(index int, s string) string {
	if !r.Colorize {
		return s
	}
	c := palette[((index%len(palette))+len(palette))%len(palette)]
	return c.Sprint(s)
}
