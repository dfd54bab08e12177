package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/practicekit/internal/ui/theme"
)

// CellState mirrors a palette cell: open, right or wrong.
type CellState int

const (
	CellOpen CellState = iota
	CellCorrect
	CellWrong
)

// PaletteCell is one numbered square of the strip.
type PaletteCell struct {
	State   CellState
	Current bool
}

// Palette renders the question strip, wrapping to fit width.
type Palette struct {
	Cells []PaletteCell
	Width int
}

func (p Palette) View() string {
	var b strings.Builder
	used := 0
	for i, c := range p.Cells {
		label := fmt.Sprintf(" %d ", i+1)
		style := theme.CellOpen
		switch c.State {
		case CellCorrect:
			style = theme.CellCorrect
		case CellWrong:
			style = theme.CellWrong
		}
		if c.Current {
			style = style.Inherit(theme.CellCurrent)
		}

		w := len(label) + 1
		if p.Width > 0 && used > 0 && used+w > p.Width {
			b.WriteString("\n")
			used = 0
		}
		b.WriteString(style.Render(label))
		b.WriteString(" ")
		used += w
	}
	return b.String()
}
