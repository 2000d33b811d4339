package monitor

import "github.com/rileyhilliard/beacon/internal/indicator"

// Card sizing limits, in terminal cells including the border.
const (
	minCardWidth  = 24
	maxCardWidth  = 40
	minCardHeight = 6
	maxCardHeight = 16

	// defaultCardHeight is used before the terminal reports its size.
	defaultCardHeight = 10

	// Header plus blank line, and blank line plus footer.
	headerLines = 2
	footerLines = 2
)

// Layout is the card grid for the current terminal size.
type Layout struct {
	Columns    int
	CardWidth  int // including border, excluding margin
	CardHeight int // including border, excluding margin
}

// ComputeLayout sizes a grid for n cards in a width×height terminal. Cards
// are as wide as possible up to maxCardWidth, and share the height left
// after the header and footer, within the card height limits.
func ComputeLayout(width, height, n int) Layout {
	if n < 1 {
		n = 1
	}

	l := Layout{Columns: 1, CardWidth: maxCardWidth, CardHeight: defaultCardHeight}
	if width <= 0 {
		return l
	}

	// Each card takes one extra column of right margin.
	l.Columns = width / (minCardWidth + 1)
	if l.Columns < 1 {
		l.Columns = 1
	}
	if l.Columns > n {
		l.Columns = n
	}

	l.CardWidth = width/l.Columns - 1
	if l.CardWidth > maxCardWidth {
		l.CardWidth = maxCardWidth
	}
	if l.CardWidth < cardChromeCols+2 {
		l.CardWidth = cardChromeCols + 2
	}

	if height > 0 {
		rows := (n + l.Columns - 1) / l.Columns
		avail := height - headerLines - footerLines
		// Each card takes one extra row of bottom margin.
		l.CardHeight = clamp(avail/rows-1, minCardHeight, maxCardHeight)
	}
	return l
}

// Inner returns the content area of a card below its title line, in cells.
func (l Layout) Inner() (cols, rows int) {
	cols = l.CardWidth - cardChromeCols
	rows = l.CardHeight - cardChromeRows
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

// Bounds returns the card content area in layout units, for sizing icons.
func (l Layout) Bounds() indicator.Bounds {
	return indicator.BoundsFromCells(l.Inner())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
