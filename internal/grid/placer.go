package grid

import "sort"

// Placer flows widgets left to right across a grid of Cols columns,
// wrapping to a new row when the next widget does not fit.
type Placer struct {
	Cols      int
	cursorX   int
	cursorY   int
	rowHeight int
}

// NewPlacer creates a placer for a grid with the given column count.
func NewPlacer(cols int) *Placer {
	if cols < 1 {
		cols = 1
	}
	return &Placer{Cols: cols}
}

// StartAt moves the cursor to the beginning of row y.
func (p *Placer) StartAt(y int) {
	p.cursorX = 0
	p.cursorY = y
	p.rowHeight = 0
}

// Place positions a widget and returns its (x, y). Widths wider than the
// grid are placed at column 0 of a fresh row.
func (p *Placer) Place(width, height int) (int, int) {
	if p.cursorX+width > p.Cols {
		p.FinishRow()
	}
	x := p.cursorX
	y := p.cursorY
	p.cursorX += width
	if height > p.rowHeight {
		p.rowHeight = height
	}
	return x, y
}

// FinishRow advances past the tallest widget in the current row.
func (p *Placer) FinishRow() {
	if p.cursorX > 0 {
		p.cursorY += p.rowHeight
		p.cursorX = 0
		p.rowHeight = 0
	}
}

// Append places it below the existing content of l and returns a new
// layout with it added at the end. Its width is clamped to cols.
func Append(l Layout, it Item, cols int) Layout {
	p := NewPlacer(cols)
	p.StartAt(l.Bottom())
	placed := fitWidth(it.Clone(), cols)
	placed.X, placed.Y = p.Place(placed.W, placed.H)
	out := l.Clone()
	return append(out, placed)
}

// Reflow lays the items of src out again for a grid of cols columns, in
// reading order (top to bottom, then left to right). Sizes are kept except
// for widths wider than the grid.
func Reflow(src Layout, cols int) Layout {
	ordered := src.Clone()
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Y != ordered[j].Y {
			return ordered[i].Y < ordered[j].Y
		}
		return ordered[i].X < ordered[j].X
	})
	p := NewPlacer(cols)
	for i := range ordered {
		ordered[i] = fitWidth(ordered[i], cols)
		ordered[i].X, ordered[i].Y = p.Place(ordered[i].W, ordered[i].H)
	}
	return ordered
}

func fitWidth(it Item, cols int) Item {
	if cols < 1 {
		cols = 1
	}
	if it.W > cols {
		it.W = cols
	}
	if it.W < 1 {
		it.W = 1
	}
	if it.H < 1 {
		it.H = 1
	}
	return it
}
