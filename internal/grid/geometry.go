package grid

// Pair is an [x, y] pixel pair used for margins and container padding.
type Pair struct {
	X float64
	Y float64
}

// PairOf builds a Pair from the [x, y] form used in config files. Any
// other length yields fallback.
func PairOf(v []float64, fallback Pair) Pair {
	if len(v) != 2 {
		return fallback
	}
	return Pair{X: v[0], Y: v[1]}
}

// PositionParams is everything needed to convert grid cells to pixels.
type PositionParams struct {
	Cols           int
	ContainerWidth float64
	RowHeight      float64
	Margin         Pair
	Padding        Pair
}

// Position is an item's pixel rectangle relative to the container.
type Position struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// Contains reports whether the pixel point lies inside the rectangle.
func (p Position) Contains(x, y float64) bool {
	return x >= p.Left && x < p.Left+p.Width && y >= p.Top && y < p.Top+p.Height
}

// ColWidth returns the pixel width of one column.
func ColWidth(p PositionParams) float64 {
	if p.Cols <= 0 {
		return 0
	}
	effective := p.ContainerWidth - 2*p.Padding.X
	return (effective - p.Margin.X*float64(p.Cols-1)) / float64(p.Cols)
}

// Units returns the pixel distance covered by one column and one row step.
func Units(p PositionParams) (unitX, unitY float64) {
	return ColWidth(p) + p.Margin.X, p.RowHeight + p.Margin.Y
}

// ComputePosition converts an item's grid rectangle to pixels.
func ComputePosition(it Item, p PositionParams) Position {
	colWidth := ColWidth(p)
	return Position{
		Width:  colWidth*float64(it.W) + p.Margin.X*float64(it.W-1),
		Height: p.RowHeight*float64(it.H) + p.Margin.Y*float64(it.H-1),
		Left:   p.Padding.X + float64(it.X)*(colWidth+p.Margin.X),
		Top:    p.Padding.Y + float64(it.Y)*(p.RowHeight+p.Margin.Y),
	}
}

// Overlap reports whether two distinct items share at least one cell.
// Intervals are half-open: an item ending at column 3 does not touch one
// starting at column 3. An item never overlaps itself.
func Overlap(a, b Item) bool {
	if a.ID == b.ID {
		return false
	}
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}

// ContentHeight returns the pixel height needed to show the whole layout.
func ContentHeight(l Layout, p PositionParams) float64 {
	bottom := l.Bottom()
	if bottom == 0 {
		return 2 * p.Padding.Y
	}
	return float64(bottom)*p.RowHeight + float64(bottom-1)*p.Margin.Y + 2*p.Padding.Y
}
