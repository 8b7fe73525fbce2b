// Package grid holds the layout data model and the pure geometry used to
// place, move and resize widgets on a column grid.
package grid

import "fmt"

// Item is a single placed rectangle on the grid, in grid-cell units.
type Item struct {
	ID     string `yaml:"id" json:"id" toml:"id"`
	X      int    `yaml:"x" json:"x" toml:"x"`
	Y      int    `yaml:"y" json:"y" toml:"y"`
	W      int    `yaml:"w" json:"w" toml:"w"`
	H      int    `yaml:"h" json:"h" toml:"h"`
	MinW   *int   `yaml:"minW,omitempty" json:"minW,omitempty" toml:"minW,omitempty"`
	MaxW   *int   `yaml:"maxW,omitempty" json:"maxW,omitempty" toml:"maxW,omitempty"`
	MinH   *int   `yaml:"minH,omitempty" json:"minH,omitempty" toml:"minH,omitempty"`
	MaxH   *int   `yaml:"maxH,omitempty" json:"maxH,omitempty" toml:"maxH,omitempty"`
	Static bool   `yaml:"static,omitempty" json:"static,omitempty" toml:"static,omitempty"`
}

// Layout is the ordered item list for one breakpoint. Order is z-order only.
type Layout []Item

// Layouts maps a breakpoint name to its layout.
type Layouts map[string]Layout

// Breakpoints maps a breakpoint name to the minimum container width (px)
// that activates it.
type Breakpoints map[string]int

// Cols maps a breakpoint name to its column count.
type Cols map[string]int

// Bound returns a pointer to v, for the optional size bounds.
func Bound(v int) *int {
	return &v
}

// Right returns the exclusive right edge.
func (it Item) Right() int {
	return it.X + it.W
}

// Bottom returns the exclusive bottom edge.
func (it Item) Bottom() int {
	return it.Y + it.H
}

// Clone returns a copy that shares no pointers with it.
func (it Item) Clone() Item {
	c := it
	c.MinW = cloneBound(it.MinW)
	c.MaxW = cloneBound(it.MaxW)
	c.MinH = cloneBound(it.MinH)
	c.MaxH = cloneBound(it.MaxH)
	return c
}

// SameRect reports whether two items occupy the same cells.
func (it Item) SameRect(o Item) bool {
	return it.X == o.X && it.Y == o.Y && it.W == o.W && it.H == o.H
}

func (it Item) String() string {
	return fmt.Sprintf("%s(%d,%d %dx%d)", it.ID, it.X, it.Y, it.W, it.H)
}

func cloneBound(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone deep-copies the layout. A nil layout stays nil.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	for i, it := range l {
		out[i] = it.Clone()
	}
	return out
}

// Find returns the index of the item with the given id.
func (l Layout) Find(id string) (int, bool) {
	for i := range l {
		if l[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Bottom returns the largest y+h across the layout, 0 when empty.
func (l Layout) Bottom() int {
	max := 0
	for _, it := range l {
		if b := it.Bottom(); b > max {
			max = b
		}
	}
	return max
}

// Clone deep-copies every breakpoint layout.
func (ls Layouts) Clone() Layouts {
	if ls == nil {
		return nil
	}
	out := make(Layouts, len(ls))
	for k, v := range ls {
		out[k] = v.Clone()
	}
	return out
}

// With returns a copy of ls where breakpoint bp is replaced by layout.
func (ls Layouts) With(bp string, layout Layout) Layouts {
	out := ls.Clone()
	if out == nil {
		out = make(Layouts)
	}
	out[bp] = layout.Clone()
	return out
}
