package grid

import "testing"

func TestPlacerPlace(t *testing.T) {
	p := NewPlacer(12)

	// First widget at origin
	x, y := p.Place(3, 4)
	if x != 0 || y != 0 {
		t.Errorf("Place(3,4) = (%d,%d), want (0,0)", x, y)
	}

	// Second widget next to first
	x, y = p.Place(3, 4)
	if x != 3 || y != 0 {
		t.Errorf("Place(3,4) = (%d,%d), want (3,0)", x, y)
	}

	// Fill rest of row
	x, y = p.Place(6, 4)
	if x != 6 || y != 0 {
		t.Errorf("Place(6,4) = (%d,%d), want (6,0)", x, y)
	}

	// Next widget wraps
	x, y = p.Place(6, 2)
	if x != 0 || y != 4 {
		t.Errorf("Place(6,2) = (%d,%d), want (0,4)", x, y)
	}
}

func TestPlacerFinishRow(t *testing.T) {
	p := NewPlacer(12)
	p.Place(6, 4)
	p.Place(6, 8) // taller widget

	p.FinishRow()

	x, y := p.Place(12, 5)
	if x != 0 || y != 8 {
		t.Errorf("Place after finish = (%d,%d), want (0,8)", x, y)
	}
}

func TestAppendBelowContent(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 6, H: 3},
		{ID: "b", X: 6, Y: 0, W: 6, H: 5},
	}
	out := Append(l, Item{ID: "c", W: 20, H: 2}, 12)

	if len(l) != 2 {
		t.Fatalf("input layout grew to %d items", len(l))
	}
	c := out[2]
	if c.X != 0 || c.Y != 5 || c.W != 12 {
		t.Errorf("appended = %v, want c(0,5 12x2)", c)
	}
	for _, it := range out[:2] {
		if Overlap(c, it) {
			t.Errorf("appended item overlaps %v", it)
		}
	}
}

func TestReflow(t *testing.T) {
	src := Layout{
		{ID: "b", X: 6, Y: 0, W: 6, H: 2},
		{ID: "a", X: 0, Y: 0, W: 6, H: 4},
		{ID: "c", X: 0, Y: 4, W: 12, H: 1},
	}
	out := Reflow(src, 8)

	want := map[string]Item{
		"a": {ID: "a", X: 0, Y: 0, W: 6, H: 4},
		"b": {ID: "b", X: 0, Y: 4, W: 6, H: 2},
		"c": {ID: "c", X: 0, Y: 6, W: 8, H: 1},
	}
	for _, it := range out {
		if w := want[it.ID]; !it.SameRect(w) {
			t.Errorf("reflowed %v, want %v", it, w)
		}
	}
	if src[0].X != 6 {
		t.Error("Reflow mutated its input")
	}
}
