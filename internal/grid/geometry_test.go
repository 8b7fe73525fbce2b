package grid

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputePositionTwelveColumns(t *testing.T) {
	p := PositionParams{
		Cols:           12,
		ContainerWidth: 1200,
		RowHeight:      50,
		Margin:         Pair{16, 16},
		Padding:        Pair{0, 0},
	}
	pos := ComputePosition(Item{ID: "a", X: 0, Y: 0, W: 6, H: 2}, p)

	wantWidth := (1200.0-16*11)/12*6 + 16*5
	if !almostEqual(pos.Width, wantWidth) {
		t.Errorf("width = %v, want %v", pos.Width, wantWidth)
	}
	if !almostEqual(pos.Width, 592) {
		t.Errorf("width = %v, want 592", pos.Width)
	}
	if !almostEqual(pos.Height, 116) {
		t.Errorf("height = %v, want 116", pos.Height)
	}
	if pos.Left != 0 || pos.Top != 0 {
		t.Errorf("origin = (%v,%v), want (0,0)", pos.Left, pos.Top)
	}
}

func TestComputePositionOffsetAndPadding(t *testing.T) {
	p := PositionParams{
		Cols:           4,
		ContainerWidth: 440,
		RowHeight:      30,
		Margin:         Pair{10, 5},
		Padding:        Pair{20, 8},
	}
	// effective width 400, col width (400-30)/4 = 92.5
	if got := ColWidth(p); !almostEqual(got, 92.5) {
		t.Fatalf("ColWidth = %v, want 92.5", got)
	}
	pos := ComputePosition(Item{ID: "a", X: 2, Y: 3, W: 1, H: 1}, p)
	if !almostEqual(pos.Left, 20+2*102.5) {
		t.Errorf("left = %v, want %v", pos.Left, 20+2*102.5)
	}
	if !almostEqual(pos.Top, 8+3*35) {
		t.Errorf("top = %v, want %v", pos.Top, 8+3*35.0)
	}
	if !almostEqual(pos.Width, 92.5) || !almostEqual(pos.Height, 30) {
		t.Errorf("size = %vx%v, want 92.5x30", pos.Width, pos.Height)
	}
}

func TestColWidthZeroCols(t *testing.T) {
	if got := ColWidth(PositionParams{ContainerWidth: 100}); got != 0 {
		t.Errorf("ColWidth with 0 cols = %v, want 0", got)
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Item
		want bool
	}{
		{"intersecting", Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, Item{ID: "b", X: 1, Y: 1, W: 2, H: 2}, true},
		{"touching edge x", Item{ID: "a", X: 0, Y: 0, W: 3, H: 2}, Item{ID: "b", X: 3, Y: 0, W: 2, H: 2}, false},
		{"touching edge y", Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, Item{ID: "b", X: 0, Y: 2, W: 2, H: 2}, false},
		{"contained", Item{ID: "a", X: 0, Y: 0, W: 6, H: 6}, Item{ID: "b", X: 2, Y: 2, W: 1, H: 1}, true},
		{"apart", Item{ID: "a", X: 0, Y: 0, W: 1, H: 1}, Item{ID: "b", X: 5, Y: 5, W: 1, H: 1}, false},
		{"same id", Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlap(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Overlap(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlap(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestContentHeight(t *testing.T) {
	p := PositionParams{Cols: 12, ContainerWidth: 1200, RowHeight: 50, Margin: Pair{10, 10}, Padding: Pair{5, 5}}
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 2},
		{ID: "b", X: 2, Y: 1, W: 2, H: 3},
	}
	// bottom 4: 4*50 + 3*10 + 2*5
	if got := ContentHeight(l, p); !almostEqual(got, 240) {
		t.Errorf("ContentHeight = %v, want 240", got)
	}
	if got := ContentHeight(nil, p); got != 10 {
		t.Errorf("ContentHeight(empty) = %v, want 10", got)
	}
}

func TestPositionContains(t *testing.T) {
	pos := Position{Left: 10, Top: 10, Width: 20, Height: 20}
	if !pos.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if pos.Contains(30, 15) {
		t.Error("right edge should be outside")
	}
}
