package grid

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	l := Layout{
		{ID: "ok", X: 0, Y: 0, W: 2, H: 2},
		{ID: "ok", X: 2, Y: 0, W: 2, H: 2},
		{ID: "wide", X: 10, Y: 0, W: 4, H: 1},
		{ID: "flat", X: 0, Y: 3, W: 1, H: 0},
		{ID: "bounds", X: 0, Y: 4, W: 1, H: 1, MinW: Bound(4), MaxW: Bound(2)},
		{ID: "", X: 0, Y: 5, W: 1, H: 1},
	}
	errs := Validate(l, 12)
	if len(errs) != 5 {
		t.Fatalf("got %d errors, want 5: %v", len(errs), errs)
	}
	msg := errs.Error()
	for _, want := range []string{"duplicate id", "exceeds 12 columns", "at least 1x1", "minW 4 > maxW 2", "has no id"} {
		if !strings.Contains(msg, want) {
			t.Errorf("errors %q missing %q", msg, want)
		}
	}
}

func TestValidateOverlaps(t *testing.T) {
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 4, H: 2},
		{ID: "b", X: 2, Y: 1, W: 4, H: 2},
		{ID: "c", X: 3, Y: 0, W: 1, H: 1},
		{ID: "d", X: 4, Y: 0, W: 2, H: 1},
	}
	errs := Validate(l, 12)
	var got []string
	for _, e := range errs {
		got = append(got, e.Error())
	}
	want := []string{
		"item 'a': overlaps 'b'",
		"item 'a': overlaps 'c'",
	}
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("errors[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateClean(t *testing.T) {
	l := Layout{{ID: "a", X: 0, Y: 0, W: 12, H: 1}}
	if errs := Validate(l, 12); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}
