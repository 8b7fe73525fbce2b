package grid

import (
	"fmt"
	"strings"
)

// ValidationError describes one problem with a stored layout item.
type ValidationError struct {
	ID     string
	Reason string
}

func (e ValidationError) Error() string {
	if e.ID == "" {
		return e.Reason
	}
	return fmt.Sprintf("item '%s': %s", e.ID, e.Reason)
}

// ValidationErrors is the list returned by Validate.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a stored layout against a column count. The engine renders
// invalid layouts as given; this is for hosts that want to reject them
// before persisting.
func Validate(l Layout, cols int) ValidationErrors {
	var errs ValidationErrors
	add := func(id, format string, args ...interface{}) {
		errs = append(errs, ValidationError{ID: id, Reason: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool)
	for _, it := range l {
		if it.ID == "" {
			add("", "item at (%d,%d) has no id", it.X, it.Y)
		} else if seen[it.ID] {
			add(it.ID, "duplicate id")
		}
		seen[it.ID] = true

		if it.W < 1 || it.H < 1 {
			add(it.ID, "size %dx%d must be at least 1x1", it.W, it.H)
		}
		if it.X < 0 || it.Y < 0 {
			add(it.ID, "position (%d,%d) is negative", it.X, it.Y)
		}
		if cols > 0 && it.Right() > cols {
			add(it.ID, "x+w = %d exceeds %d columns", it.Right(), cols)
		}
		if it.MinW != nil && it.MaxW != nil && *it.MinW > *it.MaxW {
			add(it.ID, "minW %d > maxW %d", *it.MinW, *it.MaxW)
		}
		if it.MinH != nil && it.MaxH != nil && *it.MinH > *it.MaxH {
			add(it.ID, "minH %d > maxH %d", *it.MinH, *it.MaxH)
		}
	}
	// each overlapping pair is reported once, on the earlier item
	for i, it := range l {
		for _, o := range Collisions(l[i+1:], it) {
			add(it.ID, "overlaps '%s'", o.ID)
		}
	}
	return errs
}
