package grid

import "sort"

// SortBreakpoints returns breakpoint names by ascending threshold. Equal
// thresholds sort by name so the order is deterministic.
func SortBreakpoints(bps Breakpoints) []string {
	names := make([]string, 0, len(bps))
	for name := range bps {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ti, tj := bps[names[i]], bps[names[j]]
		if ti != tj {
			return ti < tj
		}
		return names[i] < names[j]
	})
	return names
}

// SelectBreakpoint returns the widest breakpoint whose minimum width is at
// most width, or fallback when none qualifies.
func SelectBreakpoint(width float64, bps Breakpoints, fallback string) string {
	selected := fallback
	for _, name := range SortBreakpoints(bps) {
		if float64(bps[name]) <= width {
			selected = name
		}
	}
	return selected
}

// SmallestBreakpoint returns the name with the lowest threshold, or "" when
// bps is empty.
func SmallestBreakpoint(bps Breakpoints) string {
	names := SortBreakpoints(bps)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
