package grid

// ResolveCollisions pushes items that overlap the moved item directly below
// it, repeating until a scan makes no change. Static items are never moved:
// when the mover lands on one, the mover itself drops below the obstacle.
//
// Only overlaps with the mover are resolved. Two items pushed to the same
// row may still overlap each other.
//
// The input is not modified. The scan is capped at n*n iterations and the
// current result is returned if the cap is reached.
func ResolveCollisions(l Layout, movedID string) Layout {
	out := l.Clone()
	mi, ok := out.Find(movedID)
	if !ok {
		return out
	}

	limit := len(out) * len(out)
	if limit < 1 {
		limit = 1
	}

	for iter := 0; iter < limit; iter++ {
		changed := false
		for i := range out {
			if i == mi || !Overlap(out[mi], out[i]) {
				continue
			}
			if out[i].Static {
				out[mi].Y = out[i].Bottom()
			} else {
				out[i].Y = out[mi].Bottom()
			}
			changed = true
		}
		if !changed {
			break
		}
	}
	return out
}

// Collisions returns the items in l that overlap it.
func Collisions(l Layout, it Item) []Item {
	var hits []Item
	for _, o := range l {
		if Overlap(it, o) {
			hits = append(hits, o)
		}
	}
	return hits
}
