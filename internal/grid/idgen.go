package grid

import "fmt"

// IDGenerator produces widget ids of the form prefix-N that do not clash
// with ids already present in a layout set.
type IDGenerator struct {
	prefix string
	id     int
	taken  map[string]bool
}

// NewIDGenerator creates a generator that skips every id used in ls.
func NewIDGenerator(prefix string, ls Layouts) *IDGenerator {
	taken := make(map[string]bool)
	for _, l := range ls {
		for _, it := range l {
			taken[it.ID] = true
		}
	}
	return &IDGenerator{prefix: prefix, taken: taken}
}

// Next returns the next free id.
func (g *IDGenerator) Next() string {
	for {
		g.id++
		id := fmt.Sprintf("%s-%d", g.prefix, g.id)
		if !g.taken[id] {
			g.taken[id] = true
			return id
		}
	}
}
