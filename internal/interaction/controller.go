package interaction

import (
	"math"
	"sync"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

// State is the controller's gesture state.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Host supplies the layout being edited and receives every resolved change.
// The controller never keeps layout state of its own between events.
type Host interface {
	CurrentLayout() grid.Layout
	Params() grid.PositionParams
	LayoutChanged(grid.Layout)
}

type gesture struct {
	state   State
	itemID  string
	originA int // x when dragging, w when resizing
	originB int // y when dragging, h when resizing
	startX  float64
	startY  float64
	release func()
}

// Controller runs one drag or resize gesture at a time.
type Controller struct {
	target EventTarget
	host   Host
	active *gesture
}

// NewController creates an idle controller. Move, up and cancel listeners
// are attached to target only while a gesture is in flight.
func NewController(target EventTarget, host Host) *Controller {
	return &Controller{target: target, host: host}
}

// State reports the current gesture state.
func (c *Controller) State() State {
	if c.active == nil {
		return Idle
	}
	return c.active.state
}

// ActiveItem returns the id of the item under manipulation, or "".
func (c *Controller) ActiveItem() string {
	if c.active == nil {
		return ""
	}
	return c.active.itemID
}

// BeginDrag starts dragging item id from the pointer position in ev.
// It returns false and does nothing if a gesture is already active or the
// item is missing or static.
func (c *Controller) BeginDrag(id string, ev PointerEvent) bool {
	it, ok := c.movable(id)
	if !ok {
		return false
	}
	c.begin(&gesture{state: Dragging, itemID: id, originA: it.X, originB: it.Y, startX: ev.X, startY: ev.Y})
	return true
}

// BeginResize starts resizing item id. Same preconditions as BeginDrag.
func (c *Controller) BeginResize(id string, ev PointerEvent) bool {
	it, ok := c.movable(id)
	if !ok {
		return false
	}
	c.begin(&gesture{state: Resizing, itemID: id, originA: it.W, originB: it.H, startX: ev.X, startY: ev.Y})
	return true
}

// Close ends any in-flight gesture and detaches its listeners.
func (c *Controller) Close() {
	c.end()
}

func (c *Controller) movable(id string) (grid.Item, bool) {
	if c.active != nil {
		return grid.Item{}, false
	}
	l := c.host.CurrentLayout()
	i, ok := l.Find(id)
	if !ok || l[i].Static {
		return grid.Item{}, false
	}
	return l[i], true
}

func (c *Controller) begin(g *gesture) {
	c.active = g
	removers := []func(){
		c.target.AddListener(PointerMove, c.onMove),
		c.target.AddListener(PointerUp, c.onEnd),
		c.target.AddListener(PointerCancel, c.onEnd),
	}
	var once sync.Once
	g.release = func() {
		once.Do(func() {
			for _, rm := range removers {
				rm()
			}
		})
	}
}

func (c *Controller) end() {
	g := c.active
	if g == nil {
		return
	}
	c.active = nil
	g.release()
}

func (c *Controller) onEnd(PointerEvent) {
	c.end()
}

func (c *Controller) onMove(ev PointerEvent) {
	g := c.active
	if g == nil {
		return
	}
	l := c.host.CurrentLayout()
	i, ok := l.Find(g.itemID)
	if !ok {
		// the host dropped the item mid-gesture
		c.end()
		return
	}

	p := c.host.Params()
	unitX, unitY := grid.Units(p)
	dCols := steps(ev.X-g.startX, unitX)
	dRows := steps(ev.Y-g.startY, unitY)

	current := l[i]
	var candidate grid.Item
	if g.state == Dragging {
		candidate = ClampMove(current, g.originA+dCols, g.originB+dRows, p.Cols)
	} else {
		candidate = ClampResize(current, g.originA+dCols, g.originB+dRows, p.Cols)
	}
	if candidate.SameRect(current) {
		return
	}

	working := l.Clone()
	working[i] = candidate
	c.host.LayoutChanged(grid.ResolveCollisions(working, g.itemID))
}

func steps(delta, unit float64) int {
	if unit <= 0 {
		return 0
	}
	return int(math.Round(delta / unit))
}

// ClampMove returns it moved to (x, y), kept inside [0, cols-w] horizontally
// and at or below row 0.
func ClampMove(it grid.Item, x, y, cols int) grid.Item {
	out := it.Clone()
	out.X = clamp(x, 0, cols-it.W)
	if y < 0 {
		y = 0
	}
	out.Y = y
	return out
}

// ClampResize returns it resized to (w, h) within its bounds. Width may not
// pass the right edge of the grid. When bounds conflict the minimum wins.
func ClampResize(it grid.Item, w, h, cols int) grid.Item {
	out := it.Clone()

	minW, maxW := 1, cols
	if it.MinW != nil {
		minW = *it.MinW
	}
	if it.MaxW != nil && *it.MaxW < maxW {
		maxW = *it.MaxW
	}
	if room := cols - it.X; room < maxW {
		maxW = room
	}
	out.W = lowerWins(w, minW, maxW)

	minH, maxH := 1, math.MaxInt
	if it.MinH != nil {
		minH = *it.MinH
	}
	if it.MaxH != nil {
		maxH = *it.MaxH
	}
	out.H = lowerWins(h, minH, maxH)
	return out
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func lowerWins(v, lo, hi int) int {
	if lo < 1 {
		lo = 1
	}
	return clamp(v, lo, hi)
}
