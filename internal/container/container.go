// Package container is the responsive grid component: it selects the active
// breakpoint from a measured width, positions children, and routes pointer
// gestures to the interaction controller.
package container

import (
	"html/template"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/interaction"
)

const defaultResizeHandleSize = 20

// Child is a rendered widget. Key matches a layout item id.
type Child struct {
	Key     string
	Content template.HTML
}

// Props configures a Container. The container holds no layout state of its
// own; every change is reported through OnLayoutChange and takes effect
// once the host passes the new layouts back through SetProps.
type Props struct {
	Layouts          grid.Layouts
	Cols             grid.Cols
	Breakpoints      grid.Breakpoints
	RowHeight        float64
	Margin           grid.Pair
	ContainerPadding *grid.Pair
	DraggableHandle  string
	IsDraggable      bool
	IsResizable      bool
	ResizeHandleSize float64
	Children         []Child
	Width            float64

	OnLayoutChange     func(current grid.Layout, all grid.Layouts)
	OnBreakpointChange func(breakpoint string, cols int)
}

// Placement is a child with its item and pixel rectangle.
type Placement struct {
	Child    Child
	Item     grid.Item
	Position grid.Position
}

// Container is the responsive grid. It is confined to one goroutine: props
// updates and pointer events must not run concurrently.
type Container struct {
	props      Props
	breakpoint string
	children   map[string]Child

	ctrl       *interaction.Controller
	removeDown func()
	handles    *handleMatcher
}

// New creates a container listening for pointer-down events on target.
func New(target interaction.EventTarget, props Props) *Container {
	c := &Container{handles: newHandleMatcher()}
	c.ctrl = interaction.NewController(target, c)
	c.apply(props)
	c.breakpoint = c.selectBreakpoint()
	c.removeDown = target.AddListener(interaction.PointerDown, c.onPointerDown)
	return c
}

// Close detaches the container from its event target and ends any gesture.
func (c *Container) Close() {
	c.ctrl.Close()
	if c.removeDown != nil {
		c.removeDown()
	}
}

// Props returns the props the container currently renders.
func (c *Container) Props() Props {
	return c.props
}

// SetProps re-renders with new props. When the width selects a different
// breakpoint, OnBreakpointChange is called with its name and column count.
func (c *Container) SetProps(props Props) {
	c.apply(props)
	bp := c.selectBreakpoint()
	if bp == c.breakpoint {
		return
	}
	c.breakpoint = bp
	if c.props.OnBreakpointChange != nil {
		c.props.OnBreakpointChange(bp, c.Columns())
	}
}

func (c *Container) apply(props Props) {
	if props.ResizeHandleSize <= 0 {
		props.ResizeHandleSize = defaultResizeHandleSize
	}
	c.props = props
	c.children = make(map[string]Child, len(props.Children))
	for _, ch := range props.Children {
		c.children[ch.Key] = ch
	}
	c.handles.update(props.DraggableHandle, props.Children)
}

func (c *Container) selectBreakpoint() string {
	return grid.SelectBreakpoint(c.props.Width, c.props.Breakpoints, grid.SmallestBreakpoint(c.props.Breakpoints))
}

// Breakpoint returns the active breakpoint name.
func (c *Container) Breakpoint() string {
	return c.breakpoint
}

// Columns returns the column count of the active breakpoint, at least 1.
func (c *Container) Columns() int {
	if n := c.props.Cols[c.breakpoint]; n > 0 {
		return n
	}
	return 1
}

// Gesture reports the controller state and the item it is manipulating.
func (c *Container) Gesture() (interaction.State, string) {
	return c.ctrl.State(), c.ctrl.ActiveItem()
}

// Layout returns the active breakpoint's layout. A breakpoint with no stored
// layout gets one reflowed from the nearest breakpoint that has one.
func (c *Container) Layout() grid.Layout {
	if l, ok := c.props.Layouts[c.breakpoint]; ok {
		return l
	}
	src, ok := c.nearestLayout()
	if !ok {
		return nil
	}
	return grid.Reflow(src, c.Columns())
}

// nearestLayout looks at wider breakpoints first, then narrower ones.
func (c *Container) nearestLayout() (grid.Layout, bool) {
	names := grid.SortBreakpoints(c.props.Breakpoints)
	at := -1
	for i, n := range names {
		if n == c.breakpoint {
			at = i
		}
	}
	for i := at + 1; i < len(names); i++ {
		if l, ok := c.props.Layouts[names[i]]; ok {
			return l, true
		}
	}
	for i := at - 1; i >= 0; i-- {
		if l, ok := c.props.Layouts[names[i]]; ok {
			return l, true
		}
	}
	return nil, false
}

// Params returns the pixel geometry of the active breakpoint.
func (c *Container) Params() grid.PositionParams {
	padding := c.props.Margin
	if c.props.ContainerPadding != nil {
		padding = *c.props.ContainerPadding
	}
	return grid.PositionParams{
		Cols:           c.Columns(),
		ContainerWidth: c.props.Width,
		RowHeight:      c.props.RowHeight,
		Margin:         c.props.Margin,
		Padding:        padding,
	}
}

// Render positions every item of the active layout that has a child.
// Items without a matching child are skipped.
func (c *Container) Render() []Placement {
	p := c.Params()
	layout := c.Layout()
	out := make([]Placement, 0, len(layout))
	for _, it := range layout {
		ch, ok := c.children[it.ID]
		if !ok {
			continue
		}
		out = append(out, Placement{Child: ch, Item: it, Position: grid.ComputePosition(it, p)})
	}
	return out
}

// Height returns the pixel height of the rendered content.
func (c *Container) Height() float64 {
	return grid.ContentHeight(c.Layout(), c.Params())
}

// CurrentLayout implements interaction.Host.
func (c *Container) CurrentLayout() grid.Layout {
	return c.Layout()
}

// LayoutChanged implements interaction.Host. The new layout replaces the
// active breakpoint in a copy of the layouts map.
func (c *Container) LayoutChanged(l grid.Layout) {
	if c.props.OnLayoutChange == nil {
		return
	}
	all := c.props.Layouts.With(c.breakpoint, l)
	c.props.OnLayoutChange(all[c.breakpoint].Clone(), all)
}

// hit returns the topmost placement under the point.
func (c *Container) hit(x, y float64) (Placement, bool) {
	placed := c.Render()
	for i := len(placed) - 1; i >= 0; i-- {
		if placed[i].Position.Contains(x, y) {
			return placed[i], true
		}
	}
	return Placement{}, false
}

func (c *Container) onPointerDown(ev interaction.PointerEvent) {
	if st, _ := c.Gesture(); st != interaction.Idle {
		return
	}
	pl, ok := c.hit(ev.X, ev.Y)
	if !ok || pl.Item.Static {
		return
	}
	if c.props.IsResizable && c.inResizeHandle(pl.Position, ev.X, ev.Y) {
		c.ctrl.BeginResize(pl.Item.ID, ev)
		return
	}
	if c.props.IsDraggable && c.handles.matches(pl.Item.ID, ev.Target) {
		c.ctrl.BeginDrag(pl.Item.ID, ev)
	}
}

func (c *Container) inResizeHandle(pos grid.Position, x, y float64) bool {
	size := c.props.ResizeHandleSize
	return x >= pos.Left+pos.Width-size && y >= pos.Top+pos.Height-size
}
