package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/container"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/interaction"
)

// gestureEvent is one recorded pointer sample. Item and Selector name the
// element under the pointer for down events.
type gestureEvent struct {
	Type     string  `json:"type" binding:"required"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Item     string  `json:"item,omitempty"`
	Selector string  `json:"selector,omitempty"`
}

type gestureRequest struct {
	Width  float64        `json:"width"`
	Events []gestureEvent `json:"events" binding:"required,min=1"`
}

type gestureResult struct {
	Breakpoint string       `json:"breakpoint"`
	Changes    int          `json:"changes"`
	State      string       `json:"state"`
	Layouts    grid.Layouts `json:"layouts"`
	View       RenderView   `json:"render"`
}

// replay feeds events through a container. The server acts as a controlled
// host: every reported layout is passed straight back through SetProps.
func (s *Server) replay(ls grid.Layouts, width float64, events []gestureEvent) (gestureResult, error) {
	target := interaction.NewDispatcher()
	props := Props(s.cfg, ls)

	var c *container.Container
	changes := 0
	props.OnLayoutChange = func(_ grid.Layout, all grid.Layouts) {
		changes++
		next := c.Props()
		next.Layouts = all
		c.SetProps(next)
	}
	c = mount(target, props, width)
	defer c.Close()

	for i, e := range events {
		typ, ok := interaction.ParseEventType(e.Type)
		if !ok {
			return gestureResult{}, fmt.Errorf("event %d: unknown type '%s'", i, e.Type)
		}
		ev := interaction.PointerEvent{Type: typ, X: e.X, Y: e.Y}
		if e.Item != "" {
			n, err := c.ChildNode(e.Item, e.Selector)
			if err != nil {
				return gestureResult{}, fmt.Errorf("event %d: %w", i, err)
			}
			ev.Target = n
		}
		target.Dispatch(ev)
	}

	state, _ := c.Gesture()
	return gestureResult{
		Breakpoint: c.Breakpoint(),
		Changes:    changes,
		State:      state.String(),
		Layouts:    c.Props().Layouts,
		View:       viewOf(c),
	}, nil
}

func (s *Server) handleGestures(c *gin.Context) {
	name := c.Param("name")
	var req gestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Width <= 0 {
		req.Width = defaultWidth
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.loadSet(c, name)
	if !ok {
		return
	}
	res, err := s.replay(ls, req.Width, req.Events)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if res.Changes > 0 {
		if err := s.store.Save(c.Request.Context(), name, res.Layouts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Layout set %s [%s]: %d changes saved", name, res.Breakpoint, res.Changes)
	}
	c.JSON(http.StatusOK, res)
}
