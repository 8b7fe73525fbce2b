package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/config"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/store"
)

const (
	defaultWidgetW = 4
	defaultWidgetH = 2
)

// requireToken rejects requests without the bearer token. An empty token
// disables the check.
func requireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Next()
	}
}

// widthParam reads the width query parameter, defaulting to 1200.
func widthParam(c *gin.Context) (float64, error) {
	raw := c.Query("width")
	if raw == "" {
		return defaultWidth, nil
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("invalid width '%s'", raw)
	}
	return w, nil
}

// loadSet writes the error response itself and reports whether to continue.
func (s *Server) loadSet(c *gin.Context, name string) (grid.Layouts, bool) {
	ls, err := s.store.Load(c.Request.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return ls, true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListSets(c *gin.Context) {
	names, err := s.store.Sets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"sets": names})
}

func (s *Server) handleGetSet(c *gin.Context) {
	ls, ok := s.loadSet(c, c.Param("name"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ls)
}

func (s *Server) handlePutSet(c *gin.Context) {
	name := c.Param("name")
	var ls grid.Layouts
	if err := c.ShouldBindJSON(&ls); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if len(ls) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "layout set has no breakpoints"})
		return
	}
	if errs := s.cfg.ValidateLayouts(name, ls); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid layout set", "details": msgs})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(c.Request.Context(), name, ls); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("Saved layout set %s (%d breakpoints)", name, len(ls))
	c.JSON(http.StatusOK, gin.H{"set": name, "layouts": ls})
}

func (s *Server) handleDeleteSet(c *gin.Context) {
	name := c.Param("name")

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.store.Delete(c.Request.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("Deleted layout set %s", name)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRender(c *gin.Context) {
	width, err := widthParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ls, ok := s.loadSet(c, c.Param("name"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Render(s.cfg, ls, width))
}

// addWidgetRequest is the body of POST /sets/:name/widgets. All fields
// are optional.
type addWidgetRequest struct {
	ID string `json:"id"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}

func (s *Server) handleAddWidget(c *gin.Context) {
	name := c.Param("name")
	var req addWidgetRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
			return
		}
	}
	if req.W < 0 || req.H < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must not be negative"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.loadSet(c, name)
	if !ok {
		return
	}
	next, id, err := AddWidget(s.cfg, ls, req.ID, req.W, req.H)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Save(c.Request.Context(), name, next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("Added widget %s to layout set %s", id, name)
	c.JSON(http.StatusCreated, gin.H{"id": id, "layouts": next})
}

// AddWidget appends a widget below the content of every breakpoint that has
// a stored layout. Breakpoints without one keep reflowing from their
// neighbours; when the set stores nothing yet, every configured breakpoint
// gets a layout. An empty id picks the next free widget-N. Zero sizes fall
// back to the widget definition, then to 4x2.
func AddWidget(cfg *config.Config, ls grid.Layouts, id string, w, h int) (grid.Layouts, string, error) {
	if id == "" {
		id = grid.NewIDGenerator("widget", ls).Next()
	}
	for bp, l := range ls {
		if _, taken := l.Find(id); taken {
			return nil, "", fmt.Errorf("item '%s' already exists in breakpoint '%s'", id, bp)
		}
	}

	if def, ok := cfg.GetWidget(id); ok {
		if w == 0 {
			w = def.W
		}
		if h == 0 {
			h = def.H
		}
	}
	if w == 0 {
		w = defaultWidgetW
	}
	if h == 0 {
		h = defaultWidgetH
	}

	next := ls.Clone()
	stored := 0
	for bp := range cfg.Breakpoints {
		if _, ok := ls[bp]; ok {
			stored++
		}
	}
	for _, bp := range grid.SortBreakpoints(cfg.Breakpoints) {
		if _, ok := ls[bp]; !ok && stored > 0 {
			continue
		}
		next[bp] = grid.Append(next[bp], grid.Item{ID: id, W: w, H: h}, cfg.Cols[bp])
	}
	return next, id, nil
}
