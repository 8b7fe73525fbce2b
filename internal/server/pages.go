package server

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/store"
)

type setInfo struct {
	Name        string
	Breakpoints []string
	Items       int
}

type breakpointLink struct {
	Name  string
	Width int
}

// breakpointLinks gives each breakpoint a width that selects it: its own
// threshold, or half the next wider one for a zero threshold.
func breakpointLinks(bps grid.Breakpoints) []breakpointLink {
	names := grid.SortBreakpoints(bps)
	links := make([]breakpointLink, 0, len(names))
	for i, n := range names {
		w := bps[n]
		if w <= 0 {
			w = 320
			if i > 0 {
				w = bps[names[i-1]] / 2
			}
		}
		links = append(links, breakpointLink{Name: n, Width: w})
	}
	return links
}

func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	names, err := s.store.Sets(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "listing sets: "+err.Error())
		return
	}

	var sets []setInfo
	for _, name := range names {
		ls, err := s.store.Load(ctx, name)
		if err != nil {
			continue
		}
		info := setInfo{Name: name}
		for bp, l := range ls {
			info.Breakpoints = append(info.Breakpoints, bp)
			info.Items += len(l)
		}
		sort.Strings(info.Breakpoints)
		sets = append(sets, info)
	}

	s.renderPage(c, "index.html", gin.H{
		"Title":       "layout sets",
		"Active":      "index",
		"Sets":        sets,
		"Breakpoints": breakpointLinks(s.cfg.Breakpoints),
		"WidgetCount": len(s.cfg.Widgets),
		"Driver":      s.cfg.GetStorage().Driver,
	})
}

func (s *Server) handlePreview(c *gin.Context) {
	name := c.Param("name")
	width, err := widthParam(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	ls, err := s.store.Load(c.Request.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	v := Render(s.cfg, ls, width)
	s.renderPage(c, "preview.html", gin.H{
		"Title":      name,
		"Active":     "preview",
		"Set":        name,
		"Width":      v.Width,
		"Height":     v.Height,
		"Breakpoint": v.Breakpoint,
		"Cols":       v.Cols,
		"Placements": v.Placements,
	})
}
