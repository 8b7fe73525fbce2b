package server

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/config"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/container"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/interaction"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/store"
)

const defaultWidth = 1200

// Server holds the HTTP router, the config and the layout store.
type Server struct {
	cfg    *config.Config
	store  store.Store
	webFS  fs.FS
	engine *gin.Engine

	// mu serializes load-modify-save sequences against the store.
	mu sync.Mutex
}

// New creates a Server serving templates and static files from webFS.
func New(webFS fs.FS, cfg *config.Config, st store.Store) (*Server, error) {
	s := &Server{
		cfg:   cfg,
		store: st,
		webFS: webFS,
	}

	// fail early on broken templates
	for _, page := range []string{"index.html", "preview.html"} {
		if _, err := s.pageTemplate(page); err != nil {
			return nil, fmt.Errorf("loading templates: %w", err)
		}
	}

	staticSub, err := fs.Sub(webFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static FS: %w", err)
	}

	s.engine = gin.Default()
	s.engine.Use(cors.New(corsConfig(cfg.GetServer())))
	s.engine.StaticFS("/static", http.FS(staticSub))
	s.registerRoutes()
	return s, nil
}

func corsConfig(srv config.ServerSettings) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	c.AllowMethods = []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions}
	for _, o := range srv.AllowOrigins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = srv.AllowOrigins
	return c
}

// pageTemplate creates a fresh template set with layout + a specific page.
// This avoids the problem of multiple {{define "content"}} blocks conflicting.
func (s *Server) pageTemplate(page string) (*template.Template, error) {
	return template.New("").ParseFS(s.webFS,
		"templates/layout.html",
		"templates/"+page,
	)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// HTTPServer returns an http.Server bound to addr, for callers that manage
// shutdown themselves.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{Addr: addr, Handler: s}
}

// renderPage renders a full page template (layout + page).
func (s *Server) renderPage(c *gin.Context, page string, data gin.H) {
	tmpl, err := s.pageTemplate(page)
	if err != nil {
		c.String(http.StatusInternalServerError, "template error: "+err.Error())
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := tmpl.ExecuteTemplate(c.Writer, "layout.html", data); err != nil {
		c.String(http.StatusInternalServerError, "render error: "+err.Error())
	}
}

// Props builds container props for a layout set from the grid settings
// and widget definitions. Items with no widget definition are not rendered.
// Width is left at zero; mount supplies it.
func Props(cfg *config.Config, ls grid.Layouts) container.Props {
	g := cfg.GetGrid()
	return container.Props{
		Layouts:          ls,
		Cols:             cfg.Cols,
		Breakpoints:      cfg.Breakpoints,
		RowHeight:        g.RowHeight,
		Margin:           g.Margin,
		ContainerPadding: g.Padding,
		DraggableHandle:  g.DraggableHandle,
		IsDraggable:      g.IsDraggable,
		IsResizable:      g.IsResizable,
		ResizeHandleSize: g.ResizeHandleSize,
		Children:         children(cfg),
	}
}

func children(cfg *config.Config) []container.Child {
	ids := make([]string, 0, len(cfg.Widgets))
	for id := range cfg.Widgets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]container.Child, 0, len(ids))
	for _, id := range ids {
		w := cfg.Widgets[id]
		content := template.HTML(w.Content)
		if strings.TrimSpace(w.Content) == "" {
			content = template.HTML(`<div class="widget-header">` + template.HTMLEscapeString(w.Title) + `</div>`)
		}
		out = append(out, container.Child{Key: id, Content: content})
	}
	return out
}

// RenderView is a rendered layout set: the active breakpoint and the pixel
// rectangle of every visible widget.
type RenderView struct {
	Breakpoint string          `json:"breakpoint"`
	Cols       int             `json:"cols"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Placements []PlacementView `json:"placements"`
}

// PlacementView is one positioned widget.
type PlacementView struct {
	ID       string        `json:"id"`
	Item     grid.Item     `json:"item"`
	Position grid.Position `json:"position"`
	Content  template.HTML `json:"-"`
}

// Render lays a layout set out at width without attaching any input.
func Render(cfg *config.Config, ls grid.Layouts, width float64) RenderView {
	c := mount(interaction.NewDispatcher(), Props(cfg, ls), width)
	defer c.Close()
	return viewOf(c)
}

// mount creates a container and feeds it the measured width through a
// WidthProvider, as a browser host's resize observer would.
func mount(target interaction.EventTarget, props container.Props, width float64) *container.Container {
	c := container.New(target, props)
	container.NewWidthProvider(c, nil).Observe(width)
	return c
}

func viewOf(c *container.Container) RenderView {
	placed := c.Render()
	v := RenderView{
		Breakpoint: c.Breakpoint(),
		Cols:       c.Columns(),
		Width:      c.Props().Width,
		Height:     c.Height(),
		Placements: make([]PlacementView, 0, len(placed)),
	}
	for _, p := range placed {
		v.Placements = append(v.Placements, PlacementView{
			ID:       p.Item.ID,
			Item:     p.Item,
			Position: p.Position,
			Content:  p.Child.Content,
		})
	}
	return v
}
