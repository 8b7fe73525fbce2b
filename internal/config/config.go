package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

var bracedRefRe = regexp.MustCompile(`\$\{(\w+)\}`)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Override keys accepted by Load.
const (
	OverrideDriver = "driver"
	OverrideDSN    = "dsn"
	OverridePort   = "port"
)

// GridSettings holds the geometry and interaction toggles shared by every
// layout set.
type GridSettings struct {
	RowHeight        float64   `yaml:"row_height" toml:"row_height"`
	Margin           []float64 `yaml:"margin" toml:"margin"`
	ContainerPadding []float64 `yaml:"container_padding" toml:"container_padding"`
	DraggableHandle  string    `yaml:"draggable_handle" toml:"draggable_handle"`
	IsDraggable      *bool     `yaml:"is_draggable" toml:"is_draggable"`
	IsResizable      *bool     `yaml:"is_resizable" toml:"is_resizable"`
	ResizeHandleSize float64   `yaml:"resize_handle_size" toml:"resize_handle_size"`
}

// ResolvedGrid is GridSettings with defaults applied.
type ResolvedGrid struct {
	RowHeight        float64
	Margin           grid.Pair
	Padding          *grid.Pair
	DraggableHandle  string
	IsDraggable      bool
	IsResizable      bool
	ResizeHandleSize float64
}

// StorageSettings selects where layout sets are persisted.
type StorageSettings struct {
	Driver string `yaml:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

// ServerSettings configures the HTTP host.
type ServerSettings struct {
	Port         int      `yaml:"port" toml:"port"`
	AllowOrigins []string `yaml:"allow_origins" toml:"allow_origins"`
	Token        string   `yaml:"token" toml:"token"`
}

// WidgetDef is a widget that layout items can reference by id.
type WidgetDef struct {
	Title   string `yaml:"title" toml:"title"`
	Content string `yaml:"content" toml:"content"`
	W       int    `yaml:"w,omitempty" toml:"w,omitempty"`
	H       int    `yaml:"h,omitempty" toml:"h,omitempty"`
}

// Config holds the entire configuration file.
type Config struct {
	Grid        GridSettings            `yaml:"grid" toml:"grid"`
	Breakpoints grid.Breakpoints        `yaml:"breakpoints" toml:"breakpoints"`
	Cols        grid.Cols               `yaml:"cols" toml:"cols"`
	Storage     StorageSettings         `yaml:"storage" toml:"storage"`
	Server      ServerSettings          `yaml:"server" toml:"server"`
	Widgets     map[string]WidgetDef    `yaml:"widgets" toml:"widgets"`
	Layouts     map[string]grid.Layouts `yaml:"layouts" toml:"layouts"`

	overrides map[string]string
	setOrder  []string
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) config file.
func Load(path string, overrides map[string]string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var c Config
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		return c.init(overrides), nil
	}
	return loadFromData(data, overrides)
}

// LoadFromBytes parses a YAML config from raw bytes (for validation).
func LoadFromBytes(data []byte) (*Config, error) {
	return loadFromData(data, nil)
}

func loadFromData(data []byte, overrides map[string]string) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	c.setOrder = parseLayoutKeyOrder(data)
	return c.init(overrides), nil
}

func (c *Config) init(overrides map[string]string) *Config {
	c.overrides = overrides
	if c.overrides == nil {
		c.overrides = make(map[string]string)
	}
	if c.Layouts == nil {
		c.Layouts = make(map[string]grid.Layouts)
	}
	if c.Widgets == nil {
		c.Widgets = make(map[string]WidgetDef)
	}
	return c
}

// GetGrid returns grid settings with defaults applied.
func (c *Config) GetGrid() ResolvedGrid {
	g := c.Grid
	r := ResolvedGrid{
		RowHeight:        g.RowHeight,
		Margin:           grid.PairOf(g.Margin, grid.Pair{X: 10, Y: 10}),
		DraggableHandle:  g.DraggableHandle,
		IsDraggable:      g.IsDraggable == nil || *g.IsDraggable,
		IsResizable:      g.IsResizable == nil || *g.IsResizable,
		ResizeHandleSize: g.ResizeHandleSize,
	}
	if r.RowHeight <= 0 {
		r.RowHeight = 150
	}
	if r.ResizeHandleSize <= 0 {
		r.ResizeHandleSize = 20
	}
	if len(g.ContainerPadding) == 2 {
		p := grid.PairOf(g.ContainerPadding, r.Margin)
		r.Padding = &p
	}
	return r
}

// GetStorage returns storage settings with overrides and ${VAR} expansion.
func (c *Config) GetStorage() StorageSettings {
	s := c.Storage
	if v, ok := c.overrides[OverrideDriver]; ok {
		s.Driver = v
	}
	if v, ok := c.overrides[OverrideDSN]; ok {
		s.DSN = v
	}
	if s.Driver == "" {
		s.Driver = DriverFile
	}
	s.DSN = c.ExpandEnv(s.DSN)
	return s
}

// GetServer returns server settings with defaults and overrides applied.
func (c *Config) GetServer() ServerSettings {
	s := c.Server
	if v, ok := c.overrides[OverridePort]; ok {
		if port, err := strconv.Atoi(v); err == nil {
			s.Port = port
		}
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if len(s.AllowOrigins) == 0 {
		s.AllowOrigins = []string{"*"}
	}
	s.Token = c.ExpandEnv(s.Token)
	return s
}

// GetLayouts returns a copy of a layout set.
func (c *Config) GetLayouts(set string) (grid.Layouts, error) {
	ls, ok := c.Layouts[set]
	if !ok {
		return nil, fmt.Errorf("layout set '%s' not defined in config", set)
	}
	return ls.Clone(), nil
}

// GetWidget returns a widget definition by id.
func (c *Config) GetWidget(id string) (WidgetDef, bool) {
	w, ok := c.Widgets[id]
	return w, ok
}

// GetLayoutSetOrder returns layout set names in file order, falling back to
// sorted names when the order is unknown (TOML files).
func (c *Config) GetLayoutSetOrder() []string {
	if len(c.setOrder) > 0 {
		return c.setOrder
	}
	keys := make([]string, 0, len(c.Layouts))
	for k := range c.Layouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseLayoutKeyOrder extracts layout set key ordering from raw YAML.
func parseLayoutKeyOrder(data []byte) []string {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	setsNode := findMappingKey(root, "layouts")
	if setsNode == nil || setsNode.Kind != yaml.MappingNode {
		return nil
	}
	var order []string
	for j := 0; j < len(setsNode.Content)-1; j += 2 {
		order = append(order, setsNode.Content[j].Value)
	}
	return order
}

// ExpandEnv resolves ${NAME} references from the environment. Unknown
// names are left as written.
func (c *Config) ExpandEnv(value string) string {
	return bracedRefRe.ReplaceAllStringFunc(value, func(match string) string {
		name := bracedRefRe.FindStringSubmatch(match)[1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return match
	})
}

// Validate checks that breakpoints and columns agree and that every stored
// layout fits its breakpoint.
func (c *Config) Validate() []error {
	var errs []error
	if len(c.Breakpoints) == 0 {
		errs = append(errs, fmt.Errorf("no breakpoints defined"))
	}
	for _, bp := range grid.SortBreakpoints(c.Breakpoints) {
		n, ok := c.Cols[bp]
		if !ok {
			errs = append(errs, fmt.Errorf("breakpoint '%s' has no column count", bp))
		} else if n < 1 {
			errs = append(errs, fmt.Errorf("breakpoint '%s' has %d columns", bp, n))
		}
	}
	for _, bp := range sortedKeys(c.Cols) {
		if _, ok := c.Breakpoints[bp]; !ok {
			errs = append(errs, fmt.Errorf("cols entry '%s' is not a breakpoint", bp))
		}
	}

	switch d := c.GetStorage().Driver; d {
	case DriverFile, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver '%s'", d))
	}

	for _, set := range c.GetLayoutSetOrder() {
		errs = append(errs, c.ValidateLayouts(set, c.Layouts[set])...)
	}
	return errs
}

// ValidateLayouts checks one layout set against the configured breakpoints.
func (c *Config) ValidateLayouts(set string, ls grid.Layouts) []error {
	var errs []error
	for _, bp := range sortedKeys(ls) {
		cols, ok := c.Cols[bp]
		if _, known := c.Breakpoints[bp]; !known || !ok {
			errs = append(errs, fmt.Errorf("layout set '%s': unknown breakpoint '%s'", set, bp))
			continue
		}
		for _, e := range grid.Validate(ls[bp], cols) {
			errs = append(errs, fmt.Errorf("layout set '%s' [%s]: %w", set, bp, e))
		}
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
