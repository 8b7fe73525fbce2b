package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

// Editor writes layout sets and widget definitions back to a config file.
type Editor interface {
	SetLayouts(set string, layouts grid.Layouts) error
	DeleteLayoutSet(set string) error
	SetWidget(id string, w WidgetDef) error
}

// NewEditor returns the editor matching the config file's extension, the
// same way Load picks a parser.
func NewEditor(path string) Editor {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return NewTOMLEditor(path)
	}
	return NewYAMLEditor(path)
}

// TOMLEditor edits a TOML config file. go-toml has no document model, so
// the file is decoded, changed and re-encoded: settings survive, comments
// and key order do not.
type TOMLEditor struct {
	path string
}

// NewTOMLEditor creates a new editor for the given config file path.
func NewTOMLEditor(path string) *TOMLEditor {
	return &TOMLEditor{path: path}
}

// SetLayouts replaces (or creates) a layout set.
func (e *TOMLEditor) SetLayouts(set string, layouts grid.Layouts) error {
	doc, err := e.load()
	if err != nil {
		return err
	}
	out := make(grid.Layouts, len(layouts))
	for bp, l := range layouts {
		if l == nil {
			l = grid.Layout{}
		}
		out[bp] = l
	}
	tableOf(doc, "layouts")[set] = out
	return e.save(doc)
}

// DeleteLayoutSet removes a layout set from the config file.
func (e *TOMLEditor) DeleteLayoutSet(set string) error {
	doc, err := e.load()
	if err != nil {
		return err
	}
	sets, ok := doc["layouts"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("no layouts section in config")
	}
	if _, ok := sets[set]; !ok {
		return fmt.Errorf("layout set '%s' not found", set)
	}
	delete(sets, set)
	return e.save(doc)
}

// SetWidget adds or replaces a widget definition.
func (e *TOMLEditor) SetWidget(id string, w WidgetDef) error {
	doc, err := e.load()
	if err != nil {
		return err
	}
	tableOf(doc, "widgets")[id] = w
	return e.save(doc)
}

// tableOf returns the table stored under key, replacing anything else.
func tableOf(doc map[string]interface{}, key string) map[string]interface{} {
	if t, ok := doc[key].(map[string]interface{}); ok {
		return t
	}
	t := make(map[string]interface{})
	doc[key] = t
	return t
}

func (e *TOMLEditor) load() (map[string]interface{}, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	doc := make(map[string]interface{})
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return doc, nil
}

func (e *TOMLEditor) save(doc map[string]interface{}) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(e.path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
