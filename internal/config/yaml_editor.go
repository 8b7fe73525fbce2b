package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

// YAMLEditor provides structured editing of the YAML config file using
// the yaml.v3 Node API, preserving comments and formatting.
type YAMLEditor struct {
	path string
}

// NewYAMLEditor creates a new editor for the given config file path.
func NewYAMLEditor(path string) *YAMLEditor {
	return &YAMLEditor{path: path}
}

// SetLayouts replaces (or creates) a layout set. Breakpoints are written in
// sorted order and every item on one line.
func (e *YAMLEditor) SetLayouts(set string, layouts grid.Layouts) error {
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	setsNode := ensureMapping(root, "layouts")

	var valueNode yaml.Node
	if err := valueNode.Encode(layouts); err != nil {
		return fmt.Errorf("encoding layout set '%s': %w", set, err)
	}
	for i := 1; i < len(valueNode.Content); i += 2 {
		for _, item := range valueNode.Content[i].Content {
			item.Style = yaml.FlowStyle
		}
	}

	if existing := findMappingKey(setsNode, set); existing != nil {
		*existing = valueNode
	} else {
		setsNode.Content = append(setsNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: set},
			&valueNode,
		)
	}

	return e.save(doc)
}

// DeleteLayoutSet removes a layout set from the config file.
func (e *YAMLEditor) DeleteLayoutSet(set string) error {
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	setsNode := findMappingKey(root, "layouts")
	if setsNode == nil {
		return fmt.Errorf("no layouts section in config")
	}

	idx := findMappingKeyIndex(setsNode, set)
	if idx < 0 {
		return fmt.Errorf("layout set '%s' not found", set)
	}

	// Remove the key-value pair (2 consecutive entries in Content)
	setsNode.Content = append(setsNode.Content[:idx], setsNode.Content[idx+2:]...)

	return e.save(doc)
}

// SetWidget adds or replaces a widget definition.
func (e *YAMLEditor) SetWidget(id string, w WidgetDef) error {
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	widgetsNode := ensureMapping(root, "widgets")

	valueNode := &yaml.Node{Kind: yaml.MappingNode}
	valueNode.Content = append(valueNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "title"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: w.Title},
		&yaml.Node{Kind: yaml.ScalarNode, Value: "content"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: w.Content, Style: yaml.DoubleQuotedStyle},
	)
	if w.W > 0 && w.H > 0 {
		valueNode.Content = append(valueNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "w"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(w.W), Tag: "!!int"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: "h"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(w.H), Tag: "!!int"},
		)
	}

	if idx := findMappingKeyIndex(widgetsNode, id); idx >= 0 {
		widgetsNode.Content[idx+1] = valueNode
	} else {
		widgetsNode.Content = append(widgetsNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: id},
			valueNode,
		)
	}

	return e.save(doc)
}

// ensureMapping returns the mapping stored under key, creating it if needed.
func ensureMapping(root *yaml.Node, key string) *yaml.Node {
	node := findMappingKey(root, key)
	if node != nil && node.Kind == yaml.MappingNode {
		return node
	}
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if idx := findMappingKeyIndex(root, key); idx >= 0 {
		root.Content[idx+1] = mapping
	} else {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			mapping,
		)
	}
	return mapping
}

func (e *YAMLEditor) load() (*yaml.Node, *yaml.Node, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, fmt.Errorf("invalid YAML document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("root is not a mapping")
	}

	return &doc, root, nil
}

func (e *YAMLEditor) save(doc *yaml.Node) error {
	out, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("opening config for write: %w", err)
	}
	defer out.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// findMappingKey finds the value node for a key in a MappingNode.
func findMappingKey(mapping *yaml.Node, key string) *yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// findMappingKeyIndex returns the index of a key in a MappingNode's Content, or -1.
func findMappingKeyIndex(mapping *yaml.Node, key string) int {
	if mapping.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}
