package container

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ItemClass is the class of the wrapper element placed around every child.
const ItemClass = "grid-item"

type parsedChild struct {
	content template.HTML
	root    *html.Node
}

// handleMatcher decides whether a pointer-down target is a drag handle.
type handleMatcher struct {
	source   string
	selector cascadia.Selector
	valid    bool
	roots    map[string]parsedChild
}

func newHandleMatcher() *handleMatcher {
	return &handleMatcher{valid: true, roots: make(map[string]parsedChild)}
}

func (m *handleMatcher) update(selector string, children []Child) {
	if selector != m.source {
		m.source = selector
		m.selector = nil
		m.valid = true
		if selector != "" {
			sel, err := cascadia.Compile(selector)
			m.selector, m.valid = sel, err == nil
		}
	}

	next := make(map[string]parsedChild, len(children))
	for _, ch := range children {
		if prev, ok := m.roots[ch.Key]; ok && prev.content == ch.Content {
			next[ch.Key] = prev
			continue
		}
		next[ch.Key] = parsedChild{content: ch.Content, root: parseChild(ch)}
	}
	m.roots = next
}

// matches reports whether target, or an ancestor up to the item wrapper,
// matches the handle selector. Without a selector the whole item is a
// handle. An invalid selector matches nothing.
func (m *handleMatcher) matches(key string, target *html.Node) bool {
	if m.source == "" {
		return true
	}
	if !m.valid || target == nil {
		return false
	}
	root := m.roots[key].root
	if root == nil || !within(target, root) {
		return false
	}
	for n := target; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && m.selector.Match(n) {
			return true
		}
		if n == root {
			break
		}
	}
	return false
}

func within(n, root *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// parseChild wraps the child's markup in a div.grid-item element.
func parseChild(ch Child) *html.Node {
	root := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "class", Val: ItemClass},
			{Key: "data-key", Val: ch.Key},
		},
	}
	nodes, err := html.ParseFragment(strings.NewReader(string(ch.Content)), root)
	if err != nil {
		return root
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

// ChildNode returns the node inside child key matching selector, or the
// item wrapper when selector is empty.
func (c *Container) ChildNode(key, selector string) (*html.Node, error) {
	pc, ok := c.handles.roots[key]
	if !ok {
		return nil, fmt.Errorf("no child with key '%s'", key)
	}
	if selector == "" {
		return pc.root, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("parsing selector '%s': %w", selector, err)
	}
	if sel.Match(pc.root) {
		return pc.root, nil
	}
	n := cascadia.Query(pc.root, sel)
	if n == nil {
		return nil, fmt.Errorf("selector '%s' matches nothing in '%s'", selector, key)
	}
	return n, nil
}
