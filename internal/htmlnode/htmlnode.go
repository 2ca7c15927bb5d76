// Package htmlnode holds small HTML-tree navigation helpers used by the
// Structural Emitter (§4.5) to resolve an element's tag name and its
// start/end tag children.
package htmlnode

import "github.com/ryancbahan/erb-fmt/internal/grammar"

// startTagKinds are the node kinds that carry a tag_name child.
var startTagKinds = []string{"start_tag", "self_closing_tag", "end_tag", "script_element", "style_element"}

// TagName returns an element (or script_element/style_element) node's tag
// name by locating its start tag child and that child's tag_name child.
func TagName(element grammar.Node) string {
	for _, child := range element.NamedChildren() {
		for _, k := range startTagKinds {
			if child.Kind() == k {
				if name, ok := TagNameOf(child); ok {
					return name
				}
			}
		}
	}
	return ""
}

// TagNameOf returns the tag_name child's text directly underneath a
// start_tag/end_tag/self_closing_tag node.
func TagNameOf(tag grammar.Node) (string, bool) {
	for _, child := range tag.NamedChildren() {
		if child.Kind() == "tag_name" {
			return child.Text(), true
		}
	}
	return "", false
}

// FirstChildOfKind returns the first named child whose Kind matches any of
// kinds.
func FirstChildOfKind(node grammar.Node, kinds ...string) (grammar.Node, bool) {
	for _, child := range node.NamedChildren() {
		for _, k := range kinds {
			if child.Kind() == k {
				return child, true
			}
		}
	}
	return grammar.Node{}, false
}
