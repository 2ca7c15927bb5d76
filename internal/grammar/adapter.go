package grammar

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ryancbahan/erb-fmt/internal/source"
)

// Node is a thin, grammar-neutral adapter over a tree-sitter node. Every
// formatting stage navigates parse trees through Node rather than touching
// go-tree-sitter directly, so the grammar binding stays replaceable (§9).
type Node struct {
	n    *sitter.Node
	text []byte
}

// Tree wraps a parsed tree-sitter tree together with the source bytes it
// was parsed from.
type Tree struct {
	tree *sitter.Tree
	text []byte
}

// RootNode returns the tree's root node.
func (t *Tree) RootNode() Node {
	return Node{n: t.tree.RootNode(), text: t.text}
}

// HasError reports whether the parser recovered from a syntax error
// anywhere in the tree.
func (t *Tree) HasError() bool {
	return t.tree.RootNode().HasError()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
	}
}

// IsNil reports whether the node adapter wraps no underlying node.
func (n Node) IsNil() bool {
	return n.n == nil
}

// Kind returns the grammar's node type label (e.g. "directive", "element").
func (n Node) Kind() string {
	if n.n == nil {
		return ""
	}
	return n.n.Kind()
}

// Text returns the node's source slice.
func (n Node) Text() string {
	if n.n == nil {
		return ""
	}
	return string(n.text[n.n.StartByte():n.n.EndByte()])
}

// Range returns the node's byte/row/column span.
func (n Node) Range() source.Range {
	if n.n == nil {
		return source.Range{}
	}
	sp, ep := n.n.StartPosition(), n.n.EndPosition()
	return source.Range{
		Start: source.Position{Offset: uint(n.n.StartByte()), Row: uint(sp.Row), Column: uint(sp.Column)},
		End:   source.Position{Offset: uint(n.n.EndByte()), Row: uint(ep.Row), Column: uint(ep.Column)},
	}
}

// HasError reports whether this node is, or contains, a parse error.
func (n Node) HasError() bool {
	if n.n == nil {
		return false
	}
	return n.n.HasError()
}

// IsNamed reports whether the node is a named (as opposed to anonymous
// token) node.
func (n Node) IsNamed() bool {
	if n.n == nil {
		return false
	}
	return n.n.IsNamed()
}

// NamedChildCount returns the number of named children.
func (n Node) NamedChildCount() int {
	if n.n == nil {
		return 0
	}
	return int(n.n.NamedChildCount())
}

// NamedChild returns the i-th named child.
func (n Node) NamedChild(i int) Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: n.n.NamedChild(uint(i)), text: n.text}
}

// NamedChildren returns all named children in order.
func (n Node) NamedChildren() []Node {
	count := n.NamedChildCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// ChildForField returns the child bound to the given grammar field name.
func (n Node) ChildForField(name string) (Node, bool) {
	if n.n == nil {
		return Node{}, false
	}
	c := n.n.ChildByFieldName(name)
	if c == nil {
		return Node{}, false
	}
	return Node{n: c, text: n.text}, true
}

// Parent returns the node's parent, if any.
func (n Node) Parent() (Node, bool) {
	if n.n == nil {
		return Node{}, false
	}
	p := n.n.Parent()
	if p == nil {
		return Node{}, false
	}
	return Node{n: p, text: n.text}, true
}

// DescendantForByteRange returns the smallest node spanning [start, end).
func (n Node) DescendantForByteRange(start, end uint) (Node, bool) {
	if n.n == nil {
		return Node{}, false
	}
	d := n.n.DescendantForByteRange(uint(start), uint(end))
	if d == nil {
		return Node{}, false
	}
	return Node{n: d, text: n.text}, true
}
