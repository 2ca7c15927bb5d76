package htmlnode_test

import (
	"testing"

	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/htmlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, src string) grammar.Node {
	t.Helper()
	facade, err := grammar.NewFacade()
	require.NoError(t, err)
	tree := facade.ParseHTML([]byte(src))
	require.NotNil(t, tree)
	t.Cleanup(tree.Close)
	return tree.RootNode()
}

func findElement(node grammar.Node) (grammar.Node, bool) {
	for _, c := range node.NamedChildren() {
		if c.Kind() == "element" {
			return c, true
		}
		if found, ok := findElement(c); ok {
			return found, true
		}
	}
	return grammar.Node{}, false
}

func TestTagName(t *testing.T) {
	root := parseHTML(t, `<div class="x"><span>hi</span></div>`)
	element, ok := findElement(root)
	require.True(t, ok)
	assert.Equal(t, "div", htmlnode.TagName(element))
}

func TestTagNameSelfClosing(t *testing.T) {
	root := parseHTML(t, `<img src="x.png" />`)
	element, ok := findElement(root)
	require.True(t, ok)
	assert.Equal(t, "img", htmlnode.TagName(element))
}

func TestFirstChildOfKind(t *testing.T) {
	root := parseHTML(t, `<div class="x">content</div>`)
	element, ok := findElement(root)
	require.True(t, ok)

	startTag, ok := htmlnode.FirstChildOfKind(element, "start_tag")
	require.True(t, ok)
	assert.Equal(t, "start_tag", startTag.Kind())

	_, ok = htmlnode.FirstChildOfKind(element, "self_closing_tag")
	assert.False(t, ok)
}
