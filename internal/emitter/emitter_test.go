package emitter_test

import (
	"testing"

	"github.com/ryancbahan/erb-fmt/internal/analyzer"
	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/ryancbahan/erb-fmt/internal/emitter"
	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/placeholder"
	"github.com/ryancbahan/erb-fmt/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitTemplate(t *testing.T, src string, cfg config.Config) (emitter.Result, []placeholder.Entry, region.List) {
	t.Helper()
	facade, err := grammar.NewFacade()
	require.NoError(t, err)

	tree := facade.ParseTemplate([]byte(src))
	require.NotNil(t, tree)
	t.Cleanup(tree.Close)

	regions := region.Segment([]byte(src), tree, facade)
	t.Cleanup(regions.Close)

	doc := placeholder.Build(regions)
	result := analyzer.Analyze(facade, doc)
	if result.Tree != nil {
		t.Cleanup(result.Tree.Close)
	}
	require.False(t, result.HasHTMLError)

	return emitter.Emit(result.Tree, doc.HTML, cfg), doc.Placeholders, regions
}

func TestEmitReindentsNestedElements(t *testing.T) {
	src := "<div><p>hi</p></div>"
	result, _, _ := emitTemplate(t, src, config.Default())

	expected := "<div>\n  <p>hi</p>\n</div>\n"
	assert.Equal(t, expected, result.Output)
}

func TestEmitVoidElement(t *testing.T) {
	src := "<div><br><img src=\"x.png\"></div>"
	result, _, _ := emitTemplate(t, src, config.Default())
	assert.Contains(t, result.Output, "<br>")
	assert.Contains(t, result.Output, `<img src="x.png">`)
}

func TestEmitRecordsPlaceholderPrintInfo(t *testing.T) {
	src := "<div><%= name %></div>"
	result, entries, _ := emitTemplate(t, src, config.Default())
	require.Len(t, entries, 1)

	info, ok := result.Prints[entries[0].ID]
	require.True(t, ok)
	assert.True(t, info.Inline)
	assert.False(t, info.InAttribute)
	assert.False(t, info.Sensitive)
}

func TestEmitStandaloneDirectiveIsNotInline(t *testing.T) {
	src := "<div>\n<% if admin? %>\n<p>x</p>\n<% end %>\n</div>"
	result, entries, _ := emitTemplate(t, src, config.Default())
	require.Len(t, entries, 2)

	for _, e := range entries {
		info, ok := result.Prints[e.ID]
		require.True(t, ok)
		assert.False(t, info.Inline, "standalone directive on its own line should not be Inline")
	}
}

func TestEmitSensitiveElementPreservesContentVerbatim(t *testing.T) {
	src := "<pre>  weird   spacing\n   here</pre>"
	result, _, _ := emitTemplate(t, src, config.Default())
	assert.Equal(t, "<pre>  weird   spacing\n   here</pre>\n", result.Output)
}

func TestEmitAttributePlaceholderRecordedInAttribute(t *testing.T) {
	src := `<div class="<%= klass %>">x</div>`
	result, entries, _ := emitTemplate(t, src, config.Default())
	require.Len(t, entries, 1)

	info, ok := result.Prints[entries[0].ID]
	require.True(t, ok)
	assert.True(t, info.InAttribute)
}

func TestEmitSingleTextChildStaysOneLine(t *testing.T) {
	src := "<span>\n  hello\n</span>"
	result, _, _ := emitTemplate(t, src, config.Default())
	assert.Equal(t, "<span>hello</span>\n", result.Output)
}

func TestEmitAggressiveCollapseInlinesMultilineText(t *testing.T) {
	cfg := config.Default()
	cfg.HTML.CollapseWhitespace = config.CollapseAggressive
	src := "<p>\n  hello\n  world\n</p>"
	result, _, _ := emitTemplate(t, src, cfg)
	assert.Equal(t, "<p>hello world</p>\n", result.Output)
}

func TestEmitPreserveCollapseKeepsInteriorSpacing(t *testing.T) {
	cfg := config.Default()
	cfg.HTML.CollapseWhitespace = config.CollapsePreserve
	src := "<div>\n  a    b\n</div>"
	result, _, _ := emitTemplate(t, src, cfg)
	assert.Equal(t, "<div>a    b</div>\n", result.Output)
}
