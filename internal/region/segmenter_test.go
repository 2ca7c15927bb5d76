package region_test

import (
	"testing"

	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(t *testing.T, src string) region.List {
	t.Helper()
	facade, err := grammar.NewFacade()
	require.NoError(t, err)

	tree := facade.ParseTemplate([]byte(src))
	require.NotNil(t, tree)
	t.Cleanup(tree.Close)

	regions := region.Segment([]byte(src), tree, facade)
	t.Cleanup(regions.Close)
	return regions
}

func TestSegmentTilesSourceExactly(t *testing.T) {
	src := "<div>\n  <%= user.name %>\n  <% if admin? %>\n    <p>admin</p>\n  <% end %>\n</div>\n"
	regions := segment(t, src)
	assert.Equal(t, src, regions.Concat())
}

func TestSegmentClassifiesFlavors(t *testing.T) {
	src := "<%= output %><% logic %><%# comment %>"
	regions := segment(t, src)

	require.Equal(t, 3, regions.ScriptingCount())
	assert.Equal(t, region.FlavorOutput, regions[0].Flavor)
	assert.Equal(t, region.FlavorLogic, regions[1].Flavor)
	assert.Equal(t, region.FlavorComment, regions[2].Flavor)

	assert.Equal(t, "<%=", regions[0].OpenDelim)
	assert.Equal(t, "<%", regions[1].OpenDelim)
	assert.Equal(t, "<%#", regions[2].OpenDelim)
	for _, r := range regions {
		assert.Equal(t, "%>", r.CloseDelim)
	}
}

func TestSegmentTrimsCode(t *testing.T) {
	src := "<%=   user.name.upcase   %>"
	regions := segment(t, src)
	require.Len(t, regions, 1)
	assert.Equal(t, "user.name.upcase", regions[0].Code)
}

func TestSegmentLogicRegionHasScriptingParseTree(t *testing.T) {
	src := "<% if admin? %>"
	regions := segment(t, src)
	require.Len(t, regions, 1)
	assert.NotNil(t, regions[0].ParseTree)
}

func TestSegmentOutputRegionHasNoScriptingParseTree(t *testing.T) {
	src := "<%= name %>"
	regions := segment(t, src)
	require.Len(t, regions, 1)
	assert.Nil(t, regions[0].ParseTree)
}

func TestSegmentHTMLContentPreserved(t *testing.T) {
	src := "plain text <%= x %> more text"
	regions := segment(t, src)
	require.Len(t, regions, 3)
	assert.Equal(t, region.KindHTML, regions[0].Kind)
	assert.Equal(t, "plain text ", regions[0].Text)
	assert.Equal(t, region.KindHTML, regions[2].Kind)
	assert.Equal(t, " more text", regions[2].Text)
}
