package placeholder_test

import (
	"testing"

	"github.com/ryancbahan/erb-fmt/internal/placeholder"
	"github.com/ryancbahan/erb-fmt/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIsUnambiguousUnderSubstringSearch(t *testing.T) {
	// A token for id 1 must never substring-match inside the token for
	// id 12, or the left-to-right scans in the Analyzer/Composer could
	// misattribute the wrong region.
	one := placeholder.Token(1)
	twelve := placeholder.Token(12)
	assert.False(t, contains(twelve, one))
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func TestParseTokenID(t *testing.T) {
	id, ok := placeholder.ParseTokenID(placeholder.Token(42))
	require.True(t, ok)
	assert.Equal(t, 42, id)

	_, ok = placeholder.ParseTokenID("not a token")
	assert.False(t, ok)
}

func TestBuildReplacesScriptingRegionsOnly(t *testing.T) {
	regions := region.List{
		{Kind: region.KindHTML, Text: "<div>"},
		{Kind: region.KindScripting, Text: "<%= x %>"},
		{Kind: region.KindHTML, Text: "</div>"},
	}

	doc := placeholder.Build(regions)

	require.Len(t, doc.Placeholders, 1)
	assert.Equal(t, 0, doc.Placeholders[0].ID)
	assert.Equal(t, 1, doc.Placeholders[0].RegionIndex)
	assert.Equal(t, "<div>"+placeholder.Token(0)+"</div>", doc.HTML)
}

func TestBuildAssignsSequentialIDsInOrder(t *testing.T) {
	regions := region.List{
		{Kind: region.KindScripting, Text: "<% a %>"},
		{Kind: region.KindHTML, Text: " "},
		{Kind: region.KindScripting, Text: "<% b %>"},
	}

	doc := placeholder.Build(regions)
	require.Len(t, doc.Placeholders, 2)
	assert.Equal(t, 0, doc.Placeholders[0].ID)
	assert.Equal(t, 1, doc.Placeholders[1].ID)
	assert.Equal(t, 0, doc.Placeholders[0].RegionIndex)
	assert.Equal(t, 2, doc.Placeholders[1].RegionIndex)
}

func TestRestoreRoundTrip(t *testing.T) {
	regions := region.List{
		{Kind: region.KindHTML, Text: "<p>"},
		{Kind: region.KindScripting, Text: "<%= greeting %>"},
		{Kind: region.KindHTML, Text: "</p>"},
	}

	doc := placeholder.Build(regions)
	restored := placeholder.Restore(doc.HTML, doc.Placeholders, regions)
	assert.Equal(t, regions.Concat(), restored)
}

func TestRestoreWithReorderedPrintedTokens(t *testing.T) {
	// Simulate the Composer/Emitter printing tokens out of their original
	// substitution order (e.g. after indentation shuffles lines around) —
	// Restore must still resolve each token by its own RegionIndex.
	regions := region.List{
		{Kind: region.KindScripting, Text: "<% a %>"},
		{Kind: region.KindScripting, Text: "<% b %>"},
	}
	doc := placeholder.Build(regions)

	printed := doc.Placeholders[1].Token + "\n" + doc.Placeholders[0].Token
	reordered := []placeholder.Entry{doc.Placeholders[1], doc.Placeholders[0]}

	restored := placeholder.Restore(printed, reordered, regions)
	assert.Equal(t, "<% b %>\n<% a %>", restored)
}
