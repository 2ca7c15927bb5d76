package erbfmt_test

import (
	"testing"

	erbfmt "github.com/ryancbahan/erb-fmt"
	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacade(t *testing.T) *grammar.Facade {
	t.Helper()
	facade, err := grammar.NewFacade()
	require.NoError(t, err)
	return facade
}

func TestFormatBasicDocument(t *testing.T) {
	facade := newFacade(t)
	src := "<div><p>hi</p></div>"

	result := erbfmt.Format(facade, []byte(src), config.Default())
	assert.Equal(t, "<div>\n  <p>hi</p>\n</div>\n", result.Output)
	assert.Empty(t, result.Diagnostics)
}

func TestFormatIsIdempotent(t *testing.T) {
	facade := newFacade(t)
	src := "<div>\n<% if admin? %>\n<p>secret</p>\n<% end %>\n</div>\n"

	first := erbfmt.Format(facade, []byte(src), config.Default())
	second := erbfmt.Format(facade, []byte(first.Output), config.Default())

	assert.Equal(t, first.Output, second.Output)
}

func TestFormatPreservesScriptingCode(t *testing.T) {
	facade := newFacade(t)
	src := "<p><%= user.name.upcase %></p>"

	result := erbfmt.Format(facade, []byte(src), config.Default())
	assert.Contains(t, result.Output, "<%= user.name.upcase %>")
}

func TestFormatPreservesSensitiveElementVerbatim(t *testing.T) {
	facade := newFacade(t)
	src := "<pre>  keep   this    exactly\n     as is</pre>"

	result := erbfmt.Format(facade, []byte(src), config.Default())
	assert.Contains(t, result.Output, "  keep   this    exactly\n     as is")
}

func TestFormatSegmentsTileSource(t *testing.T) {
	facade := newFacade(t)
	src := "<div><%= a %><% if b %><%# c %><% end %></div>"

	result := erbfmt.Format(facade, []byte(src), config.Default())
	assert.Equal(t, src, result.Segments.Concat())
}

func TestFormatResolvedConfigIsEcho(t *testing.T) {
	facade := newFacade(t)
	cfg := config.Default()
	cfg.Indentation.Size = 4

	result := erbfmt.Format(facade, []byte("<p>x</p>"), cfg)
	assert.Equal(t, cfg, result.ResolvedConfig)
}
