package emitter_test

import (
	"testing"

	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestAttributeWrappingPreservePreservesOriginalLinebreak(t *testing.T) {
	src := "<div\n  class=\"a\"\n  id=\"b\">x</div>"
	cfg := config.Default()
	cfg.HTML.AttributeWrapping = config.AttrPreserve

	result, _, _ := emitTemplate(t, src, cfg)
	assert.Contains(t, result.Output, "<div\n  class=\"a\"\n  id=\"b\"\n>")
}

func TestAttributeWrappingPreserveKeepsSingleLine(t *testing.T) {
	src := `<div class="a" id="b">x</div>`
	cfg := config.Default()
	cfg.HTML.AttributeWrapping = config.AttrPreserve

	result, _, _ := emitTemplate(t, src, cfg)
	assert.Contains(t, result.Output, `<div class="a" id="b">`)
}

func TestAttributeWrappingForceMultilineAlwaysBreaks(t *testing.T) {
	src := `<div class="a">x</div>`
	cfg := config.Default()
	cfg.HTML.AttributeWrapping = config.AttrForceMultiline

	result, _, _ := emitTemplate(t, src, cfg)
	assert.Contains(t, result.Output, "<div\n  class=\"a\"\n>")
}

func TestAttributeWrappingAutoBreaksPastLineWidth(t *testing.T) {
	width := 20
	src := `<div class="a-very-long-class-name-that-is-long">x</div>`
	cfg := config.Default()
	cfg.HTML.AttributeWrapping = config.AttrAuto
	cfg.HTML.LineWidth = &width

	result, _, _ := emitTemplate(t, src, cfg)
	assert.Contains(t, result.Output, "<div\n  class=\"a-very-long-class-name-that-is-long\"\n>")
}

func TestAttributeWrappingAutoKeepsShortTagInline(t *testing.T) {
	width := 100
	src := `<div class="a">x</div>`
	cfg := config.Default()
	cfg.HTML.AttributeWrapping = config.AttrAuto
	cfg.HTML.LineWidth = &width

	result, _, _ := emitTemplate(t, src, cfg)
	assert.Contains(t, result.Output, `<div class="a">`)
}

func TestAttributeWrappingMultipleAttributesOnOwnLines(t *testing.T) {
	src := `<div class="a" id="b">x</div>`
	cfg := config.Default()
	cfg.HTML.AttributeWrapping = config.AttrForceMultiline

	result, entries, _ := emitTemplate(t, src, cfg)
	assert.Empty(t, entries)
	assert.Contains(t, result.Output, "<div\n  class=\"a\"\n  id=\"b\"\n>")
}
