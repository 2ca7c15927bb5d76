package emitter

import (
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/ryancbahan/erb-fmt/internal/grammar"
)

// renderOpenTag renders a start tag (or self-closing tag) at depth,
// including the leading indent, and reports whether it was laid out
// multi-line. The returned string ends at the closing '>' (or '/>') with
// no trailing newline — callers decide what follows on the same or a new
// line (§4.5 Attribute layout).
func (p *printer) renderOpenTag(startTag grammar.Node, tagName string, depth int, selfClosing bool) (string, bool) {
	attrNodes := attributeNodes(startTag)
	attrs := make([]string, 0, len(attrNodes))
	for _, a := range attrNodes {
		attrs = append(attrs, p.normalizeAttribute(a, depth))
	}

	multiline := p.wantsMultilineAttrs(attrNodes, attrs, tagName, depth, selfClosing)

	var sb strings.Builder
	sb.WriteString(p.cfg.Indent(depth))
	sb.WriteString("<")
	sb.WriteString(tagName)

	if len(attrs) == 0 {
		if selfClosing {
			sb.WriteString(" />")
		} else {
			sb.WriteString(">")
		}
		return sb.String(), false
	}

	if multiline {
		for _, a := range attrs {
			sb.WriteString("\n")
			sb.WriteString(p.cfg.Indent(depth + 1))
			sb.WriteString(a)
		}
		sb.WriteString("\n")
		sb.WriteString(p.cfg.Indent(depth))
		if selfClosing {
			sb.WriteString("/>")
		} else {
			sb.WriteString(">")
		}
		return sb.String(), true
	}

	for _, a := range attrs {
		sb.WriteString(" ")
		sb.WriteString(a)
	}
	if selfClosing {
		sb.WriteString(" />")
	} else {
		sb.WriteString(">")
	}
	return sb.String(), false
}

func attributeNodes(startTag grammar.Node) []grammar.Node {
	var out []grammar.Node
	for _, c := range startTag.NamedChildren() {
		if c.Kind() == "attribute" {
			out = append(out, c)
		}
	}
	return out
}

// normalizeAttribute trims an attribute's surrounding whitespace and
// collapses whitespace around '=', without touching the quoted value's
// byte content (§4.5, §9 "Whitespace normalisation"). Any placeholder
// token inside the attribute is recorded in-place.
func (p *printer) normalizeAttribute(attr grammar.Node, depth int) string {
	raw := strings.TrimSpace(attr.Text())
	eq := strings.IndexByte(raw, '=')

	var normalized string
	if eq < 0 {
		normalized = raw
	} else {
		name := strings.TrimSpace(raw[:eq])
		value := strings.TrimSpace(raw[eq+1:])
		normalized = name + "=" + value
	}

	p.recordTokens(normalized, 0, true, true, false, false)
	return normalized
}

// wantsMultilineAttrs implements the policy selection in §4.5: preserve
// follows whether the original source had a line break between the first
// and last attribute; auto additionally breaks when the inlined tag would
// exceed html.line_width; force-multi-line always breaks when attributes
// are present.
func (p *printer) wantsMultilineAttrs(attrNodes []grammar.Node, attrs []string, tagName string, depth int, selfClosing bool) bool {
	if len(attrNodes) == 0 {
		return false
	}

	hadNewline := p.originalSpanHadNewline(attrNodes)

	switch p.cfg.HTML.AttributeWrapping {
	case config.AttrForceMultiline:
		return true
	case config.AttrAuto:
		if hadNewline {
			return true
		}
		if p.cfg.HTML.LineWidth == nil {
			return false
		}
		return p.estimateInlineWidth(tagName, attrs, depth, selfClosing) > *p.cfg.HTML.LineWidth
	default: // AttrPreserve
		return hadNewline
	}
}

// originalSpanHadNewline reads the source slice between the first and
// last attribute BEFORE any collapsing, per §9's note that preserve mode
// must consult the original text.
func (p *printer) originalSpanHadNewline(attrNodes []grammar.Node) bool {
	if len(attrNodes) == 0 {
		return false
	}
	first := attrNodes[0].Range()
	last := attrNodes[len(attrNodes)-1].Range()
	span := p.doc[first.Start.Offset:last.End.Offset]
	return strings.Contains(span, "\n")
}

func (p *printer) estimateInlineWidth(tagName string, attrs []string, depth int, selfClosing bool) int {
	width := len(p.cfg.IndentUnit()) * depth
	width += len("<") + len(tagName)
	for _, a := range attrs {
		width += 1 + len(a) // leading space
	}
	if selfClosing {
		width += len(" />")
	} else {
		width += len(">")
	}
	return width
}
