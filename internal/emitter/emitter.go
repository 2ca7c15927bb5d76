// Package emitter implements the Structural Emitter (§4.5): it walks the
// placeholder document's HTML tree and prints a re-indented, attribute-
// aware rendering, tracking where every placeholder token ends up printed.
package emitter

import (
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/htmlkind"
	"github.com/ryancbahan/erb-fmt/internal/htmlnode"
	"github.com/ryancbahan/erb-fmt/internal/placeholder"
)

// PrintInfo is one placeholder's occurrence record in print order (§3
// PlaceholderPrintInfo).
type PrintInfo struct {
	IndentationLevel int
	Inline           bool
	InAttribute      bool
	Sensitive        bool
}

// VerbatimRange is a byte range in Result.Output copied unchanged from a
// whitespace-sensitive element's inner content (§4.5). The Composer must
// not apply its scripting-indent HTML-fragment reindentation inside these
// ranges (§1 out-of-scope: no rewriting inside sensitive elements; §8
// property 8).
type VerbatimRange struct {
	Start, End int
}

// Result is the emitted text plus every placeholder's print info, keyed by
// Entry.ID.
type Result struct {
	Output   string
	Prints   map[int]PrintInfo
	Verbatim []VerbatimRange
}

// Emit prints tree (parsed from a placeholder document) per cfg.
func Emit(tree *grammar.Tree, documentHTML string, cfg config.Config) Result {
	p := &printer{cfg: cfg, doc: documentHTML, prints: make(map[int]PrintInfo)}
	root := tree.RootNode()
	p.emitBlockChildren(root.NamedChildren(), 0)

	out := p.sb.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return Result{Output: out, Prints: p.prints, Verbatim: p.verbatim}
}

type printer struct {
	cfg      config.Config
	doc      string
	sb       strings.Builder
	prints   map[int]PrintInfo
	verbatim []VerbatimRange
}

func (p *printer) writeLine(depth int, s string) {
	if s == "" {
		return
	}
	p.sb.WriteString(p.cfg.Indent(depth))
	p.sb.WriteString(s)
	p.sb.WriteString("\n")
}

// recordTokens scans s for placeholder tokens and records a print info for
// each, all sharing the given attributes. When soloOverride is set and s
// (trimmed) IS exactly one token, that token is recorded with Inline=false
// instead — it is a scripting directive standing alone on its own block
// line (§4.7's "directive on its own line" case), not text flowing inline.
// soloOverride is only passed from a genuinely standalone block-text
// context; inline/attribute/sensitive callers always mean what they say.
func (p *printer) recordTokens(s string, depth int, inline, inAttribute, sensitive, soloOverride bool) {
	matches := placeholder.TokenPattern.FindAllString(s, -1)
	solo := soloOverride && len(matches) == 1 && matches[0] == strings.TrimSpace(s)
	for _, m := range matches {
		id, ok := placeholder.ParseTokenID(m)
		if !ok {
			continue
		}
		info := PrintInfo{IndentationLevel: depth, Inline: inline, InAttribute: inAttribute, Sensitive: sensitive}
		if solo {
			info.Inline = false
		}
		p.prints[id] = info
	}
}

// emitBlockChildren prints a list of sibling nodes, each as its own
// block-level unit at depth.
func (p *printer) emitBlockChildren(children []grammar.Node, depth int) {
	for _, c := range children {
		switch c.Kind() {
		case "element":
			p.emitElement(c, depth)
		case "script_element", "style_element":
			p.emitSensitiveNamed(c, depth)
		case "doctype":
			p.writeLine(depth, strings.TrimSpace(c.Text()))
		case "comment":
			p.emitLeafVerbatim(c, depth)
		case "text":
			p.emitBlockText(c, depth)
		default:
			// erroneous_end_tag or any unrecognised node: pass the raw text
			// through rather than dropping content on the floor.
			p.emitLeafVerbatim(c, depth)
		}
	}
}

func (p *printer) emitLeafVerbatim(node grammar.Node, depth int) {
	text := strings.TrimSpace(node.Text())
	if text == "" {
		return
	}
	p.recordTokens(text, depth, true, false, false, false)
	p.writeLine(depth, text)
}

// emitBlockText prints a standalone text node. Each resulting line is
// emitted at depth; a line whose entire (trimmed) content is a single
// placeholder token is a standalone scripting directive (§4.7), recorded
// with Inline=false so the Composer applies its indent-delta logic.
func (p *printer) emitBlockText(node grammar.Node, depth int) {
	collapsed := collapseText(node.Text(), p.cfg.HTML.CollapseWhitespace)
	if collapsed == "" {
		return
	}
	for _, line := range strings.Split(collapsed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p.recordTokens(line, depth, true, false, false, true)
		p.writeLine(depth, line)
	}
}

// contentChildren returns node's children excluding its own tag nodes.
func contentChildren(node grammar.Node) []grammar.Node {
	all := node.NamedChildren()
	out := make([]grammar.Node, 0, len(all))
	for _, c := range all {
		switch c.Kind() {
		case "start_tag", "end_tag", "self_closing_tag":
			continue
		}
		out = append(out, c)
	}
	return out
}

func (p *printer) emitElement(node grammar.Node, depth int) {
	tagName := htmlnode.TagName(node)

	if startTag, ok := htmlnode.FirstChildOfKind(node, "self_closing_tag"); ok {
		rendered, _ := p.renderOpenTag(startTag, tagName, depth, true)
		p.sb.WriteString(rendered)
		p.sb.WriteString("\n")
		return
	}

	startTag, hasStart := htmlnode.FirstChildOfKind(node, "start_tag")
	if !hasStart {
		// No start tag at all (shouldn't happen for a well-formed element);
		// fall back to verbatim passthrough so content isn't lost.
		p.emitLeafVerbatim(node, depth)
		return
	}

	if htmlkind.Void.Has(tagName) {
		rendered, _ := p.renderOpenTag(startTag, tagName, depth, false)
		p.sb.WriteString(rendered)
		p.sb.WriteString("\n")
		return
	}

	if htmlkind.Sensitive.Has(tagName) {
		p.emitSensitiveElement(node, startTag, tagName, depth)
		return
	}

	children := contentChildren(node)
	if single, ok := singleInlineableText(children, p.cfg.HTML.CollapseWhitespace); ok {
		p.emitInlineElement(startTag, tagName, single, depth)
		return
	}

	rendered, _ := p.renderOpenTag(startTag, tagName, depth, false)
	p.sb.WriteString(rendered)
	p.sb.WriteString("\n")
	p.emitBlockChildren(children, depth+1)
	p.writeLine(depth, "</"+tagName+">")
}

// singleInlineableText implements §4.5's "all children collectively form a
// single text node" shortcut, extended per §9's open question to a lone
// placeholder-only text node as well — either way the content collapses to
// one line.
func singleInlineableText(children []grammar.Node, mode config.CollapseWhitespace) (string, bool) {
	if len(children) != 1 || children[0].Kind() != "text" {
		return "", false
	}
	collapsed := collapseText(children[0].Text(), mode)
	if strings.Contains(collapsed, "\n") {
		return "", false
	}
	return collapsed, true
}

func (p *printer) emitInlineElement(startTag grammar.Node, tagName, body string, depth int) {
	rendered, multiline := p.renderOpenTag(startTag, tagName, depth, false)
	p.sb.WriteString(rendered)
	if multiline {
		p.sb.WriteString("\n")
		p.sb.WriteString(p.cfg.Indent(depth))
	}
	p.recordTokens(body, depth, true, false, false, false)
	p.sb.WriteString(body)
	p.sb.WriteString("</")
	p.sb.WriteString(tagName)
	p.sb.WriteString(">\n")
}

// emitSensitiveNamed handles script_element/style_element nodes, whose
// inner content is a raw_text node rather than ordinary text/element
// children, but which are otherwise whitespace-sensitive like any element
// in htmlkind.Sensitive.
func (p *printer) emitSensitiveNamed(node grammar.Node, depth int) {
	tagName := htmlnode.TagName(node)
	if tagName == "" {
		if node.Kind() == "script_element" {
			tagName = "script"
		} else {
			tagName = "style"
		}
	}
	startTag, hasStart := htmlnode.FirstChildOfKind(node, "start_tag")
	if !hasStart {
		p.emitLeafVerbatim(node, depth)
		return
	}
	p.emitSensitiveElement(node, startTag, tagName, depth)
}

// emitSensitiveElement copies an element's inner byte range verbatim from
// the placeholder document (§4.5 whitespace-sensitive elements, §8
// property 8). The inner slice runs from the start tag's end to the end
// tag's start, so it already carries whatever whitespace (including any
// leading/trailing newline) separated it from both tags in the source —
// nothing is added around it beyond the block terminator newline every
// emitted element gets.
func (p *printer) emitSensitiveElement(node, startTag grammar.Node, tagName string, depth int) {
	rendered, _ := p.renderOpenTag(startTag, tagName, depth, false)
	p.sb.WriteString(rendered)

	innerStart := startTag.Range().End.Offset
	innerEnd := node.Range().End.Offset
	hasEnd := false
	if endTag, ok := htmlnode.FirstChildOfKind(node, "end_tag"); ok {
		innerEnd = endTag.Range().Start.Offset
		hasEnd = true
	}

	inner := p.doc[innerStart:innerEnd]
	verbatimStart := p.sb.Len()
	p.sb.WriteString(inner)
	p.verbatim = append(p.verbatim, VerbatimRange{Start: verbatimStart, End: p.sb.Len()})
	p.recordTokens(inner, depth+1, true, false, true, false)

	if hasEnd {
		p.sb.WriteString("</")
		p.sb.WriteString(tagName)
		p.sb.WriteString(">")
	}
	p.sb.WriteString("\n")
}
