package region

import (
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/source"
)

// delimiters for the three directive flavors (§1). The embedded-template
// grammar doesn't expose the delimiter tokens as named nodes, so they are
// derived from the directive's flavor rather than read from its text.
const closeDelim = "%>"

func openDelimFor(flavor Flavor) string {
	switch flavor {
	case FlavorOutput:
		return "<%="
	case FlavorComment:
		return "<%#"
	default:
		return "<%"
	}
}

// Segment walks the template tree's top-level named children in source
// order, mapping each to a Region variant (§4.2). facade is used to parse
// the trimmed code of each scripting region with the scripting grammar.
func Segment(src []byte, tree *grammar.Tree, facade *grammar.Facade) List {
	root := tree.RootNode()
	children := root.NamedChildren()
	out := make(List, 0, len(children))

	for _, child := range children {
		r := child.Range()
		text := string(src[r.Start.Offset:r.End.Offset])

		switch child.Kind() {
		case "content":
			out = append(out, Region{
				Kind:  KindHTML,
				Range: r,
				Text:  text,
			})

		case "directive", "output_directive", "comment_directive":
			flavor := flavorFor(child.Kind())
			out = append(out, buildScriptingRegion(src, child, r, text, flavor, facade))

		default:
			out = append(out, Region{
				Kind:     KindUnknown,
				Range:    r,
				Text:     text,
				NodeKind: child.Kind(),
			})
		}
	}

	return out
}

func flavorFor(kind string) Flavor {
	switch kind {
	case "directive":
		return FlavorLogic
	case "output_directive":
		return FlavorOutput
	case "comment_directive":
		return FlavorComment
	default:
		return FlavorUnknown
	}
}

func buildScriptingRegion(src []byte, node grammar.Node, r source.Range, text string, flavor Flavor, facade *grammar.Facade) Region {
	reg := Region{
		Kind:       KindScripting,
		Range:      r,
		Text:       text,
		Flavor:     flavor,
		OpenDelim:  openDelimFor(flavor),
		CloseDelim: closeDelim,
	}

	codeNode, ok := findCodeChild(node)
	if !ok {
		return reg
	}

	codeRange := codeNode.Range()
	trimmed := strings.TrimSpace(codeNode.Text())
	if trimmed == "" {
		return reg
	}

	reg.Code = trimmed
	reg.CodeRange = codeRange
	reg.HasCodeRange = true

	if flavor == FlavorLogic {
		// Grammars typically require a trailing terminator; append one so
		// the scripting parse doesn't choke on a dangling statement.
		parseSrc := append([]byte(trimmed), '\n')
		reg.ParseTree = facade.ParseScripting(parseSrc)
	}

	return reg
}

func findCodeChild(node grammar.Node) (grammar.Node, bool) {
	if c, ok := node.ChildForField("code"); ok {
		return c, true
	}
	for _, c := range node.NamedChildren() {
		if c.Kind() == "code" {
			return c, true
		}
	}
	return grammar.Node{}, false
}
