// Package analyzer implements the Placeholder Analyzer (§4.4): it parses
// the placeholder document with the HTML grammar and confirms every
// placeholder token survived the parse with an enclosing node, so the
// Structural Emitter that follows can walk a tree it knows is sound. The
// Emitter derives each token's own depth/inline/attribute/sensitive
// context directly from its print traversal (it already has that for
// free as it walks); re-deriving the same facts here via a second,
// independent ancestor walk would just be a second source of truth to
// keep in sync, so this stage's job ends at locate-and-validate.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/diag"
	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/placeholder"
)

// Result bundles the parsed tree with any diagnostics raised while
// locating each placeholder token in the parse.
type Result struct {
	Tree         *grammar.Tree
	Diagnostics  diag.List
	HasHTMLError bool
}

// Analyze parses doc.HTML with the HTML grammar and confirms every
// placeholder token resolves to an enclosing node (§4.4).
func Analyze(facade *grammar.Facade, doc placeholder.Document) Result {
	tree := facade.ParseHTML([]byte(doc.HTML))
	result := Result{Tree: tree}

	if tree == nil {
		result.HasHTMLError = true
		result.Diagnostics = append(result.Diagnostics, diag.Diagnostic{
			RegionIndex: -1,
			Severity:    diag.Error,
			Message:     "html parse error in placeholder document: parser returned no tree",
		})
		return result
	}

	if tree.HasError() {
		result.HasHTMLError = true
		result.Diagnostics = append(result.Diagnostics, diag.Diagnostic{
			RegionIndex: -1,
			Severity:    diag.Error,
			Message:     "html parse error in placeholder document",
		})
	}

	root := tree.RootNode()
	cursor := 0
	for _, entry := range doc.Placeholders {
		idx := strings.Index(doc.HTML[cursor:], entry.Token)
		if idx < 0 {
			result.Diagnostics = append(result.Diagnostics, diag.Diagnostic{
				RegionIndex: entry.RegionIndex,
				Severity:    diag.Error,
				Message:     fmt.Sprintf("placeholder token %q not found in placeholder document", entry.Token),
			})
			continue
		}
		start := cursor + idx
		end := start + len(entry.Token)
		cursor = end

		if _, ok := root.DescendantForByteRange(uint(start), uint(end)); !ok {
			result.Diagnostics = append(result.Diagnostics, diag.Diagnostic{
				RegionIndex: entry.RegionIndex,
				Severity:    diag.Error,
				Message:     fmt.Sprintf("placeholder token %q has no enclosing html node", entry.Token),
			})
		}
	}

	return result
}
