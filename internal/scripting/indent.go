// Package scripting implements the Scripting Indent Analyzer (§4.6): for
// a logic-flavor directive, it classifies how much the directive's own
// line and subsequent content should shift, using the scripting grammar's
// parse subtree when available and a keyword-prefix heuristic otherwise.
package scripting

import (
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/region"
)

// Delta is the {before, after} indent-shift pair (§3 GLOSSARY).
type Delta struct {
	Before int
	After  int
}

// containerKinds are traversed through to find the first significant node
// (§4.6).
var containerKinds = map[string]bool{
	"program":        true,
	"body_statement": true,
	"then":           true,
	"else":           true,
}

// blockOpenerKinds start a construct that indents its body (§4.6 rule 1).
var blockOpenerKinds = map[string]bool{
	"if": true, "unless": true, "while": true, "until": true, "for": true,
	"case": true, "begin": true, "class": true,
	"singleton_class": true, "module": true, "method": true,
	"singleton_method": true, "lambda": true,
}

// branchContinuationKinds resume the enclosing block at the same level and
// open a new one (§4.6 rule 3).
var branchContinuationKinds = map[string]bool{
	"else": true, "elsif": true, "when": true, "rescue": true, "ensure": true,
}

// blockExpressionKinds are do/brace-block expressions (§4.6 rule 4).
var blockExpressionKinds = map[string]bool{
	"do_block": true, "block": true,
}

// Classify computes the indent delta for a logic-flavor region. Only
// logic directives participate; output and comment directives always
// yield {0, 0} (§4.6).
func Classify(r region.Region) Delta {
	if r.Flavor != region.FlavorLogic {
		return Delta{}
	}
	if r.ParseTree != nil {
		if node, ok := firstSignificantNode(r.ParseTree.RootNode()); ok && node.Kind() != "ERROR" {
			return classifyNode(node)
		}
	}
	// No usable parse subtree — either the grammar produced nothing worth
	// classifying (isolated closing keywords like "end" never parse as a
	// complete statement on their own) or it recovered with a bare ERROR
	// node. Either way the keyword-prefix heuristic is the fallback (§4.6
	// rule 6).
	return classifyFallback(r.Code)
}

func firstSignificantNode(node grammar.Node) (grammar.Node, bool) {
	count := node.NamedChildCount()
	if count == 0 {
		return grammar.Node{}, false
	}
	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		if containerKinds[child.Kind()] {
			if n, ok := firstSignificantNode(child); ok {
				return n, true
			}
			continue
		}
		return child, true
	}
	return grammar.Node{}, false
}

func classifyNode(node grammar.Node) Delta {
	kind := node.Kind()

	switch {
	case blockOpenerKinds[kind]:
		// Rule 2: the grammar already distinguishes a trailing-modifier
		// conditional ("x if y") from the block form by node kind —
		// "if_modifier"/"unless_modifier" rather than "if"/"unless" — so
		// nothing here needs to inspect the node's body.
		return Delta{0, 1}
	case branchContinuationKinds[kind]:
		return Delta{-1, 1}
	case blockExpressionKinds[kind]:
		return Delta{0, 1}
	case kind == "call" || kind == "method_call":
		if callHasDoBlock(node) {
			return Delta{0, 1}
		}
		return Delta{0, 0}
	default:
		return Delta{0, 0}
	}
}

func callHasDoBlock(node grammar.Node) bool {
	for _, c := range node.NamedChildren() {
		if c.Kind() == "do_block" {
			return true
		}
	}
	return false
}

// classifyFallback applies the keyword-prefix heuristic (§4.6 rule 6) when
// no parse subtree is available (empty code, or the scripting grammar
// failed to produce one).
func classifyFallback(code string) Delta {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Delta{}
	}
	firstWord := leadingWord(trimmed)

	switch {
	case firstWord == "end":
		return Delta{-1, 0}
	case firstWord == "else" || firstWord == "elsif" || firstWord == "when" ||
		firstWord == "rescue" || firstWord == "ensure":
		return Delta{-1, 1}
	case firstWord == "if" || firstWord == "unless" || firstWord == "while" ||
		firstWord == "until" || firstWord == "for" || firstWord == "case" ||
		firstWord == "class" || firstWord == "module" || firstWord == "begin" ||
		firstWord == "def":
		return Delta{0, 1}
	case endsWithDoBlock(trimmed):
		return Delta{0, 1}
	default:
		return Delta{}
	}
}

func leadingWord(s string) string {
	i := strings.IndexAny(s, " \t\n(")
	if i < 0 {
		return s
	}
	return s[:i]
}

func endsWithDoBlock(s string) bool {
	if strings.HasSuffix(s, "do") {
		return true
	}
	if idx := strings.LastIndex(s, "do |"); idx >= 0 {
		return strings.HasSuffix(strings.TrimSpace(s), "|")
	}
	return false
}
