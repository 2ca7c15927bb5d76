// Package region implements the Region Segmenter (§4.2): it walks the
// embedded-template parse tree and produces an ordered list of regions
// that tile the source exactly.
package region

import (
	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/source"
)

// Kind discriminates the three region variants described in §3.
type Kind int

const (
	KindHTML Kind = iota
	KindScripting
	KindUnknown
)

// Flavor classifies a scripting region (§3, GLOSSARY).
type Flavor int

const (
	FlavorLogic Flavor = iota
	FlavorOutput
	FlavorComment
	FlavorUnknown
)

func (f Flavor) String() string {
	switch f {
	case FlavorLogic:
		return "logic"
	case FlavorOutput:
		return "output"
	case FlavorComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Region is the sum-of-three-variants type from §3. Only the fields
// relevant to Kind are populated; the rest hold zero values.
type Region struct {
	Kind  Kind
	Range source.Range
	Text  string

	// Scripting fields.
	Flavor       Flavor
	OpenDelim    string
	CloseDelim   string
	Code         string
	CodeRange    source.Range
	HasCodeRange bool
	ParseTree    *grammar.Tree

	// Unknown fields.
	NodeKind string
}

// Close releases any parse tree the region owns. Safe to call on regions
// without one.
func (r *Region) Close() {
	if r.ParseTree != nil {
		r.ParseTree.Close()
		r.ParseTree = nil
	}
}

// List is an ordered region list. Concatenating every region's Text
// reproduces the source exactly (§3 invariant, §8 property 1).
type List []Region

// Close releases every region's owned parse tree.
func (l List) Close() {
	for i := range l {
		l[i].Close()
	}
}

// Concat reconstructs the original source by concatenating each region's
// text in order. Used by tests to assert the tiling invariant.
func (l List) Concat() string {
	total := 0
	for _, r := range l {
		total += len(r.Text)
	}
	out := make([]byte, 0, total)
	for _, r := range l {
		out = append(out, r.Text...)
	}
	return string(out)
}

// ScriptingCount returns the number of scripting regions, which must equal
// the placeholder count (§8 property 3).
func (l List) ScriptingCount() int {
	n := 0
	for _, r := range l {
		if r.Kind == KindScripting {
			n++
		}
	}
	return n
}
