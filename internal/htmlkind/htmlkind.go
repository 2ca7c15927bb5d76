// Package htmlkind holds the fixed HTML element-name tables the Structural
// Emitter classifies against (§4.5), built on the teacher's generic Set[T]
// (internal/collections).
package htmlkind

import "github.com/ryancbahan/erb-fmt/internal/collections"

// Void is the set of elements with no closing tag.
var Void = collections.NewSet(
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
)

// Sensitive is the set of whitespace-sensitive elements whose inner byte
// range is copied verbatim.
var Sensitive = collections.NewSet(
	"pre", "code", "textarea", "script", "style",
)

// Inline is the set of inline element names. The Structural Emitter does
// not consult it: an element's content goes on its open tag's line only
// when the element has a single text child, whatever its name.
var Inline = collections.NewSet(
	"a", "abbr", "acronym", "b", "bdo", "big", "br", "button", "cite",
	"code", "dfn", "em", "i", "img", "input", "kbd", "label", "mark",
	"q", "samp", "small", "span", "strong", "sub", "sup", "textarea",
	"time", "var",
)
