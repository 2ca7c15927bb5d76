// Package placeholder implements the Placeholder Builder (§4.3): it turns
// a region list into a placeholder document — HTML text with every
// scripting directive replaced by a unique sentinel token — plus the
// registry needed to restore the original text later.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/region"
)

// TokenPattern matches any placeholder token and captures its numeric id.
// The Structural Emitter and Composer both use it to recover an Entry.ID
// straight out of printed text, without needing a token->entry lookup map.
var TokenPattern = regexp.MustCompile(`ERBFMT_(\d+)_END`)

// ParseTokenID extracts the numeric id from a token previously produced by
// Token, or ok=false if s is not a well-formed token.
func ParseTokenID(s string) (id int, ok bool) {
	m := TokenPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// tokenPrefix/tokenSuffix bound placeholder tokens so they are valid HTML
// text and valid inside a quoted attribute value: no '<', '>', '"', or
// "'" anywhere in either. The suffix anchors the decimal id so two ids
// whose digits prefix one another (1 and 12) never collide during the
// left-to-right scan in the Analyzer.
const (
	tokenPrefix = "ERBFMT_"
	tokenSuffix = "_END"
)

// Entry records where one scripting region's token sits in the document
// (§3 PlaceholderEntry).
type Entry struct {
	ID          int
	RegionIndex int
	Token       string
}

// Document is the placeholder-substituted text plus the ordered entry list
// (§3 PlaceholderDocument).
type Document struct {
	HTML         string
	Placeholders []Entry
}

// Token formats the sentinel token for a given sequential id.
func Token(id int) string {
	return tokenPrefix + strconv.Itoa(id) + tokenSuffix
}

// Build replaces every scripting region in regions with a fresh token,
// copying HTML and unknown regions verbatim (§4.3).
func Build(regions region.List) Document {
	var sb strings.Builder
	entries := make([]Entry, 0, regions.ScriptingCount())
	nextID := 0

	for i, r := range regions {
		switch r.Kind {
		case region.KindScripting:
			tok := Token(nextID)
			entries = append(entries, Entry{ID: nextID, RegionIndex: i, Token: tok})
			sb.WriteString(tok)
			nextID++
		default:
			sb.WriteString(r.Text)
		}
	}

	return Document{HTML: sb.String(), Placeholders: entries}
}

// Restore performs single-occurrence, left-to-right substitution of each
// entry's token back to its region's original text, reconstructing the
// source exactly (§4.3 round-trip law, §8 property 2).
func Restore(documentHTML string, entries []Entry, regions region.List) string {
	var sb strings.Builder
	cursor := 0

	for _, e := range entries {
		idx := strings.Index(documentHTML[cursor:], e.Token)
		if idx < 0 {
			// Token not found; copy the remainder verbatim and bail so the
			// caller still gets a well-formed (if incomplete) string.
			sb.WriteString(documentHTML[cursor:])
			return sb.String()
		}
		idx += cursor
		sb.WriteString(documentHTML[cursor:idx])
		sb.WriteString(regions[e.RegionIndex].Text)
		cursor = idx + len(e.Token)
	}

	sb.WriteString(documentHTML[cursor:])
	return sb.String()
}
