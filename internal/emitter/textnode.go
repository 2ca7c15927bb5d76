package emitter

import (
	"regexp"
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/config"
)

var (
	horizontalRun = regexp.MustCompile(`[ \t]+`)
	newlineRun    = regexp.MustCompile(`\n[ \t]*`)
	allRun        = regexp.MustCompile(`\s+`)
)

// collapseText applies the §4.8 `html.collapse_whitespace` policy to a text
// node's raw content. `conservative` (the default) collapses consecutive
// horizontal whitespace to a single space and a newline plus its following
// indentation to a single newline, then trims the ends. `aggressive` goes
// further and collapses any run of whitespace, including interior
// newlines, into a single space, forcing the result onto one line.
// `preserve` performs no internal collapsing at all, trimming only the
// leading/trailing edges. Whitespace-only input always collapses to "".
func collapseText(raw string, mode config.CollapseWhitespace) string {
	switch mode {
	case config.CollapsePreserve:
		return strings.TrimSpace(raw)
	case config.CollapseAggressive:
		return strings.TrimSpace(allRun.ReplaceAllString(raw, " "))
	default:
		s := horizontalRun.ReplaceAllString(raw, " ")
		s = newlineRun.ReplaceAllString(s, "\n")
		return strings.TrimSpace(s)
	}
}
