// Package compose implements the Composer (§4.7): it sweeps the Structural
// Emitter's output for placeholder tokens and substitutes each back to its
// original scripting text, reindenting standalone directives by a running
// scripting-indent counter and leaving inline/attribute/sensitive
// occurrences untouched beyond their surrounding whitespace.
package compose

import (
	"fmt"
	"strings"

	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/ryancbahan/erb-fmt/internal/diag"
	"github.com/ryancbahan/erb-fmt/internal/emitter"
	"github.com/ryancbahan/erb-fmt/internal/placeholder"
	"github.com/ryancbahan/erb-fmt/internal/region"
	"github.com/ryancbahan/erb-fmt/internal/scripting"
)

// Result is the final formatted output plus every diagnostic collected
// along the way (§3 FormatterResult, minus the fields format.go fills in).
type Result struct {
	Output      string
	Diagnostics diag.List
}

// Compose performs the final substitution pass described in §4.7. regions
// and entries come from the same placeholder.Build call that produced the
// document the emitter printed; emitted carries the Structural Emitter's
// output and its per-token print-info map.
func Compose(emitted emitter.Result, entries []placeholder.Entry, regions region.List, cfg config.Config) Result {
	byID := make(map[int]placeholder.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	var sb strings.Builder
	var diags diag.List
	cursor := 0
	indent := 0
	text := emitted.Output

	for {
		loc := placeholder.TokenPattern.FindStringIndex(text[cursor:])
		if loc == nil {
			sb.WriteString(reindentFragment(text[cursor:], cursor, indent, cfg, emitted.Verbatim, false))
			break
		}
		start, end := cursor+loc[0], cursor+loc[1]
		token := text[start:end]
		id, ok := placeholder.ParseTokenID(token)

		// Only a standalone (own-line, non-inline/attribute/sensitive) token
		// has its own freshly computed indent written below; the fragment
		// just before it must drop the emitter's leading whitespace for that
		// line so the two don't double up. Every other case (including
		// unresolved tokens, where we fall back to copying raw text) leaves
		// the fragment's trailing whitespace untouched.
		standalone := false
		if ok {
			if info, hasInfo := emitted.Prints[id]; hasInfo {
				standalone = !(info.Inline || info.InAttribute || info.Sensitive)
			}
		}
		sb.WriteString(reindentFragment(text[cursor:start], cursor, indent, cfg, emitted.Verbatim, standalone))

		if !ok {
			sb.WriteString(token)
			cursor = end
			continue
		}

		entry, hasEntry := byID[id]
		if !hasEntry {
			diags = append(diags, diag.Diagnostic{
				RegionIndex: -1,
				Severity:    diag.Error,
				Message:     fmt.Sprintf("placeholder token %q has no matching region entry", token),
			})
			cursor = end
			continue
		}

		r := regions[entry.RegionIndex]
		info, hasInfo := emitted.Prints[id]
		if !hasInfo {
			diags = append(diags, diag.Diagnostic{
				RegionIndex: entry.RegionIndex,
				Severity:    diag.Error,
				Message:     fmt.Sprintf("placeholder token %q was not located during emission", token),
			})
			sb.WriteString(r.Text)
			cursor = end
			continue
		}

		if info.Inline || info.InAttribute || info.Sensitive {
			sb.WriteString(renderInline(r))
			cursor = end
			continue
		}

		if cfg.Scripting.Format == config.ScriptingNone {
			// Scripting re-indent disabled (§4.8 scripting.format=none): the
			// directive keeps its container depth but the delta tracking
			// that §4.6/§4.7 layer on top of it never runs, so the running
			// counter is left untouched for whatever comes after.
			sb.WriteString(reindentDirective(r.Text, info.IndentationLevel, cfg))
			cursor = end
			continue
		}

		delta := scripting.Classify(r)
		effective := indent + delta.Before
		if effective < 0 {
			effective = 0
		}
		level := info.IndentationLevel + effective
		sb.WriteString(reindentDirective(r.Text, level, cfg))

		indent = effective + delta.After
		if indent < 0 {
			indent = 0
		}

		cursor = end
	}

	out := sb.String()
	out = applyNewlinePolicy(out, cfg)
	return Result{Output: out, Diagnostics: diags}
}

// reindentFragment prepares an HTML fragment copied verbatim from the
// emitter output (§4.7): when scripting_indent is positive, every non-empty
// line is pushed out by that many extra indent units, propagating the
// logical nesting a scripting block-opener introduces into the surrounding
// HTML. When beforeStandaloneToken is true, a trailing run of spaces/tabs
// immediately preceding the upcoming placeholder token is dropped when
// the preceding character is a newline, so the Composer's own freshly
// computed indent for that standalone token isn't doubled up with the
// emitter's. offset is fragment's absolute start position in the full
// emitter output, used to find the overlap with verbatim (whitespace-
// sensitive) ranges, which are excluded from both operations (§1
// out-of-scope: no rewriting inside sensitive elements).
func reindentFragment(fragment string, offset, indent int, cfg config.Config, verbatim []emitter.VerbatimRange, beforeStandaloneToken bool) string {
	if fragment == "" {
		return fragment
	}

	var sb strings.Builder
	pos := 0
	for pos < len(fragment) {
		vStart, vEnd, ok := nextVerbatimOverlap(offset+pos, offset+len(fragment), verbatim)
		if !ok {
			sb.WriteString(reindentPlainFragment(fragment[pos:], indent, cfg, beforeStandaloneToken))
			break
		}
		localStart, localEnd := vStart-offset, vEnd-offset
		sb.WriteString(reindentPlainFragment(fragment[pos:localStart], indent, cfg, false))
		sb.WriteString(fragment[localStart:localEnd])
		pos = localEnd
		if pos >= len(fragment) {
			break
		}
	}
	return sb.String()
}

// nextVerbatimOverlap finds the first verbatim range overlapping
// [start, end), if any.
func nextVerbatimOverlap(start, end int, verbatim []emitter.VerbatimRange) (int, int, bool) {
	for _, v := range verbatim {
		if v.End <= start {
			continue
		}
		if v.Start >= end {
			break
		}
		vs, ve := v.Start, v.End
		if vs < start {
			vs = start
		}
		if ve > end {
			ve = end
		}
		return vs, ve, true
	}
	return 0, 0, false
}

// reindentPlainFragment applies the trailing-whitespace strip and the
// scripting-indent line-prefix to a fragment slice known to fall entirely
// outside any whitespace-sensitive element.
func reindentPlainFragment(fragment string, indent int, cfg config.Config, beforeStandaloneToken bool) string {
	if beforeStandaloneToken {
		fragment = stripTrailingIndentBeforeToken(fragment)
	}
	if indent <= 0 || fragment == "" {
		return fragment
	}

	prefix := cfg.Indent(indent)
	lines := strings.Split(fragment, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// stripTrailingIndentBeforeToken drops a trailing run of spaces/tabs at the
// end of s when it is immediately preceded by a newline. A run with no
// newline before it (including an s that is whitespace only) is kept.
func stripTrailingIndentBeforeToken(s string) string {
	end := len(s)
	i := end
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	if i == end {
		return s
	}
	if i > 0 && s[i-1] == '\n' {
		return s[:i]
	}
	return s
}

// renderInline restores a scripting directive's exact original text for an
// inline, in-attribute, or whitespace-sensitive occurrence — no
// reindentation, no byte changes beyond trimming the region's own
// surrounding whitespace (§1 "without altering the byte content of
// scripting code", §4.7).
func renderInline(r region.Region) string {
	return strings.TrimSpace(r.Text)
}

// reindentDirective restores a standalone (own-line) scripting directive's
// exact original bytes, only ever touching each line's *leading*
// whitespace: the first line is indented at level with no existing
// whitespace to strip (regions always start at the opening delimiter);
// subsequent lines of a multi-line directive have their existing leading
// whitespace trimmed and replaced with the same indent (§4.7 steps 2-3).
// The code and delimiters themselves are never rewritten.
func reindentDirective(text string, level int, cfg config.Config) string {
	prefix := cfg.Indent(level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = prefix + line
			continue
		}
		lines[i] = prefix + strings.TrimLeft(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// applyNewlinePolicy normalises line endings and trailing whitespace per
// cfg.Newline / cfg.Whitespace (§4.8).
func applyNewlinePolicy(s string, cfg config.Config) string {
	if cfg.Whitespace.TrimTrailing {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
		s = strings.Join(lines, "\n")
	}

	if cfg.Whitespace.EnsureFinalNewline && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	switch cfg.Newline {
	case config.NewlineCRLF:
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\n", "\r\n")
	case config.NewlineLF:
		s = strings.ReplaceAll(s, "\r\n", "\n")
	case config.NewlinePreserve:
		// no-op: leave whatever line endings the source/emission produced.
	}

	return s
}

// Passthrough implements §4.7's HTML-parse-error fallback: when the
// Placeholder Analyzer could not make sense of the placeholder document,
// the Composer gives up on reformatting and returns the original source
// verbatim (plus the configured trailing newline policy), carrying the
// analyzer's diagnostic forward.
func Passthrough(original string, analyzerDiags diag.List, cfg config.Config) Result {
	out := original
	if cfg.Whitespace.EnsureFinalNewline && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return Result{Output: out, Diagnostics: analyzerDiags}
}
