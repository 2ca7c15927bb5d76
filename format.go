// Package erbfmt formats embedded-template (ERB-style) documents: HTML
// interleaved with `<%`/`<%=`/`<%#` ... `%>` scripting directives. Format is
// the single entry point; it wires together region segmentation,
// placeholder substitution, structural HTML emission, and composition
// (§4.1-§4.7).
package erbfmt

import (
	"github.com/ryancbahan/erb-fmt/internal/analyzer"
	"github.com/ryancbahan/erb-fmt/internal/compose"
	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/ryancbahan/erb-fmt/internal/diag"
	"github.com/ryancbahan/erb-fmt/internal/emitter"
	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/placeholder"
	"github.com/ryancbahan/erb-fmt/internal/region"
)

// Debug carries the placeholder document and count for troubleshooting
// (§3 FormatterResult.debug).
type Debug struct {
	PlaceholderHTML  string
	PlaceholderCount int
}

// Result is the top-level FormatterResult described in §3: the formatted
// output, the region list that produced it, every diagnostic raised along
// the way, and the configuration that was actually applied.
type Result struct {
	Output         string
	Segments       region.List
	Diagnostics    diag.List
	ResolvedConfig config.Config
	Debug          *Debug
}

// Format runs the full pipeline over source using cfg as the resolved
// configuration (see config.Default/config.Merge for building one). The
// caller owns facade's lifetime; a single Facade may be reused across many
// Format calls (§5).
func Format(facade *grammar.Facade, source []byte, cfg config.Config) Result {
	templateTree := facade.ParseTemplate(source)
	if templateTree == nil {
		return Result{
			Output:         passthroughNewline(string(source), cfg),
			ResolvedConfig: cfg,
			Diagnostics: diag.List{{
				RegionIndex: -1,
				Severity:    diag.Error,
				Message:     "template parse error: parser returned no tree",
			}},
		}
	}
	defer templateTree.Close()

	regions := region.Segment(source, templateTree, facade)
	defer regions.Close()

	doc := placeholder.Build(regions)

	analysis := analyzer.Analyze(facade, doc)
	if analysis.Tree != nil {
		defer analysis.Tree.Close()
	}

	debug := &Debug{PlaceholderHTML: doc.HTML, PlaceholderCount: len(doc.Placeholders)}

	if analysis.HasHTMLError {
		result := compose.Passthrough(string(source), analysis.Diagnostics, cfg)
		return Result{
			Output:         result.Output,
			Segments:       regions,
			Diagnostics:    result.Diagnostics,
			ResolvedConfig: cfg,
			Debug:          debug,
		}
	}

	emitted := emitter.Emit(analysis.Tree, doc.HTML, cfg)
	composed := compose.Compose(emitted, doc.Placeholders, regions, cfg)

	diags := append(diag.List{}, analysis.Diagnostics...)
	diags = append(diags, composed.Diagnostics...)

	return Result{
		Output:         composed.Output,
		Segments:       regions,
		Diagnostics:    diags,
		ResolvedConfig: cfg,
		Debug:          debug,
	}
}

func passthroughNewline(s string, cfg config.Config) string {
	if cfg.Whitespace.EnsureFinalNewline && (len(s) == 0 || s[len(s)-1] != '\n') {
		return s + "\n"
	}
	return s
}
