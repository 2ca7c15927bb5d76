package config

// Override is a partial configuration as loaded from a user's config file:
// every field, including each nested group, is a pointer so "absent" is
// distinguishable from "explicitly zero". Fields mirror Config's nesting,
// with snake_case JSON/YAML tags for file loading (internal/config/file.go).
type Override struct {
	Indentation *IndentationOverride `json:"indentation,omitempty" yaml:"indentation,omitempty"`
	Newline     *NewlineStyle        `json:"newline,omitempty" yaml:"newline,omitempty"`
	Whitespace  *WhitespaceOverride  `json:"whitespace,omitempty" yaml:"whitespace,omitempty"`
	HTML        *HTMLOverride        `json:"html,omitempty" yaml:"html,omitempty"`
	Scripting   *ScriptingOverride   `json:"scripting,omitempty" yaml:"scripting,omitempty"`
}

type IndentationOverride struct {
	Size         *int         `json:"size,omitempty" yaml:"size,omitempty"`
	Style        *IndentStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Continuation *int         `json:"continuation,omitempty" yaml:"continuation,omitempty"`
}

type WhitespaceOverride struct {
	TrimTrailing       *bool `json:"trim_trailing,omitempty" yaml:"trim_trailing,omitempty"`
	EnsureFinalNewline *bool `json:"ensure_final_newline,omitempty" yaml:"ensure_final_newline,omitempty"`
}

type HTMLOverride struct {
	CollapseWhitespace *CollapseWhitespace `json:"collapse_whitespace,omitempty" yaml:"collapse_whitespace,omitempty"`
	LineWidth          *int                `json:"line_width,omitempty" yaml:"line_width,omitempty"`
	AttributeWrapping  *AttributeWrapping  `json:"attribute_wrapping,omitempty" yaml:"attribute_wrapping,omitempty"`
}

type ScriptingOverride struct {
	Format    *ScriptingFormat `json:"format,omitempty" yaml:"format,omitempty"`
	LineWidth *int             `json:"line_width,omitempty" yaml:"line_width,omitempty"`
}

// Merge folds a (possibly nil, possibly partial) override into a fresh
// clone of Default(), leaf by leaf. Missing branches and leaves inherit
// the default; Default() itself is never mutated (§4.8, §9).
func Merge(o *Override) Config {
	cfg := Default()
	if o == nil {
		return clampConfig(cfg)
	}

	if o.Indentation != nil {
		if o.Indentation.Size != nil {
			cfg.Indentation.Size = *o.Indentation.Size
		}
		if o.Indentation.Style != nil {
			cfg.Indentation.Style = *o.Indentation.Style
		}
		if o.Indentation.Continuation != nil {
			cfg.Indentation.Continuation = *o.Indentation.Continuation
		}
	}

	if o.Newline != nil {
		cfg.Newline = *o.Newline
	}

	if o.Whitespace != nil {
		if o.Whitespace.TrimTrailing != nil {
			cfg.Whitespace.TrimTrailing = *o.Whitespace.TrimTrailing
		}
		if o.Whitespace.EnsureFinalNewline != nil {
			cfg.Whitespace.EnsureFinalNewline = *o.Whitespace.EnsureFinalNewline
		}
	}

	if o.HTML != nil {
		if o.HTML.CollapseWhitespace != nil {
			cfg.HTML.CollapseWhitespace = *o.HTML.CollapseWhitespace
		}
		if o.HTML.LineWidth != nil {
			w := *o.HTML.LineWidth
			cfg.HTML.LineWidth = &w
		}
		if o.HTML.AttributeWrapping != nil {
			cfg.HTML.AttributeWrapping = *o.HTML.AttributeWrapping
		}
	}

	if o.Scripting != nil {
		if o.Scripting.Format != nil {
			cfg.Scripting.Format = *o.Scripting.Format
		}
		if o.Scripting.LineWidth != nil {
			w := *o.Scripting.LineWidth
			cfg.Scripting.LineWidth = &w
		}
	}

	return clampConfig(cfg)
}

// clampConfig silently clamps out-of-domain values rather than raising a
// diagnostic (§7 "Configuration validity"). Merge applies it to its result,
// so an override's out-of-domain values come back clamped.
func clampConfig(cfg Config) Config {
	if cfg.Indentation.Size < 1 {
		cfg.Indentation.Size = 1
	}
	if cfg.Indentation.Continuation < 0 {
		cfg.Indentation.Continuation = 0
	}
	if cfg.HTML.LineWidth != nil && *cfg.HTML.LineWidth < 0 {
		*cfg.HTML.LineWidth = 0
	}
	if cfg.Scripting.LineWidth != nil && *cfg.Scripting.LineWidth < 0 {
		*cfg.Scripting.LineWidth = 0
	}
	return cfg
}
