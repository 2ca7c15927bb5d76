// Package config implements the Configuration Model (§4.8): an immutable,
// fully-defaulted record consumed by every formatting stage. Shaped after
// the teacher's lsp/types.ServerConfig / DefaultConfig pattern: a plain
// struct of enumerated fields with a constructor for defaults and a
// structural per-field merge, never a dynamic property bag (§9).
package config

// IndentStyle selects the character used for one indent unit.
type IndentStyle string

const (
	IndentSpace IndentStyle = "space"
	IndentTab   IndentStyle = "tab"
)

// NewlineStyle controls line terminator normalisation.
type NewlineStyle string

const (
	NewlineLF       NewlineStyle = "lf"
	NewlineCRLF     NewlineStyle = "crlf"
	NewlinePreserve NewlineStyle = "preserve"
)

// CollapseWhitespace controls how aggressively text-node whitespace is
// collapsed by the Structural Emitter.
type CollapseWhitespace string

const (
	CollapsePreserve     CollapseWhitespace = "preserve"
	CollapseConservative CollapseWhitespace = "conservative"
	CollapseAggressive   CollapseWhitespace = "aggressive"
)

// AttributeWrapping selects the attribute layout policy (§4.5).
type AttributeWrapping string

const (
	AttrPreserve      AttributeWrapping = "preserve"
	AttrAuto          AttributeWrapping = "auto"
	AttrForceMultiline AttributeWrapping = "force-multi-line"
)

// ScriptingFormat toggles whether the Scripting Indent Analyzer runs at all.
type ScriptingFormat string

const (
	ScriptingHeuristic ScriptingFormat = "heuristic"
	ScriptingNone      ScriptingFormat = "none"
)

// Indentation groups the indent-unit fields.
type Indentation struct {
	Size         int
	Style        IndentStyle
	Continuation int
}

// Whitespace groups the trailing-whitespace/final-newline fields.
type Whitespace struct {
	TrimTrailing       bool
	EnsureFinalNewline bool
}

// HTML groups HTML-emission fields.
type HTML struct {
	CollapseWhitespace CollapseWhitespace
	LineWidth          *int
	AttributeWrapping  AttributeWrapping
}

// Scripting groups scripting-reindent fields.
type Scripting struct {
	Format    ScriptingFormat
	LineWidth *int
}

// Config is the fully-resolved, immutable configuration value passed to
// every stage (§4.8, §3 FormatterResult.resolved_config).
type Config struct {
	Indentation Indentation
	Newline     NewlineStyle
	Whitespace  Whitespace
	HTML        HTML
	Scripting   Scripting
}

// Default returns the default configuration (§4.8 table).
func Default() Config {
	width := 100
	scriptingWidth := 100
	return Config{
		Indentation: Indentation{
			Size:         2,
			Style:        IndentSpace,
			Continuation: 2,
		},
		Newline: NewlineLF,
		Whitespace: Whitespace{
			TrimTrailing:       true,
			EnsureFinalNewline: true,
		},
		HTML: HTML{
			CollapseWhitespace: CollapseConservative,
			LineWidth:          &width,
			AttributeWrapping:  AttrPreserve,
		},
		Scripting: Scripting{
			Format:    ScriptingHeuristic,
			LineWidth: &scriptingWidth,
		},
	}
}

// IndentUnit returns the literal string for one indentation level.
func (c Config) IndentUnit() string {
	n := c.Indentation.Size
	if n < 1 {
		n = 1
	}
	ch := " "
	if c.Indentation.Style == IndentTab {
		ch = "\t"
	}
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ch[0])
	}
	return string(out)
}

// Indent returns level repetitions of the indent unit, clamped at 0.
func (c Config) Indent(level int) string {
	if level <= 0 {
		return ""
	}
	unit := c.IndentUnit()
	out := make([]byte, 0, len(unit)*level)
	for i := 0; i < level; i++ {
		out = append(out, unit...)
	}
	return string(out)
}
