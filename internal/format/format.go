// Package format rewrites parsed files through an ordered pipeline of
// composable passes. Every pass is idempotent: running the pipeline on its
// own output leaves the text unchanged. A pass that cannot safely
// transform a node skips it; a file whose parse produced errors is never
// rewritten at all.
package format

import (
	"fmt"
	"strings"

	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/directive"
	"github.com/tablint/tablint/internal/parser"
)

// Config holds the global formatting knobs plus per-pass settings.
type Config struct {
	LineLength     int                   `yaml:"line_length"`
	IndentWidth    int                   `yaml:"indent_width"`
	SeparatorWidth int                   `yaml:"separator_width"`
	Passes         map[string]PassConfig `yaml:"passes"`
}

// PassConfig enables or disables one pass. A nil Enabled means the pass
// runs with defaults.
type PassConfig struct {
	Enabled *bool          `yaml:"enabled"`
	Params  map[string]any `yaml:"params"`
}

// DefaultConfig returns the settings used when no configuration file is
// present.
func DefaultConfig() Config {
	return Config{
		LineLength:     120,
		IndentWidth:    4,
		SeparatorWidth: 4,
	}
}

// Context carries the shared state passes consult: the configuration and
// the sentinel-directive scopes resolved for the current file.
type Context struct {
	Config     Config
	Directives *directive.Manager
	EOL        string
}

// Pass is one transformation stage. Apply mutates the tree in place;
// the engine re-validates block invariants after each pass.
type Pass interface {
	Name() string
	Apply(file *ast.File, ctx *Context) error
}

// Engine runs the configured passes in a fixed order.
type Engine struct {
	cfg    Config
	passes []Pass
}

// NewEngine builds an engine from cfg. Pass order is fixed: section
// merging first (later passes depend on the final section shape), then
// settings ordering, line splitting, alignment, and final-newline cleanup.
// Splitting runs before alignment so column widths are computed from the
// lines that will actually be emitted.
func NewEngine(cfg Config) *Engine {
	if cfg.LineLength <= 0 {
		cfg.LineLength = 120
	}
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = 4
	}
	if cfg.SeparatorWidth <= 0 {
		cfg.SeparatorWidth = 4
	}

	e := &Engine{cfg: cfg}
	for _, p := range []Pass{
		mergeSectionsPass{},
		orderSettingsPass{},
		splitLinesPass{},
		alignPass{},
		finalNewlinePass{},
	} {
		if e.passEnabled(p.Name()) {
			e.passes = append(e.passes, p)
		}
	}
	return e
}

func (e *Engine) passEnabled(name string) bool {
	pc, ok := e.cfg.Passes[name]
	if !ok || pc.Enabled == nil {
		return true
	}
	return *pc.Enabled
}

// FormatSource rewrites src and reports whether the output differs. On any
// fault (parse errors, a failing pass, or a pass leaving the tree
// structurally invalid) the original text is returned untouched together
// with the error, so callers never write a half-transformed file.
func (e *Engine) FormatSource(filename string, src []byte) (string, bool, error) {
	original := string(src)
	file, parseErrs := parser.Parse(filename, original)
	if len(parseErrs) > 0 {
		return original, false, fmt.Errorf("%s: %d parse error(s), left unformatted", filename, len(parseErrs))
	}

	ctx := &Context{
		Config:     e.cfg,
		Directives: directive.Parse(file),
		EOL:        dominantEOL(original),
	}

	for _, p := range e.passes {
		if err := p.Apply(file, ctx); err != nil {
			return original, false, fmt.Errorf("pass %s: %w", p.Name(), err)
		}
		if err := ast.Validate(file); err != nil {
			return original, false, fmt.Errorf("pass %s left an invalid tree: %w", p.Name(), err)
		}
	}

	out := Render(file)
	return out, out != original, nil
}

func dominantEOL(src string) string {
	if strings.Count(src, "\r\n")*2 > strings.Count(src, "\n") {
		return "\r\n"
	}
	return "\n"
}
