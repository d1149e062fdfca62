package format

import "github.com/tablint/tablint/internal/ast"

// finalNewlinePass terminates the file's last line with the dominant line
// ending when the source ended without one.
type finalNewlinePass struct{}

func (finalNewlinePass) Name() string { return "final-newline" }

func (finalNewlinePass) Apply(f *ast.File, ctx *Context) error {
	stmts := ast.Statements(f)
	if len(stmts) == 0 {
		return nil
	}
	last := stmts[len(stmts)-1]
	if !ctx.Directives.FormattingEnabled(last.LastLine()) {
		return nil
	}
	for i := len(last.Tokens) - 1; i >= 0; i-- {
		if last.Tokens[i].Type != ast.TokenEOL {
			continue
		}
		if last.Tokens[i].Text == "" {
			tok := last.Tokens[i]
			tok.Text = ctx.EOL
			last.Tokens[i] = tok
		}
		return nil
	}
	return nil
}
