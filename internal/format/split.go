package format

import "github.com/tablint/tablint/internal/ast"

// splitLinesPass breaks statements whose physical lines exceed the
// line-length budget. Breaking happens only at cell boundaries: each
// continuation line starts with the marker at the statement's indentation,
// followed by as many cells as fit. A single cell longer than the budget
// is emitted on its own line rather than cut. Trailing inline comments end
// up on the last physical line produced.
type splitLinesPass struct{}

func (splitLinesPass) Name() string { return "split-lines" }

// statement kinds that may be rebuilt across lines. Control headers, name
// rows, and section headers keep their shape.
var splittable = map[ast.StatementKind]bool{
	ast.StatementKeywordCall:   true,
	ast.StatementSetting:       true,
	ast.StatementVariable:      true,
	ast.StatementDocumentation: true,
	ast.StatementTags:          true,
	ast.StatementArguments:     true,
	ast.StatementSetup:         true,
	ast.StatementTeardown:      true,
	ast.StatementTemplate:      true,
	ast.StatementTimeout:       true,
	ast.StatementReturn:        true,
}

func (splitLinesPass) Apply(f *ast.File, ctx *Context) error {
	for _, stmt := range ast.Statements(f) {
		if !splittable[stmt.Kind] {
			continue
		}
		if !ctx.Directives.FormattingEnabled(stmt.FirstLine()) {
			continue
		}
		if !exceedsBudget(stmt, ctx.Config.LineLength) {
			continue
		}
		splitStatement(stmt, ctx)
	}
	return nil
}

func exceedsBudget(s *ast.Statement, budget int) bool {
	for _, line := range statementLines(s) {
		if lineWidth(line) > budget {
			return true
		}
	}
	return false
}

// splitStatement repacks the statement's cells over as many physical
// lines as the budget requires.
func splitStatement(s *ast.Statement, ctx *Context) {
	cells := s.Cells()
	if len(cells) == 0 {
		return
	}
	comments := s.Comments()
	indent := s.Indent()
	sepWidth := ctx.Config.SeparatorWidth
	budget := ctx.Config.LineLength
	finalEOL := trailingEOL(s, ctx)

	const markerWidth = 3 // "..."

	var out []ast.Token
	var width int
	openLine := func(first ast.Token, cont bool) {
		if indent > 0 {
			out = append(out, ast.NewIndent(indent))
		}
		width = indent
		if cont {
			out = append(out, ast.Token{Type: ast.TokenContinuation, Text: "..."})
			out = append(out, ast.NewSeparator(sepWidth))
			width += markerWidth + sepWidth
		}
		out = append(out, ast.Token{Type: first.Type, Text: first.Text})
		width += len(first.Text)
	}
	closeLine := func() {
		out = append(out, ast.Token{Type: ast.TokenEOL, Text: ctx.EOL})
	}

	openLine(cells[0], false)
	for _, cell := range cells[1:] {
		if width+sepWidth+len(cell.Text) > budget {
			closeLine()
			openLine(cell, true)
			continue
		}
		out = append(out, ast.NewSeparator(sepWidth))
		out = append(out, ast.Token{Type: cell.Type, Text: cell.Text})
		width += sepWidth + len(cell.Text)
	}

	// Comments ride on the last line regardless of the budget; they are
	// preserved, never split or relocated.
	for _, c := range comments {
		out = append(out, ast.NewSeparator(sepWidth))
		out = append(out, ast.Token{Type: ast.TokenComment, Text: c.Text})
	}
	out = append(out, ast.Token{Type: ast.TokenEOL, Text: finalEOL})
	out = append(out, ast.Token{Type: ast.TokenEOS})
	s.Tokens = out
}

// trailingEOL preserves a missing newline on the file's final line.
func trailingEOL(s *ast.Statement, ctx *Context) string {
	for i := len(s.Tokens) - 1; i >= 0; i-- {
		if s.Tokens[i].Type == ast.TokenEOL {
			return s.Tokens[i].Text
		}
	}
	return ctx.EOL
}
