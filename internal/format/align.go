package format

import "github.com/tablint/tablint/internal/ast"

// alignPass normalizes indentation to the block nesting depth and
// column-aligns the keyword-call statements of each block: the width of
// every cell column is the maximum natural width of that column across the
// block, and shorter cells are padded through their trailing separator so
// the following cells line up. Continuation lines are aligned to the
// continuation-cell position rather than the call's first cell. Inline
// comments stay on their statements.
type alignPass struct{}

func (alignPass) Name() string { return "align" }

func (alignPass) Apply(f *ast.File, ctx *Context) error {
	for _, sec := range f.Sections {
		if sec.Kind != ast.SectionTestCases && sec.Kind != ast.SectionKeywords {
			continue
		}
		for _, n := range sec.Body {
			if blk, ok := n.(*ast.Block); ok {
				alignBody(blk.Body, 1, ctx)
			}
		}
	}
	return nil
}

func alignBody(body []ast.Node, depth int, ctx *Context) {
	widths := columnWidths(body, ctx)
	for _, n := range body {
		switch x := n.(type) {
		case *ast.Statement:
			alignStatement(x, depth, widths, ctx)
		case *ast.Block:
			alignStatement(x.Header, depth, nil, ctx)
			alignBody(x.Body, depth+1, ctx)
			if x.End != nil {
				alignStatement(x.End, depth, nil, ctx)
			}
		}
	}
}

// columnWidths measures the first-line cells of every keyword call in the
// body.
func columnWidths(body []ast.Node, ctx *Context) []int {
	var widths []int
	for _, n := range body {
		stmt, ok := n.(*ast.Statement)
		if !ok || stmt.Kind != ast.StatementKeywordCall {
			continue
		}
		if !ctx.Directives.FormattingEnabled(stmt.FirstLine()) {
			continue
		}
		for i, cell := range firstLineCells(stmt) {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			if len(cell.Text) > widths[i] {
				widths[i] = len(cell.Text)
			}
		}
	}
	return widths
}

func firstLineCells(s *ast.Statement) []ast.Token {
	lines := statementLines(s)
	if len(lines) == 0 {
		return nil
	}
	var cells []ast.Token
	for _, tok := range lines[0] {
		if tok.IsContent() && tok.Type != ast.TokenContinuation {
			cells = append(cells, tok)
		}
	}
	return cells
}

func alignStatement(s *ast.Statement, depth int, widths []int, ctx *Context) {
	switch s.Kind {
	case ast.StatementEmpty:
		return
	}
	if !ctx.Directives.FormattingEnabled(s.FirstLine()) {
		return
	}
	if s.Kind != ast.StatementKeywordCall {
		widths = nil
	}

	indent := depth * ctx.Config.IndentWidth
	sepWidth := ctx.Config.SeparatorWidth

	var rebuilt []ast.Token
	for _, line := range statementLines(s) {
		rebuilt = append(rebuilt, alignLine(line, indent, sepWidth, widths)...)
	}
	rebuilt = append(rebuilt, ast.Token{Type: ast.TokenEOS})
	s.Tokens = rebuilt
}

// alignLine rebuilds one physical line: a depth-derived indent, cells
// padded to their column widths, and the original comment and EOL tokens.
func alignLine(line []ast.Token, indent, sepWidth int, widths []int) []ast.Token {
	var content []ast.Token
	var eol ast.Token
	for _, tok := range line {
		switch tok.Type {
		case ast.TokenSeparator:
		case ast.TokenEOL:
			eol = tok
		default:
			content = append(content, tok)
		}
	}

	continuation := len(content) > 0 && content[0].Type == ast.TokenContinuation

	var out []ast.Token
	if indent > 0 && len(content) > 0 {
		out = append(out, ast.NewIndent(indent))
	}
	cellIndex := 0
	for i, tok := range content {
		out = append(out, ast.Token{Type: tok.Type, Text: tok.Text})
		if i == len(content)-1 {
			break
		}
		width := sepWidth
		if !continuation && tok.IsContent() && tok.Type != ast.TokenContinuation {
			if cellIndex < len(widths) && len(tok.Text) < widths[cellIndex] {
				width += widths[cellIndex] - len(tok.Text)
			}
			cellIndex++
		}
		out = append(out, ast.NewSeparator(width))
	}
	out = append(out, ast.Token{Type: ast.TokenEOL, Text: eol.Text})
	return out
}
