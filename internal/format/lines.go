package format

import "github.com/tablint/tablint/internal/ast"

// statementLines splits a statement's tokens at EOL boundaries, dropping
// the synthetic EOS marker. Each returned line ends with its EOL token.
func statementLines(s *ast.Statement) [][]ast.Token {
	var lines [][]ast.Token
	var cur []ast.Token
	for _, tok := range s.Tokens {
		if tok.Type == ast.TokenEOS {
			continue
		}
		cur = append(cur, tok)
		if tok.Type == ast.TokenEOL {
			lines = append(lines, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// lineWidth is the byte width of a rebuilt line, excluding its EOL.
func lineWidth(line []ast.Token) int {
	width := 0
	for _, tok := range line {
		if tok.Type == ast.TokenEOL {
			continue
		}
		width += len(tok.Text)
	}
	return width
}
