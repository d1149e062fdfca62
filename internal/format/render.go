package format

import (
	"strings"

	"github.com/tablint/tablint/internal/ast"
)

// Render serializes a file model back to text. Output is the plain
// concatenation of token texts in document order: statements untouched by
// any pass reproduce their original bytes exactly, while rebuilt
// statements are derived purely from their new tokens.
func Render(f *ast.File) string {
	var b strings.Builder
	for _, stmt := range ast.Statements(f) {
		renderStatement(&b, stmt)
	}
	return b.String()
}

// RenderStatement serializes a single statement.
func RenderStatement(s *ast.Statement) string {
	var b strings.Builder
	renderStatement(&b, s)
	return b.String()
}

func renderStatement(b *strings.Builder, s *ast.Statement) {
	for _, tok := range s.Tokens {
		if tok.Type == ast.TokenEOS {
			continue
		}
		b.WriteString(tok.Text)
	}
}
