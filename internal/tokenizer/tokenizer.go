// Package tokenizer splits raw source text into typed tokens, one slice per
// physical line. Tokenization is purely functional and lossless: every byte
// of the input, including cell separators, comments, and line endings, ends
// up in exactly one token, so concatenating token texts reproduces the
// source.
//
// Cells are separated by a tab or by a run of two or more whitespace
// characters; a single space inside a cell is content. A cell beginning
// with `#` starts a comment that owns the rest of the line. The tokenizer
// never fails: malformed text is emitted as TokenUnknown and left to the
// parser to report.
package tokenizer

import "github.com/tablint/tablint/internal/ast"

// Line holds the tokens of one physical line. Tokens excludes the line
// ending, which is carried separately in EOL so callers can preserve the
// original newline style.
type Line struct {
	Number int
	Tokens []ast.Token
	EOL    ast.Token
}

// IsBlank reports whether the line contains no content or comment tokens.
func (l Line) IsBlank() bool {
	for _, t := range l.Tokens {
		if t.Type != ast.TokenSeparator {
			return false
		}
	}
	return true
}

// FirstContent returns the line's first content token, or nil.
func (l Line) FirstContent() *ast.Token {
	for i := range l.Tokens {
		if l.Tokens[i].IsContent() {
			return &l.Tokens[i]
		}
	}
	return nil
}

// Tokenize splits src into per-line token sequences.
func Tokenize(src string) []Line {
	var lines []Line
	num := 1
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] != '\n' {
			continue
		}
		body, eol := src[start:i], "\n"
		if len(body) > 0 && body[len(body)-1] == '\r' {
			body, eol = body[:len(body)-1], "\r\n"
		}
		lines = append(lines, scanLine(body, eol, num))
		num++
		start = i + 1
	}
	if start < len(src) {
		lines = append(lines, scanLine(src[start:], "", num))
	}
	return lines
}

func scanLine(text, eol string, num int) Line {
	line := Line{
		Number: num,
		EOL:    ast.Token{Type: ast.TokenEOL, Text: eol, Line: num, Column: len(text) + 1},
	}

	pos := 0

	// Leading whitespace becomes an indentation separator when it would
	// separate cells (a tab, or two or more characters). A lone leading
	// space belongs to the first cell.
	run := whitespaceRun(text, 0)
	if run > 1 || (run == 1 && text[0] == '\t') {
		line.Tokens = append(line.Tokens, ast.Token{
			Type: ast.TokenSeparator, Text: text[:run], Line: num, Column: 1,
		})
		pos = run
	}

	cellIndex := 0
	for pos < len(text) {
		if text[pos] == '#' {
			line.Tokens = append(line.Tokens, ast.Token{
				Type: ast.TokenComment, Text: text[pos:], Line: num, Column: pos + 1,
			})
			break
		}

		end := cellEnd(text, pos)
		cell := text[pos:end]
		line.Tokens = append(line.Tokens, ast.Token{
			Type: classify(cell, cellIndex), Text: cell, Line: num, Column: pos + 1,
		})
		cellIndex++
		pos = end

		if run := whitespaceRun(text, pos); run > 0 {
			line.Tokens = append(line.Tokens, ast.Token{
				Type: ast.TokenSeparator, Text: text[pos : pos+run], Line: num, Column: pos + 1,
			})
			pos += run
		}
	}

	return line
}

// cellEnd finds the index just past the cell starting at pos. A tab or a
// run of two or more whitespace characters ends the cell; so does
// whitespace that extends to the end of the line.
func cellEnd(text string, pos int) int {
	for i := pos; i < len(text); i++ {
		c := text[i]
		if c == '\t' {
			return i
		}
		if c == ' ' {
			run := whitespaceRun(text, i)
			if run > 1 || i+run == len(text) {
				return i
			}
		}
	}
	return len(text)
}

func whitespaceRun(text string, pos int) int {
	i := pos
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i - pos
}

func classify(cell string, index int) ast.TokenType {
	if hasControlChars(cell) {
		return ast.TokenUnknown
	}
	if index > 0 {
		return ast.TokenArgument
	}
	if len(cell) >= 3 && cell[:3] == "***" {
		return ast.TokenSectionHeader
	}
	if cell == "..." {
		return ast.TokenContinuation
	}
	return ast.TokenName
}

func hasControlChars(cell string) bool {
	for i := 0; i < len(cell); i++ {
		if cell[i] < 0x20 || cell[i] == 0x7f {
			return true
		}
	}
	return false
}
