// Package parser builds the structural file model from tokenizer output.
// It never re-reads raw text and never aborts: malformed input is recorded
// as ParseErrors while parsing continues with the best structural
// approximation, so one broken block cannot blank a whole file's
// diagnostics.
package parser

import (
	"fmt"
	"strings"

	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/tokenizer"
	"github.com/tablint/tablint/internal/types"
)

// ParseError describes a structural problem found while building the model.
type ParseError struct {
	Message string
	Pos     types.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parse tokenizes src and builds the file model. The returned file is
// always usable; errs lists the structural problems encountered.
func Parse(filename, src string) (*ast.File, []ParseError) {
	return Build(filename, tokenizer.Tokenize(src))
}

// Build assembles a file model from already-tokenized lines.
func Build(filename string, lines []tokenizer.Line) (*ast.File, []ParseError) {
	b := &builder{
		file: &ast.File{Name: filename},
	}
	for _, line := range lines {
		b.line(line)
	}
	b.closeControlBlocks()
	b.seal()
	return b.file, b.errs
}

// bracketed setting names, lowercased, to statement kinds.
var settingKinds = map[string]ast.StatementKind{
	"[documentation]": ast.StatementDocumentation,
	"[tags]":          ast.StatementTags,
	"[arguments]":     ast.StatementArguments,
	"[setup]":         ast.StatementSetup,
	"[teardown]":      ast.StatementTeardown,
	"[template]":      ast.StatementTemplate,
	"[timeout]":       ast.StatementTimeout,
	"[return]":        ast.StatementReturn,
}

type builder struct {
	file    *ast.File
	section *ast.Section
	block   *ast.Block   // open test case or keyword
	stack   []*ast.Block // open FOR/IF blocks, innermost last
	last    *ast.Statement
	errs    []ParseError
}

func (b *builder) line(line tokenizer.Line) {
	tokens := append([]ast.Token{}, line.Tokens...)
	tokens = append(tokens, line.EOL)

	if line.IsBlank() {
		b.append(&ast.Statement{Kind: ast.StatementEmpty, Tokens: tokens})
		return
	}

	first := line.FirstContent()
	if first == nil {
		// Comment-only line. Keep the original indentation so later
		// passes can judge expected vs actual indent.
		b.append(&ast.Statement{Kind: ast.StatementComment, Tokens: tokens})
		return
	}

	switch first.Type {
	case ast.TokenSectionHeader:
		b.startSection(first, tokens)
	case ast.TokenContinuation:
		b.continuation(first, tokens)
	case ast.TokenUnknown:
		b.errorf(*first, "unrecognized text %q", first.Text)
		b.append(&ast.Statement{Kind: ast.StatementUnknown, Tokens: tokens})
	default:
		b.content(first, tokens)
	}
}

func (b *builder) content(first *ast.Token, tokens []ast.Token) {
	sec := b.currentSection()
	switch sec.Kind {
	case ast.SectionSettings:
		b.appendContinuable(&ast.Statement{Kind: ast.StatementSetting, Tokens: tokens})
	case ast.SectionVariables:
		b.appendContinuable(&ast.Statement{Kind: ast.StatementVariable, Tokens: tokens})
	case ast.SectionTestCases, ast.SectionKeywords:
		b.body(sec, first, tokens)
	default:
		// Free text in a comments section (or before the first header).
		b.append(&ast.Statement{Kind: ast.StatementUnknown, Tokens: tokens})
	}
}

// body handles rows inside a test case or keyword section.
func (b *builder) body(sec *ast.Section, first *ast.Token, tokens []ast.Token) {
	indented := tokens[0].Type == ast.TokenSeparator

	if !indented {
		// A name row opens a new test case or keyword block.
		b.closeControlBlocks()
		kind := ast.BlockTestCase
		if sec.Kind == ast.SectionKeywords {
			kind = ast.BlockKeyword
		}
		header := &ast.Statement{Kind: ast.StatementName, Tokens: tokens}
		b.block = &ast.Block{Kind: kind, Header: header}
		sec.Body = append(sec.Body, b.block)
		b.last = nil
		return
	}

	if b.block == nil {
		b.errorf(*first, "indented row outside any test case or keyword")
		b.append(&ast.Statement{Kind: ast.StatementUnknown, Tokens: tokens})
		return
	}

	name := first.Text
	if kind, ok := settingKinds[strings.ToLower(name)]; ok {
		b.appendContinuable(&ast.Statement{Kind: kind, Tokens: tokens})
		return
	}
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		b.errorf(*first, "unrecognized setting %s", name)
		b.appendContinuable(&ast.Statement{Kind: ast.StatementUnknown, Tokens: tokens})
		return
	}

	switch name {
	case "FOR":
		b.push(ast.BlockFor, &ast.Statement{Kind: ast.StatementForHeader, Tokens: tokens})
	case "IF":
		b.push(ast.BlockIf, &ast.Statement{Kind: ast.StatementIfHeader, Tokens: tokens})
	case "ELSE", "ELSE IF":
		if len(b.stack) == 0 || b.stack[len(b.stack)-1].Kind != ast.BlockIf {
			b.errorf(*first, "%s outside an IF block", name)
		}
		b.appendContinuable(&ast.Statement{Kind: ast.StatementElseBranch, Tokens: tokens})
	case "END":
		b.end(first, tokens)
	default:
		b.appendContinuable(&ast.Statement{Kind: ast.StatementKeywordCall, Tokens: tokens})
	}
}

func (b *builder) push(kind ast.BlockKind, header *ast.Statement) {
	blk := &ast.Block{Kind: kind, Header: header}
	b.appendNode(blk)
	b.stack = append(b.stack, blk)
	b.last = header
}

func (b *builder) end(first *ast.Token, tokens []ast.Token) {
	stmt := &ast.Statement{Kind: ast.StatementEnd, Tokens: tokens}
	if len(b.stack) == 0 {
		b.errorf(*first, "END without a matching FOR or IF")
		b.append(stmt)
		return
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	top.End = stmt
	b.last = stmt
}

func (b *builder) continuation(first *ast.Token, tokens []ast.Token) {
	if b.last == nil {
		b.errorf(*first, "continuation marker without a statement to continue")
		b.append(&ast.Statement{Kind: ast.StatementUnknown, Tokens: tokens})
		return
	}
	// Continuation lines keep their own indentation and spacing inside
	// the statement's token sequence for round-trip fidelity.
	b.last.Tokens = append(b.last.Tokens, tokens...)
}

func (b *builder) startSection(header *ast.Token, tokens []ast.Token) {
	b.closeControlBlocks()
	b.block = nil
	b.last = nil

	kind, ok := sectionKind(header.Text)
	if !ok {
		b.errorf(*header, "unrecognized section header %q", strings.TrimSpace(header.Text))
	}
	b.section = &ast.Section{
		Kind:   kind,
		Header: &ast.Statement{Kind: ast.StatementSectionHeader, Tokens: tokens},
	}
	b.file.Sections = append(b.file.Sections, b.section)
}

// sectionKind resolves a `*** Name ***` header, case- and
// spacing-insensitively.
func sectionKind(header string) (ast.SectionKind, bool) {
	name := strings.Trim(header, "* \t")
	name = strings.ToLower(name)
	name = strings.Join(strings.Fields(name), " ")
	switch name {
	case "settings", "setting":
		return ast.SectionSettings, true
	case "variables", "variable":
		return ast.SectionVariables, true
	case "test cases", "test case", "testcases", "tasks", "task":
		return ast.SectionTestCases, true
	case "keywords", "keyword", "user keywords":
		return ast.SectionKeywords, true
	case "comments", "comment":
		return ast.SectionComments, true
	default:
		return ast.SectionComments, false
	}
}

// currentSection returns the open section, creating the implicit leading
// section when content appears before any explicit header.
func (b *builder) currentSection() *ast.Section {
	if b.section == nil {
		b.section = &ast.Section{Kind: ast.SectionComments}
		b.file.Sections = append(b.file.Sections, b.section)
	}
	return b.section
}

// append adds a statement to the innermost open container without making
// it a continuation target.
func (b *builder) append(stmt *ast.Statement) {
	b.appendNode(stmt)
}

// appendContinuable adds a statement and marks it as the target for any
// following continuation lines.
func (b *builder) appendContinuable(stmt *ast.Statement) {
	b.appendNode(stmt)
	b.last = stmt
}

func (b *builder) appendNode(n ast.Node) {
	if len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		top.Body = append(top.Body, n)
		return
	}
	if b.block != nil {
		b.block.Body = append(b.block.Body, n)
		return
	}
	sec := b.currentSection()
	sec.Body = append(sec.Body, n)
}

// closeControlBlocks reports every still-open FOR/IF block once, tagged
// with the block's start location, and abandons the stack. The blocks stay
// in the tree as an unterminated best-effort suffix.
func (b *builder) closeControlBlocks() {
	for i := len(b.stack) - 1; i >= 0; i-- {
		blk := b.stack[i]
		pos := blk.Header.Pos()
		b.errs = append(b.errs, ParseError{
			Message: fmt.Sprintf("%s block has no matching END", blk.Kind),
			Pos:     pos,
		})
	}
	b.stack = nil
}

// seal appends an end-of-statement token to every statement.
func (b *builder) seal() {
	for _, stmt := range ast.Statements(b.file) {
		if len(stmt.Tokens) == 0 {
			continue
		}
		lastTok := stmt.Tokens[len(stmt.Tokens)-1]
		stmt.Tokens = append(stmt.Tokens, ast.Token{
			Type:   ast.TokenEOS,
			Line:   lastTok.Line,
			Column: lastTok.Column + len(lastTok.Text),
		})
	}
}

func (b *builder) errorf(tok ast.Token, format string, args ...any) {
	b.errs = append(b.errs, ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     types.Position{Line: tok.Line, Column: tok.Column},
	})
}
