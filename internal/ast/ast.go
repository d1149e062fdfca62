// Package ast defines the lossless structural model for tabular test
// specification files: tokens grouped into statements, statements into
// blocks and sections, sections into a file. The model retains every byte
// of the source (spacing, comments, line endings) so an untouched tree
// renders back to the original text.
package ast

import "github.com/tablint/tablint/internal/types"

// Node is the closed set of tree variants. The only implementations are
// *File, *Section, *Block, and *Statement.
type Node interface {
	node()
}

func (*File) node()      {}
func (*Section) node()   {}
func (*Block) node()     {}
func (*Statement) node() {}

// StatementKind classifies a logical statement.
type StatementKind int

const (
	// StatementKeywordCall is an ordinary keyword invocation row.
	StatementKeywordCall StatementKind = iota
	// StatementName is the name row opening a test case or keyword block.
	StatementName
	// StatementSetting is a row in the settings section (Library,
	// Resource, Test Tags, ...).
	StatementSetting
	// StatementVariable is a row in the variables section.
	StatementVariable

	// Bracketed sub-settings of a test case or keyword.
	StatementDocumentation
	StatementTags
	StatementArguments
	StatementSetup
	StatementTeardown
	StatementTemplate
	StatementTimeout
	StatementReturn

	// StatementSectionHeader is a `*** Name ***` row.
	StatementSectionHeader
	// StatementForHeader and StatementIfHeader open control blocks.
	StatementForHeader
	StatementIfHeader
	// StatementElseBranch is an ELSE or ELSE IF row inside an IF block.
	StatementElseBranch
	// StatementEnd terminates a FOR or IF block.
	StatementEnd

	// StatementComment is a standalone comment line.
	StatementComment
	// StatementEmpty is a blank line.
	StatementEmpty
	// StatementUnknown is a row the parser could not classify.
	StatementUnknown
)

// Statement is one logical instruction: an ordered token sequence that may
// span several physical lines joined by continuation markers. Every byte of
// the original lines, including separators and trailing comments, lives in
// Tokens.
type Statement struct {
	Kind   StatementKind
	Tokens []Token
}

// Pos returns the position of the statement's first token.
func (s *Statement) Pos() types.Position {
	if len(s.Tokens) == 0 {
		return types.Position{}
	}
	t := s.Tokens[0]
	return types.Position{Line: t.Line, Column: t.Column}
}

// Cells returns the content tokens of the statement, in order, excluding
// continuation markers.
func (s *Statement) Cells() []Token {
	var cells []Token
	for _, t := range s.Tokens {
		if t.IsContent() && t.Type != TokenContinuation {
			cells = append(cells, t)
		}
	}
	return cells
}

// Name returns the text of the first content cell, or "".
func (s *Statement) Name() string {
	for _, t := range s.Tokens {
		if t.IsContent() && t.Type != TokenContinuation {
			return t.Text
		}
	}
	return ""
}

// Comments returns all comment tokens owned by the statement.
func (s *Statement) Comments() []Token {
	var out []Token
	for _, t := range s.Tokens {
		if t.Type == TokenComment {
			out = append(out, t)
		}
	}
	return out
}

// Indent returns the byte width of the statement's leading separator on
// its first physical line.
func (s *Statement) Indent() int {
	if len(s.Tokens) > 0 && s.Tokens[0].Type == TokenSeparator {
		return len(s.Tokens[0].Text)
	}
	return 0
}

// FirstLine and LastLine bound the physical lines covered by the statement.
func (s *Statement) FirstLine() int {
	if len(s.Tokens) == 0 {
		return 0
	}
	return s.Tokens[0].Line
}

func (s *Statement) LastLine() int {
	last := 0
	for _, t := range s.Tokens {
		if t.Line > last {
			last = t.Line
		}
	}
	return last
}

// BlockKind classifies a structural block.
type BlockKind int

const (
	BlockTestCase BlockKind = iota
	BlockKeyword
	BlockFor
	BlockIf
)

func (k BlockKind) String() string {
	switch k {
	case BlockTestCase:
		return "test case"
	case BlockKeyword:
		return "keyword"
	case BlockFor:
		return "FOR"
	default:
		return "IF"
	}
}

// Block is a nesting structural container. Test case and keyword blocks
// are opened by a name row; FOR and IF blocks are opened by their header
// statement and closed by an explicit END terminator.
type Block struct {
	Kind   BlockKind
	Header *Statement
	Body   []Node // *Statement and nested *Block, in document order
	End    *Statement
}

// Name returns the block's header name text.
func (b *Block) Name() string {
	if b.Header == nil {
		return ""
	}
	return b.Header.Name()
}

// SectionKind classifies a file section.
type SectionKind int

const (
	SectionComments SectionKind = iota
	SectionSettings
	SectionVariables
	SectionTestCases
	SectionKeywords
)

func (k SectionKind) String() string {
	switch k {
	case SectionSettings:
		return "Settings"
	case SectionVariables:
		return "Variables"
	case SectionTestCases:
		return "Test Cases"
	case SectionKeywords:
		return "Keywords"
	default:
		return "Comments"
	}
}

// Section holds a header statement and ordered children: statements for
// settings/variables/comments sections, blocks for test case and keyword
// sections. A nil Header marks the implicit section collecting free text
// before the first explicit header.
type Section struct {
	Kind   SectionKind
	Header *Statement
	Body   []Node
}

// File is the root of the model: sections in document order.
type File struct {
	Name     string
	Sections []*Section
}

// EndLine returns the last physical line covered by a node.
func EndLine(n Node) int {
	last := 0
	visit := func(s *Statement) {
		if s == nil {
			return
		}
		if l := s.LastLine(); l > last {
			last = l
		}
	}
	var walk func(Node)
	walk = func(n Node) {
		switch x := n.(type) {
		case *Statement:
			visit(x)
		case *Block:
			visit(x.Header)
			for _, c := range x.Body {
				walk(c)
			}
			visit(x.End)
		case *Section:
			visit(x.Header)
			for _, c := range x.Body {
				walk(c)
			}
		case *File:
			for _, s := range x.Sections {
				walk(s)
			}
		}
	}
	walk(n)
	return last
}
