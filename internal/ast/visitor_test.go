package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stmt(kind StatementKind, name string) *Statement {
	return &Statement{Kind: kind, Tokens: []Token{
		{Type: TokenName, Text: name, Line: 1, Column: 1},
		{Type: TokenEOL, Text: "\n"},
	}}
}

func sampleFile() *File {
	inner := &Block{
		Kind:   BlockFor,
		Header: stmt(StatementForHeader, "FOR"),
		Body:   []Node{stmt(StatementKeywordCall, "Log")},
		End:    stmt(StatementEnd, "END"),
	}
	test := &Block{
		Kind:   BlockTestCase,
		Header: stmt(StatementName, "My Test"),
		Body:   []Node{stmt(StatementDocumentation, "[Documentation]"), inner},
	}
	return &File{
		Name: "sample.robot",
		Sections: []*Section{
			{
				Kind:   SectionSettings,
				Header: stmt(StatementSectionHeader, "*** Settings ***"),
				Body:   []Node{stmt(StatementSetting, "Library")},
			},
			{
				Kind:   SectionTestCases,
				Header: stmt(StatementSectionHeader, "*** Test Cases ***"),
				Body:   []Node{test},
			},
		},
	}
}

type nameCollector struct {
	BaseVisitor
	names []string
}

func (c *nameCollector) VisitStatement(s *Statement) bool {
	c.names = append(c.names, s.Name())
	return true
}

func TestWalkDocumentOrder(t *testing.T) {
	t.Parallel()

	c := &nameCollector{}
	Walk(c, sampleFile())

	assert.Equal(t, []string{
		"*** Settings ***",
		"Library",
		"*** Test Cases ***",
		"My Test",
		"[Documentation]",
		"FOR",
		"Log",
		"END",
	}, c.names)
}

type sectionSkipper struct {
	BaseVisitor
	skip     SectionKind
	visited  []SectionKind
	stmtSeen int
}

func (s *sectionSkipper) VisitSection(sec *Section) bool {
	s.visited = append(s.visited, sec.Kind)
	return sec.Kind != s.skip
}

func (s *sectionSkipper) VisitStatement(*Statement) bool {
	s.stmtSeen++
	return true
}

func TestWalkSkipsChildrenWhenVisitReturnsFalse(t *testing.T) {
	t.Parallel()

	s := &sectionSkipper{skip: SectionTestCases}
	Walk(s, sampleFile())

	assert.Equal(t, []SectionKind{SectionSettings, SectionTestCases}, s.visited)
	// Only the settings section's header and row are reached.
	assert.Equal(t, 2, s.stmtSeen)
}

func TestStatementsCollectsEverything(t *testing.T) {
	t.Parallel()

	stmts := Statements(sampleFile())
	assert.Len(t, stmts, 8)
}

func TestStatementAccessors(t *testing.T) {
	t.Parallel()

	s := &Statement{Kind: StatementKeywordCall, Tokens: []Token{
		{Type: TokenSeparator, Text: "    ", Line: 3, Column: 1},
		{Type: TokenName, Text: "Log", Line: 3, Column: 5},
		{Type: TokenSeparator, Text: "    ", Line: 3, Column: 8},
		{Type: TokenArgument, Text: "one", Line: 3, Column: 12},
		{Type: TokenEOL, Text: "\n", Line: 3, Column: 15},
		{Type: TokenSeparator, Text: "    ", Line: 4, Column: 1},
		{Type: TokenContinuation, Text: "...", Line: 4, Column: 5},
		{Type: TokenSeparator, Text: "    ", Line: 4, Column: 8},
		{Type: TokenArgument, Text: "two", Line: 4, Column: 12},
		{Type: TokenComment, Text: "# c", Line: 4, Column: 17},
		{Type: TokenEOL, Text: "\n", Line: 4, Column: 20},
		{Type: TokenEOS, Line: 4, Column: 21},
	}}

	assert.Equal(t, "Log", s.Name())
	assert.Equal(t, 4, s.Indent())
	assert.Equal(t, 3, s.FirstLine())
	assert.Equal(t, 4, s.LastLine())

	cells := s.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, "two", cells[2].Text)

	comments := s.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "# c", comments[0].Text)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid tree", func(t *testing.T) {
		assert.NoError(t, Validate(sampleFile()))
	})

	t.Run("unterminated control block", func(t *testing.T) {
		f := sampleFile()
		test := f.Sections[1].Body[0].(*Block)
		test.Body[1].(*Block).End = nil

		err := Validate(f)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no END")
	})

	t.Run("block without header", func(t *testing.T) {
		f := sampleFile()
		f.Sections[1].Body[0].(*Block).Header = nil

		err := Validate(f)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without header")
	})
}

func TestEndLine(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	// Synthetic fixture puts everything on line 1.
	assert.Equal(t, 1, EndLine(f))

	s := stmt(StatementKeywordCall, "Log")
	s.Tokens[0].Line = 9
	s.Tokens[1].Line = 9
	f.Sections[1].Body = append(f.Sections[1].Body, s)
	assert.Equal(t, 9, EndLine(f))
}
