package checker

import (
	"fmt"

	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/types"
)

// UnevenIndentRule compares each row's actual indentation against the
// indentation its nesting depth calls for (depth times indent_width).
// Comment lines are held to a different standard: they must match the
// indentation of their nearest non-comment neighbor, the previous sibling
// when one exists and the next one otherwise.
type UnevenIndentRule struct {
	baseRule
	indentWidth int
}

func NewUnevenIndentRule() Rule {
	return &UnevenIndentRule{
		baseRule:    baseRule{id: "uneven-indent", sev: types.SeverityWarning},
		indentWidth: 4,
	}
}

func (r *UnevenIndentRule) Configure(params map[string]any) error {
	r.indentWidth = intParam(params, "indent_width", r.indentWidth)
	return nil
}

func (r *UnevenIndentRule) Check(file *ast.File) []types.Issue {
	var issues []types.Issue
	for _, sec := range file.Sections {
		switch sec.Kind {
		case ast.SectionTestCases, ast.SectionKeywords:
			issues = append(issues, r.checkComments(sec.Body)...)
			for _, n := range sec.Body {
				if blk, ok := n.(*ast.Block); ok {
					issues = append(issues, r.checkBody(blk.Body, 1)...)
				}
			}
		default:
			issues = append(issues, r.checkBody(sec.Body, 0)...)
		}
	}
	return issues
}

func (r *UnevenIndentRule) checkBody(body []ast.Node, depth int) []types.Issue {
	expected := depth * r.indentWidth
	issues := r.checkComments(body)
	for _, n := range body {
		switch x := n.(type) {
		case *ast.Statement:
			if x.Kind == ast.StatementComment || x.Kind == ast.StatementEmpty {
				continue
			}
			issues = append(issues, r.checkStatement(x, expected)...)
		case *ast.Block:
			issues = append(issues, r.checkStatement(x.Header, expected)...)
			issues = append(issues, r.checkBody(x.Body, depth+1)...)
			if x.End != nil {
				issues = append(issues, r.checkStatement(x.End, expected)...)
			}
		}
	}
	return issues
}

func (r *UnevenIndentRule) checkStatement(stmt *ast.Statement, expected int) []types.Issue {
	actual := stmt.Indent()
	if actual == expected {
		return nil
	}
	cells := stmt.Cells()
	if len(cells) == 0 {
		return nil
	}
	return []types.Issue{r.issueAt(cells[0], fmt.Sprintf(
		"row indented %d spaces, expected %d", actual, expected))}
}

// checkComments verifies each standalone comment in a body against its
// nearest non-comment neighbor.
func (r *UnevenIndentRule) checkComments(body []ast.Node) []types.Issue {
	var issues []types.Issue
	for i, n := range body {
		stmt, ok := n.(*ast.Statement)
		if !ok || stmt.Kind != ast.StatementComment {
			continue
		}
		neighbor, found := nearestNeighborIndent(body, i)
		if !found || stmt.Indent() == neighbor {
			continue
		}
		tok := stmt.Comments()
		if len(tok) == 0 {
			continue
		}
		issues = append(issues, r.issueAt(tok[0], fmt.Sprintf(
			"comment indented %d spaces, expected %d to match its neighbors",
			stmt.Indent(), neighbor)))
	}
	return issues
}

func nearestNeighborIndent(body []ast.Node, i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if indent, ok := neighborIndent(body[j]); ok {
			return indent, true
		}
	}
	for j := i + 1; j < len(body); j++ {
		if indent, ok := neighborIndent(body[j]); ok {
			return indent, true
		}
	}
	return 0, false
}

func neighborIndent(n ast.Node) (int, bool) {
	switch x := n.(type) {
	case *ast.Statement:
		if x.Kind == ast.StatementComment || x.Kind == ast.StatementEmpty {
			return 0, false
		}
		return x.Indent(), true
	case *ast.Block:
		return x.Header.Indent(), true
	}
	return 0, false
}
