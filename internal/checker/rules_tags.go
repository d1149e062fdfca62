package checker

import (
	"fmt"
	"strings"

	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/types"
)

// DuplicateTagsRule reports tags that repeat within one tag list. Tags are
// compared case-insensitively; when normalize_whitespace is enabled (the
// default), internal runs of whitespace collapse to a single space before
// the comparison. The same policy applies to `[Tags]` rows, the suite-level
// `Force Tags`/`Default Tags`/`Test Tags` settings, and a trailing `Tags:`
// line inside documentation.
type DuplicateTagsRule struct {
	baseRule
	normalizeWhitespace bool
}

func NewDuplicateTagsRule() Rule {
	return &DuplicateTagsRule{
		baseRule:            baseRule{id: "duplicate-tags", sev: types.SeverityWarning},
		normalizeWhitespace: true,
	}
}

func (r *DuplicateTagsRule) Configure(params map[string]any) error {
	r.normalizeWhitespace = boolParam(params, "normalize_whitespace", r.normalizeWhitespace)
	return nil
}

var tagSettingNames = map[string]bool{
	"force tags":   true,
	"default tags": true,
	"test tags":    true,
	"task tags":    true,
}

func (r *DuplicateTagsRule) Check(file *ast.File) []types.Issue {
	var issues []types.Issue
	for _, stmt := range ast.Statements(file) {
		switch stmt.Kind {
		case ast.StatementTags:
			issues = append(issues, r.checkList(tagCells(stmt))...)
		case ast.StatementSetting:
			if tagSettingNames[strings.ToLower(stmt.Name())] {
				issues = append(issues, r.checkList(tagCells(stmt))...)
			}
		case ast.StatementDocumentation:
			issues = append(issues, r.checkDocumentation(stmt)...)
		}
	}
	return issues
}

// tagCells returns the argument cells of a tags row, skipping the setting
// name cell.
func tagCells(stmt *ast.Statement) []ast.Token {
	cells := stmt.Cells()
	if len(cells) == 0 {
		return nil
	}
	return cells[1:]
}

func (r *DuplicateTagsRule) checkList(tags []ast.Token) []types.Issue {
	var issues []types.Issue
	seen := make(map[string]ast.Token, len(tags))
	for _, tag := range tags {
		key := r.normalize(tag.Text)
		if first, dup := seen[key]; dup {
			issues = append(issues, r.issueAt(tag, fmt.Sprintf(
				"tag %q duplicates %q (line %d)", tag.Text, first.Text, first.Line)))
			continue
		}
		seen[key] = tag
	}
	return issues
}

// checkDocumentation looks for a free-text tag list of the form
// "Tags: a, b, c" inside a documentation row.
func (r *DuplicateTagsRule) checkDocumentation(stmt *ast.Statement) []types.Issue {
	for _, cell := range tagCells(stmt) {
		rest, ok := strings.CutPrefix(cell.Text, "Tags:")
		if !ok {
			continue
		}
		var tags []ast.Token
		offset := len("Tags:")
		for _, part := range strings.Split(rest, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				lead := len(part) - len(strings.TrimLeft(part, " \t"))
				tags = append(tags, ast.Token{
					Type:   ast.TokenArgument,
					Text:   trimmed,
					Line:   cell.Line,
					Column: cell.Column + offset + lead,
				})
			}
			offset += len(part) + 1
		}
		return r.checkList(tags)
	}
	return nil
}

func (r *DuplicateTagsRule) normalize(tag string) string {
	key := strings.ToLower(tag)
	if r.normalizeWhitespace {
		key = strings.Join(strings.Fields(key), " ")
	}
	return key
}
