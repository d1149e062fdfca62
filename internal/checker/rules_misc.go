package checker

import (
	"fmt"
	"strings"

	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/types"
)

// MissingDocumentationRule reports test cases and keywords that carry no
// [Documentation] row.
type MissingDocumentationRule struct {
	baseRule
}

func NewMissingDocumentationRule() Rule {
	return &MissingDocumentationRule{
		baseRule: baseRule{id: "missing-documentation", sev: types.SeverityInfo},
	}
}

func (r *MissingDocumentationRule) Check(file *ast.File) []types.Issue {
	var issues []types.Issue
	for _, sec := range file.Sections {
		for _, n := range sec.Body {
			blk, ok := n.(*ast.Block)
			if !ok || (blk.Kind != ast.BlockTestCase && blk.Kind != ast.BlockKeyword) {
				continue
			}
			if hasDocumentation(blk) {
				continue
			}
			cells := blk.Header.Cells()
			if len(cells) == 0 {
				continue
			}
			issues = append(issues, r.issueAt(cells[0], fmt.Sprintf(
				"%s %q has no [Documentation]", blk.Kind, blk.Name())))
		}
	}
	return issues
}

func hasDocumentation(blk *ast.Block) bool {
	for _, n := range blk.Body {
		if stmt, ok := n.(*ast.Statement); ok && stmt.Kind == ast.StatementDocumentation {
			return true
		}
	}
	return false
}

// DeprecatedSettingRule reports settings that newer syntax supersedes.
type DeprecatedSettingRule struct {
	baseRule
}

func NewDeprecatedSettingRule() Rule {
	return &DeprecatedSettingRule{
		baseRule: baseRule{id: "deprecated-setting", sev: types.SeverityWarning},
	}
}

// deprecated settings-section rows mapped to their replacements.
var deprecatedSettings = map[string]string{
	"force tags":   "Test Tags",
	"default tags": "Test Tags",
}

func (r *DeprecatedSettingRule) Check(file *ast.File) []types.Issue {
	var issues []types.Issue
	for _, stmt := range ast.Statements(file) {
		switch stmt.Kind {
		case ast.StatementSetting:
			replacement, ok := deprecatedSettings[strings.ToLower(stmt.Name())]
			if !ok {
				continue
			}
			cells := stmt.Cells()
			issues = append(issues, r.issueAt(cells[0], fmt.Sprintf(
				"%q is deprecated, use %q instead", cells[0].Text, replacement)))
		case ast.StatementReturn:
			cells := stmt.Cells()
			issues = append(issues, r.issueAt(cells[0],
				"the [Return] setting is deprecated, use the RETURN statement instead"))
		}
	}
	return issues
}

// TooManyArgumentsRule limits the number of arguments a keyword declares.
type TooManyArgumentsRule struct {
	baseRule
	maxArgs int
}

func NewTooManyArgumentsRule() Rule {
	return &TooManyArgumentsRule{
		baseRule: baseRule{id: "too-many-arguments", sev: types.SeverityWarning},
		maxArgs:  5,
	}
}

func (r *TooManyArgumentsRule) Configure(params map[string]any) error {
	r.maxArgs = intParam(params, "max_args", r.maxArgs)
	return nil
}

func (r *TooManyArgumentsRule) Check(file *ast.File) []types.Issue {
	var issues []types.Issue
	for _, stmt := range ast.Statements(file) {
		if stmt.Kind != ast.StatementArguments {
			continue
		}
		cells := stmt.Cells()
		if count := len(cells) - 1; count > r.maxArgs {
			issues = append(issues, r.issueAt(cells[0], fmt.Sprintf(
				"keyword declares %d arguments, maximum allowed is %d", count, r.maxArgs)))
		}
	}
	return issues
}

// LineTooLongRule reports physical lines exceeding the configured budget.
type LineTooLongRule struct {
	baseRule
	lineLength int
}

func NewLineTooLongRule() Rule {
	return &LineTooLongRule{
		baseRule:   baseRule{id: "line-too-long", sev: types.SeverityWarning},
		lineLength: 120,
	}
}

func (r *LineTooLongRule) Configure(params map[string]any) error {
	r.lineLength = intParam(params, "line_length", r.lineLength)
	return nil
}

func (r *LineTooLongRule) Check(file *ast.File) []types.Issue {
	// Reconstruct line widths from token spans; EOL and EOS tokens do not
	// count toward the width.
	widths := make(map[int]int)
	for _, stmt := range ast.Statements(file) {
		for _, tok := range stmt.Tokens {
			if tok.Type == ast.TokenEOL || tok.Type == ast.TokenEOS {
				continue
			}
			if end := tok.Column + len(tok.Text) - 1; end > widths[tok.Line] {
				widths[tok.Line] = end
			}
		}
	}

	lines := make([]int, 0, len(widths))
	for line, width := range widths {
		if width > r.lineLength {
			lines = append(lines, line)
		}
	}
	var issues []types.Issue
	for _, line := range lines {
		issues = append(issues, types.Issue{
			Rule:     r.id,
			Severity: r.sev,
			Message:  fmt.Sprintf("line is %d characters long, budget is %d", widths[line], r.lineLength),
			Start:    types.Position{Line: line, Column: r.lineLength + 1},
			End:      types.Position{Line: line, Column: widths[line] + 1},
		})
	}
	return issues
}
