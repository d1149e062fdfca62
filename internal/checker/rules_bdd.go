package checker

import (
	"fmt"

	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/types"
)

// BddWithoutCallRule flags BDD prefixes that name no keyword. A correctly
// written BDD call keeps the prefix and the keyword in one cell, joined by
// single spaces ("Given login page is open"). When the first cell is
// exactly a bare prefix, the author either forgot the keyword or split it
// off with a cell separator.
type BddWithoutCallRule struct {
	baseRule
}

func NewBddWithoutCallRule() Rule {
	return &BddWithoutCallRule{
		baseRule: baseRule{id: "bdd-without-call", sev: types.SeverityWarning},
	}
}

// The prefixes are matched case-sensitively on the first cell.
var bddPrefixes = map[string]bool{
	"Given": true,
	"When":  true,
	"Then":  true,
	"And":   true,
	"But":   true,
}

func (r *BddWithoutCallRule) Check(file *ast.File) []types.Issue {
	var issues []types.Issue
	for _, stmt := range ast.Statements(file) {
		if stmt.Kind != ast.StatementKeywordCall {
			continue
		}
		cells := stmt.Cells()
		if len(cells) == 0 || !bddPrefixes[cells[0].Text] {
			continue
		}
		if len(cells) == 1 {
			issues = append(issues, r.issueAt(cells[0], fmt.Sprintf(
				"BDD prefix %q has no keyword to call", cells[0].Text)))
			continue
		}
		issues = append(issues, r.issueAt(cells[0], fmt.Sprintf(
			"keyword separated from BDD prefix %q by a cell separator; join them with a single space", cells[0].Text)))
	}
	return issues
}
