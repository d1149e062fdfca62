package formatter

import (
	"encoding/json"

	tt "github.com/tablint/tablint/internal/types"
)

type jsonIssue struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	EndLine  int    `json:"end_line"`
	EndCol   int    `json:"end_column"`
}

// GenerateJSONOutput marshals issues grouped by filename into a stable
// machine-readable form.
func GenerateJSONOutput(issuesByFile map[string][]tt.Issue) ([]byte, error) {
	out := make(map[string][]jsonIssue, len(issuesByFile))
	for filename, issues := range issuesByFile {
		converted := make([]jsonIssue, 0, len(issues))
		for _, issue := range issues {
			converted = append(converted, jsonIssue{
				Rule:     issue.Rule,
				Severity: issue.Severity.String(),
				Message:  issue.Message,
				Line:     issue.Start.Line,
				Column:   issue.Start.Column,
				EndLine:  issue.End.Line,
				EndCol:   issue.End.Column,
			})
		}
		out[filename] = converted
	}
	return json.Marshal(out)
}
