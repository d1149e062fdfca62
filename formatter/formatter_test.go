package formatter

import (
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablint/tablint/internal/checker"
	tt "github.com/tablint/tablint/internal/types"
)

func init() {
	// Plain output keeps the expectations readable.
	color.NoColor = true
}

func TestGenerateFormattedIssue(t *testing.T) {
	code := &checker.SourceCode{
		Lines: []string{
			"*** Test Cases ***",
			"My Test",
			"    [Tags]    a    a",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "duplicate-tags",
			Filename: "test.robot",
			Severity: tt.SeverityWarning,
			Message:  `tag "a" duplicates "a" (line 3)`,
			Start:    tt.Position{Line: 3, Column: 20},
			End:      tt.Position{Line: 3, Column: 21},
		},
	}

	expected := `warning: duplicate-tags
 --> test.robot:3:20
  |
3 | [Tags]    a    a
  |                ~~
  = tag "a" duplicates "a" (line 3)

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestGenerateFormattedIssueSeverities(t *testing.T) {
	code := checker.NewSourceCode("Line one\n")

	for _, sev := range []tt.Severity{tt.SeverityError, tt.SeverityWarning, tt.SeverityInfo} {
		out := GenerateFormattedIssue([]tt.Issue{{
			Rule:     "some-rule",
			Filename: "f.robot",
			Severity: sev,
			Message:  "m",
			Start:    tt.Position{Line: 1, Column: 1},
			End:      tt.Position{Line: 1, Column: 4},
		}}, code)

		switch sev {
		case tt.SeverityError:
			assert.Contains(t, out, "error: some-rule")
		case tt.SeverityWarning:
			assert.Contains(t, out, "warning: some-rule")
		default:
			assert.Contains(t, out, "info: some-rule")
		}
	}
}

func TestParseErrorFormatterAddsNote(t *testing.T) {
	code := checker.NewSourceCode("*** Keywords ***\nK\n    FOR    ${i}    IN    @{x}\n")

	out := GenerateFormattedIssue([]tt.Issue{{
		Rule:     checker.ParseErrorRule,
		Filename: "broken.robot",
		Severity: tt.SeverityError,
		Message:  "FOR block has no matching END",
		Start:    tt.Position{Line: 3, Column: 5},
		End:      tt.Position{Line: 3, Column: 8},
	}}, code)

	assert.Contains(t, out, "error: parse-error")
	assert.Contains(t, out, "Note: files with parse errors are left untouched by the formatter")
}

func TestIssueOutOfSnippetRange(t *testing.T) {
	code := checker.NewSourceCode("only one line\n")

	out := GenerateFormattedIssue([]tt.Issue{{
		Rule:     "some-rule",
		Filename: "f.robot",
		Severity: tt.SeverityWarning,
		Message:  "dangling position",
		Start:    tt.Position{Line: 42, Column: 1},
		End:      tt.Position{Line: 42, Column: 2},
	}}, code)

	// The message is still rendered even when the snippet cannot be.
	assert.Contains(t, out, "dangling position")
}

func TestGenerateJSONOutput(t *testing.T) {
	issues := map[string][]tt.Issue{
		"a.robot": {
			{
				Rule:     "line-too-long",
				Severity: tt.SeverityWarning,
				Message:  "line is 130 characters long, budget is 120",
				Start:    tt.Position{Line: 7, Column: 121},
				End:      tt.Position{Line: 7, Column: 131},
			},
		},
	}

	data, err := GenerateJSONOutput(issues)
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded["a.robot"], 1)

	got := decoded["a.robot"][0]
	assert.Equal(t, "line-too-long", got["rule"])
	assert.Equal(t, "WARNING", got["severity"])
	assert.Equal(t, float64(7), got["line"])
	assert.Equal(t, float64(121), got["column"])
}
