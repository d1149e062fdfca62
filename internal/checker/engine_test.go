package checker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/types"
)

func runSource(t *testing.T, src string) []types.Issue {
	t.Helper()
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	issues, err := engine.RunSource("test.robot", []byte(src))
	require.NoError(t, err)
	return issues
}

func issuesFor(issues []types.Issue, rule string) []types.Issue {
	var out []types.Issue
	for _, issue := range issues {
		if issue.Rule == rule {
			out = append(out, issue)
		}
	}
	return out
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	assert.NotNil(t, engine)
	assert.Len(t, engine.rules, len(allRuleConstructors))
}

func TestNewEngineAppliesConfig(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(map[string]types.ConfigRule{
		"missing-documentation": {Severity: "off"},
		"too-many-arguments":    {Severity: "error", Params: map[string]any{"max_args": 2}},
		"not-a-real-rule":       {Severity: "error"},
	})
	require.NoError(t, err)
	assert.True(t, engine.ignored["missing-documentation"])

	issues, err := engine.RunSource("test.robot", []byte(`*** Keywords ***
Wide Keyword
    [Arguments]    ${a}    ${b}    ${c}
    No Operation
`))
	require.NoError(t, err)

	args := issuesFor(issues, "too-many-arguments")
	require.Len(t, args, 1)
	assert.Equal(t, types.SeverityError, args[0].Severity)
	assert.Empty(t, issuesFor(issues, "missing-documentation"))
}

func TestEngineIgnoreRule(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnoreRule("missing-documentation")

	issues, err := engine.RunSource("test.robot", []byte(`*** Test Cases ***
Undocumented
    Log    x
`))
	require.NoError(t, err)
	assert.Empty(t, issuesFor(issues, "missing-documentation"))
}

func TestEngineReportsParseErrors(t *testing.T) {
	t.Parallel()

	issues := runSource(t, `*** Keywords ***
Broken
    FOR    ${i}    IN    @{items}
        Log    x
`)

	parseIssues := issuesFor(issues, ParseErrorRule)
	require.Len(t, parseIssues, 1)
	assert.Equal(t, types.SeverityError, parseIssues[0].Severity)
	assert.Contains(t, parseIssues[0].Message, "FOR block has no matching END")
	assert.Equal(t, 3, parseIssues[0].Start.Line)
}

func TestEngineHonorsDirectives(t *testing.T) {
	t.Parallel()

	issues := runSource(t, `*** Settings ***
Force Tags    web    web    # tablint: disable=duplicate-tags
Default Tags    a    a
`)

	dups := issuesFor(issues, "duplicate-tags")
	require.Len(t, dups, 1)
	assert.Equal(t, 3, dups[0].Start.Line)
}

func TestEngineSortsIssues(t *testing.T) {
	t.Parallel()

	issues := runSource(t, `*** Test Cases ***
Zebra
    Log    x
Alpha
    Log    y
`)
	for i := 1; i < len(issues); i++ {
		prev, cur := issues[i-1], issues[i]
		if prev.Start.Line == cur.Start.Line {
			continue
		}
		assert.Less(t, prev.Start.Line, cur.Start.Line)
	}
}

func TestEngineRunReadsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "suite.robot")
	require.NoError(t, os.WriteFile(path, []byte(`*** Test Cases ***
My Test
    [Documentation]    Fine.
    Log    x
`), 0o644))

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	issues, err := engine.Run(path)
	require.NoError(t, err)
	for _, issue := range issues {
		assert.Equal(t, path, issue.Filename)
	}
}

func TestRuleFaultIsIsolated(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.rules["panicky"] = &panickyRule{
		baseRule: baseRule{id: "panicky", sev: types.SeverityWarning},
	}

	issues, err := engine.RunSource("test.robot", []byte(`*** Test Cases ***
My Test
    Log    x
`))
	require.NoError(t, err)

	faults := issuesFor(issues, RuleFaultRule)
	require.Len(t, faults, 1)
	assert.Contains(t, faults[0].Message, "rule panicky failed")
	// Other rules still ran.
	assert.NotEmpty(t, issuesFor(issues, "missing-documentation"))
}

type panickyRule struct {
	baseRule
}

func (r *panickyRule) Check(*ast.File) []types.Issue {
	panic("boom")
}

func TestSortIssues(t *testing.T) {
	t.Parallel()

	issues := []types.Issue{
		{Filename: "b.robot", Start: types.Position{Line: 1, Column: 1}, Rule: "r"},
		{Filename: "a.robot", Start: types.Position{Line: 9, Column: 1}, Rule: "r"},
		{Filename: "a.robot", Start: types.Position{Line: 2, Column: 5}, Rule: "z"},
		{Filename: "a.robot", Start: types.Position{Line: 2, Column: 5}, Rule: "a"},
	}
	SortIssues(issues)

	assert.Equal(t, "a", issues[0].Rule)
	assert.Equal(t, "z", issues[1].Rule)
	assert.Equal(t, 9, issues[2].Start.Line)
	assert.Equal(t, "b.robot", issues[3].Filename)
}
