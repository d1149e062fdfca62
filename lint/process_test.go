package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/tablint/tablint/internal/types"
)

func newTestEngine(t *testing.T) LintEngine {
	t.Helper()
	engine, err := New("")
	require.NoError(t, err)
	return engine
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSuite(t, dir, "suite.robot", `*** Test Cases ***
Undocumented
    Log    x
`)

	issues, err := ProcessPath(context.Background(), nil, newTestEngine(t), path, ProcessFile)
	require.NoError(t, err)

	var found bool
	for _, issue := range issues {
		if issue.Rule == "missing-documentation" {
			found = true
			assert.Equal(t, path, issue.Filename)
		}
	}
	assert.True(t, found)
}

func TestProcessPathSkipsOtherExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSuite(t, dir, "notes.txt", "not a suite")

	issues, err := ProcessPath(context.Background(), nil, newTestEngine(t), path, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestProcessPathDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeSuite(t, dir, "one.robot", "*** Test Cases ***\nA\n    Log    x\n")
	writeSuite(t, filepath.Join(dir, "sub"), "two.resource", "*** Keywords ***\nB\n    No Operation\n")
	writeSuite(t, dir, "skipped.md", "prose")

	issues, err := ProcessPath(context.Background(), nil, newTestEngine(t), dir, ProcessFile)
	require.NoError(t, err)

	filenames := map[string]bool{}
	for _, issue := range issues {
		filenames[filepath.Base(issue.Filename)] = true
	}
	assert.True(t, filenames["one.robot"])
	assert.True(t, filenames["two.resource"])
	assert.False(t, filenames["skipped.md"])

	// Directory results come back sorted by file and position.
	for i := 1; i < len(issues); i++ {
		prev, cur := issues[i-1], issues[i]
		if prev.Filename == cur.Filename {
			assert.LessOrEqual(t, prev.Start.Line, cur.Start.Line)
		} else {
			assert.Less(t, prev.Filename, cur.Filename)
		}
	}
}

func TestProcessPathSiblingErrorKeepsOtherResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var good []string
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("suite%d.robot", i)
		writeSuite(t, dir, name, "*** Test Cases ***\nUndocumented\n    Log    x\n")
		if i%2 == 0 {
			good = append(good, filepath.Join(dir, name))
		}
	}

	// Every odd-numbered file fails; the even ones must still report.
	processor := func(engine LintEngine, path string) ([]tt.Issue, error) {
		var n int
		fmt.Sscanf(filepath.Base(path), "suite%d.robot", &n)
		if n%2 != 0 {
			return nil, errors.New("unreadable")
		}
		return ProcessFile(engine, path)
	}

	issues, err := ProcessPath(context.Background(), nil, newTestEngine(t), dir, processor)
	require.NoError(t, err)

	reported := map[string]bool{}
	for _, issue := range issues {
		reported[issue.Filename] = true
	}
	for _, path := range good {
		assert.True(t, reported[path], path)
	}
	assert.Len(t, reported, len(good))
}

func TestProcessFilesCancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.robot", "b.robot", "c.robot"} {
		writeSuite(t, dir, name, "*** Test Cases ***\nT\n    Log    x\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessFiles(ctx, nil, newTestEngine(t), []string{dir}, ProcessFile)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()

	issues, err := ProcessSource(newTestEngine(t), "inline.robot", []byte(`*** Settings ***
Force Tags    a    a
`))
	require.NoError(t, err)

	var rules []string
	for _, issue := range issues {
		rules = append(rules, issue.Rule)
	}
	assert.Contains(t, rules, "duplicate-tags")
	assert.Contains(t, rules, "deprecated-setting")

	for _, issue := range issues {
		assert.Equal(t, "inline.robot", issue.Filename)
	}
}

func TestHasDesiredExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, hasDesiredExtension("x/y/suite.robot"))
	assert.True(t, hasDesiredExtension("keywords.resource"))
	assert.True(t, hasDesiredExtension("UPPER.ROBOT"))
	assert.False(t, hasDesiredExtension("main.go"))
	assert.False(t, hasDesiredExtension("robot"))
}
