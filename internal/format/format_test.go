package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablint/tablint/internal/parser"
)

func formatSource(t *testing.T, cfg Config, src string) (string, bool) {
	t.Helper()
	out, changed, err := NewEngine(cfg).FormatSource("test.robot", []byte(src))
	require.NoError(t, err)
	return out, changed
}

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()

	sources := []string{
		"",
		"*** Test Cases ***\nMy Test\n    Log    hello\n",
		"*** Settings ***\r\nLibrary    Collections\r\n",
		"*** Test Cases ***\nT\n    Keyword    a\n    ...    b    # c\n",
		"no header\n\n*** Keywords ***\nK\n    Log   oddly   spaced\n",
		"*** Test Cases ***\nT\n    Log    x", // no final newline
		"*** Keywords ***\nBroken\n    FOR    ${i}    IN    @{x}\n        Log    x\n",
	}

	for _, src := range sources {
		file, _ := parser.Parse("test.robot", src)
		assert.Equal(t, src, Render(file), "round-trip of %q", src)
	}
}

func TestFormatIdempotence(t *testing.T) {
	t.Parallel()

	sources := []string{
		"*** Test Cases ***\nMy Test\n  Log  x\n   Another Keyword      y\n",
		"*** Keywords ***\nK\n    FOR    ${i}    IN RANGE    3\n      Log    ${i}\n    END\n",
		"*** Settings ***\nLibrary    B\nDocumentation    d\nLibrary    A\n",
		"*** Keywords ***\nA\n    No Operation\n\n*** Keywords ***\nB\n    No Operation\n",
	}

	cfg := DefaultConfig()
	for _, src := range sources {
		once, _ := formatSource(t, cfg, src)
		twice, changed := formatSource(t, cfg, once)
		assert.Equal(t, once, twice, "second run must be a fixed point for %q", src)
		assert.False(t, changed, "second run must report no change for %q", src)
	}
}

func TestAlignPass(t *testing.T) {
	t.Parallel()

	out, changed := formatSource(t, DefaultConfig(), `*** Test Cases ***
My Test
    [Documentation]    Doc.
  Short  x
   Longer Keyword  y
`)

	assert.True(t, changed)
	assert.Equal(t, `*** Test Cases ***
My Test
    [Documentation]    Doc.
    Short             x
    Longer Keyword    y
`, out)
}

func TestAlignNestedBlocks(t *testing.T) {
	t.Parallel()

	out, _ := formatSource(t, DefaultConfig(), `*** Keywords ***
Looper
  FOR  ${i}  IN RANGE  3
      Log  ${i}
  END
`)

	assert.Equal(t, `*** Keywords ***
Looper
    FOR    ${i}    IN RANGE    3
        Log    ${i}
    END
`, out)
}

func TestSplitLongLines(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LineLength = 40

	out, changed := formatSource(t, cfg, `*** Test Cases ***
T
    Keyword    argument one    argument two    # tail
`)

	assert.True(t, changed)
	assert.Equal(t, `*** Test Cases ***
T
    Keyword    argument one
    ...    argument two    # tail
`, out)

	// The split output is itself stable.
	again, changed := formatSource(t, cfg, out)
	assert.Equal(t, out, again)
	assert.False(t, changed)
}

func TestSplitKeepsOversizedCellWhole(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LineLength = 20

	out, _ := formatSource(t, cfg, `*** Test Cases ***
T
    Call    one-cell-far-longer-than-any-budget
`)

	assert.Contains(t, out, "    ...    one-cell-far-longer-than-any-budget\n")
}

func TestMergeSections(t *testing.T) {
	t.Parallel()

	out, changed := formatSource(t, DefaultConfig(), `*** Keywords ***
First
    No Operation

*** Keywords ***
Second
    No Operation
`)

	assert.True(t, changed)
	assert.Equal(t, `*** Keywords ***
First
    No Operation

Second
    No Operation
`, out)
}

func TestReorderSections(t *testing.T) {
	t.Parallel()

	out, _ := formatSource(t, DefaultConfig(), `*** Keywords ***
Helper
    No Operation
*** Settings ***
Library    X
`)

	assert.Equal(t, `*** Settings ***
Library    X
*** Keywords ***
Helper
    No Operation
`, out)
}

func TestReorderSectionsMissingFinalNewline(t *testing.T) {
	t.Parallel()

	src := "*** Keywords ***\nK\n    No Operation\n\n*** Settings ***\nLibrary    Collections"

	out, changed := formatSource(t, DefaultConfig(), src)
	assert.True(t, changed)
	assert.Equal(t, "*** Settings ***\nLibrary    Collections\n*** Keywords ***\nK\n    No Operation\n\n", out)

	// The moved section's last row regained a line ending, so a re-parse
	// still sees two sections and a second run changes nothing.
	again, changed := formatSource(t, DefaultConfig(), out)
	assert.False(t, changed)
	assert.Equal(t, out, again)
}

func TestMergeSectionsMissingFinalNewline(t *testing.T) {
	t.Parallel()

	src := "*** Settings ***\nLibrary    X\n*** Keywords ***\nK\n    No Operation\n*** Settings ***\nResource    r.resource"

	out, changed := formatSource(t, DefaultConfig(), src)
	assert.True(t, changed)
	assert.Equal(t, "*** Settings ***\nLibrary    X\nResource    r.resource\n*** Keywords ***\nK\n    No Operation\n", out)
}

func TestOrderSettings(t *testing.T) {
	t.Parallel()

	out, changed := formatSource(t, DefaultConfig(), `*** Settings ***
Library    Collections
Documentation    My suite.
# about resources
Resource    r.resource
`)

	assert.True(t, changed)
	assert.Equal(t, `*** Settings ***
Documentation    My suite.
Library    Collections
# about resources
Resource    r.resource
`, out)
}

func TestFinalNewline(t *testing.T) {
	t.Parallel()

	out, changed := formatSource(t, DefaultConfig(), "*** Test Cases ***\nT\n    Log    x")
	assert.True(t, changed)
	assert.Equal(t, "*** Test Cases ***\nT\n    Log    x\n", out)
}

func TestCRLFPreserved(t *testing.T) {
	t.Parallel()

	out, _ := formatSource(t, DefaultConfig(), "*** Test Cases ***\r\nT\r\n    Log  x\r\n")
	assert.Equal(t, "*** Test Cases ***\r\nT\r\n    Log    x\r\n", out)
}

func TestFormattingOffSentinel(t *testing.T) {
	t.Parallel()

	src := `*** Test Cases ***
Messy
    # tablint: off
    Log   deliberately   spaced
`
	out, changed := formatSource(t, DefaultConfig(), src)
	assert.Equal(t, src, out)
	assert.False(t, changed)
}

func TestFormattingOnReenables(t *testing.T) {
	t.Parallel()

	out, _ := formatSource(t, DefaultConfig(), `*** Test Cases ***
Messy
    # tablint: off
    Log   frozen   cells
    # tablint: on
    Log   loose   cells
`)

	assert.Contains(t, out, "    Log   frozen   cells\n")
	assert.Contains(t, out, "    Log    loose    cells\n")
}

func TestParseErrorsLeaveSourceUntouched(t *testing.T) {
	t.Parallel()

	src := `*** Keywords ***
Broken
    FOR    ${i}    IN    @{items}
        Log   x
`
	out, changed, err := NewEngine(DefaultConfig()).FormatSource("test.robot", []byte(src))
	require.Error(t, err)
	assert.Equal(t, src, out)
	assert.False(t, changed)
}

func TestDisabledPass(t *testing.T) {
	t.Parallel()

	off := false
	cfg := DefaultConfig()
	cfg.Passes = map[string]PassConfig{
		"align": {Enabled: &off},
	}

	src := "*** Test Cases ***\nT\n    Log   x\n"
	out, changed := formatSource(t, cfg, src)
	assert.Equal(t, src, out)
	assert.False(t, changed)
}
