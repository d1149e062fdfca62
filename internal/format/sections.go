package format

import (
	"sort"

	"github.com/tablint/tablint/internal/ast"
)

// mergeSectionsPass folds repeated same-kind sections into the first
// occurrence, keeping every child (and the comments preceding it) in its
// original relative order, then reorders sections into the canonical
// sequence: leading free text, Comments, Settings, Variables, Test Cases,
// Keywords. A section whose header sits inside a formatting-off scope is
// neither merged into, merged away, nor moved.
type mergeSectionsPass struct{}

func (mergeSectionsPass) Name() string { return "merge-sections" }

func (mergeSectionsPass) Apply(f *ast.File, ctx *Context) error {
	merged := mergeSections(f.Sections, ctx)
	f.Sections = reorderSections(merged, ctx)
	for i, sec := range f.Sections {
		if i == len(f.Sections)-1 || sectionFrozen(sec, ctx) {
			continue
		}
		terminateSection(sec, ctx)
	}
	return nil
}

// terminateSection restores a line ending on sec's last statement. A source
// that ends without a newline leaves an empty-text EOL token on its final
// statement; when merging or reordering puts other sections after it, that
// statement would otherwise glue onto the next section's header.
func terminateSection(sec *ast.Section, ctx *Context) {
	stmts := ast.Statements(sec)
	if len(stmts) == 0 {
		return
	}
	last := stmts[len(stmts)-1]
	for i := len(last.Tokens) - 1; i >= 0; i-- {
		if last.Tokens[i].Type != ast.TokenEOL {
			continue
		}
		if last.Tokens[i].Text == "" {
			tok := last.Tokens[i]
			tok.Text = ctx.EOL
			last.Tokens[i] = tok
		}
		return
	}
}

func mergeSections(sections []*ast.Section, ctx *Context) []*ast.Section {
	var out []*ast.Section
	first := make(map[ast.SectionKind]*ast.Section)
	for _, sec := range sections {
		if sectionFrozen(sec, ctx) || sec.Header == nil {
			// The implicit leading section keeps its identity; frozen
			// sections are left exactly where and as they are.
			out = append(out, sec)
			continue
		}
		if prev, ok := first[sec.Kind]; ok {
			prev.Body = append(prev.Body, sec.Body...)
			continue
		}
		first[sec.Kind] = sec
		out = append(out, sec)
	}
	return out
}

// canonical presentation order; lower runs first.
func sectionRank(sec *ast.Section) int {
	if sec.Header == nil {
		return 0 // leading free text stays on top
	}
	switch sec.Kind {
	case ast.SectionComments:
		return 1
	case ast.SectionSettings:
		return 2
	case ast.SectionVariables:
		return 3
	case ast.SectionTestCases:
		return 4
	default:
		return 5
	}
}

func reorderSections(sections []*ast.Section, ctx *Context) []*ast.Section {
	out := make([]*ast.Section, len(sections))
	var movable []*ast.Section
	for i, sec := range sections {
		if sectionFrozen(sec, ctx) {
			out[i] = sec
			continue
		}
		movable = append(movable, sec)
	}
	sort.SliceStable(movable, func(i, j int) bool {
		return sectionRank(movable[i]) < sectionRank(movable[j])
	})
	next := 0
	for i := range out {
		if out[i] == nil {
			out[i] = movable[next]
			next++
		}
	}
	return out
}

// sectionFrozen checks the sentinel scope at the section's first line.
func sectionFrozen(sec *ast.Section, ctx *Context) bool {
	line := 0
	if sec.Header != nil {
		line = sec.Header.FirstLine()
	} else if end := ast.EndLine(sec); end > 0 {
		line = 1
	}
	if line == 0 {
		return false
	}
	return !ctx.Directives.FormattingEnabled(line)
}
