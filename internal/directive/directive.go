// Package directive resolves `# tablint:` sentinel comments into scoped
// flags. Scopes are computed once, right after parsing, and consulted by
// both engines: the rule engine filters issues through IsDisabled, and
// every formatting pass checks FormattingEnabled before mutating a node.
//
// Supported directives:
//
//	# tablint: off                  suppress formatting for the scope
//	# tablint: on                   re-enable formatting from this line
//	# tablint: disable              suppress all rules for the scope
//	# tablint: disable=id1,id2      suppress the listed rules
//
// An inline directive (trailing a statement) applies to that statement's
// lines. A standalone directive applies from its own line to the end of
// the enclosing block, section, or file.
package directive

import (
	"strings"

	"github.com/tablint/tablint/internal/ast"
)

const marker = "tablint:"

type span struct {
	start, end int
}

func (s span) contains(line int) bool {
	return line >= s.start && line <= s.end
}

type ruleScope struct {
	span
	rules map[string]struct{} // empty means all rules
}

// Manager answers scope queries for one parsed file.
type Manager struct {
	fmtOff []span
	rules  []ruleScope
}

// Parse walks the file and collects directive scopes.
func Parse(f *ast.File) *Manager {
	m := &Manager{}
	fileEnd := ast.EndLine(f)
	for _, sec := range f.Sections {
		secEnd := containerEnd(sec, fileEnd)
		if sec.Header == nil {
			// A directive before the first explicit header scopes to the
			// whole file.
			secEnd = fileEnd
		}
		m.collectStatement(sec.Header, secEnd)
		for _, n := range sec.Body {
			m.collect(n, secEnd)
		}
	}
	return m
}

func (m *Manager) collect(n ast.Node, enclosingEnd int) {
	switch x := n.(type) {
	case *ast.Statement:
		m.collectStatement(x, enclosingEnd)
	case *ast.Block:
		end := containerEnd(x, enclosingEnd)
		m.collectStatement(x.Header, end)
		for _, c := range x.Body {
			m.collect(c, end)
		}
		m.collectStatement(x.End, end)
	}
}

func containerEnd(n ast.Node, fallback int) int {
	if end := ast.EndLine(n); end > 0 {
		return end
	}
	return fallback
}

func (m *Manager) collectStatement(s *ast.Statement, enclosingEnd int) {
	if s == nil {
		return
	}
	inline := s.Kind != ast.StatementComment
	for _, tok := range s.Comments() {
		text, ok := directiveText(tok.Text)
		if !ok {
			continue
		}
		sc := span{start: tok.Line, end: enclosingEnd}
		if inline {
			sc = span{start: s.FirstLine(), end: s.LastLine()}
		}
		switch {
		case text == "off":
			m.fmtOff = append(m.fmtOff, sc)
		case text == "on":
			m.reenable(tok.Line)
		case text == "disable":
			m.rules = append(m.rules, ruleScope{span: sc, rules: map[string]struct{}{}})
		case strings.HasPrefix(text, "disable="):
			names := parseRuleNames(strings.TrimPrefix(text, "disable="))
			if len(names) > 0 {
				m.rules = append(m.rules, ruleScope{span: sc, rules: names})
			}
		}
	}
}

// reenable truncates every formatting-off scope that is open at the given
// line.
func (m *Manager) reenable(line int) {
	for i := range m.fmtOff {
		if m.fmtOff[i].start < line && m.fmtOff[i].end >= line {
			m.fmtOff[i].end = line - 1
		}
	}
}

// directiveText extracts the directive body from a comment token, or
// reports that the comment is not a tablint directive.
func directiveText(comment string) (string, bool) {
	text := strings.TrimLeft(comment, "# \t")
	if !strings.HasPrefix(text, marker) {
		return "", false
	}
	return strings.TrimSpace(text[len(marker):]), true
}

func parseRuleNames(list string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names[name] = struct{}{}
		}
	}
	return names
}

// FormattingEnabled reports whether formatting passes may touch the given
// line.
func (m *Manager) FormattingEnabled(line int) bool {
	for _, sc := range m.fmtOff {
		if sc.contains(line) {
			return false
		}
	}
	return true
}

// IsDisabled reports whether the named rule is suppressed at the given
// line.
func (m *Manager) IsDisabled(line int, rule string) bool {
	for _, sc := range m.rules {
		if !sc.contains(line) {
			continue
		}
		if len(sc.rules) == 0 {
			return true
		}
		if _, ok := sc.rules[rule]; ok {
			return true
		}
	}
	return false
}
