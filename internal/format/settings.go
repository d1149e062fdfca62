package format

import (
	"sort"
	"strings"

	"github.com/tablint/tablint/internal/ast"
)

// orderSettingsPass reorders the rows of a settings section into the
// canonical sequence. Comments and blank lines textually preceding a
// setting travel with it; a trailing run with no setting after it stays at
// the end. The pass skips a section entirely when any of its rows is
// inside a formatting-off scope; partial reordering around a frozen row
// could interleave rows invalidly.
type orderSettingsPass struct{}

func (orderSettingsPass) Name() string { return "order-settings" }

var settingsOrder = map[string]int{
	"documentation":  0,
	"metadata":       1,
	"library":        2,
	"resource":       3,
	"variables":      4,
	"suite setup":    5,
	"suite teardown": 6,
	"test setup":     7,
	"test teardown":  8,
	"test template":  9,
	"test timeout":   10,
	"test tags":      11,
	"force tags":     12,
	"default tags":   13,
}

func (orderSettingsPass) Apply(f *ast.File, ctx *Context) error {
	for _, sec := range f.Sections {
		if sec.Kind != ast.SectionSettings {
			continue
		}
		orderSettings(sec, ctx)
	}
	return nil
}

// unit is one setting row with the comments and blank lines leading it.
type unit struct {
	lead    []ast.Node
	setting *ast.Statement
}

func (u unit) rank() int {
	name := strings.ToLower(u.setting.Name())
	name = strings.Join(strings.Fields(name), " ")
	if r, ok := settingsOrder[name]; ok {
		return r
	}
	return len(settingsOrder)
}

func orderSettings(sec *ast.Section, ctx *Context) {
	for _, stmt := range ast.Statements(sec) {
		if !ctx.Directives.FormattingEnabled(stmt.FirstLine()) {
			return
		}
	}

	var units []unit
	var pending []ast.Node
	for _, n := range sec.Body {
		stmt, ok := n.(*ast.Statement)
		if !ok {
			pending = append(pending, n)
			continue
		}
		switch stmt.Kind {
		case ast.StatementComment, ast.StatementEmpty:
			pending = append(pending, n)
		default:
			units = append(units, unit{lead: pending, setting: stmt})
			pending = nil
		}
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].rank() < units[j].rank()
	})

	body := make([]ast.Node, 0, len(sec.Body))
	for _, u := range units {
		body = append(body, u.lead...)
		body = append(body, u.setting)
	}
	body = append(body, pending...)
	sec.Body = body
}
