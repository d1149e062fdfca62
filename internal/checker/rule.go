package checker

import (
	"github.com/tablint/tablint/internal/ast"
	"github.com/tablint/tablint/internal/types"
)

// Rule is the interface implemented by every check. Rules are independent
// and side-effect-free with respect to each other: a rule only reads the
// file model and emits issues.
type Rule interface {
	// ID returns the unique identifier of the rule.
	ID() string

	// Severity returns the severity issues from this rule carry.
	Severity() types.Severity

	// SetSeverity overrides the default severity.
	SetSeverity(types.Severity)

	// Configure applies per-rule parameters from the configuration file.
	Configure(params map[string]any) error

	// Check runs the rule over the file model and returns its findings.
	Check(file *ast.File) []types.Issue
}

// baseRule carries the identity and severity shared by all rules.
type baseRule struct {
	id  string
	sev types.Severity
}

func (r *baseRule) ID() string                     { return r.id }
func (r *baseRule) Severity() types.Severity       { return r.sev }
func (r *baseRule) SetSeverity(sev types.Severity) { r.sev = sev }
func (r *baseRule) Configure(map[string]any) error { return nil }

func (r *baseRule) issueAt(tok ast.Token, msg string) types.Issue {
	return types.Issue{
		Rule:     r.id,
		Severity: r.sev,
		Message:  msg,
		Start:    types.Position{Line: tok.Line, Column: tok.Column},
		End:      types.Position{Line: tok.Line, Column: tok.Column + len(tok.Text)},
	}
}

// ruleConstructor builds a rule with its default configuration.
type ruleConstructor func() Rule

var allRuleConstructors = map[string]ruleConstructor{
	"duplicate-tags":        NewDuplicateTagsRule,
	"bdd-without-call":      NewBddWithoutCallRule,
	"uneven-indent":         NewUnevenIndentRule,
	"missing-documentation": NewMissingDocumentationRule,
	"deprecated-setting":    NewDeprecatedSettingRule,
	"too-many-arguments":    NewTooManyArgumentsRule,
	"line-too-long":         NewLineTooLongRule,
}

// intParam reads an integer parameter, accepting the types yaml decodes
// numbers into.
func intParam(params map[string]any, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

func boolParam(params map[string]any, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
