// Package checker runs independent style and correctness rules over the
// parsed file model. Rules run concurrently per file; a fault inside one
// rule is isolated and reported as a meta-issue without blocking the
// remaining rules.
package checker

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/tablint/tablint/internal/directive"
	"github.com/tablint/tablint/internal/parser"
	"github.com/tablint/tablint/internal/types"
)

// ParseErrorRule identifies issues surfaced from the parser rather than a
// configured rule.
const ParseErrorRule = "parse-error"

// RuleFaultRule identifies meta-issues reporting an internal rule failure.
const RuleFaultRule = "rule-fault"

// Engine manages the linting process for one configuration.
type Engine struct {
	rules   map[string]Rule
	ignored map[string]bool
}

// NewEngine builds an engine with the default rules, then applies the
// per-rule configuration on top.
func NewEngine(cfg map[string]types.ConfigRule) (*Engine, error) {
	e := &Engine{
		rules:   make(map[string]Rule),
		ignored: make(map[string]bool),
	}
	for id, ctor := range allRuleConstructors {
		e.rules[id] = ctor()
	}

	for id, rc := range cfg {
		rule, ok := e.rules[id]
		if !ok {
			// Unknown rule ids are tolerated so one config can serve
			// multiple tool versions.
			continue
		}
		if rc.Severity != "" {
			sev := types.ParseSeverity(rc.Severity)
			if sev == types.SeverityOff {
				e.IgnoreRule(id)
			}
			rule.SetSeverity(sev)
		}
		if len(rc.Params) > 0 {
			if err := rule.Configure(rc.Params); err != nil {
				return nil, fmt.Errorf("configuring rule %s: %w", id, err)
			}
		}
	}
	return e, nil
}

// IgnoreRule disables a rule for all files processed by this engine.
func (e *Engine) IgnoreRule(id string) {
	e.ignored[id] = true
}

// Run lints a file on disk.
func (e *Engine) Run(filename string) ([]types.Issue, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return e.RunSource(filename, src)
}

// RunSource lints in-memory source. Parse errors become issues rather than
// failures; the rule set still runs over the best-effort model.
func (e *Engine) RunSource(filename string, src []byte) ([]types.Issue, error) {
	file, parseErrs := parser.Parse(filename, string(src))
	directives := directive.Parse(file)

	allIssues := make([]types.Issue, 0, len(parseErrs))
	for _, pe := range parseErrs {
		allIssues = append(allIssues, types.Issue{
			Rule:     ParseErrorRule,
			Filename: filename,
			Severity: types.SeverityError,
			Message:  pe.Message,
			Start:    pe.Pos,
			End:      pe.Pos,
		})
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, rule := range e.rules {
		if e.ignored[rule.ID()] || rule.Severity() == types.SeverityOff {
			continue
		}
		wg.Add(1)
		go func(r Rule) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					mu.Lock()
					allIssues = append(allIssues, types.Issue{
						Rule:     RuleFaultRule,
						Filename: filename,
						Severity: types.SeverityError,
						Message:  fmt.Sprintf("rule %s failed: %v", r.ID(), rec),
						Start:    types.Position{Line: 1, Column: 1},
						End:      types.Position{Line: 1, Column: 1},
					})
					mu.Unlock()
				}
			}()

			issues := r.Check(file)
			kept := issues[:0]
			for _, issue := range issues {
				if directives.IsDisabled(issue.Start.Line, issue.Rule) {
					continue
				}
				issue.Filename = filename
				kept = append(kept, issue)
			}

			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	SortIssues(allIssues)
	return allIssues, nil
}

// SortIssues orders issues for presentation: file path, then line, column,
// and rule id.
func SortIssues(issues []types.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		if a.Start.Column != b.Start.Column {
			return a.Start.Column < b.Start.Column
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}
