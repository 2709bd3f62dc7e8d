// Package insight evaluates an ordered rule set against category summaries.
package insight

import (
	"vitals/internal/aggregate"
)

// Severity tags an insight as encouraging or as a prompt to act.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityCaution  Severity = "caution"
)

// EmptyStateMessage is what a presenter shows when no rule fires.
const EmptyStateMessage = "Add more data to receive personalized insights!"

// Insight is a rule-triggered observation. Message is fixed per rule.
type Insight struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Rule is a pure predicate over summaries with a fixed message.
type Rule struct {
	Name     string
	Severity Severity
	Message  string
	When     func(aggregate.Summaries) bool
}

// Eval returns the rule's insight when its condition holds.
func (r Rule) Eval(s aggregate.Summaries) (Insight, bool) {
	if r.When == nil || !r.When(s) {
		return Insight{}, false
	}
	return Insight{Rule: r.Name, Severity: r.Severity, Message: r.Message}, true
}

// Engine holds an ordered, immutable list of rules.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine evaluating rules in the given order.
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...)}
}

// Default returns an engine with the default rules at thresholds t.
func Default(t Thresholds) *Engine {
	return NewEngine(DefaultRules(t)...)
}

// With returns a new engine with extra rules appended after the existing ones.
func (e *Engine) With(rules ...Rule) *Engine {
	all := make([]Rule, 0, len(e.rules)+len(rules))
	all = append(all, e.rules...)
	all = append(all, rules...)
	return &Engine{rules: all}
}

// Rules returns a copy of the engine's rules.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate runs every rule in order and collects the insights that fire. The
// result is never nil; an empty slice means the presenter should show
// EmptyStateMessage.
func (e *Engine) Evaluate(s aggregate.Summaries) []Insight {
	out := make([]Insight, 0, len(e.rules))
	for _, r := range e.rules {
		if in, ok := r.Eval(s); ok {
			out = append(out, in)
		}
	}
	return out
}
