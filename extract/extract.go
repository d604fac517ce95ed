// Package extract pulls ship operation fields out of the free-form text of
// terminal documents.
//
// Every field family is a Rule: an ordered list of case-insensitive patterns,
// a resolution policy and a normalizer. The Engine runs each rule against
// either the raw document text or its normalized form and merges the results.
// Extraction never fails; fields that cannot be found are simply absent.
package extract

import "github.com/harborline/shipdesk"

var _ shipdesk.FieldExtractor = (*Engine)(nil)

// Engine extracts fields by evaluating rules in order.
// It is safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine returns an Engine for rules, or for DefaultRules when none are given.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = defaultRules
	}
	return &Engine{rules: rules}
}

// Extract implements shipdesk.FieldExtractor.
func (e *Engine) Extract(text string) shipdesk.Fields {
	clean := Normalize(text)
	out := make(shipdesk.Fields)
	for i := range e.rules {
		e.rules[i].apply(clean, text, out)
	}
	return out
}
