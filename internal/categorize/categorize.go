// Package categorize assigns category labels to transaction descriptions
// using an ordered table of regular expressions.
package categorize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jask/tally/internal/ledger"
)

// RuleSpec is the uncompiled form of a Rule, as written in rule files.
type RuleSpec struct {
	Label    string   `toml:"name" yaml:"name"`
	Patterns []string `toml:"patterns" yaml:"patterns"`
}

// Rule assigns Label when any of its patterns matches.
type Rule struct {
	Label    string
	Patterns []*regexp.Regexp
}

// RuleSet evaluates rules in declaration order; the first matching rule wins.
type RuleSet struct {
	rules []Rule
}

// Compile builds a RuleSet. Patterns are matched case-insensitively.
func Compile(specs []RuleSpec) (*RuleSet, error) {
	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		label := strings.TrimSpace(spec.Label)
		if label == "" {
			return nil, fmt.Errorf("rule %d: label is required", i+1)
		}
		r := Rule{Label: label, Patterns: make([]*regexp.Regexp, 0, len(spec.Patterns))}
		for _, p := range spec.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("rule %q pattern %q: %w", label, p, err)
			}
			r.Patterns = append(r.Patterns, re)
		}
		rules = append(rules, r)
	}
	return &RuleSet{rules: rules}, nil
}

// Rules returns the rules in evaluation order.
func (rs *RuleSet) Rules() []Rule {
	return append([]Rule(nil), rs.rules...)
}

// Labels returns rule labels in evaluation order.
func (rs *RuleSet) Labels() []string {
	out := make([]string, 0, len(rs.rules))
	for _, r := range rs.rules {
		out = append(out, r.Label)
	}
	return out
}

// Categorize returns the label of the first matching rule, or "Other".
func (rs *RuleSet) Categorize(description string) string {
	if strings.TrimSpace(description) == "" {
		return ledger.UncategorizedLabel
	}
	for _, r := range rs.rules {
		for _, re := range r.Patterns {
			if re.MatchString(description) {
				return r.Label
			}
		}
	}
	return ledger.UncategorizedLabel
}

// Apply categorizes txs. Without overwrite only uncategorized transactions
// are touched. The returned slice is a copy; changed counts label changes.
func (rs *RuleSet) Apply(txs []ledger.Transaction, overwrite bool) ([]ledger.Transaction, int) {
	out := make([]ledger.Transaction, len(txs))
	changed := 0
	for i, tx := range txs {
		if overwrite || !tx.Categorized() {
			if label := rs.Categorize(tx.Description); label != tx.Category {
				tx.Category = label
				changed++
			}
		}
		out[i] = tx
	}
	return out, changed
}
