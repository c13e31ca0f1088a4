// Package filter decides which imported rows are noise.
package filter

import (
	"strings"

	"github.com/jask/tally/internal/ledger"
)

// Filter matches descriptions against a fixed set of ignore rules.
type Filter struct {
	rules []ledger.IgnoreRule
}

// New returns a Filter over the active rules in rules. Rules with a blank
// keyword are skipped since they would match every description.
func New(rules []ledger.IgnoreRule) Filter {
	active := make([]ledger.IgnoreRule, 0, len(rules))
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if !r.Active || kw == "" {
			continue
		}
		r.Keyword = kw
		active = append(active, r)
	}
	return Filter{rules: active}
}

// Match returns the first active rule whose keyword occurs in description.
func (f Filter) Match(description string) (ledger.IgnoreRule, bool) {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return ledger.IgnoreRule{}, false
	}
	for _, r := range f.rules {
		if strings.Contains(desc, r.Keyword) {
			return r, true
		}
	}
	return ledger.IgnoreRule{}, false
}

// Ignored reports whether description should be dropped.
func (f Filter) Ignored(description string) bool {
	_, ok := f.Match(description)
	return ok
}

// ShouldIgnore is a one-shot form of New(rules).Ignored(description).
func ShouldIgnore(description string, rules []ledger.IgnoreRule) bool {
	return New(rules).Ignored(description)
}
