package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/repository"
)

// RuleService manages ignore rules.
type RuleService struct {
	Repo  *repository.Repo
	NewID func() string
}

func (s *RuleService) List(ctx context.Context) []ledger.IgnoreRule {
	rules, err := s.Repo.IgnoreRules(ctx)
	return fallback(ctx, repository.KeyIgnoreRules, rules, err)
}

// Add stores a new active rule. Keywords are compared case-insensitively.
func (s *RuleService) Add(ctx context.Context, keyword string) (ledger.IgnoreRule, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return ledger.IgnoreRule{}, ErrEmptyKeyword
	}
	rules, err := s.Repo.IgnoreRules(ctx)
	if err != nil {
		return ledger.IgnoreRule{}, err
	}
	for _, r := range rules {
		if strings.EqualFold(strings.TrimSpace(r.Keyword), kw) {
			return ledger.IgnoreRule{}, fmt.Errorf("%w: %q", ErrDuplicateRule, kw)
		}
	}
	rule := ledger.IgnoreRule{ID: s.NewID(), Keyword: kw, Active: true}
	if err := s.Repo.SaveIgnoreRules(ctx, append(rules, rule)); err != nil {
		return ledger.IgnoreRule{}, err
	}
	return rule, nil
}

// Remove deletes the rule whose id or keyword is key.
func (s *RuleService) Remove(ctx context.Context, key string) (ledger.IgnoreRule, error) {
	rules, err := s.Repo.IgnoreRules(ctx)
	if err != nil {
		return ledger.IgnoreRule{}, err
	}
	i, err := findRule(rules, key)
	if err != nil {
		return ledger.IgnoreRule{}, err
	}
	removed := rules[i]
	rules = append(rules[:i], rules[i+1:]...)
	if err := s.Repo.SaveIgnoreRules(ctx, rules); err != nil {
		return ledger.IgnoreRule{}, err
	}
	return removed, nil
}

// SetActive enables or disables the rule whose id or keyword is key.
func (s *RuleService) SetActive(ctx context.Context, key string, active bool) (ledger.IgnoreRule, error) {
	rules, err := s.Repo.IgnoreRules(ctx)
	if err != nil {
		return ledger.IgnoreRule{}, err
	}
	i, err := findRule(rules, key)
	if err != nil {
		return ledger.IgnoreRule{}, err
	}
	rules[i].Active = active
	if err := s.Repo.SaveIgnoreRules(ctx, rules); err != nil {
		return ledger.IgnoreRule{}, err
	}
	return rules[i], nil
}

func findRule(rules []ledger.IgnoreRule, key string) (int, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for i, r := range rules {
		if r.ID == key || strings.ToLower(r.Keyword) == k {
			return i, nil
		}
	}
	if hint := suggest(rules, k); hint != "" {
		return -1, fmt.Errorf("ignore rule %q: %w (did you mean %q?)", key, ErrNotFound, hint)
	}
	return -1, fmt.Errorf("ignore rule %q: %w", key, ErrNotFound)
}

// suggest returns the closest keyword within a 40% edit distance.
func suggest(rules []ledger.IgnoreRule, key string) string {
	best, bestScore := "", 0.4
	for _, r := range rules {
		kw := strings.ToLower(r.Keyword)
		maxlen := max(len(kw), len(key))
		if maxlen == 0 {
			continue
		}
		score := float64(levenshtein.ComputeDistance(kw, key)) / float64(maxlen)
		if score < bestScore {
			best, bestScore = r.Keyword, score
		}
	}
	return best
}
