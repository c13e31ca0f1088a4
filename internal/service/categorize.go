package service

import (
	"context"
	"time"

	"github.com/jask/tally/internal/categorize"
	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/repository"
)

// CategorizeService reapplies category rules to the stored ledger.
type CategorizeService struct {
	Repo  *repository.Repo
	Rules *categorize.RuleSet
	Now   func() time.Time
}

// Recategorize labels uncategorized transactions, or every transaction when
// all is set. It returns how many labels changed.
func (s *CategorizeService) Recategorize(ctx context.Context, all bool) (int, error) {
	txs, err := s.Repo.Transactions(ctx)
	if err != nil {
		return 0, err
	}
	out, changed := s.Rules.Apply(txs, all)
	if changed == 0 {
		return 0, nil
	}
	now := s.Now()
	for i := range out {
		if out[i].Category != txs[i].Category {
			out[i].UpdatedAt = now
		}
	}
	if err := s.Repo.SaveTransactions(ctx, out); err != nil {
		return 0, err
	}
	return changed, nil
}

// Categories returns stored category definitions plus any rule label that is
// missing from them.
func (s *CategorizeService) Categories(ctx context.Context) []ledger.Category {
	cats, err := s.Repo.Categories(ctx)
	cats = fallback(ctx, repository.KeyCategories, cats, err)

	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		seen[c.Name] = true
	}
	for _, label := range append(s.Rules.Labels(), ledger.UncategorizedLabel) {
		if !seen[label] {
			seen[label] = true
			cats = append(cats, ledger.Category{ID: ledger.DeterministicID("cat", label), Name: label})
		}
	}
	return cats
}
