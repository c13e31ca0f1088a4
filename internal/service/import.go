package service

import (
	"context"
	"io"
	"time"

	"github.com/jask/tally/internal/importer"
	"github.com/jask/tally/internal/logger"
	"github.com/jask/tally/internal/repository"
)

// ImportService appends CSV bank exports to the ledger.
type ImportService struct {
	Repo      *repository.Repo
	Rules     importer.Categorizer
	DateOrder importer.DateOrder
	Now       func() time.Time
	NewID     func() string
}

type ImportOptions struct {
	// DryRun runs the pipeline without saving anything.
	DryRun bool
	Source string
}

type ImportResult struct {
	Batch importer.Batch
	Saved int
}

// Import runs the pipeline over r. Format and tokenizer errors are returned
// as is; row errors end up in the result.
func (s *ImportService) Import(ctx context.Context, r io.Reader, opts ImportOptions) (ImportResult, error) {
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"source":     opts.Source,
		"date_order": s.DateOrder.String(),
	})

	rules, err := s.Repo.IgnoreRules(ctx)
	rules = fallback(ctx, repository.KeyIgnoreRules, rules, err)

	p := &importer.Pipeline{
		IgnoreRules: rules,
		Categorizer: s.Rules,
		DateOrder:   s.DateOrder,
		Now:         s.Now,
		NewID:       s.NewID,
	}
	batch, err := p.Run(ctx, r)
	if err != nil {
		return ImportResult{}, err
	}
	for _, rowErr := range batch.Errors {
		log.Debug().Int("line", rowErr.Line).Err(rowErr.Err).Msg("row skipped")
	}

	res := ImportResult{Batch: batch}
	if opts.DryRun || len(batch.Transactions) == 0 {
		return res, nil
	}

	txs, err := s.Repo.Transactions(ctx)
	if err != nil {
		return res, err
	}
	if err := s.Repo.SaveTransactions(ctx, append(txs, batch.Transactions...)); err != nil {
		return res, err
	}
	res.Saved = len(batch.Transactions)
	log.Info().
		Int("saved", res.Saved).
		Int("ignored", batch.IgnoredCount).
		Int("errors", len(batch.Errors)).
		Msg("import complete")
	return res, nil
}
