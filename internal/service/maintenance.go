package service

import (
	"context"
	"fmt"

	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/repository"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	Repo *repository.Repo
}

// Reset wipes user data: the ledger and templates are emptied, categories and
// ignore rules go back to the built-in defaults.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.Repo == nil {
		return fmt.Errorf("maintenance: repository not configured")
	}
	if err := s.Repo.SaveTransactions(ctx, nil); err != nil {
		return err
	}
	if err := s.Repo.SaveTemplates(ctx, nil); err != nil {
		return err
	}
	if err := s.Repo.SaveCategories(ctx, ledger.DefaultCategories()); err != nil {
		return err
	}
	return s.Repo.SaveIgnoreRules(ctx, ledger.DefaultIgnoreRules())
}
