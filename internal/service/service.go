// Package service implements the tally use cases on top of the repository.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jask/tally/internal/categorize"
	"github.com/jask/tally/internal/importer"
	"github.com/jask/tally/internal/logger"
	"github.com/jask/tally/internal/recurring"
	"github.com/jask/tally/internal/repository"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateRule = errors.New("ignore rule already exists")
	ErrEmptyKeyword  = errors.New("keyword must not be empty")
	ErrInvalid       = errors.New("invalid input")
)

// Options configures New. Zero values pick the built-in defaults.
type Options struct {
	Rules       *categorize.RuleSet
	Projector   recurring.Projector
	MaxPerCycle int
	DateOrder   importer.DateOrder
	Now         func() time.Time
	NewID       func() string
}

// Services bundles every use case sharing one repository.
type Services struct {
	Ledger      *LedgerService
	Import      *ImportService
	Categorize  *CategorizeService
	Rules       *RuleService
	Recurring   *RecurringService
	Maintenance *MaintenanceService
}

func New(repo *repository.Repo, opts Options) *Services {
	if opts.Rules == nil {
		opts.Rules = categorize.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Projector.Now == nil {
		opts.Projector.Now = opts.Now
	}
	if opts.Projector.NewID == nil {
		opts.Projector.NewID = opts.NewID
	}
	return &Services{
		Ledger:      &LedgerService{Repo: repo, Now: opts.Now, NewID: opts.NewID},
		Import:      &ImportService{Repo: repo, Rules: opts.Rules, DateOrder: opts.DateOrder, Now: opts.Now, NewID: opts.NewID},
		Categorize:  &CategorizeService{Repo: repo, Rules: opts.Rules, Now: opts.Now},
		Rules:       &RuleService{Repo: repo, NewID: opts.NewID},
		Recurring:   &RecurringService{Repo: repo, Projector: opts.Projector, MaxPerCycle: opts.MaxPerCycle, Now: opts.Now, NewID: opts.NewID},
		Maintenance: &MaintenanceService{Repo: repo},
	}
}

// fallback logs a storage failure on a read-only path and returns v, which
// the repository has already set to the default for that collection.
func fallback[T any](ctx context.Context, key string, v T, err error) T {
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Str("key", key).Msg("storage unavailable, using defaults")
	}
	return v
}
