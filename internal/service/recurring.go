package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/logger"
	"github.com/jask/tally/internal/recurring"
	"github.com/jask/tally/internal/repository"
)

// RecurringService manages templates and materializes due occurrences.
type RecurringService struct {
	Repo        *repository.Repo
	Projector   recurring.Projector
	MaxPerCycle int
	Now         func() time.Time
	NewID       func() string
}

// TemplateView is a template with its derived lifecycle state.
type TemplateView struct {
	Template ledger.RecurringTemplate
	State    recurring.State
}

func (s *RecurringService) List(ctx context.Context) []TemplateView {
	ts, err := s.Repo.Templates(ctx)
	ts = fallback(ctx, repository.KeyTemplates, ts, err)
	out := make([]TemplateView, 0, len(ts))
	for _, t := range ts {
		out = append(out, TemplateView{Template: t, State: s.Projector.State(t)})
	}
	return out
}

// Add validates and stores t, filling in id, category and timestamps.
func (s *RecurringService) Add(ctx context.Context, t ledger.RecurringTemplate) (ledger.RecurringTemplate, error) {
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return ledger.RecurringTemplate{}, fmt.Errorf("%w: description is required", ErrInvalid)
	}
	if !t.Frequency.Valid() {
		return ledger.RecurringTemplate{}, fmt.Errorf("%w: %w %q", ErrInvalid, recurring.ErrInvalidFrequency, t.Frequency)
	}
	if !t.StartDate.IsValid() {
		return ledger.RecurringTemplate{}, fmt.Errorf("%w: start date is required", ErrInvalid)
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return ledger.RecurringTemplate{}, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalid, t.EndDate, t.StartDate)
	}

	ts, err := s.Repo.Templates(ctx)
	if err != nil {
		return ledger.RecurringTemplate{}, err
	}
	now := s.Now()
	if t.ID == "" {
		t.ID = s.NewID()
	}
	if t.Category == "" {
		t.Category = ledger.UncategorizedLabel
	}
	t.CreatedAt, t.UpdatedAt = now, now
	if err := s.Repo.SaveTemplates(ctx, append(ts, t)); err != nil {
		return ledger.RecurringTemplate{}, err
	}
	return t, nil
}

func (s *RecurringService) Remove(ctx context.Context, id string) error {
	ts, err := s.Repo.Templates(ctx)
	if err != nil {
		return err
	}
	for i, t := range ts {
		if t.ID == id {
			return s.Repo.SaveTemplates(ctx, append(ts[:i], ts[i+1:]...))
		}
	}
	return fmt.Errorf("recurring template %s: %w", id, ErrNotFound)
}

// RunResult is what one processing cycle produced.
type RunResult struct {
	Materialized []ledger.Transaction
	PerTemplate  []recurring.TemplateResult
}

// Run materializes every occurrence due on or before today. The ledger is
// saved before the advanced templates.
func (s *RecurringService) Run(ctx context.Context, today civil.Date) (RunResult, error) {
	log := logger.FromContext(ctx)

	ts, err := s.Repo.Templates(ctx)
	if err != nil {
		return RunResult{}, err
	}
	txs, err := s.Repo.Transactions(ctx)
	if err != nil {
		return RunResult{}, err
	}

	res := s.Projector.Process(ts, today, s.MaxPerCycle)
	for _, tr := range res.PerTemplate {
		if tr.Err != nil {
			log.Warn().Err(tr.Err).Str("template", tr.TemplateID).Msg("template skipped")
		}
	}
	out := RunResult{Materialized: res.Materialized, PerTemplate: res.PerTemplate}
	if len(res.Materialized) == 0 {
		return out, nil
	}

	if err := s.Repo.SaveTransactions(ctx, append(txs, res.Materialized...)); err != nil {
		return RunResult{}, err
	}
	if err := s.Repo.SaveTemplates(ctx, res.Templates); err != nil {
		return out, err
	}
	log.Info().Int("materialized", len(res.Materialized)).Msg("recurring run complete")
	return out, nil
}

// Preview lists the upcoming occurrences of one template.
type Preview struct {
	Template ledger.RecurringTemplate
	Dates    []civil.Date
}

// Preview projects up to count occurrences per template within [from, to].
// Nothing is stored.
func (s *RecurringService) Preview(ctx context.Context, from, to civil.Date, count int) []Preview {
	ts, err := s.Repo.Templates(ctx)
	ts = fallback(ctx, repository.KeyTemplates, ts, err)
	out := make([]Preview, 0, len(ts))
	for _, t := range ts {
		out = append(out, Preview{Template: t, Dates: s.Projector.Upcoming(t, from, to, count)})
	}
	return out
}
