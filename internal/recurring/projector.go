// Package recurring projects recurring templates forward and materializes
// due occurrences into ledger transactions.
package recurring

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/jask/tally/internal/ledger"
)

// DefaultSuffix marks generated descriptions.
const DefaultSuffix = " (Recurring)"

var ErrInvalidFrequency = errors.New("invalid frequency")

// Boundary controls how a template's end date bounds its occurrences.
type Boundary int

const (
	// Inclusive allows an occurrence on the end date itself.
	Inclusive Boundary = iota
	// Exclusive stops before the end date.
	Exclusive
)

// ParseBoundary accepts "inclusive" or "exclusive".
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inclusive":
		return Inclusive, nil
	case "exclusive":
		return Exclusive, nil
	}
	return Inclusive, fmt.Errorf("unknown end boundary %q", s)
}

// State is the lifecycle position of a template.
type State int

const (
	Pending State = iota
	Active
	Exhausted
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Outcome is the result of a single Advance.
type Outcome int

const (
	NotDue Outcome = iota
	Materialized
	Ended
)

func (o Outcome) String() string {
	switch o {
	case NotDue:
		return "not due"
	case Materialized:
		return "materialized"
	case Ended:
		return "exhausted"
	}
	return "unknown"
}

// Next steps d forward by one frequency period. Monthly steps keep the day
// of month and overflow the way time.AddDate does (Jan 31 -> Mar 2 or 3).
func Next(f ledger.Frequency, d civil.Date) (civil.Date, error) {
	switch f {
	case ledger.Weekly:
		return d.AddDays(7), nil
	case ledger.Biweekly:
		return d.AddDays(14), nil
	case ledger.Monthly:
		return civil.DateOf(d.In(time.UTC).AddDate(0, 1, 0)), nil
	}
	return civil.Date{}, fmt.Errorf("%w %q", ErrInvalidFrequency, f)
}

// Projector computes occurrences. The zero value uses the inclusive end
// boundary, DefaultSuffix, random ids and the wall clock.
type Projector struct {
	Boundary Boundary
	Suffix   string
	NewID    func() string
	Now      func() time.Time
}

// Step is what a single Advance produced.
type Step struct {
	Template    ledger.RecurringTemplate
	Transaction *ledger.Transaction
	Outcome     Outcome
}

func (p Projector) pastEnd(t ledger.RecurringTemplate, d civil.Date) bool {
	if t.EndDate == nil {
		return false
	}
	if p.Boundary == Exclusive {
		return !d.Before(*t.EndDate)
	}
	return d.After(*t.EndDate)
}

// State reports where t is in its lifecycle.
func (p Projector) State(t ledger.RecurringTemplate) State {
	next, err := Next(t.Frequency, t.Cursor())
	if err == nil && p.pastEnd(t, next) {
		return Exhausted
	}
	if t.LastProcessed == nil {
		return Pending
	}
	return Active
}

// Advance computes the occurrence after t's cursor and materializes it when
// it is on or before asOf. t is not modified; the returned template carries
// the advanced cursor.
func (p Projector) Advance(t ledger.RecurringTemplate, asOf civil.Date) (Step, error) {
	next, err := Next(t.Frequency, t.Cursor())
	if err != nil {
		return Step{Template: t}, fmt.Errorf("template %s: %w", t.ID, err)
	}
	if p.pastEnd(t, next) {
		return Step{Template: t, Outcome: Ended}, nil
	}
	if next.After(asOf) {
		return Step{Template: t, Outcome: NotDue}, nil
	}

	now := p.now()
	tx := ledger.Transaction{
		ID:          p.newID(),
		Date:        next,
		Description: p.describe(t),
		Amount:      t.Amount,
		Category:    t.Category,
		RecurringID: t.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	advanced := t
	cursor := next
	advanced.LastProcessed = &cursor
	advanced.UpdatedAt = now
	return Step{Template: advanced, Transaction: &tx, Outcome: Materialized}, nil
}

// Upcoming lists up to count occurrence dates after t's cursor that fall
// within [from, to]. It shares the stepping rule with Advance.
func (p Projector) Upcoming(t ledger.RecurringTemplate, from, to civil.Date, count int) []civil.Date {
	var out []civil.Date
	if count <= 0 || to.Before(from) {
		return out
	}
	cursor := t.Cursor()
	for len(out) < count {
		next, err := Next(t.Frequency, cursor)
		if err != nil || p.pastEnd(t, next) || next.After(to) {
			break
		}
		if !next.Before(from) {
			out = append(out, next)
		}
		cursor = next
	}
	return out
}

func (p Projector) describe(t ledger.RecurringTemplate) string {
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		desc = ledger.UnknownDescription
	}
	suffix := p.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return desc + suffix
}

func (p Projector) newID() string {
	if p.NewID == nil {
		return uuid.NewString()
	}
	return p.NewID()
}

func (p Projector) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
