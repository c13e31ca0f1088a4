package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/repository"
)

// LedgerService manages stored transactions.
type LedgerService struct {
	Repo  *repository.Repo
	Now   func() time.Time
	NewID func() string
}

// ListFilter narrows List. Zero fields match everything.
type ListFilter struct {
	Month    string // YYYY-MM
	Category string
}

func (f ListFilter) match(tx ledger.Transaction) bool {
	if f.Month != "" && fmt.Sprintf("%04d-%02d", tx.Date.Year, int(tx.Date.Month)) != f.Month {
		return false
	}
	if f.Category != "" && !strings.EqualFold(tx.Category, f.Category) {
		return false
	}
	return true
}

// List returns matching transactions, newest first.
func (s *LedgerService) List(ctx context.Context, f ListFilter) []ledger.Transaction {
	txs, err := s.Repo.Transactions(ctx)
	txs = fallback(ctx, repository.KeyTransactions, txs, err)

	out := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.match(tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date) })
	return out
}

// Summary totals a set of transactions per category.
type Summary struct {
	Total      decimal.Decimal
	ByCategory map[string]decimal.Decimal
	Count      int
}

func Summarize(txs []ledger.Transaction) Summary {
	s := Summary{Total: decimal.Zero, ByCategory: map[string]decimal.Decimal{}, Count: len(txs)}
	for _, tx := range txs {
		s.Total = s.Total.Add(tx.Amount)
		label := tx.Category
		if label == "" {
			label = ledger.UncategorizedLabel
		}
		s.ByCategory[label] = s.ByCategory[label].Add(tx.Amount)
	}
	return s
}

// NewTransaction is the input for Add.
type NewTransaction struct {
	Date        civil.Date
	Description string
	Amount      decimal.Decimal
	Category    string
}

func (s *LedgerService) Add(ctx context.Context, in NewTransaction) (ledger.Transaction, error) {
	if !in.Date.IsValid() {
		return ledger.Transaction{}, fmt.Errorf("%w: date %v", ErrInvalid, in.Date)
	}
	txs, err := s.Repo.Transactions(ctx)
	if err != nil {
		return ledger.Transaction{}, err
	}
	now := s.Now()
	desc := cleanDescription(in.Description)
	cat := strings.TrimSpace(in.Category)
	if cat == "" {
		cat = ledger.UncategorizedLabel
	}
	tx := ledger.Transaction{
		ID:          s.NewID(),
		Date:        in.Date,
		Description: desc,
		Amount:      in.Amount,
		Category:    cat,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.SaveTransactions(ctx, append(txs, tx)); err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// Details is a partial update; nil fields are left alone.
type Details struct {
	Description *string
	Category    *string
}

// UpdateDetails edits description and/or category of one transaction.
func (s *LedgerService) UpdateDetails(ctx context.Context, id string, d Details) (ledger.Transaction, error) {
	return s.modify(ctx, id, func(tx *ledger.Transaction) {
		if d.Description != nil {
			tx.Description = cleanDescription(*d.Description)
		}
		if d.Category != nil {
			tx.Category = strings.TrimSpace(*d.Category)
		}
	})
}

// Replace swaps the whole record with id for tx, keeping id and CreatedAt.
func (s *LedgerService) Replace(ctx context.Context, id string, tx ledger.Transaction) (ledger.Transaction, error) {
	if !tx.Date.IsValid() {
		return ledger.Transaction{}, fmt.Errorf("%w: date %v", ErrInvalid, tx.Date)
	}
	return s.modify(ctx, id, func(cur *ledger.Transaction) {
		created := cur.CreatedAt
		*cur = tx
		cur.ID = id
		cur.Description = cleanDescription(tx.Description)
		cur.Category = strings.TrimSpace(tx.Category)
		cur.CreatedAt = created
	})
}

// Get returns the transaction with id.
func (s *LedgerService) Get(ctx context.Context, id string) (ledger.Transaction, error) {
	txs, err := s.Repo.Transactions(ctx)
	if err != nil {
		return ledger.Transaction{}, err
	}
	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return ledger.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// cleanDescription trims desc; an empty result becomes "Unknown".
func cleanDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ledger.UnknownDescription
	}
	return desc
}

func (s *LedgerService) modify(ctx context.Context, id string, fn func(*ledger.Transaction)) (ledger.Transaction, error) {
	txs, err := s.Repo.Transactions(ctx)
	if err != nil {
		return ledger.Transaction{}, err
	}
	for i := range txs {
		if txs[i].ID != id {
			continue
		}
		fn(&txs[i])
		txs[i].UpdatedAt = s.Now()
		if err := s.Repo.SaveTransactions(ctx, txs); err != nil {
			return ledger.Transaction{}, err
		}
		return txs[i], nil
	}
	return ledger.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

func (s *LedgerService) Delete(ctx context.Context, id string) error {
	txs, err := s.Repo.Transactions(ctx)
	if err != nil {
		return err
	}
	out := txs[:0]
	for _, tx := range txs {
		if tx.ID != id {
			out = append(out, tx)
		}
	}
	if len(out) == len(txs) {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return s.Repo.SaveTransactions(ctx, out)
}
