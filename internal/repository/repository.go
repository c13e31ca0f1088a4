// Package repository stores the ledger collections as JSON documents in a kv.Store.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jask/tally/internal/kv"
	"github.com/jask/tally/internal/ledger"
)

// Storage keys.
const (
	KeyTransactions = "expenses"
	KeyCategories   = "categories"
	KeyTemplates    = "recurring_transactions"
	KeyIgnoreRules  = "ignored_keywords"
)

// StorageError wraps any failure to load, decode, encode or save a collection.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Repo reads and writes whole collections.
type Repo struct {
	Store kv.Store
}

func New(store kv.Store) *Repo {
	return &Repo{Store: store}
}

// load decodes key into out. found is false when the key is absent.
func (r *Repo) load(ctx context.Context, key string, out any) (bool, error) {
	data, ok, err := r.Store.Load(ctx, key)
	if err != nil {
		return false, &StorageError{Op: "load", Key: key, Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

func (r *Repo) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := r.Store.Save(ctx, key, data); err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Transactions returns the stored ledger, or an empty one.
func (r *Repo) Transactions(ctx context.Context) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	if _, err := r.load(ctx, KeyTransactions, &txs); err != nil {
		return []ledger.Transaction{}, err
	}
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	return txs, nil
}

func (r *Repo) SaveTransactions(ctx context.Context, txs []ledger.Transaction) error {
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	return r.save(ctx, KeyTransactions, txs)
}

// Categories falls back to the built-in list when nothing is stored.
func (r *Repo) Categories(ctx context.Context) ([]ledger.Category, error) {
	var cats []ledger.Category
	found, err := r.load(ctx, KeyCategories, &cats)
	if err != nil {
		return ledger.DefaultCategories(), err
	}
	if !found {
		return ledger.DefaultCategories(), nil
	}
	return cats, nil
}

func (r *Repo) SaveCategories(ctx context.Context, cats []ledger.Category) error {
	return r.save(ctx, KeyCategories, cats)
}

// IgnoreRules falls back to the built-in rule when nothing is stored. A stored
// empty list stays empty.
func (r *Repo) IgnoreRules(ctx context.Context) ([]ledger.IgnoreRule, error) {
	var rules []ledger.IgnoreRule
	found, err := r.load(ctx, KeyIgnoreRules, &rules)
	if err != nil {
		return ledger.DefaultIgnoreRules(), err
	}
	if !found {
		return ledger.DefaultIgnoreRules(), nil
	}
	if rules == nil {
		rules = []ledger.IgnoreRule{}
	}
	return rules, nil
}

func (r *Repo) SaveIgnoreRules(ctx context.Context, rules []ledger.IgnoreRule) error {
	if rules == nil {
		rules = []ledger.IgnoreRule{}
	}
	return r.save(ctx, KeyIgnoreRules, rules)
}

func (r *Repo) Templates(ctx context.Context) ([]ledger.RecurringTemplate, error) {
	var ts []ledger.RecurringTemplate
	if _, err := r.load(ctx, KeyTemplates, &ts); err != nil {
		return []ledger.RecurringTemplate{}, err
	}
	if ts == nil {
		ts = []ledger.RecurringTemplate{}
	}
	return ts, nil
}

func (r *Repo) SaveTemplates(ctx context.Context, ts []ledger.RecurringTemplate) error {
	if ts == nil {
		ts = []ledger.RecurringTemplate{}
	}
	return r.save(ctx, KeyTemplates, ts)
}
