package importer

import (
	"context"
	"io"
	"time"

	"github.com/jask/tally/internal/filter"
	"github.com/jask/tally/internal/ledger"
)

// Categorizer assigns a category label to a description.
type Categorizer interface {
	Categorize(description string) string
}

// RowStatus is the fate of one data row.
type RowStatus int

const (
	RowImported RowStatus = iota
	RowIgnored
	RowFailed
)

// RowResult is the per-row outcome, in input order.
type RowResult struct {
	Line        int
	Status      RowStatus
	Transaction ledger.Transaction
	IgnoredBy   *ledger.IgnoreRule
	Err         error
}

// Batch is the result of one import run.
type Batch struct {
	Format       Format
	Transactions []ledger.Transaction
	IgnoredCount int
	Errors       []*RowError
	Results      []RowResult
}

// Pipeline runs detect -> normalize -> ignore -> categorize over a file.
type Pipeline struct {
	IgnoreRules []ledger.IgnoreRule
	Categorizer Categorizer
	DateOrder   DateOrder
	Now         func() time.Time
	NewID       func() string
}

// Run imports the CSV content of r. Only tokenizer and format detection
// failures abort the batch; row failures are collected in Batch.Errors.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (Batch, error) {
	table, err := Tokenize(ctx, r)
	if err != nil {
		return Batch{}, err
	}
	format, err := DetectFormat(table.Headers)
	if err != nil {
		return Batch{}, err
	}
	return p.Process(table, format), nil
}

// Process runs the per-row stages over an already tokenized table.
func (p *Pipeline) Process(table Table, format Format) Batch {
	norm := NewNormalizer(format)
	norm.DateOrder = p.DateOrder
	if p.Now != nil {
		norm.Now = p.Now
	}
	if p.NewID != nil {
		norm.NewID = p.NewID
	}
	ignore := filter.New(p.IgnoreRules)

	batch := Batch{
		Format:       format,
		Transactions: make([]ledger.Transaction, 0, len(table.Rows)),
		Results:      make([]RowResult, 0, len(table.Rows)),
	}
	for i, row := range table.Rows {
		res := RowResult{Line: table.line(i)}
		tx, err := norm.Normalize(row)
		if err != nil {
			rowErr := &RowError{Line: res.Line, Err: err}
			res.Status, res.Err = RowFailed, rowErr
			batch.Errors = append(batch.Errors, rowErr)
			batch.Results = append(batch.Results, res)
			continue
		}
		if rule, ok := ignore.Match(tx.Description); ok {
			res.Status, res.Transaction, res.IgnoredBy = RowIgnored, tx, &rule
			batch.IgnoredCount++
			batch.Results = append(batch.Results, res)
			continue
		}
		if !tx.Categorized() && p.Categorizer != nil {
			tx.Category = p.Categorizer.Categorize(tx.Description)
		}
		res.Status, res.Transaction = RowImported, tx
		batch.Transactions = append(batch.Transactions, tx)
		batch.Results = append(batch.Results, res)
	}
	return batch
}
