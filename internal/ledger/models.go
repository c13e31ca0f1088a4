package ledger

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// RawRow maps an original CSV header to the raw cell value of one line.
type RawRow map[string]string

// Transaction is a canonical ledger entry.
type Transaction struct {
	ID           string          `json:"id"`
	Date         civil.Date      `json:"date"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category,omitempty"`
	RecurringID  string          `json:"recurringId,omitempty"`
	OriginalData RawRow          `json:"originalData,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Categorized reports whether a category label has been assigned.
func (t Transaction) Categorized() bool { return t.Category != "" }

// IgnoreRule suppresses imported rows whose description contains Keyword.
type IgnoreRule struct {
	ID      string `json:"id"`
	Keyword string `json:"keyword"`
	Active  bool   `json:"active"`
}

// Category is a stored category definition.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Frequency is the step between occurrences of a recurring template.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Biweekly, Monthly:
		return true
	}
	return false
}

// RecurringTemplate describes a transaction that repeats on a fixed schedule.
// LastProcessed is the cursor: the last occurrence already materialized.
type RecurringTemplate struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // negative is an expense
	Category      string          `json:"category"`
	Frequency     Frequency       `json:"frequency"`
	StartDate     civil.Date      `json:"startDate"`
	EndDate       *civil.Date     `json:"endDate"`
	LastProcessed *civil.Date     `json:"lastProcessed"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Cursor returns the date the next occurrence is computed from.
func (t RecurringTemplate) Cursor() civil.Date {
	if t.LastProcessed != nil {
		return *t.LastProcessed
	}
	return t.StartDate
}
