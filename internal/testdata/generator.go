// Package testdata generates sample bank exports in the layouts tally detects.
package testdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"time"
)

// Layout is the column shape of a generated export.
type Layout string

const (
	// SingleAmount is Date,Description,Amount with signed amounts.
	SingleAmount Layout = "amount"
	// DebitCredit splits spending and income into two unsigned columns.
	DebitCredit Layout = "split"
	// Categorized carries the bank's own category column.
	Categorized Layout = "categorized"
)

// Layouts lists every supported layout.
func Layouts() []Layout {
	return []Layout{SingleAmount, DebitCredit, Categorized}
}

var merchants = []struct {
	desc     string
	category string
	cents    int // negative is spending
}{
	{"UBER EATS* SUSHI", "Takeaway", -3450},
	{"AMAZON.COM*XYZ", "Shopping", -8999},
	{"WOOLWORTHS 1234", "Groceries", -11520},
	{"SPOTIFY", "Subscriptions", -1299},
	{"SALARY ACME", "Income", 425000},
	{"PAYMENT RECEIVED - THANK YOU", "", 50000},
	{"SHELL FUEL", "Transport", -6710},
	{"CITY GYM", "Health", -2500},
}

// Options controls Write.
type Options struct {
	Layout Layout
	Rows   int
	// Seed makes output reproducible.
	Seed  uint64
	Start time.Time
}

// Write emits a header and opts.Rows data rows, one day apart from Start.
func Write(w io.Writer, opts Options) error {
	if opts.Rows <= 0 {
		opts.Rows = 20
	}
	if opts.Start.IsZero() {
		opts.Start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	cw := csv.NewWriter(w)
	header, err := headerFor(opts.Layout)
	if err != nil {
		return err
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	balance := 100000
	for i := 0; i < opts.Rows; i++ {
		m := merchants[rng.IntN(len(merchants))]
		// jitter within +/-20%
		cents := m.cents + m.cents*(rng.IntN(41)-20)/100
		balance += cents
		date := opts.Start.AddDate(0, 0, i)

		var rec []string
		switch opts.Layout {
		case SingleAmount:
			rec = []string{date.Format("2006-01-02"), m.desc, money(cents)}
		case DebitCredit:
			debit, credit := "", ""
			if cents < 0 {
				debit = money(-cents)
			} else {
				credit = money(cents)
			}
			rec = []string{date.Format("01/02/2006"), m.desc, debit, credit, money(balance)}
		case Categorized:
			rec = []string{date.Format("2006-01-02"), m.desc, money(cents), m.category}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func headerFor(l Layout) ([]string, error) {
	switch l {
	case SingleAmount:
		return []string{"Date", "Description", "Amount"}, nil
	case DebitCredit:
		return []string{"Transaction Date", "Narration", "Withdrawals", "Deposits", "Balance"}, nil
	case Categorized:
		return []string{"Posting Date", "Details", "Amount", "Category"}, nil
	}
	return nil, fmt.Errorf("unknown layout %q", l)
}

func money(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
