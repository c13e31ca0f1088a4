// Package render prints CLI output as lipgloss tables.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/jask/tally/internal/categorize"
	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/recurring"
	"github.com/jask/tally/internal/service"
)

// Printer writes tables to W.
type Printer struct {
	W io.Writer
	// Currency is prepended to amounts.
	Currency string
	// DateLayout is a time layout for dates; empty means YYYY-MM-DD.
	DateLayout string
}

func (p Printer) money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + p.Currency + d.Abs().StringFixed(2)
}

func (p Printer) date(d civil.Date) string {
	if p.DateLayout == "" {
		return d.String()
	}
	return d.In(time.UTC).Format(p.DateLayout)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func (p Printer) println(s string) {
	fmt.Fprintln(p.W, s)
}

// Transactions prints txs followed by per-category totals.
func (p Printer) Transactions(txs []ledger.Transaction) {
	if len(txs) == 0 {
		p.println(dimStyle.Render("no transactions"))
		return
	}
	t := newTable("Date", "Description", "Category", "Amount")
	for _, tx := range txs {
		t.Row(p.date(tx.Date), tx.Description, tx.Category, p.amount(tx.Amount))
	}
	p.println(t.String())
	p.Summary(service.Summarize(txs))
}

func (p Printer) amount(d decimal.Decimal) string {
	if d.IsNegative() {
		return negStyle.Render(p.money(d))
	}
	return posStyle.Render(p.money(d))
}

// Summary prints category totals, largest spend first.
func (p Printer) Summary(s service.Summary) {
	labels := make([]string, 0, len(s.ByCategory))
	for label := range s.ByCategory {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := s.ByCategory[labels[i]], s.ByCategory[labels[j]]
		if !a.Equal(b) {
			return a.LessThan(b)
		}
		return labels[i] < labels[j]
	})
	t := newTable("Category", "Total")
	for _, label := range labels {
		t.Row(label, p.amount(s.ByCategory[label]))
	}
	t.Row(titleStyle.Render("Total ("+strconv.Itoa(s.Count)+")"), p.amount(s.Total))
	p.println(t.String())
}

// Import prints the outcome of an import run.
func (p Printer) Import(res service.ImportResult, dryRun bool) {
	b := res.Batch
	verb := "imported"
	n := res.Saved
	if dryRun {
		verb = "would import"
		n = len(b.Transactions)
	}
	p.println(titleStyle.Render(fmt.Sprintf("%s %d transactions", verb, n)) +
		dimStyle.Render(fmt.Sprintf(" (%d ignored, %d errors)", b.IgnoredCount, len(b.Errors))))
	for _, e := range b.Errors {
		p.println(warnStyle.Render("  " + e.Error()))
	}
	if dryRun && len(b.Transactions) > 0 {
		t := newTable("Date", "Description", "Category", "Amount")
		for _, tx := range b.Transactions {
			t.Row(p.date(tx.Date), tx.Description, tx.Category, p.amount(tx.Amount))
		}
		p.println(t.String())
	}
}

func (p Printer) IgnoreRules(rules []ledger.IgnoreRule) {
	if len(rules) == 0 {
		p.println(dimStyle.Render("no ignore rules"))
		return
	}
	t := newTable("ID", "Keyword", "Active")
	for _, r := range rules {
		active := "yes"
		if !r.Active {
			active = dimStyle.Render("no")
		}
		t.Row(shortID(r.ID), r.Keyword, active)
	}
	p.println(t.String())
}

func (p Printer) Categories(cats []ledger.Category) {
	t := newTable("Name", "Colour")
	for _, c := range cats {
		swatch := c.Color
		if c.Color != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■ " + c.Color)
		}
		t.Row(c.Name, swatch)
	}
	p.println(t.String())
}

// CategoryRules lists rules in evaluation order with their patterns.
func (p Printer) CategoryRules(rules []categorize.Rule) {
	t := newTable("#", "Category", "Patterns")
	for i, r := range rules {
		pats := make([]string, 0, len(r.Patterns))
		for _, re := range r.Patterns {
			pats = append(pats, strings.TrimPrefix(re.String(), "(?i)"))
		}
		t.Row(strconv.Itoa(i+1), r.Label, strings.Join(pats, ", "))
	}
	p.println(t.String())
}

func (p Printer) Templates(views []service.TemplateView) {
	if len(views) == 0 {
		p.println(dimStyle.Render("no recurring templates"))
		return
	}
	t := newTable("ID", "Description", "Amount", "Every", "Start", "End", "Last", "State")
	for _, v := range views {
		tmpl := v.Template
		t.Row(
			shortID(tmpl.ID),
			tmpl.Description,
			p.amount(tmpl.Amount),
			string(tmpl.Frequency),
			p.date(tmpl.StartDate),
			p.optDate(tmpl.EndDate),
			p.optDate(tmpl.LastProcessed),
			stateLabel(v.State),
		)
	}
	p.println(t.String())
}

func (p Printer) optDate(d *civil.Date) string {
	if d == nil {
		return dimStyle.Render("-")
	}
	return p.date(*d)
}

func stateLabel(s recurring.State) string {
	switch s {
	case recurring.Active:
		return posStyle.Render(s.String())
	case recurring.Exhausted:
		return dimStyle.Render(s.String())
	}
	return warnStyle.Render(s.String())
}

// Materialized prints the transactions a recurring run created.
func (p Printer) Materialized(res service.RunResult) {
	p.println(titleStyle.Render(fmt.Sprintf("materialized %d transactions", len(res.Materialized))))
	if len(res.Materialized) == 0 {
		return
	}
	t := newTable("Date", "Description", "Category", "Amount")
	for _, tx := range res.Materialized {
		t.Row(p.date(tx.Date), tx.Description, tx.Category, p.amount(tx.Amount))
	}
	p.println(t.String())
}

// Previews prints one row per projected occurrence.
func (p Printer) Previews(previews []service.Preview) {
	t := newTable("Date", "Description", "Amount")
	rows := 0
	for _, pv := range previews {
		for _, d := range pv.Dates {
			t.Row(p.date(d), pv.Template.Description, p.amount(pv.Template.Amount))
			rows++
		}
	}
	if rows == 0 {
		p.println(dimStyle.Render("nothing upcoming"))
		return
	}
	p.println(t.String())
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 && len(id) > 8 {
		return id[:i]
	}
	return id
}
