package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/tally/internal/importer"
	"github.com/jask/tally/internal/kv"
	"github.com/jask/tally/internal/ledger"
	"github.com/jask/tally/internal/recurring"
	"github.com/jask/tally/internal/repository"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T) (*Services, *repository.Repo) {
	t.Helper()
	repo := repository.New(kv.NewMemory())
	var n int
	svc := New(repo, Options{
		Now: func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	return svc, repo
}

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

type failingStore struct{ *kv.Memory }

func (failingStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("unavailable")
}

const bankCSV = `Transaction Date,Details,Debit,Credit
31/01/2024,STARBUCKS 42,4.50,
01/02/2024,Payment Received,,100.00
02/02/2024,Landlord rent,1200.00,
03/02/2024,Refund,,12.00
`

func TestImport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestServices(t)

	res, err := svc.Import.Import(ctx, strings.NewReader(bankCSV), ImportOptions{Source: "bank.csv"})
	require.NoError(t, err)
	require.Equal(t, 3, res.Saved)
	require.Equal(t, 1, res.Batch.IgnoredCount)
	require.Empty(t, res.Batch.Errors)

	txs, err := repo.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	require.Equal(t, day(2024, time.January, 31), txs[0].Date)
	require.Equal(t, "-4.5", txs[0].Amount.String())
	require.Equal(t, "Food & Dining", txs[0].Category)
	require.Equal(t, "Housing", txs[1].Category)
	require.Equal(t, "12", txs[2].Amount.String())
	require.Equal(t, day(2024, time.March, 2), txs[2].Date)

	// a second import appends; duplicates are not detected
	_, err = svc.Import.Import(ctx, strings.NewReader(bankCSV), ImportOptions{})
	require.NoError(t, err)
	txs, err = repo.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 6)
}

func TestImportDayFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestServices(t)
	svc.Import.DateOrder = importer.DayFirst

	_, err := svc.Import.Import(ctx, strings.NewReader(bankCSV), ImportOptions{})
	require.NoError(t, err)
	txs, err := repo.Transactions(ctx)
	require.NoError(t, err)
	require.Equal(t, day(2024, time.January, 31), txs[0].Date)
	require.Equal(t, day(2024, time.February, 3), txs[2].Date)
}

func TestImportDryRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestServices(t)

	res, err := svc.Import.Import(ctx, strings.NewReader(bankCSV), ImportOptions{DryRun: true})
	require.NoError(t, err)
	require.Zero(t, res.Saved)
	require.Len(t, res.Batch.Transactions, 3)

	txs, err := repo.Transactions(ctx)
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestImportFormatError(t *testing.T) {
	t.Parallel()
	svc, _ := newTestServices(t)
	_, err := svc.Import.Import(context.Background(), strings.NewReader("Date,Amount\n2024-01-01,1\n"), ImportOptions{})
	require.ErrorContains(t, err, "no description column found")
}

func TestImportRespectsStoredIgnoreRules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestServices(t)

	_, err := svc.Rules.SetActive(ctx, ledger.DefaultIgnoreKeyword, false)
	require.NoError(t, err)
	_, err = svc.Rules.Add(ctx, "Landlord")
	require.NoError(t, err)

	res, err := svc.Import.Import(ctx, strings.NewReader(bankCSV), ImportOptions{DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 1, res.Batch.IgnoredCount)
	require.Equal(t, "Landlord rent", res.Batch.Results[2].Transaction.Description)
}

func TestRuleService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestServices(t)

	require.Equal(t, ledger.DefaultIgnoreRules(), svc.Rules.List(ctx))

	_, err := svc.Rules.Add(ctx, "  ")
	require.ErrorIs(t, err, ErrEmptyKeyword)
	_, err = svc.Rules.Add(ctx, "PAYMENT RECEIVED")
	require.ErrorIs(t, err, ErrDuplicateRule)

	rule, err := svc.Rules.Add(ctx, "Transfer")
	require.NoError(t, err)
	require.Equal(t, "transfer", rule.Keyword)
	require.True(t, rule.Active)

	_, err = svc.Rules.Remove(ctx, "transfr")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorContains(t, err, `did you mean "transfer"`)

	_, err = svc.Rules.Remove(ctx, "zzzzzzzz")
	require.ErrorIs(t, err, ErrNotFound)
	require.NotContains(t, err.Error(), "did you mean")

	removed, err := svc.Rules.Remove(ctx, rule.ID)
	require.NoError(t, err)
	require.Equal(t, rule, removed)
	require.Len(t, svc.Rules.List(ctx), 1)
}

func TestRecategorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestServices(t)

	require.NoError(t, repo.SaveTransactions(ctx, []ledger.Transaction{
		{ID: "a", Date: day(2024, time.January, 5), Description: "Uber ride"},
		{ID: "b", Date: day(2024, time.January, 6), Description: "Netflix", Category: "Fun"},
	}))

	changed, err := svc.Categorize.Recategorize(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, changed)

	changed, err = svc.Categorize.Recategorize(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 1, changed)

	txs, err := repo.Transactions(ctx)
	require.NoError(t, err)
	require.Equal(t, "Transportation", txs[0].Category)
	require.Equal(t, "Utilities", txs[1].Category)
	require.Equal(t, testNow, txs[1].UpdatedAt)
}

func TestLedgerService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestServices(t)

	_, err := svc.Ledger.Add(ctx, NewTransaction{Date: civil.Date{}})
	require.ErrorIs(t, err, ErrInvalid)

	a, err := svc.Ledger.Add(ctx, NewTransaction{Date: day(2024, time.February, 1), Description: "Gym", Amount: decimal.NewFromInt(-30)})
	require.NoError(t, err)
	require.Equal(t, ledger.UncategorizedLabel, a.Category)
	b, err := svc.Ledger.Add(ctx, NewTransaction{Date: day(2024, time.March, 1), Description: "Salary", Amount: decimal.NewFromInt(3000), Category: "Income"})
	require.NoError(t, err)

	all := svc.Ledger.List(ctx, ListFilter{})
	require.Len(t, all, 2)
	require.Equal(t, b.ID, all[0].ID)
	require.Len(t, svc.Ledger.List(ctx, ListFilter{Month: "2024-02"}), 1)
	require.Len(t, svc.Ledger.List(ctx, ListFilter{Category: "income"}), 1)

	sum := Summarize(all)
	require.Equal(t, "2970", sum.Total.String())
	require.Equal(t, "-30", sum.ByCategory[ledger.UncategorizedLabel].String())

	cat := "Health & Fitness"
	upd, err := svc.Ledger.UpdateDetails(ctx, a.ID, Details{Category: &cat})
	require.NoError(t, err)
	require.Equal(t, cat, upd.Category)
	require.Equal(t, "Gym", upd.Description)

	repl, err := svc.Ledger.Replace(ctx, a.ID, ledger.Transaction{ID: "ignored", Description: "Gym plus", Date: a.Date, Amount: decimal.NewFromInt(-45)})
	require.NoError(t, err)
	require.Equal(t, a.ID, repl.ID)
	require.Equal(t, a.CreatedAt, repl.CreatedAt)

	_, err = svc.Ledger.Replace(ctx, a.ID, ledger.Transaction{Description: "Gym", Amount: decimal.NewFromInt(-45)})
	require.ErrorIs(t, err, ErrInvalid)
	got, err := svc.Ledger.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Gym plus", got.Description)

	blank := "   "
	upd, err = svc.Ledger.UpdateDetails(ctx, a.ID, Details{Description: &blank})
	require.NoError(t, err)
	require.Equal(t, ledger.UnknownDescription, upd.Description)

	// the ledger stays readable after every edit
	require.Len(t, svc.Ledger.List(ctx, ListFilter{}), 2)

	_, err = svc.Ledger.UpdateDetails(ctx, "nope", Details{})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Ledger.Delete(ctx, a.ID))
	require.ErrorIs(t, svc.Ledger.Delete(ctx, a.ID), ErrNotFound)
	require.Len(t, svc.Ledger.List(ctx, ListFilter{}), 1)
}

func TestRecurringRunIsIdempotentPerDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestServices(t)

	tmpl, err := svc.Recurring.Add(ctx, ledger.RecurringTemplate{
		Description: "Rent",
		Amount:      decimal.NewFromInt(-1500),
		Category:    "Housing",
		Frequency:   ledger.Monthly,
		StartDate:   day(2024, time.January, 1),
	})
	require.NoError(t, err)

	today := day(2024, time.March, 10)
	res, err := svc.Recurring.Run(ctx, today)
	require.NoError(t, err)
	require.Len(t, res.Materialized, 1)
	require.Equal(t, day(2024, time.February, 1), res.Materialized[0].Date)
	require.Equal(t, "Rent (Recurring)", res.Materialized[0].Description)
	require.Equal(t, tmpl.ID, res.Materialized[0].RecurringID)

	res, err = svc.Recurring.Run(ctx, today)
	require.NoError(t, err)
	require.Len(t, res.Materialized, 1)
	require.Equal(t, day(2024, time.March, 1), res.Materialized[0].Date)

	res, err = svc.Recurring.Run(ctx, today)
	require.NoError(t, err)
	require.Empty(t, res.Materialized)

	txs, err := repo.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	views := svc.Recurring.List(ctx)
	require.Len(t, views, 1)
	require.Equal(t, recurring.Active, views[0].State)
	require.Equal(t, day(2024, time.March, 1), *views[0].Template.LastProcessed)
}

func TestRecurringCatchUpAndPreview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestServices(t)
	svc.Recurring.MaxPerCycle = 12

	end := day(2024, time.February, 5)
	_, err := svc.Recurring.Add(ctx, ledger.RecurringTemplate{
		Description: "Gym",
		Amount:      decimal.NewFromInt(-20),
		Frequency:   ledger.Weekly,
		StartDate:   day(2024, time.January, 1),
		EndDate:     &end,
	})
	require.NoError(t, err)

	preview := svc.Recurring.Preview(ctx, day(2024, time.January, 1), day(2024, time.December, 31), 10)
	require.Len(t, preview, 1)
	require.Equal(t, []civil.Date{
		day(2024, time.January, 8),
		day(2024, time.January, 15),
		day(2024, time.January, 22),
		day(2024, time.January, 29),
		day(2024, time.February, 5),
	}, preview[0].Dates)

	res, err := svc.Recurring.Run(ctx, day(2024, time.March, 10))
	require.NoError(t, err)
	require.Len(t, res.Materialized, 5)
	require.Equal(t, recurring.Ended, res.PerTemplate[0].Outcome)
	require.Equal(t, recurring.Exhausted, svc.Recurring.List(ctx)[0].State)
}

func TestRecurringAddValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestServices(t)

	_, err := svc.Recurring.Add(ctx, ledger.RecurringTemplate{Description: "x", Frequency: "yearly", StartDate: day(2024, 1, 1)})
	require.ErrorIs(t, err, recurring.ErrInvalidFrequency)
	_, err = svc.Recurring.Add(ctx, ledger.RecurringTemplate{Frequency: ledger.Weekly, StartDate: day(2024, 1, 1)})
	require.ErrorIs(t, err, ErrInvalid)
	end := day(2023, 1, 1)
	_, err = svc.Recurring.Add(ctx, ledger.RecurringTemplate{Description: "x", Frequency: ledger.Weekly, StartDate: day(2024, 1, 1), EndDate: &end})
	require.ErrorIs(t, err, ErrInvalid)

	require.ErrorIs(t, svc.Recurring.Remove(ctx, "missing"), ErrNotFound)
}

func TestReadPathsFallBackWhenStorageFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := New(repository.New(failingStore{kv.NewMemory()}), Options{})

	require.Equal(t, ledger.DefaultIgnoreRules(), svc.Rules.List(ctx))
	require.Empty(t, svc.Ledger.List(ctx, ListFilter{}))
	require.NotEmpty(t, svc.Categorize.Categories(ctx))

	_, err := svc.Rules.Add(ctx, "x")
	var se *repository.StorageError
	require.ErrorAs(t, err, &se)
	_, err = svc.Recurring.Run(ctx, day(2024, 1, 1))
	require.ErrorAs(t, err, &se)
}

func TestReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestServices(t)

	_, err := svc.Import.Import(ctx, strings.NewReader(bankCSV), ImportOptions{})
	require.NoError(t, err)
	_, err = svc.Rules.Add(ctx, "coffee")
	require.NoError(t, err)

	require.NoError(t, svc.Maintenance.Reset(ctx))
	txs, err := repo.Transactions(ctx)
	require.NoError(t, err)
	require.Empty(t, txs)
	require.Equal(t, ledger.DefaultIgnoreRules(), svc.Rules.List(ctx))
}
