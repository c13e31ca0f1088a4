package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]ColumnRole{
		"Date":             RoleDate,
		"Transaction Date": RoleDate,
		"Posting Time":     RoleDate,
		"Description":      RoleDescription,
		"Narration":        RoleDescription,
		"Details":          RoleDescription,
		"Amount":           RoleAmount,
		"Withdrawals":      RoleAmount,
		"Debit":            RoleAmount,
		"Credit":           RoleCredit,
		"Deposits":         RoleCredit,
		"Running Balance":  RoleBalance,
		"Category":         RoleCategory,
		"Reference":        RoleUnknown,
		"\ufeffDate":       RoleDate,
		"  AMOUNT  ":       RoleAmount,
	}
	for header, want := range cases {
		require.Equal(t, want, ClassifyHeader(header), "header %q", header)
	}
}

func TestDetectFormatSingleAmount(t *testing.T) {
	t.Parallel()

	f, err := DetectFormat([]string{"Date", "Description", "Amount", "Balance"})
	require.NoError(t, err)
	require.Equal(t, "Date", f.Date)
	require.Equal(t, "Description", f.Description)
	require.Equal(t, "Amount", f.Amount)
	require.Equal(t, "Balance", f.Balance)
	require.False(t, f.SplitAmounts())
}

func TestDetectFormatDebitCreditPair(t *testing.T) {
	t.Parallel()

	f, err := DetectFormat([]string{"Date", "Details", "Debit", "Credit"})
	require.NoError(t, err)
	require.Empty(t, f.Amount)
	require.Equal(t, "Debit", f.Debit)
	require.Equal(t, "Credit", f.Credit)
	require.True(t, f.SplitAmounts())
}

func TestDetectFormatLastHeaderWins(t *testing.T) {
	t.Parallel()

	f, err := DetectFormat([]string{"Date", "Value Date", "Description", "Amount"})
	require.NoError(t, err)
	require.Equal(t, "Value Date", f.Date)
}

func TestDetectFormatCreditOnly(t *testing.T) {
	t.Parallel()

	f, err := DetectFormat([]string{"Date", "Description", "Credit"})
	require.NoError(t, err)
	require.Equal(t, "Credit", f.Credit)
	require.True(t, f.SplitAmounts())
}

func TestDetectFormatErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		headers []string
		want    error
	}{
		{"no date", []string{"Description", "Amount"}, ErrMissingDateColumn},
		{"no description", []string{"Date", "Amount"}, ErrMissingDescriptionColumn},
		{"no amount", []string{"Date", "Description", "Balance"}, ErrMissingAmountColumn},
		{"date checked first", []string{"Reference"}, ErrMissingDateColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DetectFormat(tc.headers)
			require.ErrorIs(t, err, tc.want)
			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, tc.headers, fe.Headers)
		})
	}
}
