package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tally/internal/ledger"
)

func TestShouldIgnoreDefaults(t *testing.T) {
	t.Parallel()

	rules := ledger.DefaultIgnoreRules()
	require.True(t, ShouldIgnore("Payment Received - Thank You", rules))
	require.True(t, ShouldIgnore("  ONLINE PAYMENT RECEIVED  ", rules))
	require.False(t, ShouldIgnore("Payment pending", rules))
	require.False(t, ShouldIgnore("", rules))
}

func TestFilterRules(t *testing.T) {
	t.Parallel()

	rules := []ledger.IgnoreRule{
		{ID: "a", Keyword: "Transfer", Active: false},
		{ID: "b", Keyword: "", Active: true},
		{ID: "c", Keyword: "  Interest ", Active: true},
		{ID: "d", Keyword: "autopay", Active: true},
	}
	f := New(rules)

	tests := []struct {
		desc    string
		ignored bool
		ruleID  string
	}{
		{"Internal transfer to savings", false, ""},
		{"INTEREST CHARGED", true, "c"},
		{"Card AUTOPAY thanks", true, "d"},
		{"Woolworths", false, ""},
	}
	for _, tt := range tests {
		r, ok := f.Match(tt.desc)
		require.Equal(t, tt.ignored, ok, tt.desc)
		require.Equal(t, tt.ruleID, r.ID, tt.desc)
	}

	// the caller's rules are untouched
	require.Equal(t, "  Interest ", rules[2].Keyword)
}

func TestFilterNoRules(t *testing.T) {
	t.Parallel()
	require.False(t, New(nil).Ignored("payment received"))
}
