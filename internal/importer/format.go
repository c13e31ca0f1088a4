package importer

import "strings"

// ColumnRole is the semantic role a CSV column plays.
type ColumnRole int

const (
	RoleUnknown ColumnRole = iota
	RoleDate
	RoleDescription
	RoleAmount
	RoleDebit
	RoleCredit
	RoleBalance
	RoleCategory
)

func (r ColumnRole) String() string {
	switch r {
	case RoleDate:
		return "date"
	case RoleDescription:
		return "description"
	case RoleAmount:
		return "amount"
	case RoleDebit:
		return "debit"
	case RoleCredit:
		return "credit"
	case RoleBalance:
		return "balance"
	case RoleCategory:
		return "category"
	}
	return "unknown"
}

// roleRules are evaluated in order; the first rule with a matching keyword wins.
var roleRules = []struct {
	role     ColumnRole
	keywords []string
}{
	{RoleDate, []string{"date", "time"}},
	{RoleDescription, []string{"desc", "narration", "details", "transaction"}},
	{RoleAmount, []string{"debit", "amount", "withdraw", "payment"}},
	{RoleCredit, []string{"credit", "deposit"}},
	{RoleBalance, []string{"balance"}},
	{RoleCategory, []string{"categ"}},
}

// Format holds the original header chosen for each role. Empty means absent.
type Format struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
	Balance     string
	Category    string
}

// SplitAmounts reports whether amounts come from separate debit/credit columns.
func (f Format) SplitAmounts() bool { return f.Amount == "" }

// ClassifyHeader maps one header to its role.
func ClassifyHeader(header string) ColumnRole {
	h := normalizeHeader(header)
	for _, rule := range roleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(h, kw) {
				return rule.role
			}
		}
	}
	return RoleUnknown
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
}

// DetectFormat infers column roles from headers. Headers are scanned in order
// and a later header overwrites an earlier one with the same role.
func DetectFormat(headers []string) (Format, error) {
	var f Format
	for _, header := range headers {
		switch ClassifyHeader(header) {
		case RoleDate:
			f.Date = header
		case RoleDescription:
			f.Description = header
		case RoleAmount:
			f.Amount = header
		case RoleCredit:
			f.Credit = header
		case RoleBalance:
			f.Balance = header
		case RoleCategory:
			f.Category = header
		}
	}

	// A debit-like amount column next to a credit column is one half of a
	// debit/credit pair.
	if f.Amount != "" && f.Credit != "" && debitLike(f.Amount) {
		f.Debit, f.Amount = f.Amount, ""
	}

	switch {
	case f.Date == "":
		return Format{}, &FormatError{Kind: ErrMissingDateColumn, Headers: headers}
	case f.Description == "":
		return Format{}, &FormatError{Kind: ErrMissingDescriptionColumn, Headers: headers}
	case f.Amount == "" && f.Debit == "" && f.Credit == "":
		return Format{}, &FormatError{Kind: ErrMissingAmountColumn, Headers: headers}
	}
	return f, nil
}

func debitLike(header string) bool {
	h := normalizeHeader(header)
	return strings.Contains(h, "debit") || strings.Contains(h, "withdraw")
}
