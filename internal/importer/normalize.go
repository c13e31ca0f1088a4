package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/tally/internal/ledger"
)

var (
	nonNumeric    = regexp.MustCompile(`[^\d.\-]`)
	numericPrefix = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)`)
	dateSeparator = regexp.MustCompile(`[-/.]`)
)

// directDateLayouts are tried before the day/month/year heuristics.
var directDateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
}

// DateOrder picks how an ambiguous numeric date such as 02/03/2024 is read.
type DateOrder int

const (
	MonthFirst DateOrder = iota
	DayFirst
)

// ParseDateOrder accepts "mdy" or "dmy"; empty means MonthFirst.
func ParseDateOrder(s string) (DateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mdy":
		return MonthFirst, nil
	case "dmy":
		return DayFirst, nil
	}
	return MonthFirst, fmt.Errorf("unknown date order %q (want mdy or dmy)", s)
}

func (o DateOrder) String() string {
	if o == DayFirst {
		return "dmy"
	}
	return "mdy"
}

// Normalizer turns raw rows into canonical transactions for one detected format.
type Normalizer struct {
	Format    Format
	DateOrder DateOrder
	Now       func() time.Time
	NewID     func() string
}

// NewNormalizer returns a Normalizer using the wall clock and random ids.
func NewNormalizer(f Format) *Normalizer {
	return &Normalizer{Format: f, Now: time.Now, NewID: uuid.NewString}
}

// Normalize converts one row. Malformed amounts and dates degrade to zero and
// today respectively; only a row missing a required cell is rejected.
func (n *Normalizer) Normalize(row ledger.RawRow) (ledger.Transaction, error) {
	rawDate, ok := row[n.Format.Date]
	if !ok {
		return ledger.Transaction{}, ErrMissingField
	}
	rawDesc, ok := row[n.Format.Description]
	if !ok {
		return ledger.Transaction{}, ErrMissingField
	}

	now := n.now()
	desc := strings.TrimSpace(rawDesc)
	if desc == "" {
		desc = ledger.UnknownDescription
	}

	return ledger.Transaction{
		ID:           n.newID(),
		Date:         ParseDateOrdered(rawDate, n.DateOrder, now),
		Description:  desc,
		Amount:       n.amount(row),
		Category:     strings.TrimSpace(cell(row, n.Format.Category)),
		OriginalData: row,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (n *Normalizer) amount(row ledger.RawRow) decimal.Decimal {
	if !n.Format.SplitAmounts() {
		return ParseAmount(cell(row, n.Format.Amount))
	}
	debit := ParseAmount(cell(row, n.Format.Debit))
	credit := ParseAmount(cell(row, n.Format.Credit))
	if debit.IsPositive() {
		debit = debit.Neg()
	}
	return credit.Add(debit)
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

func (n *Normalizer) newID() string {
	if n.NewID == nil {
		return uuid.NewString()
	}
	return n.NewID()
}

func cell(row ledger.RawRow, header string) string {
	if header == "" {
		return ""
	}
	return row[header]
}

// ParseAmount keeps digits, '.' and '-' and reads the leading number.
// Anything unparseable is zero.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	m := numericPrefix.FindString(cleaned)
	if m == "" {
		return decimal.Zero
	}
	if strings.HasPrefix(m, ".") || strings.HasPrefix(m, "-.") {
		m = strings.Replace(m, ".", "0.", 1)
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate resolves a bank date cell to a calendar day, reading ambiguous
// numeric dates month first and falling back to the day of now when no
// interpretation is valid.
func ParseDate(raw string, now time.Time) civil.Date {
	return ParseDateOrdered(raw, MonthFirst, now)
}

// ParseDateOrdered is ParseDate with an explicit order for ambiguous dates.
// The other order is still tried when the preferred one is not a real day.
func ParseDateOrdered(raw string, order DateOrder, now time.Time) civil.Date {
	if d, ok := parseDate(raw, order); ok {
		return d
	}
	return civil.DateOf(now)
}

func parseDate(raw string, order DateOrder) (civil.Date, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return civil.Date{}, false
	}
	trimmed := strings.TrimSpace(raw)
	for _, layout := range directDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return civil.DateOf(t), true
		}
	}
	token := fields[0]
	if t, err := time.Parse(time.DateOnly, token); err == nil {
		return civil.DateOf(t), true
	}

	parts := dateSeparator.Split(token, -1)
	if len(parts) != 3 {
		return civil.Date{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return civil.Date{}, false
		}
		nums[i] = v
	}

	if len(parts[0]) == 4 {
		return validDate(nums[0], nums[1], nums[2])
	}
	if l := len(parts[2]); l != 2 && l != 4 {
		return civil.Date{}, false
	}
	year := nums[2]
	if len(parts[2]) == 2 {
		year += 2000
	}
	month, day := nums[0], nums[1]
	if order == DayFirst {
		month, day = day, month
	}
	if d, ok := validDate(year, month, day); ok {
		return d, true
	}
	return validDate(year, day, month)
}

func validDate(year, month, day int) (civil.Date, bool) {
	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	return d, d.IsValid()
}
