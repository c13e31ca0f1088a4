package ledger

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// UncategorizedLabel is assigned when no category rule matches.
const UncategorizedLabel = "Other"

// UnknownDescription replaces empty descriptions.
const UnknownDescription = "Unknown"

// DefaultIgnoreKeyword is the keyword of the built-in ignore rule.
const DefaultIgnoreKeyword = "payment received"

// DeterministicID derives a stable id for built-in records.
func DeterministicID(kind, name string) string {
	key := kind + ":" + strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// DefaultIgnoreRules is used when no ignore rules have been stored.
func DefaultIgnoreRules() []IgnoreRule {
	return []IgnoreRule{
		{ID: DeterministicID("ignore", DefaultIgnoreKeyword), Keyword: DefaultIgnoreKeyword, Active: true},
	}
}

// DefaultCategories is used when no category list has been stored.
func DefaultCategories() []Category {
	defaults := []struct{ name, color string }{
		{"Food & Dining", "#FF5733"},
		{"Transportation", "#33A8FF"},
		{"Housing", "#33FF57"},
		{"Entertainment", "#D133FF"},
		{"Shopping", "#FFD133"},
		{"Utilities", "#4633FF"},
		{"Health & Fitness", "#FF3399"},
		{UncategorizedLabel, "#858585"},
	}
	out := make([]Category, 0, len(defaults))
	for _, d := range defaults {
		out = append(out, Category{ID: DeterministicID("cat", d.name), Name: d.name, Color: d.color})
	}
	return out
}

// NewTemplate returns a template populated with the same defaults a new
// template gets in the editor: monthly, "Other", starting today.
func NewTemplate(now time.Time) RecurringTemplate {
	return RecurringTemplate{
		ID:        uuid.NewString(),
		Category:  UncategorizedLabel,
		Frequency: Monthly,
		StartDate: civil.DateOf(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
