package enum

import (
	"fmt"
	"strings"
)

// PeriodKind names a reporting window
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "daily"
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodYearly  PeriodKind = "yearly"
	PeriodCustom  PeriodKind = "custom"
)

var periodAliases = map[string]PeriodKind{
	"daily":   PeriodDaily,
	"today":   PeriodDaily,
	"weekly":  PeriodWeekly,
	"week":    PeriodWeekly,
	"monthly": PeriodMonthly,
	"month":   PeriodMonthly,
	"yearly":  PeriodYearly,
	"year":    PeriodYearly,
	"custom":  PeriodCustom,
}

func (p PeriodKind) String() string {
	return string(p)
}

// ParsePeriodKind accepts both the canonical names and the short
// aliases (today, week, month, year).
func ParsePeriodKind(value string) (PeriodKind, error) {
	kind, ok := periodAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("unknown period %q", value)
	}
	return kind, nil
}
