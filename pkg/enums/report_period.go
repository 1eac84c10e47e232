package enums

import (
	"fmt"
	"strings"
)

// ReportPeriod selects the time window of a period report.
type ReportPeriod string

const (
	ReportPeriodToday ReportPeriod = "today"
	ReportPeriodWeek  ReportPeriod = "week"
	ReportPeriodMonth ReportPeriod = "month"
	ReportPeriodAll   ReportPeriod = "all"
)

var validReportPeriods = []ReportPeriod{
	ReportPeriodToday,
	ReportPeriodWeek,
	ReportPeriodMonth,
	ReportPeriodAll,
}

// String implements fmt.Stringer.
func (p ReportPeriod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ReportPeriod.
func (p ReportPeriod) IsValid() bool {
	for _, candidate := range validReportPeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseReportPeriod converts raw input into a ReportPeriod. Matching ignores
// case and surrounding whitespace.
func ParseReportPeriod(value string) (ReportPeriod, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validReportPeriods {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report period %q", value)
}

// ReportPeriodOrAll falls back to ReportPeriodAll for empty or unknown input.
func ReportPeriodOrAll(value string) ReportPeriod {
	p, err := ParseReportPeriod(value)
	if err != nil {
		return ReportPeriodAll
	}
	return p
}
