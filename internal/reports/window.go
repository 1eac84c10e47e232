package reports

import (
	"time"

	"github.com/angelmondragon/droptracker-backend/pkg/enums"
)

// Window is a half-open [From, Before) range. Nil bounds are open.
type Window struct {
	From   *time.Time
	Before *time.Time
}

// WindowFor computes the report window for period relative to now. Day
// boundaries are taken in loc; bounds are returned in UTC.
func WindowFor(period enums.ReportPeriod, now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch period {
	case enums.ReportPeriodToday:
		return bounded(startOfDay, startOfDay.AddDate(0, 0, 1))
	case enums.ReportPeriodWeek:
		return openEnded(startOfDay.AddDate(0, 0, -7))
	case enums.ReportPeriodMonth:
		return openEnded(startOfDay.AddDate(0, 0, -30))
	default:
		return Window{}
	}
}

func bounded(from, before time.Time) Window {
	f, b := from.UTC(), before.UTC()
	return Window{From: &f, Before: &b}
}

func openEnded(from time.Time) Window {
	f := from.UTC()
	return Window{From: &f}
}
