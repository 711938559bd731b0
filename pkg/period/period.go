package period

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Period names a reporting window for the stats endpoints.
type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodOverall Period = "overall"
)

// Parse converts a query-string value into a Period, defaulting to today.
func Parse(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday, "":
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodOverall:
		return PeriodOverall, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// DateBounds returns the inclusive date-key range [start, end] for the period
// around now. Weeks start on Monday. Overall returns an open lower bound.
func DateBounds(p Period, now time.Time) (start, end string) {
	end = now.Format(dateLayout)
	switch p {
	case PeriodWeek:
		start = StartOfWeek(now).Format(dateLayout)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	case PeriodOverall:
		start = ""
	default:
		start = end
	}
	return start, end
}

// TimeBounds returns the half-open timestamp range [start, end) for the
// period around now, used for created_at filters.
func TimeBounds(p Period, now time.Time) (start, end time.Time) {
	end = now
	switch p {
	case PeriodWeek:
		start = StartOfWeek(now)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodOverall:
		start = time.Time{}
	default:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return start, end
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
