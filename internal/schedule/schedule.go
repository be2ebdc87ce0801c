// Package schedule holds the pure repeat-rule arithmetic behind template
// generation. All functions are total and deterministic: invalid or missing
// optional fields fall back to defined defaults instead of failing. Dates are
// date-only strings (YYYY-MM-DD) with no timezone semantics.
package schedule

import (
	"fmt"
	"time"

	"github.com/worklens/work-calendar-api/internal/models"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// quarterStartMonths are the months a quarterly template fires in. The rule is
// a fixed calendar rule: it does not shift with the template's repeat day.
var quarterStartMonths = map[int]bool{1: true, 4: true, 7: true, 10: true}

// IsDueInMonth reports whether a template's repeat rule fires in the given
// target month. Unknown repeat types are never due.
func IsDueInMonth(tpl *models.TaskTemplate, year, month int) bool {
	switch tpl.RepeatType {
	case models.RepeatMonthly:
		return true
	case models.RepeatQuarterly:
		return quarterStartMonths[month]
	case models.RepeatYearly:
		return tpl.RepeatMonth != nil && month == *tpl.RepeatMonth
	}
	return false
}

// OccurrenceDate computes the fill date for an occurrence in (year, month).
// repeatDay is clamped to the month's last day, so day 31 lands on Feb 28/29.
// A repeatDay below 1 is treated as 1.
func OccurrenceDate(year, month, repeatDay int) string {
	day := repeatDay
	if day < 1 {
		day = 1
	}
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ExpectedCompleteDate adds durationDays calendar days to a fill date,
// rolling over month and year boundaries. Non-positive durations count as 1.
func ExpectedCompleteDate(fillDate string, durationDays int) (string, error) {
	t, err := time.Parse(DateLayout, fillDate)
	if err != nil {
		return "", fmt.Errorf("invalid fill date %q: %w", fillDate, err)
	}
	if durationDays < 1 {
		durationDays = 1
	}
	return t.AddDate(0, 0, durationDays).Format(DateLayout), nil
}

// PeriodKey normalizes a target (year, month) to the first day of that month.
// One generation-log row per (template, period key) is the dedup invariant.
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d-01", year, month)
}

// MonthRange returns the first and last date of a month.
func MonthRange(year, month int) (start, end string) {
	start = PeriodKey(year, month)
	end = fmt.Sprintf("%04d-%02d-%02d", year, month, lastDayOfMonth(year, month))
	return start, end
}

// lastDayOfMonth uses the zeroth day of the following month, which the time
// package normalizes to the last day of this one.
func lastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
