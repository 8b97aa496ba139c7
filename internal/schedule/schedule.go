// Package schedule computes interview slots on business days.
package schedule

import "time"

// Default interview scheduling policy: third business day at 14:00.
const (
	DefaultBusinessDays = 3
	DefaultHour         = 14
)

// InterviewDate returns the instant of the businessDays-th business day
// (Monday-Friday, holidays ignored) counted from now, with the wall clock
// pinned to hour:00:00.000 in now's location.
//
// Rule: same-day cutoff, count-current-day. If now is already past the target
// hour the count starts tomorrow; otherwise today counts as the first business
// day when it is a weekday. The result is always strictly after now.
//
// The computation is pure: callers inject now, typically from a clock func.
func InterviewDate(now time.Time, businessDays, hour int) time.Time {
	date := now

	// Already past the interview hour today, start counting from tomorrow.
	if date.Hour() >= hour {
		date = date.AddDate(0, 0, 1)
	}

	date = time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())

	counted := 0
	for counted < businessDays {
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			counted++
		}
		if counted < businessDays {
			date = date.AddDate(0, 0, 1)
		}
	}

	return date
}
