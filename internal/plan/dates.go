package plan

import "time"

const dateLayout = "2006-01-02"

// DateForDay assigns a calendar date to a plan item: base + (day-1) days,
// date-only. Generation and calendar rendering both go through this helper so
// the two can never drift.
func DateForDay(base time.Time, day int) string {
	return base.AddDate(0, 0, day-1).Format(dateLayout)
}

// ParseDate parses a date-only ISO string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
