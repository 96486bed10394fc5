package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for deadlines and
// completion dates, both in the store and on the command line.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q must be YYYY-MM-DD", ErrInvalidDate, raw)
	}
	return t, nil
}

// CalendarDay drops the clock part of t, keeping the day as seen in t's
// own location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar day as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return CalendarDay(t).Format(DateLayout)
}
