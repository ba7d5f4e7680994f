// utils/dates.go
package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC, the way
// Postgres DATE values come back.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// CivilDay maps t's calendar day in its own zone to midnight UTC so it can
// be compared with DATE columns.
func CivilDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDisplayDate renders dates the way the order slip and messages show
// them, e.g. "05 Mar 2025".
func FormatDisplayDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}
