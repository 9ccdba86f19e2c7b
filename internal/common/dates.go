package common

import "time"

// CompactDateLayout is the fixed-width YYYYMMDD encoding used by the POWER API
// for both request ranges and response keys.
const CompactDateLayout = "20060102"

// ISODateLayout is the calendar date layout used by configuration and the HTTP API.
const ISODateLayout = "2006-01-02"

// FormatCompactDate formats t as YYYYMMDD.
func FormatCompactDate(t time.Time) string {
	return t.Format(CompactDateLayout)
}

// ParseCompactDate parses a YYYYMMDD key into a UTC midnight date.
func ParseCompactDate(s string) (time.Time, error) {
	return time.ParseInLocation(CompactDateLayout, s, time.UTC)
}

// ParseISODate parses YYYY-MM-DD into a UTC midnight date.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation(ISODateLayout, s, time.UTC)
}

// Midnight truncates t to its calendar date in UTC, keeping the wall-clock date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysSince returns the whole number of calendar days from `from` to `to`.
// The result is negative when `to` precedes `from`.
func DaysSince(from, to time.Time) int {
	d := Midnight(to).Sub(Midnight(from))
	return int(d.Hours() / 24)
}
