package timeutil

import (
	"log/slog"
	"time"
)

// DateLayout is the calendar date format used for storage keys and query params.
const DateLayout = "2006-01-02"

// LoadLocation resolves an IANA zone name. Unknown zones fall back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("Unknown timezone, falling back to UTC", "timezone", name, "error", err)
		return time.UTC
	}
	return loc
}

// LocalDate returns the calendar date of t in loc.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last nanosecond of the local day containing t.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns Monday 00:00 local of the week containing t.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns the last nanosecond of Sunday of the week containing t.
func EndOfWeek(t time.Time, loc *time.Location) time.Time {
	return StartOfWeek(t, loc).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// DateOnly truncates t to its calendar date as UTC midnight, keeping the wall date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LocalDateOf returns the calendar date of t in loc as UTC midnight.
func LocalDateOf(t time.Time, loc *time.Location) time.Time {
	return DateOnly(t.In(loc))
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
