package utils

import (
	"fmt"
	"time"
)

// StartOfDay returns the same date with the time set to 00:00, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of the same date, keeping the location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartNextDay returns the next date with the time set to 00:00, keeping the location.
func StartNextDay(t time.Time) time.Time {
	return StartOfDay(t.AddDate(0, 0, 1))
}

// SameDay reports whether both times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// EnumerateDays lists every calendar day from start to end inclusive,
// each normalized to 00:00 in start's location.
func EnumerateDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := StartOfDay(start); !d.After(StartOfDay(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DateLabel formats a date the way the staff screens display it.
func DateLabel(t time.Time) string {
	return t.Format("Monday, 02 Jan 2006")
}

// ParseDate parses a date from an RFC3339 string. If that fails it tries a
// datetime without timezone and finally a bare date, both interpreted in loc.
func ParseDate(str string, loc *time.Location) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, loc)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02", str, loc)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}
