// ABOUTME: Calendar date keys (YYYY-MM-DD) used as completion map keys.
// ABOUTME: Keys are always in the caller's local calendar, never UTC-shifted.
package models

import (
	"fmt"
	"time"
)

// DateKeyLayout is the layout of a completion date key.
const DateKeyLayout = "2006-01-02"

// DateKey formats t as a calendar date key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a date key as midnight in loc.
// Keys that do not round-trip exactly (e.g. "2025-1-5") are rejected.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	if t.Format(DateKeyLayout) != key {
		return time.Time{}, fmt.Errorf("parse date key %q: not in YYYY-MM-DD form", key)
	}
	return t, nil
}

// LastDays returns the date keys of the n days ending with today, oldest first.
func LastDays(today time.Time, n int) []string {
	keys := make([]string, 0, n)
	y, m, d := today.Date()
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, DateKey(time.Date(y, m, d-i, 0, 0, 0, 0, today.Location())))
	}
	return keys
}
