// ABOUTME: Tests for streak derivation.
// ABOUTME: Covers empty sets, gaps, today-unmarked, month and DST boundaries.
package streak

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(keyLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}

func set(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]bool
		today       string
		want        int
	}{
		{"empty", set(), "2025-03-10", 0},
		{"nil map", nil, "2025-03-10", 0},
		{"today only", set("2025-03-10"), "2025-03-10", 1},
		{"three days ending today", set("2025-03-08", "2025-03-09", "2025-03-10"), "2025-03-10", 3},
		{"yesterday but not today", set("2025-03-09"), "2025-03-10", 0},
		{"gap stops the run", set("2025-03-06", "2025-03-08", "2025-03-09", "2025-03-10"), "2025-03-10", 3},
		{"future mark does not count backwards", set("2025-03-11", "2025-03-10"), "2025-03-10", 1},
		{"across month boundary", set("2025-02-27", "2025-02-28", "2025-03-01"), "2025-03-01", 3},
		{"across leap day", set("2024-02-28", "2024-02-29", "2024-03-01"), "2024-03-01", 3},
		{"across year boundary", set("2024-12-31", "2025-01-01"), "2025-01-01", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Current(tt.completions, day(tt.today)); got != tt.want {
				t.Errorf("Current() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	// DST started 2025-03-09 in New York; the 23-hour day must still count once.
	today := time.Date(2025, 3, 10, 0, 30, 0, 0, loc)
	got := Current(set("2025-03-08", "2025-03-09", "2025-03-10"), today)
	if got != 3 {
		t.Errorf("Current() across DST = %d, want 3", got)
	}
}

func TestCurrentUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	// 20:00 local on the 10th is already the 11th in UTC.
	today := time.Date(2025, 3, 10, 20, 0, 0, 0, loc)
	if got := Current(set("2025-03-10"), today); got != 1 {
		t.Errorf("Current() = %d, want 1", got)
	}
}

func TestBest(t *testing.T) {
	tests := []struct {
		previous, current, want int
	}{
		{0, 0, 0},
		{0, 3, 3},
		{5, 0, 5},
		{5, 7, 7},
	}
	for _, tt := range tests {
		if got := Best(tt.previous, tt.current); got != tt.want {
			t.Errorf("Best(%d, %d) = %d, want %d", tt.previous, tt.current, got, tt.want)
		}
	}
}

func TestLongest(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]bool
		want        int
	}{
		{"empty", set(), 0},
		{"single", set("2025-01-01"), 1},
		{"two runs", set("2025-01-01", "2025-01-02", "2025-01-05", "2025-01-06", "2025-01-07"), 3},
		{"ignores bad keys", set("2025-01-01", "garbage", "2025-01-02"), 2},
		{"ignores false entries", map[string]bool{"2025-01-01": true, "2025-01-02": false}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Longest(tt.completions); got != tt.want {
				t.Errorf("Longest() = %d, want %d", got, tt.want)
			}
		})
	}
}
