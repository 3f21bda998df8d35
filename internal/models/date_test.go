// ABOUTME: Tests for calendar date keys.
// ABOUTME: Covers formatting, strict parsing and the last-N-days window.
package models

import (
	"reflect"
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2025, 3, 10, 1, 0, 0, 0, loc)
	if got := DateKey(ts); got != "2025-03-10" {
		t.Errorf("DateKey() = %q, want 2025-03-10", got)
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2025-03-10", false},
		{"2024-02-29", false},
		{"2025-02-29", true},
		{"2025-3-10", true},
		{"2025-03-10T00:00", true},
		{"", true},
		{"yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDateKey(tt.input, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestLastDays(t *testing.T) {
	today := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)
	want := []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	if got := LastDays(today, 4); !reflect.DeepEqual(got, want) {
		t.Errorf("LastDays() = %v, want %v", got, want)
	}
}
