// ABOUTME: Pure streak derivation over a set of completed date keys.
// ABOUTME: Counts backwards from today; any missing day ends the run.
package streak

import (
	"sort"
	"time"
)

const keyLayout = "2006-01-02"

// Current returns the number of consecutive completed days ending at today.
// If today itself is not completed the streak is zero.
// Weekly habits are measured the same way as daily ones.
func Current(completions map[string]bool, today time.Time) int {
	y, m, d := today.Date()
	loc := today.Location()

	count := 0
	for completions[time.Date(y, m, d-count, 0, 0, 0, 0, loc).Format(keyLayout)] {
		count++
	}
	return count
}

// Best returns the new best streak given the previous best and the current streak.
func Best(previous, current int) int {
	return max(previous, current)
}

// Longest returns the longest run of consecutive completed days anywhere in
// the history. Keys that are not valid dates are ignored.
func Longest(completions map[string]bool) int {
	days := make([]time.Time, 0, len(completions))
	for k, done := range completions {
		if !done {
			continue
		}
		t, err := time.Parse(keyLayout, k)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && day.Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
