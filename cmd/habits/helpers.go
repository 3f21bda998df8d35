// ABOUTME: Shared helpers for CLI output and argument parsing.
// ABOUTME: Date resolution, id prefixes, padding and error hints.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/models"
	"github.com/mattn/go-runewidth"
)

// resolveDate turns "", "today", "yesterday" or YYYY-MM-DD into a date key
// relative to today's key.
func resolveDate(s, today string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		t, err := models.ParseDateKey(today, time.Local)
		if err != nil {
			return "", err
		}
		return models.DateKey(t.AddDate(0, 0, -1)), nil
	}
	if _, err := models.ParseDateKey(s, time.Local); err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD, today or yesterday)", s)
	}
	return s, nil
}

func shortID(h *models.Habit) string {
	return h.ID.String()[:8]
}

// truncate shortens s to at most maxLen terminal columns, ending in "...".
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}

// padRight pads s with spaces to length terminal columns.
func padRight(s string, length int) string {
	return runewidth.FillRight(s, length)
}

// friendly rewrites store errors into actionable messages.
func friendly(err error) error {
	switch {
	case errors.Is(err, habits.ErrQuotaExceeded):
		return fmt.Errorf("%w\n\nThe free plan holds %d habits. Run 'habits plan upgrade' for unlimited habits", err, models.FreeHabitsLimit)
	case errors.Is(err, habits.ErrFeatureLocked):
		return fmt.Errorf("%w\n\nThis is a premium feature. Run 'habits plan upgrade' to unlock it", err)
	case errors.Is(err, habits.ErrAmbiguousID):
		return fmt.Errorf("%w\n\nUse more characters of the id", err)
	}
	return err
}

func printHabit(h *models.Habit, today string) {
	faint := color.New(color.Faint)
	mark := faint.Sprint("○")
	if h.IsCompleted(today) {
		mark = color.GreenString("✓")
	}

	streak := ""
	if h.Streak() > 0 {
		streak = color.YellowString(" 🔥%d", h.Streak())
	}
	best := faint.Sprintf(" (best %d)", h.BestStreak())

	extra := ""
	if h.Reminder != "" {
		extra += faint.Sprintf(" ⏰%s", h.Reminder)
	}
	if h.Integration != nil {
		extra += faint.Sprintf(" [%s]", h.Integration.Type)
	}

	fmt.Printf("%s %s %s %s%s%s%s\n",
		faint.Sprint(shortID(h)),
		mark,
		h.Icon,
		padRight(truncate(h.Name, 28), 28),
		streak, best, extra)
}
