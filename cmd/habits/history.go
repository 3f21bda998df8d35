// ABOUTME: CLI command showing one habit's month calendar.
// ABOUTME: Prints a Sunday-first grid with the month's completion rate.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"github.com/spf13/cobra"
)

var historyMonth string

var historyCmd = &cobra.Command{
	Use:     "history <id>",
	Aliases: []string{"h", "cal"},
	Short:   "Show a habit's month calendar",
	Long: `Show the completion calendar for one month of a habit.

Completed days are highlighted. Use 'habits done <id> --date' to fill in
or clear a day.

EXAMPLES:

  habits history 1a2b                   # current month
  habits history 1a2b --month 2025-02`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := store.FindHabit(args[0])
		if err != nil {
			return friendly(err)
		}

		today, err := models.ParseDateKey(store.Today(), time.Local)
		if err != nil {
			return err
		}
		month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
		if historyMonth != "" {
			month, err = time.ParseInLocation("2006-01", historyMonth, time.Local)
			if err != nil {
				return fmt.Errorf("invalid month %q (use YYYY-MM)", historyMonth)
			}
		}

		fmt.Printf("%s %s\n", h.Icon, color.New(color.Bold).Sprint(h.Name))
		fmt.Print(renderMonth(h, month, models.DateKey(today)))

		completed, days := monthCount(h, month)
		fmt.Printf("\nThis month %d/%d (%d%%) · streak %d · best %d\n",
			completed, days, stats.MonthRate(h, month), h.Streak(), h.BestStreak())
		return nil
	},
}

// renderMonth draws the month containing first as a 7-column grid.
// Completed days are wrapped in brackets and today is marked with an asterisk.
func renderMonth(h *models.Habit, first time.Time, today string) string {
	var sb strings.Builder
	y, m, _ := first.Date()
	loc := first.Location()
	days := time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
	offset := int(time.Date(y, m, 1, 0, 0, 0, 0, loc).Weekday())

	sb.WriteString(fmt.Sprintf("%s\n", first.Format("January 2006")))
	sb.WriteString(" Sun  Mon  Tue  Wed  Thu  Fri  Sat\n")
	sb.WriteString(strings.Repeat("     ", offset))

	for day := 1; day <= days; day++ {
		key := models.DateKey(time.Date(y, m, day, 0, 0, 0, 0, loc))
		cell := fmt.Sprintf(" %2d ", day)
		if h.IsCompleted(key) {
			cell = fmt.Sprintf("[%2d]", day)
		}
		if key == today {
			cell += "*"
		} else {
			cell += " "
		}
		sb.WriteString(cell)
		if (offset+day)%7 == 0 {
			sb.WriteString("\n")
		}
	}
	if (offset+days)%7 != 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

func monthCount(h *models.Habit, first time.Time) (completed, days int) {
	y, m, _ := first.Date()
	loc := first.Location()
	days = time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
	for day := 1; day <= days; day++ {
		if h.IsCompleted(models.DateKey(time.Date(y, m, day, 0, 0, 0, 0, loc))) {
			completed++
		}
	}
	return completed, days
}

func init() {
	historyCmd.Flags().StringVarP(&historyMonth, "month", "m", "", "month to show (YYYY-MM)")
	rootCmd.AddCommand(historyCmd)
}
