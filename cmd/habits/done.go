// ABOUTME: CLI command for toggling habit completions.
// ABOUTME: Marks a day done, or undoes it when already done.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doneDate string

var doneCmd = &cobra.Command{
	Use:     "done <id> [id...]",
	Aliases: []string{"d", "toggle", "check"},
	Short:   "Toggle a habit's completion",
	Long: `Mark habits done for a day. Running it again on a done day undoes it.

The streak counts consecutive done days ending today, so back-filling
yesterday with --date can extend today's streak.

EXAMPLES:

  habits done 1a2b                       # today
  habits done 1a2b 9f8e                  # several at once
  habits done 1a2b --date yesterday
  habits done 1a2b --date 2025-03-09`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today := store.Today()
		date, err := resolveDate(doneDate, today)
		if err != nil {
			return err
		}

		for _, arg := range args {
			h, err := store.FindHabit(arg)
			if err != nil {
				return friendly(err)
			}

			updated, err := store.ToggleCompletion(h.ID, date)
			if err != nil {
				return friendly(fmt.Errorf("failed to toggle %s: %w", h.Name, err))
			}

			when := date
			if date == today {
				when = "today"
			}
			if updated.IsCompleted(date) {
				color.Green("✓ %s %s done %s", updated.Icon, updated.Name, when)
			} else {
				color.Yellow("○ %s %s undone %s", updated.Icon, updated.Name, when)
			}
			fmt.Printf("  streak %d · best %d\n", updated.Streak(), updated.BestStreak())
		}
		return nil
	},
}

func init() {
	doneCmd.Flags().StringVar(&doneDate, "date", "", "day to toggle (YYYY-MM-DD, today, yesterday)")
	rootCmd.AddCommand(doneCmd)
}
