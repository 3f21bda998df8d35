// ABOUTME: CLI command for deleting habits.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a habit",
	Long: `Delete a habit by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'habits list' output.

EXAMPLES:

  habits delete abc12345     # Delete by 8-char prefix
  habits rm abc1             # Short prefix (if unique)

CAUTION:

  This permanently deletes the habit and its whole history. There is no undo.
  If the prefix matches multiple habits, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := store.FindHabit(args[0])
		if err != nil {
			return friendly(err)
		}

		if err := store.DeleteHabit(h.ID); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}

		color.Yellow("✗ Deleted %s %s", h.Icon, h.Name)
		fmt.Printf("  %s %d completions, best streak %d\n",
			color.New(color.Faint).Sprint(shortID(h)),
			h.CompletionCount(), h.BestStreak())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
